package serx

import (
	"io"

	"github.com/hengadev/serx/internal/monitoring"
)

// Type aliases for the monitoring package
type (
	ObservabilityHook        = monitoring.ObservabilityHook
	MetricsCollector         = monitoring.MetricsCollector
	InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector
	StructuredLogger         = monitoring.StructuredLogger
)

// NewLogger builds a slog backed structured logger from the configured level and
// format. Output defaults to stdout.
func NewLogger(cfg Config, output io.Writer, component string) (*StructuredLogger, error) {
	level, err := monitoring.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := monitoring.ParseLogFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return monitoring.NewStructuredLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    output,
		Component: component,
	}), nil
}

// NewLoggingHook returns a hook logging every operation through logger, or
// through a JSON logger on stdout when logger is nil.
func NewLoggingHook(logger *StructuredLogger) ObservabilityHook {
	if logger == nil {
		return monitoring.NewLoggingObservabilityHook(nil)
	}
	return monitoring.NewLoggingObservabilityHook(logger)
}

// NewMetricsHook returns a hook feeding operation counters and timings to collector.
func NewMetricsHook(collector MetricsCollector) ObservabilityHook {
	return monitoring.NewMetricsObservabilityHook(collector)
}

// NewInMemoryMetricsCollector returns a collector keeping metrics in process.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}

// CombineHooks fans every notification out to all hooks in order.
func CombineHooks(hooks ...ObservabilityHook) ObservabilityHook {
	return monitoring.NewCompositeObservabilityHook(hooks...)
}
