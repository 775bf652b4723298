package monitoring

import (
	"fmt"
	"time"
)

// ObservabilityHook is notified around every serializer operation
type ObservabilityHook interface {
	// Called before processing starts
	OnProcessStart(operation string, metadata map[string]any)

	// Called after processing completes (success or failure)
	OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when errors occur
	OnError(operation string, err error, metadata map[string]any)
}

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnProcessStart(operation string, metadata map[string]any) {}
func (n *NoOpObservabilityHook) OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(operation string, err error, metadata map[string]any) {}

// Logger is the subset of StructuredLogger used by LoggingObservabilityHook
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// LoggingObservabilityHook logs all operations
type LoggingObservabilityHook struct {
	logger Logger
}

// NewLoggingObservabilityHook creates a new logging observability hook.
// A nil logger falls back to a JSON StructuredLogger on stdout.
func NewLoggingObservabilityHook(logger Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = NewStructuredLogger(LoggerConfig{Level: LevelInfo, Component: "serializer"})
	}
	return &LoggingObservabilityHook{
		logger: logger,
	}
}

func (l *LoggingObservabilityHook) OnProcessStart(operation string, metadata map[string]any) {
	l.logger.Debug("Operation started: %s, metadata: %v", operation, metadata)
}

func (l *LoggingObservabilityHook) OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any) {
	if err != nil {
		l.logger.Error("Operation failed: %s, duration: %v, error: %v, metadata: %v", operation, duration, err, metadata)
	} else {
		l.logger.Info("Operation completed: %s, duration: %v, metadata: %v", operation, duration, metadata)
	}
}

func (l *LoggingObservabilityHook) OnError(operation string, err error, metadata map[string]any) {
	l.logger.Error("Operation error: %s, error: %v, metadata: %v", operation, err, metadata)
}

// MetricsObservabilityHook collects metrics for operations
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a new metrics observability hook
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = &NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{
		collector: collector,
	}
}

func (m *MetricsObservabilityHook) OnProcessStart(operation string, metadata map[string]any) {
	m.collector.IncrementCounter("serx.process.started", operationTags(operation, metadata))
}

func (m *MetricsObservabilityHook) OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := operationTags(operation, metadata)
	if err != nil {
		tags["status"] = "error"
		m.collector.IncrementCounter("serx.process.failed", tags)
	} else {
		tags["status"] = "success"
		m.collector.IncrementCounter("serx.process.succeeded", tags)
	}

	m.collector.RecordTiming("serx.process.duration", duration, tags)
}

func (m *MetricsObservabilityHook) OnError(operation string, err error, metadata map[string]any) {
	tags := map[string]string{
		"operation": operation,
		"error":     fmt.Sprintf("%T", err),
	}
	m.collector.IncrementCounter("serx.errors", tags)
}

func operationTags(operation string, metadata map[string]any) map[string]string {
	tags := map[string]string{"operation": operation}
	if recordType, ok := metadata["record_type"].(string); ok {
		tags["record_type"] = recordType
	}
	return tags
}

// CompositeObservabilityHook combines multiple hooks
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

// NewCompositeObservabilityHook creates a new composite hook
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return &CompositeObservabilityHook{
		hooks: hooks,
	}
}

func (c *CompositeObservabilityHook) OnProcessStart(operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessStart(operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessComplete(operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(operation, err, metadata)
	}
}
