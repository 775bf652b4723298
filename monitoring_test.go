package serx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHook records every notification it receives
type recordingHook struct {
	events []string
	errs   []error
}

func (r *recordingHook) OnProcessStart(operation string, metadata map[string]any) {
	r.events = append(r.events, "start:"+operation)
}

func (r *recordingHook) OnProcessComplete(operation string, duration time.Duration, err error, metadata map[string]any) {
	r.events = append(r.events, "complete:"+operation)
}

func (r *recordingHook) OnError(operation string, err error, metadata map[string]any) {
	r.events = append(r.events, "error:"+operation)
	r.errs = append(r.errs, err)
}

func TestObservability_Notifications(t *testing.T) {
	hook := &recordingHook{}
	s, err := New(Config{}, WithObservability(hook))
	require.NoError(t, err)

	_, err = s.ToDict(&partner{ID: 1})
	require.NoError(t, err)
	_, err = s.FromDict(&partner{}, map[string]any{})
	require.Error(t, err)

	assert.Equal(t, []string{
		"start:ToDict",
		"complete:ToDict",
		"start:FromDict",
		"error:FromDict",
		"complete:FromDict",
	}, hook.events)
	require.Len(t, hook.errs, 1)
	assert.ErrorIs(t, hook.errs[0], ErrMissingField)
}

func TestObservability_Metrics(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	s, err := New(Config{}, WithObservability(NewMetricsHook(collector)))
	require.NoError(t, err)

	_, err = s.ToJSON(&partner{ID: 1})
	require.NoError(t, err)
	_, err = s.FromJSON(&partner{}, `nope`)
	require.Error(t, err)

	recordType := map[string]string{"operation": "ToJSON", "record_type": "*serx.partner"}
	assert.Equal(t, int64(1), collector.GetCounter("serx.process.started", recordType))
	assert.Equal(t, int64(1), collector.GetCounter("serx.process.succeeded", map[string]string{
		"operation": "ToJSON", "record_type": "*serx.partner", "status": "success",
	}))
	assert.Equal(t, int64(1), collector.GetCounter("serx.process.failed", map[string]string{
		"operation": "FromJSON", "record_type": "*serx.partner", "status": "error",
	}))
	assert.Len(t, collector.GetTimings("serx.process.duration", map[string]string{
		"operation": "ToJSON", "record_type": "*serx.partner", "status": "success",
	}), 1)
}

func TestObservability_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{LogLevel: "debug", LogFormat: "json"}, &buf, "test")
	require.NoError(t, err)

	s, err := New(Config{}, WithObservability(CombineHooks(NewLoggingHook(logger), NewMetricsHook(nil))))
	require.NoError(t, err)

	_, err = s.ToDict(&partner{ID: 1})
	require.NoError(t, err)
	_, err = s.FromDict(&partner{}, map[string]any{})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "Operation started: ToDict")
	assert.Contains(t, out, "Operation completed: ToDict")
	assert.Contains(t, out, "Operation failed: FromDict")
	assert.Contains(t, out, `"service":"serx"`)
	assert.Contains(t, out, `"component":"test"`)
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	_, err := NewLogger(Config{LogLevel: "loud", LogFormat: "json"}, nil, "")
	assert.Error(t, err)

	_, err = NewLogger(Config{LogLevel: "info", LogFormat: "xml"}, nil, "")
	assert.Error(t, err)
}

func TestSerializer_SilentByDefault(t *testing.T) {
	s := NewDefault()
	_, err := s.FromDict(&partner{}, map[string]any{})
	assert.Error(t, err)
	assert.NotPanics(t, func() {
		_, _ = s.ToDict(&partner{ID: 1})
	})
}
