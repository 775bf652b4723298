package serialization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	input := map[string]any{
		"name":     "ada",
		"age":      36,
		"score":    9.5,
		"active":   true,
		"nickname": nil,
		"tags":     []string{"a", "b"},
		"address":  map[string]any{"city": "London"},
		"created":  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	expected := map[string]any{
		"name":     "ada",
		"age":      float64(36),
		"score":    9.5,
		"active":   true,
		"nickname": nil,
		"tags":     []any{"a", "b"},
		"address":  map[string]any{"city": "London"},
		"created":  "2024-01-02T03:04:05Z",
	}

	for _, codecType := range AllCodecTypes() {
		t.Run(codecType.String(), func(t *testing.T) {
			codec := codecType.CreateCodec()

			data, err := codec.Marshal(input)
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, codec.Unmarshal(data, &decoded))
			assert.Equal(t, expected, decoded)
		})
	}
}

func TestCodecs_Compatible(t *testing.T) {
	input := map[string]any{"b": 1, "a": "x", "when": time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)}

	reference, err := JSONCodec{}.Marshal(input)
	require.NoError(t, err)

	for _, codecType := range AllCodecTypes() {
		t.Run(codecType.String(), func(t *testing.T) {
			data, err := codecType.CreateCodec().Marshal(input)
			require.NoError(t, err)
			assert.JSONEq(t, string(reference), string(data))
		})
	}
}

func TestJSONCodec_Errors(t *testing.T) {
	codec := JSONCodec{}

	t.Run("unsupported value", func(t *testing.T) {
		_, err := codec.Marshal(map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
	})
	t.Run("malformed input", func(t *testing.T) {
		var out map[string]any
		err := codec.Unmarshal([]byte(`{"invalid": json}`), &out)
		assert.Error(t, err)
	})
}
