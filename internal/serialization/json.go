package serialization

import (
	"encoding/json"
)

// JSONCodec implements the Codec interface using the encoding/json package.
// It is the default codec: time.Time values are written as RFC 3339 strings and
// numbers are decoded as float64.
type JSONCodec struct{}

var _ Codec = (*JSONCodec)(nil)

func (JSONCodec) Name() string { return string(JSON) }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
