package serialization

import (
	jsoniter "github.com/json-iterator/go"
)

// JSONIterCodec implements the Codec interface with json-iterator configured to be
// compatible with encoding/json, so output is byte-for-byte interchangeable with JSONCodec.
type JSONIterCodec struct{}

var _ Codec = (*JSONIterCodec)(nil)

var jsoniterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (JSONIterCodec) Name() string { return string(JSONIter) }

func (JSONIterCodec) Marshal(v any) ([]byte, error) {
	return jsoniterAPI.Marshal(v)
}

func (JSONIterCodec) Unmarshal(data []byte, v any) error {
	return jsoniterAPI.Unmarshal(data, v)
}
