package serx

import (
	"github.com/hengadev/serx/internal/serialization"
	"github.com/hengadev/serx/internal/serxerr"
)

// Codec converts encoded records to and from text. Any implementation able to
// handle strings, numbers, booleans, nil, maps, slices and time.Time may be used.
type Codec = serialization.Codec

// Built-in codec names accepted by Config.Codec and CodecByName.
const (
	CodecJSON     = string(serialization.JSON)
	CodecJSONIter = string(serialization.JSONIter)
	CodecSonic    = string(serialization.Sonic)
)

// JSONCodec returns the encoding/json backed codec.
func JSONCodec() Codec { return &serialization.JSONCodec{} }

// JSONIterCodec returns the json-iterator backed codec.
func JSONIterCodec() Codec { return &serialization.JSONIterCodec{} }

// SonicCodec returns the bytedance/sonic backed codec.
func SonicCodec() Codec { return &serialization.SonicCodec{} }

// CodecByName returns the built-in codec registered under name.
func CodecByName(name string) (Codec, error) {
	codecType, err := serialization.ParseCodecType(name)
	if err != nil {
		return nil, serxerr.NewUnknownCodecError(name)
	}
	return codecType.CreateCodec(), nil
}

// CodecNames lists the built-in codec names.
func CodecNames() []string {
	types := serialization.AllCodecTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}
