package serialization

import (
	"fmt"
	"strings"
)

// CodecType identifies one of the built-in codecs
type CodecType string

const (
	// JSON uses the standard encoding/json package
	JSON CodecType = "json"
	// JSONIter uses json-iterator in standard library compatible mode
	JSONIter CodecType = "jsoniter"
	// Sonic uses bytedance/sonic in standard library compatible mode
	Sonic CodecType = "sonic"
)

// IsValid checks if the codec type is supported
func (c CodecType) IsValid() bool {
	switch c {
	case JSON, JSONIter, Sonic:
		return true
	default:
		return false
	}
}

// CreateCodec creates a new instance of the codec
func (c CodecType) CreateCodec() Codec {
	switch c {
	case JSON:
		return &JSONCodec{}
	case JSONIter:
		return &JSONIterCodec{}
	case Sonic:
		return &SonicCodec{}
	default:
		return nil
	}
}

// String returns the string representation of the codec type
func (c CodecType) String() string {
	return string(c)
}

// ParseCodecType parses a string into a CodecType and validates it
func ParseCodecType(s string) (CodecType, error) {
	codecType := CodecType(strings.ToLower(strings.TrimSpace(s)))

	if !codecType.IsValid() {
		return "", fmt.Errorf("invalid codec type '%s': must be one of [%s, %s, %s]",
			s, JSON, JSONIter, Sonic)
	}

	return codecType, nil
}

// AllCodecTypes returns all supported codec types
func AllCodecTypes() []CodecType {
	return []CodecType{JSON, JSONIter, Sonic}
}
