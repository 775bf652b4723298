package serialization

import (
	"github.com/bytedance/sonic"
)

// SonicCodec implements the Codec interface with bytedance/sonic using its
// standard-library compatible configuration (sorted map keys, HTML escaping).
type SonicCodec struct{}

var _ Codec = (*SonicCodec)(nil)

func (SonicCodec) Name() string { return string(Sonic) }

func (SonicCodec) Marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}

func (SonicCodec) Unmarshal(data []byte, v any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}
