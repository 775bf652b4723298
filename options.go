package serx

import (
	"fmt"
)

// Option configures a Serializer at construction time.
type Option func(s *Serializer) error

// WithRegistry shares an existing schema registry, typically one populated with Register.
func WithRegistry(registry *Registry) Option {
	return func(s *Serializer) error {
		if registry == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		s.registry = registry
		return nil
	}
}

// WithCodec replaces the codec selected by Config.Codec.
func WithCodec(codec Codec) Option {
	return func(s *Serializer) error {
		if codec == nil {
			return fmt.Errorf("codec cannot be nil")
		}
		s.codec = codec
		return nil
	}
}

// WithObservability installs a hook notified around every operation. The
// serializer does not log or record anything unless a hook is installed.
func WithObservability(hook ObservabilityHook) Option {
	return func(s *Serializer) error {
		if hook == nil {
			return fmt.Errorf("observability hook cannot be nil")
		}
		s.observability = hook
		return nil
	}
}

// EncodeOption adjusts a single ToDict or ToJSON call.
type EncodeOption func(o *encodeOptions)

type encodeOptions struct {
	follow bool
	force  bool
	codec  Codec
}

// FollowRelationships includes related records, traversing the object graph
// while skipping relationships that lead back to records already encoded.
func FollowRelationships(follow bool) EncodeOption {
	return func(o *encodeOptions) {
		o.follow = follow
	}
}

// ForceSerialization includes properties marked as not serialized.
func ForceSerialization(force bool) EncodeOption {
	return func(o *encodeOptions) {
		o.force = force
	}
}

// UsingCodec selects the codec for one ToJSON call.
func UsingCodec(codec Codec) EncodeOption {
	return func(o *encodeOptions) {
		if codec != nil {
			o.codec = codec
		}
	}
}
