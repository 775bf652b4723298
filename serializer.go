package serx

import (
	"errors"
	"fmt"
	"time"

	"github.com/hengadev/serx/internal/monitoring"
	"github.com/hengadev/serx/internal/serialization"
	"github.com/hengadev/serx/internal/serxerr"
)

// Serializer converts records to and from map[string]any and JSON.
//
// It holds no per-call state: the visited set used for cycle detection is created
// by each ToDict call, so one Serializer may be shared between goroutines as long
// as the records themselves are not mutated concurrently.
type Serializer struct {
	registry      *Registry
	codec         Codec
	defaults      encodeOptions
	observability ObservabilityHook
}

// New creates a Serializer from a validated configuration.
func New(cfg Config, opts ...Option) (*Serializer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	s := &Serializer{
		registry: NewRegistry(cfg.TagName),
		codec:    codec,
		defaults: encodeOptions{
			follow: cfg.FollowRelationships,
			force:  cfg.ForceSerialization,
		},
		observability: &monitoring.NoOpObservabilityHook{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("apply serializer option: %w", err)
		}
	}
	return s, nil
}

// NewDefault returns a Serializer using the default configuration: the JSON
// codec, the "serx" tag, no relationship traversal and no forced serialization.
func NewDefault() *Serializer {
	return &Serializer{
		registry:      NewRegistry(DefaultTagName),
		codec:         &serialization.JSONCodec{},
		observability: &monitoring.NoOpObservabilityHook{},
	}
}

// Registry returns the schema registry used by s.
func (s *Serializer) Registry() *Registry {
	return s.registry
}

// Codec returns the default codec used by ToJSON and FromJSON.
func (s *Serializer) Codec() Codec {
	return s.codec
}

// ToDict encodes record into a map keyed by property name, leading underscores
// removed. Scalars are copied as-is. With FollowRelationships, to-one targets
// become nested maps (nil when absent) and to-many targets become slices of maps
// (empty when the collection is empty). Extra fields are merged last.
func (s *Serializer) ToDict(record any, opts ...EncodeOption) (map[string]any, error) {
	start := time.Now()
	metadata := recordMetadata(record)
	s.observability.OnProcessStart("ToDict", metadata)

	out, err := s.toDict(record, s.encodeOptions(opts))
	s.complete("ToDict", start, err, metadata)
	return out, err
}

// ToJSON encodes record with ToDict and marshals the result with the codec.
func (s *Serializer) ToJSON(record any, opts ...EncodeOption) (string, error) {
	start := time.Now()
	metadata := recordMetadata(record)
	s.observability.OnProcessStart("ToJSON", metadata)

	text, err := s.toJSON(record, s.encodeOptions(opts))
	s.complete("ToJSON", start, err, metadata)
	return text, err
}

// FromDict assigns every scalar property of record from data and returns record.
// A missing key fails with ErrMissingField; relationships are left untouched.
func (s *Serializer) FromDict(record any, data map[string]any) (any, error) {
	start := time.Now()
	metadata := recordMetadata(record)
	s.observability.OnProcessStart("FromDict", metadata)

	err := decodeInto(s.registry, record, data, serxerr.FromDict)
	s.complete("FromDict", start, err, metadata)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FromJSON parses text into a generic map with the codec and applies FromDict.
func (s *Serializer) FromJSON(record any, text string) (any, error) {
	start := time.Now()
	metadata := recordMetadata(record)
	s.observability.OnProcessStart("FromJSON", metadata)

	err := s.fromJSON(record, text)
	s.complete("FromJSON", start, err, metadata)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Serializer) toDict(record any, opts encodeOptions) (map[string]any, error) {
	if err := checkRecord(record, serxerr.ToDict); err != nil {
		return nil, err
	}
	return newEncodeState(s.registry, opts).encode(record)
}

func (s *Serializer) toJSON(record any, opts encodeOptions) (string, error) {
	out, err := s.toDict(record, opts)
	if err != nil {
		return "", err
	}
	data, err := opts.codec.Marshal(out)
	if err != nil {
		return "", serxerr.NewCodecError(opts.codec.Name(), serxerr.ToJSON, err)
	}
	return string(data), nil
}

func (s *Serializer) fromJSON(record any, text string) error {
	if err := checkRecord(record, serxerr.FromJSON); err != nil {
		return err
	}
	data, err := s.parse([]byte(text))
	if err != nil {
		return err
	}
	return decodeInto(s.registry, record, data, serxerr.FromJSON)
}

// parse decodes a JSON object into a generic map.
func (s *Serializer) parse(text []byte) (map[string]any, error) {
	var data map[string]any
	if err := s.codec.Unmarshal(text, &data); err != nil {
		return nil, serxerr.NewParseError(serxerr.FromJSON, err)
	}
	if data == nil {
		return nil, serxerr.NewParseError(serxerr.FromJSON, errors.New("document is not an object"))
	}
	return data, nil
}

// ParseDict decodes a JSON object into a generic map without touching any record.
func (s *Serializer) ParseDict(text string) (map[string]any, error) {
	return s.parse([]byte(text))
}

func (s *Serializer) encodeOptions(opts []EncodeOption) encodeOptions {
	o := s.defaults
	o.codec = s.codec
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (s *Serializer) complete(operation string, start time.Time, err error, metadata map[string]any) {
	if err != nil {
		s.observability.OnError(operation, err, metadata)
	}
	s.observability.OnProcessComplete(operation, time.Since(start), err, metadata)
}

func recordMetadata(record any) map[string]any {
	return map[string]any{
		"record_type": fmt.Sprintf("%T", record),
	}
}
