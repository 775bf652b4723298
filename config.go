package serx

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hengadev/errsx"

	"github.com/hengadev/serx/internal/monitoring"
	"github.com/hengadev/serx/internal/serialization"
)

// Config holds the configuration for creating a Serializer.
//
// This struct contains only data. It can be loaded from the environment, a dotenv
// file or a YAML file and passed explicitly to New.
//
// Example usage:
//
//	cfg := serx.Config{Codec: serx.CodecSonic, FollowRelationships: true}
//	s, err := serx.New(cfg)
type Config struct {
	// Codec is the name of the built-in codec used by ToJSON and FromJSON.
	//
	// Optional field. Default: json
	Codec string `yaml:"codec"`

	// TagName is the struct tag read when deriving schemas.
	//
	// Optional field. Default: serx
	TagName string `yaml:"tag_name"`

	// FollowRelationships is the default for the FollowRelationships encode option.
	FollowRelationships bool `yaml:"follow_relationships"`

	// ForceSerialization is the default for the ForceSerialization encode option.
	ForceSerialization bool `yaml:"force_serialization"`

	// LogLevel and LogFormat configure the logger built by NewLogger. The
	// serializer itself only logs through an installed observability hook.
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used by NewDefault.
func DefaultConfig() Config {
	return Config{
		Codec:     DefaultCodec,
		TagName:   DefaultTagName,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate checks that the configuration is valid and applies defaults to empty fields.
// Every invalid field is reported.
func (c *Config) Validate() error {
	if c.Codec == "" {
		c.Codec = DefaultCodec
	}
	if c.TagName == "" {
		c.TagName = DefaultTagName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	errs := errsx.Map{}

	if codecType, err := serialization.ParseCodecType(c.Codec); err != nil {
		errs.Set("codec", err)
	} else {
		c.Codec = codecType.String()
	}

	if strings.IndexFunc(c.TagName, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == ':' || r == '`'
	}) >= 0 {
		errs.Set("tag_name", fmt.Errorf("tag name '%s' must not contain spaces, quotes or colons", c.TagName))
	}

	if _, err := monitoring.ParseLogLevel(c.LogLevel); err != nil {
		errs.Set("log_level", err)
	}
	if _, err := monitoring.ParseLogFormat(c.LogFormat); err != nil {
		errs.Set("log_format", err)
	}

	if !errs.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs.AsError())
	}
	return nil
}
