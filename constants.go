package serx

// Struct tag
const (
	// DefaultTagName is the struct tag read when deriving schemas from struct fields.
	//
	//	type User struct {
	//	    ID       int       `serx:"id"`
	//	    Password string    `serx:"_password,noserialize"`
	//	    Team     *Team     `serx:"team,one"`
	//	    Posts    []*Post   `serx:"posts,many"`
	//	    Cache    string    `serx:"-"`
	//	}
	DefaultTagName = "serx"
)

// Environment variable names
const (
	// EnvCodec selects the codec: json, jsoniter or sonic.
	EnvCodec = "SERX_CODEC"

	// EnvTagName overrides the struct tag name.
	EnvTagName = "SERX_TAG_NAME"

	// EnvFollowRelationships sets the default for FollowRelationships (true/false).
	EnvFollowRelationships = "SERX_FOLLOW_RELATIONSHIPS"

	// EnvForceSerialization sets the default for ForceSerialization (true/false).
	EnvForceSerialization = "SERX_FORCE_SERIALIZATION"

	// EnvLogLevel is the level of the logger built by NewLogger: debug, info, warn or error.
	EnvLogLevel = "SERX_LOG_LEVEL"

	// EnvLogFormat is the format of the logger built by NewLogger: json, text or console.
	EnvLogFormat = "SERX_LOG_FORMAT"
)

// Default values
const (
	DefaultCodec     = CodecJSON
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// DefaultConfigFile is the YAML file read by the serx command.
	DefaultConfigFile = "serx.yaml"
)
