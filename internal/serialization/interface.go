package serialization

// Codec converts the generic output of the graph serializer to and from a textual format.
// Implementations must handle strings, integers, floats, booleans, nil, nested
// map[string]any, slices and time.Time values (encoded as RFC 3339 strings).
type Codec interface {
	// Name returns the identifier the codec is registered under.
	Name() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into the value pointed to by v.
	Unmarshal(data []byte, v any) error
}
