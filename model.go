package serx

// Model binds a Serializer to one record type, giving typed FromDict and FromJSON.
//
//	users := serx.Bind[User](s)
//	u, err := users.FromJSON(`{"id": 1, "name": "alice"}`)
type Model[T any] struct {
	s *Serializer
}

// Bind returns a Model for *T using s, or NewDefault() when s is nil.
func Bind[T any](s *Serializer) Model[T] {
	if s == nil {
		s = NewDefault()
	}
	return Model[T]{s: s}
}

// Serializer returns the serializer the model delegates to.
func (m Model[T]) Serializer() *Serializer {
	return m.s
}

// Schema returns the schema of *T.
func (m Model[T]) Schema() (*Schema, error) {
	return m.s.registry.SchemaFor((*T)(nil))
}

// ToDict encodes record.
func (m Model[T]) ToDict(record *T, opts ...EncodeOption) (map[string]any, error) {
	return m.s.ToDict(record, opts...)
}

// ToJSON encodes record as JSON text.
func (m Model[T]) ToJSON(record *T, opts ...EncodeOption) (string, error) {
	return m.s.ToJSON(record, opts...)
}

// FromDict builds a new *T from data.
func (m Model[T]) FromDict(data map[string]any) (*T, error) {
	record := new(T)
	if _, err := m.s.FromDict(record, data); err != nil {
		return nil, err
	}
	return record, nil
}

// FromJSON builds a new *T from JSON text.
func (m Model[T]) FromJSON(text string) (*T, error) {
	record := new(T)
	if _, err := m.s.FromJSON(record, text); err != nil {
		return nil, err
	}
	return record, nil
}

// Update assigns data onto an existing record.
func (m Model[T]) Update(record *T, data map[string]any) error {
	_, err := m.s.FromDict(record, data)
	return err
}
