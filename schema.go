package serx

import (
	"fmt"
	"reflect"

	"github.com/hengadev/errsx"
)

// ExtraFieldsProvider is implemented by record types that contribute computed
// entries to their encoded form. The returned entries overwrite reflected keys.
type ExtraFieldsProvider interface {
	ExtraFields() map[string]any
}

// Schema is the immutable, ordered property table of one record type.
type Schema struct {
	typ        reflect.Type
	properties []Property
	extra      func(record any) map[string]any
}

// SchemaOption customizes a schema at registration time.
type SchemaOption func(*Schema)

// WithExtraFields attaches an extra-fields capability to the schema of *T. It
// takes precedence over an ExtraFieldsProvider implementation on the record.
func WithExtraFields[T any](fn func(*T) map[string]any) SchemaOption {
	return func(s *Schema) {
		s.extra = func(record any) map[string]any {
			return fn(record.(*T))
		}
	}
}

// Type returns the record pointer type this schema describes.
func (s *Schema) Type() reflect.Type {
	return s.typ
}

// Properties returns a copy of the property table in traversal order.
func (s *Schema) Properties() []Property {
	props := make([]Property, len(s.properties))
	copy(props, s.properties)
	return props
}

// Len returns the number of properties.
func (s *Schema) Len() int {
	return len(s.properties)
}

func (s *Schema) extraFields(record any) map[string]any {
	if s.extra != nil {
		return s.extra(record)
	}
	if provider, ok := record.(ExtraFieldsProvider); ok {
		return provider.ExtraFields()
	}
	return nil
}

// validate reports every malformed property, keyed by property position and key.
func (s *Schema) validate() error {
	errs := errsx.Map{}
	seen := make(map[string]string, len(s.properties))

	for i, p := range s.properties {
		name := fmt.Sprintf("property[%d] '%s'", i, p.Key)

		if p.OutputKey() == "" {
			errs.Set(name, fmt.Errorf("key must contain a character other than '_'"))
			continue
		}
		if previous, ok := seen[p.OutputKey()]; ok {
			errs.Set(name, fmt.Errorf("output key '%s' already used by '%s'", p.OutputKey(), previous))
		}
		seen[p.OutputKey()] = p.Key

		switch p.Kind {
		case KindScalar:
			if p.Set == nil {
				errs.Set(name, fmt.Errorf("scalar property requires a setter"))
			}
		case KindToOne, KindToMany:
		default:
			errs.Set(name, fmt.Errorf("unknown kind %d", p.Kind))
		}
		if p.Get == nil {
			errs.Set(name, fmt.Errorf("property requires a getter"))
		}
	}

	return errs.AsError()
}
