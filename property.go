package serx

import (
	"reflect"

	"github.com/hengadev/serx/internal/serxerr"
	"github.com/hengadev/serx/internal/tags"
)

// Kind classifies a Property as a stored value or a relationship.
type Kind int8

const (
	// KindScalar is a directly stored value (string, number, bool, time, nil).
	KindScalar Kind = iota
	// KindToOne references at most one related record.
	KindToOne
	// KindToMany references a collection of related records.
	KindToMany
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindToOne:
		return "to-one"
	case KindToMany:
		return "to-many"
	default:
		return "unknown"
	}
}

// IsRelationship reports whether k references other records.
func (k Kind) IsRelationship() bool {
	return k == KindToOne || k == KindToMany
}

// Property describes one named field or relationship of a record type.
//
// Get receives the record pointer. For KindScalar it returns the raw value, for
// KindToOne the related record pointer or nil, for KindToMany the related records
// (a []any, or any slice of record pointers).
//
// Set is only consulted for KindScalar properties by FromDict.
type Property struct {
	Key       string
	Kind      Kind
	Serialize bool
	Get       func(record any) any
	Set       func(record any, value any) error
}

// OutputKey is the key used in dictionaries: Key with leading underscores removed.
func (p Property) OutputKey() string {
	return tags.OutputKey(p.Key)
}

// Hidden returns a copy of p that is only encoded when serialization is forced.
func (p Property) Hidden() Property {
	p.Serialize = false
	return p
}

// Field declares a scalar property of *T with typed accessors. Values handed to
// the setter are converted to V the same way tag-derived fields are.
func Field[T, V any](key string, get func(*T) V, set func(*T, V)) Property {
	typeName := reflect.TypeFor[V]().String()
	return Property{
		Key:       key,
		Kind:      KindScalar,
		Serialize: true,
		Get: func(record any) any {
			return get(record.(*T))
		},
		Set: func(record any, value any) error {
			var v V
			if err := assign(reflect.ValueOf(&v).Elem(), value); err != nil {
				return serxerr.NewFieldAssignmentError(key, typeName, err)
			}
			set(record.(*T), v)
			return nil
		},
	}
}

// One declares a to-one relationship of *T.
func One[T, R any](key string, get func(*T) *R) Property {
	return Property{
		Key:       key,
		Kind:      KindToOne,
		Serialize: true,
		Get: func(record any) any {
			if related := get(record.(*T)); related != nil {
				return related
			}
			return nil
		},
	}
}

// Many declares a to-many relationship of *T. Nil elements are ignored.
func Many[T, R any](key string, get func(*T) []*R) Property {
	return Property{
		Key:       key,
		Kind:      KindToMany,
		Serialize: true,
		Get: func(record any) any {
			related := get(record.(*T))
			out := make([]any, 0, len(related))
			for _, r := range related {
				if r != nil {
					out = append(out, r)
				}
			}
			return out
		},
	}
}
