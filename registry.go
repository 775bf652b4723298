package serx

import (
	"reflect"
	"sync"

	"github.com/hengadev/serx/internal/serxerr"
	"github.com/hengadev/serx/internal/tags"
)

// Registry resolves the schema of a record type. Schemas are either registered
// explicitly with Register or derived once from struct tags on first use.
// A Registry is safe for concurrent use.
type Registry struct {
	tagName string
	schemas sync.Map // reflect.Type -> *Schema
}

// NewRegistry creates a registry deriving schemas from the given struct tag
// (DefaultTagName when empty).
func NewRegistry(tagName string) *Registry {
	if tagName == "" {
		tagName = DefaultTagName
	}
	return &Registry{tagName: tagName}
}

// TagName returns the struct tag consulted when deriving schemas.
func (r *Registry) TagName() string {
	return r.tagName
}

// Register installs an explicit property table for *T, replacing any schema
// previously registered or derived for it.
func Register[T any](r *Registry, props []Property, opts ...SchemaOption) error {
	typ := reflect.TypeFor[*T]()
	schema := &Schema{typ: typ, properties: append([]Property(nil), props...)}
	for _, opt := range opts {
		opt(schema)
	}
	if err := schema.validate(); err != nil {
		return serxerr.NewInvalidSchemaError(typ.String(), err)
	}
	r.schemas.Store(typ, schema)
	return nil
}

// SchemaFor returns the schema for the dynamic type of record.
func (r *Registry) SchemaFor(record any) (*Schema, error) {
	return r.schemaForType(reflect.TypeOf(record))
}

func (r *Registry) schemaForType(typ reflect.Type) (*Schema, error) {
	if cached, ok := r.schemas.Load(typ); ok {
		return cached.(*Schema), nil
	}
	schema, err := r.derive(typ)
	if err != nil {
		return nil, err
	}
	actual, _ := r.schemas.LoadOrStore(typ, schema)
	return actual.(*Schema), nil
}

// derive builds a schema from struct tags. Types other than pointers to structs
// expose no properties.
func (r *Registry) derive(typ reflect.Type) (*Schema, error) {
	schema := &Schema{typ: typ}
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return schema, nil
	}

	fields, err := tags.ParseStruct(typ.Elem(), r.tagName)
	if err != nil {
		return nil, serxerr.NewInvalidSchemaError(typ.String(), err)
	}

	schema.properties = make([]Property, 0, len(fields))
	for _, f := range fields {
		schema.properties = append(schema.properties, fieldProperty(f))
	}
	if err := schema.validate(); err != nil {
		return nil, serxerr.NewInvalidSchemaError(typ.String(), err)
	}
	return schema, nil
}

func fieldProperty(f tags.Field) Property {
	index := f.Index
	p := Property{
		Key:       f.Key,
		Serialize: !f.NoSerialize,
	}

	switch {
	case f.One:
		p.Kind = KindToOne
		p.Get = func(record any) any {
			return relatedRecord(reflect.ValueOf(record).Elem().FieldByIndex(index))
		}
	case f.Many:
		p.Kind = KindToMany
		p.Get = func(record any) any {
			return relatedRecords(reflect.ValueOf(record).Elem().FieldByIndex(index))
		}
	default:
		key, typeName := f.Key, f.Type.String()
		p.Kind = KindScalar
		p.Get = func(record any) any {
			return reflect.ValueOf(record).Elem().FieldByIndex(index).Interface()
		}
		p.Set = func(record any, value any) error {
			field := reflect.ValueOf(record).Elem().FieldByIndex(index)
			if err := assign(field, value); err != nil {
				return serxerr.NewFieldAssignmentError(key, typeName, err)
			}
			return nil
		}
	}
	return p
}

// relatedRecord turns a relationship field value into a record pointer, or nil
// when the relationship is empty.
func relatedRecord(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return v.Interface()
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return relatedRecord(v.Elem())
	case reflect.Struct:
		if v.CanAddr() {
			return v.Addr().Interface()
		}
	}
	return nil
}

func relatedRecords(v reflect.Value) []any {
	if (v.Kind() == reflect.Slice && v.IsNil()) || v.Len() == 0 {
		return nil
	}
	out := make([]any, 0, v.Len())
	for i := range v.Len() {
		if related := relatedRecord(v.Index(i)); related != nil {
			out = append(out, related)
		}
	}
	return out
}
