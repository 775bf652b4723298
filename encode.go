package serx

import (
	"maps"
	"reflect"
	"unsafe"

	"github.com/hengadev/serx/internal/serxerr"
)

// identity is the instance identity of a record: its dynamic type and address.
// Two distinct records with equal fields never share an identity.
type identity struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

func identityOf(record any) identity {
	v := reflect.ValueOf(record)
	return identity{typ: v.Type(), ptr: v.UnsafePointer()}
}

// encodeState lives for a single top-level ToDict call.
type encodeState struct {
	registry *Registry
	visited  map[identity]struct{}
	follow   bool
	force    bool
}

func newEncodeState(registry *Registry, opts encodeOptions) *encodeState {
	return &encodeState{
		registry: registry,
		visited:  make(map[identity]struct{}),
		follow:   opts.follow,
		force:    opts.force,
	}
}

// isVisited reports whether record was encoded earlier in this call. Pointers to
// zero-size values may share an address, so they never count as visited; such
// values hold no relationships and cannot close a cycle.
func (st *encodeState) isVisited(record any) bool {
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Ptr || v.Type().Elem().Size() == 0 {
		return false
	}
	_, ok := st.visited[identityOf(record)]
	return ok
}

func (st *encodeState) anyVisited(records []any) bool {
	for _, r := range records {
		if st.isVisited(r) {
			return true
		}
	}
	return false
}

// encode marks record visited and walks its properties. A to-many relationship
// containing any visited record is dropped as a whole; a visited to-one target
// is dropped. Dropped relationships emit no key at all.
func (st *encodeState) encode(record any) (map[string]any, error) {
	if err := checkRecord(record, serxerr.ToDict); err != nil {
		return nil, err
	}
	schema, err := st.registry.SchemaFor(record)
	if err != nil {
		return nil, err
	}

	st.visited[identityOf(record)] = struct{}{}

	out := make(map[string]any, schema.Len())
	for _, p := range schema.properties {
		if !p.Serialize && !st.force {
			continue
		}
		key := p.OutputKey()

		switch p.Kind {
		case KindScalar:
			out[key] = p.Get(record)

		case KindToMany:
			if !st.follow {
				continue
			}
			related := asRecords(p.Get(record))
			if len(related) == 0 {
				out[key] = []map[string]any{}
				continue
			}
			if st.anyVisited(related) {
				continue
			}
			items := make([]map[string]any, 0, len(related))
			for _, r := range related {
				item, err := st.encode(r)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			out[key] = items

		case KindToOne:
			if !st.follow {
				continue
			}
			related := p.Get(record)
			if isAbsent(related) {
				out[key] = nil
				continue
			}
			if st.isVisited(related) {
				continue
			}
			item, err := st.encode(related)
			if err != nil {
				return nil, err
			}
			out[key] = item
		}
	}

	if extra := schema.extraFields(record); extra != nil {
		maps.Copy(out, extra)
	}
	return out, nil
}

// checkRecord requires a non-nil pointer.
func checkRecord(record any, op serxerr.Operation) error {
	if record == nil {
		return serxerr.NewNilRecordError(op)
	}
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Ptr {
		return serxerr.NewUnsupportedTypeError(v.Type().String(), op)
	}
	if v.IsNil() {
		return serxerr.NewNilRecordError(op)
	}
	return nil
}

func isAbsent(related any) bool {
	if related == nil {
		return true
	}
	v := reflect.ValueOf(related)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// asRecords normalizes the value of a to-many getter into its non-nil records.
func asRecords(value any) []any {
	switch rs := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, 0, len(rs))
		for _, r := range rs {
			if !isAbsent(r) {
				out = append(out, r)
			}
		}
		return out
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, 0, v.Len())
	for i := range v.Len() {
		if r := v.Index(i).Interface(); !isAbsent(r) {
			out = append(out, r)
		}
	}
	return out
}
