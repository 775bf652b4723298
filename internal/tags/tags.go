package tags

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hengadev/errsx"
)

const (
	DefaultTagName = "serx"

	OptSkip        = "-"
	OptOne         = "one"
	OptMany        = "many"
	OptNoSerialize = "noserialize"
)

// Field describes one exported struct field as seen through its serx tag.
type Field struct {
	Name        string
	Index       []int
	Type        reflect.Type
	Key         string
	Tagged      bool
	One         bool
	Many        bool
	NoSerialize bool
}

// Parse splits a tag value into its key and options. The returned skip flag is
// true when the field is excluded with "-".
func Parse(tag string) (key string, options []string, skip bool) {
	tag = strings.TrimSpace(tag)
	if tag == OptSkip {
		return "", nil, true
	}
	parts := strings.Split(tag, ",")
	key = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			options = append(options, p)
		}
	}
	return key, options, false
}

// ParseStruct walks the exported fields of struct type t in declaration order.
// Anonymous untagged struct fields, exported or not, are flattened into the parent. Every invalid
// tag is reported, keyed by field name.
func ParseStruct(t reflect.Type, tagName string) ([]Field, error) {
	if tagName == "" {
		tagName = DefaultTagName
	}
	errs := errsx.Map{}
	fields := parseStruct(t, tagName, nil, errs)
	if !errs.IsEmpty() {
		return nil, errs.AsError()
	}
	return dominantFields(fields), nil
}

// dominantFields resolves key collisions between promoted fields like Go
// selectors and encoding/json do: the shallowest field wins, a tagged field wins
// a tie at the same depth, and any other tie hides every contender.
func dominantFields(fields []Field) []Field {
	byKey := make(map[string][]int, len(fields))
	for i, f := range fields {
		key := OutputKey(f.Key)
		byKey[key] = append(byKey[key], i)
	}

	keep := make([]bool, len(fields))
	for _, candidates := range byKey {
		if i, ok := dominant(fields, candidates); ok {
			keep[i] = true
		}
	}

	out := make([]Field, 0, len(fields))
	for i, f := range fields {
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

func dominant(fields []Field, candidates []int) (int, bool) {
	if len(candidates) == 1 {
		return candidates[0], true
	}

	depth := len(fields[candidates[0]].Index)
	for _, i := range candidates[1:] {
		depth = min(depth, len(fields[i].Index))
	}

	var shallow, tagged []int
	for _, i := range candidates {
		if len(fields[i].Index) != depth {
			continue
		}
		shallow = append(shallow, i)
		if fields[i].Tagged {
			tagged = append(tagged, i)
		}
	}

	switch {
	case len(shallow) == 1:
		return shallow[0], true
	case len(tagged) == 1:
		return tagged[0], true
	default:
		return 0, false
	}
}

// OutputKey is the dictionary key of a field: its key with leading underscores removed.
func OutputKey(key string) string {
	return strings.TrimLeft(key, "_")
}

func parseStruct(t reflect.Type, tagName string, index []int, errs errsx.Map) []Field {
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		idx := append(append([]int(nil), index...), i)

		tag, hasTag := sf.Tag.Lookup(tagName)
		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, parseStruct(sf.Type, tagName, idx, errs)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		key, options, skip := Parse(tag)
		if skip {
			continue
		}
		tagged := key != ""
		if !tagged {
			key = sf.Name
		}

		field := Field{Name: sf.Name, Index: idx, Type: sf.Type, Key: key, Tagged: tagged}
		if err := applyOptions(&field, options); err != nil {
			errs.Set(sf.Name, err)
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func applyOptions(field *Field, options []string) error {
	for _, opt := range options {
		switch opt {
		case OptOne:
			field.One = true
		case OptMany:
			field.Many = true
		case OptNoSerialize:
			field.NoSerialize = true
		default:
			return fmt.Errorf("unsupported serx option '%s', supported values: %s, %s, %s",
				opt, OptOne, OptMany, OptNoSerialize)
		}
	}

	if field.One && field.Many {
		return fmt.Errorf("options '%s' and '%s' are mutually exclusive", OptOne, OptMany)
	}
	if field.One && !isRecordType(field.Type) {
		return fmt.Errorf("'%s' requires a pointer or struct field, got %s", OptOne, field.Type)
	}
	if field.Many {
		kind := field.Type.Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return fmt.Errorf("'%s' requires a slice or array field, got %s", OptMany, field.Type)
		}
		if !isRecordType(field.Type.Elem()) {
			return fmt.Errorf("'%s' requires elements that are pointers or structs, got %s", OptMany, field.Type.Elem())
		}
	}
	return nil
}

func isRecordType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Struct, reflect.Interface:
		return true
	default:
		return false
	}
}
