package serx

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// assign writes a generic decoded value onto dst. Numeric kinds are widened or
// narrowed (JSON numbers arrive as float64) as long as no precision or range is
// lost, RFC 3339 strings become time.Time, pointers are allocated and nil
// resets dst to its zero value.
func assign(dst reflect.Value, value any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     dst.Addr().Interface(),
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
			losslessNumberHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

// losslessNumberHookFunc rejects numeric values that would be truncated or
// overflow when stored in an integer field.
func losslessNumberHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		target := reflect.Zero(to)
		src := reflect.ValueOf(data)

		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			switch from.Kind() {
			case reflect.Float32, reflect.Float64:
				f := src.Float()
				if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
					return nil, fmt.Errorf("%v is not an integer in the range of %s", f, to)
				}
				if target.OverflowInt(int64(f)) {
					return nil, fmt.Errorf("%v overflows %s", f, to)
				}
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				if target.OverflowInt(src.Int()) {
					return nil, fmt.Errorf("%d overflows %s", src.Int(), to)
				}
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
				if src.Uint() > math.MaxInt64 || target.OverflowInt(int64(src.Uint())) {
					return nil, fmt.Errorf("%d overflows %s", src.Uint(), to)
				}
			}

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			switch from.Kind() {
			case reflect.Float32, reflect.Float64:
				f := src.Float()
				if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
					return nil, fmt.Errorf("%v is not an integer in the range of %s", f, to)
				}
				if target.OverflowUint(uint64(f)) {
					return nil, fmt.Errorf("%v overflows %s", f, to)
				}
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				if src.Int() < 0 || target.OverflowUint(uint64(src.Int())) {
					return nil, fmt.Errorf("%d overflows %s", src.Int(), to)
				}
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
				if target.OverflowUint(src.Uint()) {
					return nil, fmt.Errorf("%d overflows %s", src.Uint(), to)
				}
			}
		}
		return data, nil
	}
}
