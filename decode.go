package serx

import (
	"github.com/hengadev/serx/internal/serxerr"
)

// decodeInto assigns every scalar property of record from data. All keys are
// checked before the first assignment so a missing key leaves record untouched.
// Relationship properties are never written.
func decodeInto(registry *Registry, record any, data map[string]any, op serxerr.Operation) error {
	if err := checkRecord(record, op); err != nil {
		return err
	}
	schema, err := registry.SchemaFor(record)
	if err != nil {
		return err
	}

	for _, p := range schema.properties {
		if p.Kind != KindScalar {
			continue
		}
		if _, ok := data[p.OutputKey()]; !ok {
			return serxerr.NewMissingFieldError(p.OutputKey(), op)
		}
	}

	for _, p := range schema.properties {
		if p.Kind != KindScalar {
			continue
		}
		if err := p.Set(record, data[p.OutputKey()]); err != nil {
			return err
		}
	}
	return nil
}
