package serxerr

import (
	"errors"
	"fmt"
)

var (
	// Decode errors
	ErrMissingField    = errors.New("missing required field")
	ErrParse           = errors.New("malformed document")
	ErrFieldAssignment = errors.New("field assignment failed")

	// Encode errors
	ErrCodec = errors.New("codec cannot encode value")

	// Input errors
	ErrNilRecord       = errors.New("nil record")
	ErrUnsupportedType = errors.New("unsupported type")

	// Setup errors
	ErrInvalidSchema        = errors.New("invalid schema")
	ErrUnknownCodec         = errors.New("unknown codec")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

func NewMissingFieldError(key string, op Operation) error {
	return fmt.Errorf("%w: '%s' is required to %s", ErrMissingField, key, op)
}

func NewParseError(op Operation, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrParse, op, err)
}

func NewFieldAssignmentError(key string, typeName string, err error) error {
	return fmt.Errorf("%w: cannot assign '%s' to %s: %w", ErrFieldAssignment, key, typeName, err)
}

func NewCodecError(codecName string, op Operation, err error) error {
	return fmt.Errorf("%w: %s codec failed to %s: %w", ErrCodec, codecName, op, err)
}

func NewNilRecordError(op Operation) error {
	return fmt.Errorf("%w: %s requires a non-nil pointer to a record", ErrNilRecord, op)
}

func NewUnsupportedTypeError(typeName string, op Operation) error {
	return fmt.Errorf("%w: %s requires a pointer to a record, got %s", ErrUnsupportedType, op, typeName)
}

func NewInvalidSchemaError(typeName string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, typeName, err)
}

func NewUnknownCodecError(name string) error {
	return fmt.Errorf("%w: '%s'", ErrUnknownCodec, name)
}
