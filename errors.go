package serx

import (
	"errors"

	"github.com/hengadev/serx/internal/serxerr"
)

var (
	// Decode errors
	ErrMissingField    = serxerr.ErrMissingField
	ErrParse           = serxerr.ErrParse
	ErrFieldAssignment = serxerr.ErrFieldAssignment

	// Encode errors
	ErrCodec = serxerr.ErrCodec

	// Input errors
	ErrNilRecord       = serxerr.ErrNilRecord
	ErrUnsupportedType = serxerr.ErrUnsupportedType

	// Setup errors
	ErrInvalidSchema        = serxerr.ErrInvalidSchema
	ErrUnknownCodec         = serxerr.ErrUnknownCodec
	ErrInvalidConfiguration = serxerr.ErrInvalidConfiguration
)

// IsDecodeError returns true if the error was raised while reading a dictionary or document.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrFieldAssignment)
}

// IsEncodeError returns true if the error was raised while producing a document.
func IsEncodeError(err error) bool {
	return errors.Is(err, ErrCodec)
}

// IsConfigurationError returns true if the error represents a setup problem
// rather than a problem with the data being converted.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidSchema) ||
		errors.Is(err, ErrUnknownCodec) ||
		errors.Is(err, ErrInvalidConfiguration)
}

// IsInputError returns true if the record handed to the serializer was unusable.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNilRecord) ||
		errors.Is(err, ErrUnsupportedType)
}
