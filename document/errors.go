package document

import "errors"

// Error values for document validation.
var (
	// ErrMissingIdentity is returned when a document has no URL.
	ErrMissingIdentity = errors.New("document has no url")

	// ErrUnknownField is returned when a field name is outside the
	// updatable set.
	ErrUnknownField = errors.New("unknown document field")

	// ErrInvalidValue is returned when a value cannot be assigned to a field.
	ErrInvalidValue = errors.New("invalid field value")
)
