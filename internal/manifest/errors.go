package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a document lacks a field the auditor requires.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidDocument is returned when a document cannot be decoded as a
	// Kubernetes object (e.g. it is not a mapping or a field has the wrong type).
	ErrInvalidDocument = errors.New("invalid document")
)

// MissingFieldError locates a missing required field within the input.
// It unwraps to ErrMissingField.
type MissingFieldError struct {
	// Index is the document position (see Document.Index).
	Index int

	// Kind is the document kind, empty when the missing field is kind itself.
	Kind string

	// Field is the dotted path of the missing field, e.g. "spec.ports[0].targetPort".
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("document %d: %s %s", e.Index, ErrMissingField, e.Field)
	}
	return fmt.Sprintf("document %d (%s): %s %s", e.Index, e.Kind, ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func missingField(index int, kind, field string) error {
	return &MissingFieldError{Index: index, Kind: kind, Field: field}
}
