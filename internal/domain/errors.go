package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField signals that a required input field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidInput signals a value that cannot be used for prediction.
	// Model failures collapse into it as well.
	ErrInvalidInput = errors.New("invalid input")
)

// MissingFieldError wraps ErrMissingField with the name of the absent field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is missing", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// NewMissingField creates a missing field error.
func NewMissingField(field string) error {
	return &MissingFieldError{Field: field}
}
