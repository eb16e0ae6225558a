package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel for rejected input, whether a malformed
// request parameter or an entity failing validation. Callers branch on it
// with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap makes every validation error match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
