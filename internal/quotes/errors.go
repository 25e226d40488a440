package quotes

import (
	"errors"
	"fmt"
)

// ErrValidation indicates a submitted quote was refused.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the user-facing reason a quote was refused.
type ValidationError struct {
	Message string
	Value   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for quote: %s", e.Message)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
