package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrDeclined is returned when a destructive action's confirmation is
	// withheld. No remote call is issued and caches are left untouched.
	ErrDeclined = errors.New("confirmation declined")

	ErrSecretInvalid = errors.New("credential data is not valid JSON")
)

// ValidationError wraps a locally detected violation; it never reaches the
// network.
type ValidationError struct {
	Op    string
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Field, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(op, field string, err error) *ValidationError {
	return &ValidationError{Op: op, Field: field, Err: err}
}
