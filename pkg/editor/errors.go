package editor

import (
	"errors"
	"fmt"
)

// Validation errors are resolved locally at the call site; they never
// reach the network and never mutate the draft.
var (
	ErrNameRequired    = errors.New("workflow name is required")
	ErrNoSteps         = errors.New("workflow must have at least one step")
	ErrServiceRequired = errors.New("step service is required")
	ErrActionRequired  = errors.New("step action is required")
	ErrConfigInvalid   = errors.New("step config is not valid JSON")
	ErrConfigSchema    = errors.New("step config does not match the action schema")
	ErrNoDraft         = errors.New("no draft loaded")
)

// ValidationError wraps a validation sentinel with the operation and field
// that produced it.
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

// IsValidationError reports whether err originated from local validation
// rather than the transport.
func IsValidationError(err error) bool {
	var v *ValidationError

	return errors.As(err, &v)
}

func newValidationError(op, field string, err error) *ValidationError {
	return &ValidationError{Op: op, Field: field, Err: err}
}
