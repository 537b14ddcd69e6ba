package registry

import (
	"errors"
	"fmt"
)

// ErrUnknownStepType is wrapped by LoadError when a descriptor's type
// identifier has no registered implementation.
var ErrUnknownStepType = errors.New("unknown step type")

// ConfigurationError reports invalid settings for a step: a missing
// required key, a malformed value, or a failed semantic validation. It is
// always surfaced before any step executes.
type ConfigurationError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for step %q: %v", e.Step, e.Err)
}

// Unwrap supports errors.Is/As.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// LoadError reports that a step implementation could not be produced: the
// identifier is unknown, or construction itself failed.
type LoadError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load step %q: %v", e.Step, e.Err)
}

// Unwrap supports errors.Is/As.
func (e *LoadError) Unwrap() error { return e.Err }
