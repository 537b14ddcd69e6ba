package orchestrator

import "fmt"

// StepError wraps a step's own execution failure with its name and 1-based
// position in the chain.
type StepError struct {
	Step     string
	Position int
	Err      error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%q) failed: %v", e.Position, e.Step, e.Err)
}

// Unwrap supports errors.Is/As.
func (e *StepError) Unwrap() error { return e.Err }
