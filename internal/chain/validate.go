package chain

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
)

// ErrEmptyChain is returned when validation is asked to approve a pipeline
// with no steps. An empty chain is a configuration error, never trivially
// compatible.
var ErrEmptyChain = errors.New("pipeline chain is empty")

// ValidationError reports the first adjacency mismatch found in a chain.
type ValidationError struct {
	// Position is the 1-based position of the offending executor.
	Position int
	Step     string
	Expected reflect.Type
	// Actual is the predecessor's output type, or nil at source position.
	Actual reflect.Type
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("step %d (%q) declares input %s but is at source position and must accept no input (%s)",
			e.Position, e.Step, e.Expected, payload.NoneType())
	}
	return fmt.Sprintf("step %d (%q) declares input %s but its predecessor produces %s",
		e.Position, e.Step, e.Expected, e.Actual)
}

// Validate walks the ordered executors once, tracking the current output
// type, and stops at the first executor whose declared input type is
// incompatible with its predecessor's output. The first executor is checked
// against the absence of a predecessor, so only a sentinel-input source can
// open a chain.
func Validate(execs []executor.Erased) error {
	if len(execs) == 0 {
		return ErrEmptyChain
	}

	var current reflect.Type // nil until the first executor's output is known
	for i, ex := range execs {
		if !ex.AcceptsInput(current) {
			return &ValidationError{
				Position: i + 1,
				Step:     ex.Name(),
				Expected: ex.InputType(),
				Actual:   current,
			}
		}
		current = ex.OutputType()
	}
	return nil
}
