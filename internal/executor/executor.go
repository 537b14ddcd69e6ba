package executor

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/payload"
	"github.com/vk/chainline/internal/step"
)

// Erased drives one concrete step through the pipeline loop without exposing
// its generic parameters. Implementations must keep their declared types
// fixed after construction.
type Erased interface {
	// Name returns the display name used in validation and diagnostics.
	Name() string

	// InputType returns the step's declared input type.
	InputType() reflect.Type

	// OutputType returns the step's declared output type.
	OutputType() reflect.Type

	// AcceptsInput reports whether this executor can follow a predecessor
	// producing prev. A nil prev means source position: only an executor
	// declaring the payload.None sentinel input accepts it. Otherwise the
	// match is exact type equality, never coercion.
	AcceptsInput(prev reflect.Type) bool

	// Run downcasts the erased payload to the declared input type, invokes
	// the wrapped step, and re-erases its output.
	Run(ctx context.Context, in payload.Container) (payload.Container, error)
}

// TypeMismatchError reports a payload arriving at an executor whose declared
// input type it does not match. After successful chain validation this is an
// internal invariant violation, not an expected runtime condition.
type TypeMismatchError struct {
	Step     string
	Expected reflect.Type
	Actual   reflect.Type
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("step %q expects input %s but received %s", e.Step, e.Expected, e.Actual)
}

// erased is the generic-to-uniform adapter behind the Erased interface.
type erased[I, O any] struct {
	name string
	impl step.Step[I, O]
	in   reflect.Type
	out  reflect.Type
}

// Wrap erases the generic parameters of a step, capturing its input and
// output types as data for validation and diagnostics.
func Wrap[I, O any](name string, impl step.Step[I, O]) Erased {
	return &erased[I, O]{
		name: name,
		impl: impl,
		in:   reflect.TypeOf((*I)(nil)).Elem(),
		out:  reflect.TypeOf((*O)(nil)).Elem(),
	}
}

func (e *erased[I, O]) Name() string { return e.name }

func (e *erased[I, O]) InputType() reflect.Type { return e.in }

func (e *erased[I, O]) OutputType() reflect.Type { return e.out }

func (e *erased[I, O]) AcceptsInput(prev reflect.Type) bool {
	if prev == nil {
		return e.in == payload.NoneType()
	}
	return e.in == prev
}

func (e *erased[I, O]) Run(ctx context.Context, in payload.Container) (payload.Container, error) {
	logger := ctxlog.FromContext(ctx).With("step", e.name)

	if in.Type() != e.in {
		return payload.Container{}, &TypeMismatchError{Step: e.name, Expected: e.in, Actual: in.Type()}
	}
	typed, ok := in.Value().(I)
	if !ok && in.Value() != nil {
		// Unreachable when the container's tag is honest, kept as a guard
		// against a hand-built container with a lying type tag.
		return payload.Container{}, &TypeMismatchError{Step: e.name, Expected: e.in, Actual: reflect.TypeOf(in.Value())}
	}

	logger.Debug("Invoking step.", "input_type", e.in.String())
	out, err := e.impl.Execute(ctx, typed)
	if err != nil {
		return payload.Container{}, err
	}
	logger.Debug("Step returned.", "output_type", e.out.String())
	return payload.New(out), nil
}
