// Package step defines the contract every pipeline step implements.
package step

import "context"

// Step is one stage of a pipeline, parametrized by its input and output
// payload types. A source declares payload.None as I; a terminal sink may
// declare payload.None as O.
//
// Execute must be a pure function of its input plus configuration state set
// once at construction time. Side effects (file or console I/O) are allowed
// but must be confined to the Execute call itself. Long-running steps should
// observe ctx for sub-step cancellation; the orchestrator only guarantees
// that no further steps start once cancellation is requested.
type Step[I, O any] interface {
	Execute(ctx context.Context, in I) (O, error)
}

// Func adapts a plain function to the Step interface.
type Func[I, O any] func(ctx context.Context, in I) (O, error)

// Execute implements Step.
func (f Func[I, O]) Execute(ctx context.Context, in I) (O, error) {
	return f(ctx, in)
}
