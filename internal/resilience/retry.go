// Package resilience provides optional decorators layered around a step
// executor by composition. The orchestrator is agnostic to whether an
// executor is bare or wrapped.
package resilience

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
)

// retryExecutor re-runs the wrapped executor on failure with a fixed delay
// between attempts.
type retryExecutor struct {
	inner    executor.Erased
	attempts int
	delay    time.Duration
}

// WithRetry wraps an executor so a failed Run is retried up to attempts
// more times, waiting delay between tries. Type mismatches are never
// retried: they are invariant violations, not transient failures.
func WithRetry(inner executor.Erased, attempts int, delay time.Duration) executor.Erased {
	return &retryExecutor{inner: inner, attempts: attempts, delay: delay}
}

func (r *retryExecutor) Name() string { return r.inner.Name() }

func (r *retryExecutor) InputType() reflect.Type { return r.inner.InputType() }

func (r *retryExecutor) OutputType() reflect.Type { return r.inner.OutputType() }

func (r *retryExecutor) AcceptsInput(prev reflect.Type) bool { return r.inner.AcceptsInput(prev) }

func (r *retryExecutor) Run(ctx context.Context, in payload.Container) (payload.Container, error) {
	logger := ctxlog.FromContext(ctx).With("step", r.inner.Name())

	out, err := r.inner.Run(ctx, in)
	for attempt := 1; err != nil && attempt <= r.attempts; attempt++ {
		var mismatch *executor.TypeMismatchError
		if errors.As(err, &mismatch) {
			return payload.Container{}, err
		}

		logger.Warn("Step failed, retrying.", "attempt", attempt, "max_attempts", r.attempts, "error", err)
		select {
		case <-ctx.Done():
			return payload.Container{}, ctx.Err()
		case <-time.After(r.delay):
		}
		out, err = r.inner.Run(ctx, in)
	}
	return out, err
}
