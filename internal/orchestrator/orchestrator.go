package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vk/chainline/internal/chain"
	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
	"github.com/vk/chainline/internal/registry"
)

// Orchestrator executes configured pipelines against a shared, read-only
// registry. It is safe for concurrent use: each run owns its own payload
// chain and metrics record exclusively.
type Orchestrator struct {
	registry *registry.Registry
}

// New creates an Orchestrator backed by the given registry.
func New(reg *registry.Registry) *Orchestrator {
	return &Orchestrator{registry: reg}
}

// Execute runs one pipeline start to finish. The returned RunResult is
// always non-nil and carries whatever metrics were collected before the
// terminal state was reached; the error mirrors RunResult.Err.
//
// Cancellation is checked only between steps. A run stopped by its context
// ends in StateCancelled with a nil error: cancellation is a normal
// terminal state, not a failure.
func (o *Orchestrator) Execute(ctx context.Context, p *config.Pipeline) (*RunResult, error) {
	res := &RunResult{
		RunID:    uuid.New(),
		Pipeline: p.Name,
		State:    StateIdle,
		Started:  time.Now(),
	}
	logger := ctxlog.FromContext(ctx).With("pipeline", p.Name, "run_id", res.RunID)
	ctx = ctxlog.WithLogger(ctx, logger)

	if len(p.Steps) == 0 {
		return o.fail(res, fmt.Errorf("pipeline %q: %w", p.Name, config.ErrEmptyPipeline))
	}

	execs, err := o.resolveChain(ctx, p)
	if err != nil {
		return o.fail(res, err)
	}

	res.State = StateValidating
	logger.Debug("Validating chain type compatibility.", "steps", len(execs))
	if err := chain.Validate(execs); err != nil {
		return o.fail(res, err)
	}

	res.State = StateRunning
	logger.Info("🚀 Starting pipeline run.", "steps", len(execs))

	current := payload.Empty()
	for i, ex := range execs {
		if ctx.Err() != nil {
			logger.Info("Pipeline run cancelled between steps.", "completed_steps", len(res.Steps))
			res.State = StateCancelled
			res.Finished = time.Now()
			return res, nil
		}

		stepLogger := logger.With("step", ex.Name(), "position", i+1)
		stepLogger.Info("▶️ Starting step.")

		sm := StepMetrics{Name: ex.Name(), Position: i + 1, Started: time.Now()}
		out, err := ex.Run(ctx, current)
		sm.Finished = time.Now()

		if err != nil {
			sm.Err = err
			res.Steps = append(res.Steps, sm)
			stepLogger.Error("Step failed.", "error", err, "duration", sm.Duration())
			return o.fail(res, &StepError{Step: ex.Name(), Position: i + 1, Err: err})
		}

		sm.Success = true
		sm.Items, sm.Counted = out.Len()
		res.Steps = append(res.Steps, sm)
		stepLogger.Info("✅ Finished step.", "duration", sm.Duration(), "items", sm.Items)

		current = out
	}

	res.State = StateCompleted
	res.Output = current
	res.Finished = time.Now()
	logger.Info("🏁 Pipeline run completed.", "duration", res.Duration(), "steps", len(res.Steps))
	return res, nil
}

// resolveChain builds the ordered executor list from the pipeline's
// descriptors. Any resolution failure terminates the run before the
// Validating state.
func (o *Orchestrator) resolveChain(ctx context.Context, p *config.Pipeline) ([]executor.Erased, error) {
	execs := make([]executor.Erased, 0, len(p.Steps))
	for _, desc := range p.Steps {
		ex, err := o.registry.Resolve(ctx, desc)
		if err != nil {
			return nil, err
		}
		execs = append(execs, ex)
	}
	return execs, nil
}

// fail moves the run into its failed terminal state, preserving all
// metrics collected so far.
func (o *Orchestrator) fail(res *RunResult, err error) (*RunResult, error) {
	res.State = StateFailed
	res.Err = err
	res.Finished = time.Now()
	return res, err
}
