package orchestrator

import (
	"time"

	"github.com/google/uuid"
	"github.com/vk/chainline/internal/payload"
)

// StepMetrics is the per-step execution record. It is written only by the
// orchestrator during the run and read-only to consumers afterwards.
type StepMetrics struct {
	Name     string
	Position int // 1-based
	Started  time.Time
	Finished time.Time
	Success  bool
	// Items is a best-effort count of the items in the step's output
	// payload; Counted reports whether a count could be derived. A payload
	// that cannot be counted never fails the step.
	Items   int
	Counted bool
	Err     error
}

// Duration returns the wall-clock time the step took.
func (m StepMetrics) Duration() time.Duration {
	return m.Finished.Sub(m.Started)
}

// RunResult is the complete record of one pipeline run: correlation id,
// terminal state, per-step metrics, and the final payload.
type RunResult struct {
	RunID    uuid.UUID
	Pipeline string
	State    State
	Started  time.Time
	Finished time.Time
	Steps    []StepMetrics
	Output   payload.Container
	Err      error
}

// Duration returns the wall-clock time of the whole run.
func (r *RunResult) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Succeeded reports whether the run completed every step.
func (r *RunResult) Succeeded() bool {
	return r.State == StateCompleted
}
