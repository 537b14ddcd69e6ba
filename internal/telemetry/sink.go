package telemetry

import (
	"log/slog"

	"github.com/vk/chainline/internal/orchestrator"
)

// Sink receives the complete record of a pipeline run after it reaches a
// terminal state. The record is read-only by then.
type Sink interface {
	ObserveRun(res *orchestrator.RunResult)
}

// Multi fans one run record out to several sinks.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) ObserveRun(res *orchestrator.RunResult) {
	for _, s := range m {
		s.ObserveRun(res)
	}
}

// LogSink emits one structured log line per run and one per step.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to the given logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// ObserveRun implements Sink.
func (s *LogSink) ObserveRun(res *orchestrator.RunResult) {
	runLogger := s.logger.With("pipeline", res.Pipeline, "run_id", res.RunID)

	for _, sm := range res.Steps {
		attrs := []any{
			"step", sm.Name,
			"position", sm.Position,
			"duration", sm.Duration(),
			"success", sm.Success,
		}
		if sm.Counted {
			attrs = append(attrs, "items", sm.Items)
		}
		if sm.Err != nil {
			attrs = append(attrs, "error", sm.Err)
		}
		runLogger.Info("Step metrics.", attrs...)
	}

	runLogger.Info("Run metrics.",
		"state", res.State.String(),
		"duration", res.Duration(),
		"steps_executed", len(res.Steps),
	)
}
