package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/chainline/internal/orchestrator"
)

// PrometheusSink exports run and step metrics as Prometheus collectors.
type PrometheusSink struct {
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	stepDuration *prometheus.HistogramVec
	stepItems    *prometheus.CounterVec
}

// NewPrometheusSink creates a sink and registers its collectors with reg.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chainline",
			Name:      "runs_total",
			Help:      "Pipeline runs by terminal state.",
		}, []string{"pipeline", "state"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chainline",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of whole pipeline runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pipeline"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chainline",
			Name:      "step_duration_seconds",
			Help:      "Wall-clock duration of individual steps.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pipeline", "step"}),
		stepItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chainline",
			Name:      "step_items_total",
			Help:      "Items produced by steps, where the payload is countable.",
		}, []string{"pipeline", "step"}),
	}
	reg.MustRegister(s.runsTotal, s.runDuration, s.stepDuration, s.stepItems)
	return s
}

// ObserveRun implements Sink.
func (s *PrometheusSink) ObserveRun(res *orchestrator.RunResult) {
	s.runsTotal.WithLabelValues(res.Pipeline, res.State.String()).Inc()
	s.runDuration.WithLabelValues(res.Pipeline).Observe(res.Duration().Seconds())

	for _, sm := range res.Steps {
		s.stepDuration.WithLabelValues(res.Pipeline, sm.Name).Observe(sm.Duration().Seconds())
		if sm.Counted {
			s.stepItems.WithLabelValues(res.Pipeline, sm.Name).Add(float64(sm.Items))
		}
	}
}
