package config

import (
	"errors"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// ErrEmptyPipeline is the configuration error for a pipeline descriptor
// with zero steps.
var ErrEmptyPipeline = errors.New("pipeline declares no steps")

// Model is the unified, format-agnostic representation of the entire
// application configuration.
type Model struct {
	Pipelines map[string]*Pipeline
}

// NewModel creates an empty configuration model.
func NewModel() *Model {
	return &Model{Pipelines: make(map[string]*Pipeline)}
}

// Merge copies the pipelines of other into m. A duplicate pipeline name
// across files is a configuration error surfaced by the loaders.
func (m *Model) Merge(other *Model) error {
	for name, p := range other.Pipelines {
		if _, exists := m.Pipelines[name]; exists {
			return errors.New("duplicate pipeline name: " + name)
		}
		m.Pipelines[name] = p
	}
	return nil
}

// Pipeline is the descriptor of one configured chain: an ordered, non-empty
// sequence of step descriptors.
type Pipeline struct {
	Name  string
	Steps []*StepDescriptor
}

// StepDescriptor identifies one step implementation and the settings to
// bind into it. The Type string is an opaque identifier resolved by the
// registry; the Name labels this instance in logs and metrics.
type StepDescriptor struct {
	Type     string
	Name     string
	Settings map[string]cty.Value
	Retry    RetryPolicy
}

// DisplayName returns "type.name" for diagnostics, matching the address
// form used in configuration files.
func (d *StepDescriptor) DisplayName() string {
	if d.Name == "" {
		return d.Type
	}
	return d.Type + "." + d.Name
}

// RetryPolicy is the optional resilience configuration for a single step.
// A zero value means the executor runs bare.
type RetryPolicy struct {
	// Attempts is the number of retries after the first failure.
	Attempts int
	Delay    time.Duration
}

// Enabled reports whether the policy asks for any retries.
func (p RetryPolicy) Enabled() bool {
	return p.Attempts > 0
}
