// Package schema defines the HCL-specific structures for pipeline files.
package schema

import "github.com/hashicorp/hcl/v2"

// SettingsBlock holds the raw body of a step's 'settings' block. Its
// attributes are evaluated into cty values during translation.
type SettingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block inside a pipeline: one stage of the chain,
// identified by the registered step type and an instance name.
type Step struct {
	StepType string         `hcl:"step_type,label"`
	Name     string         `hcl:"instance_name,label"`
	Settings *SettingsBlock `hcl:"settings,block"`

	// Optional resilience policy applied around this step's executor.
	Retries    int    `hcl:"retries,optional"`
	RetryDelay string `hcl:"retry_delay,optional"`
}

// Pipeline represents a top-level `pipeline` block: an ordered chain of
// steps executed strictly sequentially.
type Pipeline struct {
	Name  string  `hcl:"name,label"`
	Steps []*Step `hcl:"step,block"`
}

// File represents the top-level structure of a pipeline configuration file.
type File struct {
	Pipelines []*Pipeline `hcl:"pipeline,block"`
	Body      hcl.Body    `hcl:",remain"`
}
