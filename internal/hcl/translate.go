package hcl

import (
	"fmt"
	"time"

	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateFile converts the HCL-specific file schema into the agnostic
// config model.
func (l *Loader) translateFile(f *schema.File) (*config.Model, error) {
	model := config.NewModel()
	for _, p := range f.Pipelines {
		pipeline, err := l.translatePipeline(p)
		if err != nil {
			return nil, err
		}
		if _, exists := model.Pipelines[pipeline.Name]; exists {
			return nil, fmt.Errorf("duplicate pipeline name: %s", pipeline.Name)
		}
		model.Pipelines[pipeline.Name] = pipeline
	}
	return model, nil
}

func (l *Loader) translatePipeline(p *schema.Pipeline) (*config.Pipeline, error) {
	out := &config.Pipeline{Name: p.Name}
	for _, s := range p.Steps {
		desc, err := l.translateStep(s)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
		}
		out.Steps = append(out.Steps, desc)
	}
	return out, nil
}

// translateStep converts one step block. Settings attributes are evaluated
// eagerly: a linear chain passes its payload implicitly, so settings are
// static values rather than expressions over other steps' outputs.
func (l *Loader) translateStep(s *schema.Step) (*config.StepDescriptor, error) {
	desc := &config.StepDescriptor{
		Type: s.StepType,
		Name: s.Name,
	}

	settings, err := extractSettings(s.Settings)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", desc.DisplayName(), err)
	}
	desc.Settings = settings

	if s.Retries < 0 {
		return nil, fmt.Errorf("step %q: retries cannot be negative", desc.DisplayName())
	}
	desc.Retry.Attempts = s.Retries
	if s.RetryDelay != "" {
		delay, err := time.ParseDuration(s.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("step %q: invalid retry_delay: %w", desc.DisplayName(), err)
		}
		desc.Retry.Delay = delay
	}

	return desc, nil
}

// extractSettings evaluates the attributes of a settings block into static
// cty values.
func extractSettings(block *schema.SettingsBlock) (map[string]cty.Value, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	settings := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("setting %q: %w", name, diags)
		}
		settings[name] = val
	}
	return settings, nil
}
