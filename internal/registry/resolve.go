package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/resilience"
	"github.com/vk/chainline/internal/settings"
)

// Resolve turns a step descriptor into a ready-to-run executor. Settings
// are decoded and validated here so a malformed descriptor fails before the
// pipeline starts, never mid-run. When the descriptor declares a retry
// policy the executor is returned resilience-wrapped; callers cannot tell
// a bare executor from a decorated one.
func (r *Registry) Resolve(ctx context.Context, desc *config.StepDescriptor) (executor.Erased, error) {
	logger := ctxlog.FromContext(ctx).With("step", desc.DisplayName())

	h, ok := r.steps[desc.Type]
	if !ok {
		return nil, &LoadError{
			Step: desc.DisplayName(),
			Err:  fmt.Errorf("%w %q (registered: %v)", ErrUnknownStepType, desc.Type, r.StepTypes()),
		}
	}

	var settingsVal any
	if h.NewSettings != nil {
		settingsVal = h.NewSettings()
		if err := settings.Decode(settingsVal, desc.Settings); err != nil {
			return nil, &ConfigurationError{Step: desc.DisplayName(), Err: err}
		}
		if v, ok := settingsVal.(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, &ConfigurationError{Step: desc.DisplayName(), Err: err}
			}
		}
	} else if len(desc.Settings) > 0 {
		return nil, &ConfigurationError{
			Step: desc.DisplayName(),
			Err:  errors.New("step takes no settings but the descriptor provides some"),
		}
	}

	ex, err := buildStep(h, desc.DisplayName(), settingsVal)
	if err != nil {
		return nil, &LoadError{Step: desc.DisplayName(), Err: err}
	}

	if desc.Retry.Enabled() {
		logger.Debug("Wrapping executor with retry policy.",
			"attempts", desc.Retry.Attempts, "delay", desc.Retry.Delay)
		ex = resilience.WithRetry(ex, desc.Retry.Attempts, desc.Retry.Delay)
	}

	logger.Debug("Step resolved.", "input_type", ex.InputType().String(), "output_type", ex.OutputType().String())
	return ex, nil
}

// buildStep calls the registered Build function, converting a panic during
// construction into a plain error so one broken module cannot take down
// the process before the error taxonomy applies.
func buildStep(h *RegisteredStep, name string, settingsVal any) (ex executor.Erased, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("step construction panicked: %v", rec)
		}
	}()
	ex, err = h.Build(name, settingsVal)
	if err == nil && ex == nil {
		err = errors.New("step builder returned no executor")
	}
	return ex, err
}
