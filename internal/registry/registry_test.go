package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chainline/internal/config"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
	"github.com/vk/chainline/internal/step"
	"github.com/zclconf/go-cty/cty"
)

type echoSettings struct {
	Value string `chain:"value"`
	Limit int    `chain:"limit,optional"`
}

func (s *echoSettings) Validate() error {
	if s.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

func registerEcho(r *Registry) {
	r.RegisterStep("echo", &RegisteredStep{
		NewSettings: func() any { return new(echoSettings) },
		Build: func(name string, settings any) (executor.Erased, error) {
			cfg := settings.(*echoSettings)
			return executor.Wrap[payload.None, string](name, step.Func[payload.None, string](
				func(ctx context.Context, _ payload.None) (string, error) {
					return cfg.Value, nil
				})), nil
		},
	})
}

func TestRegisterStep_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	registerEcho(r)
	require.PanicsWithValue(t, "step implementation with type 'echo' already registered", func() {
		registerEcho(r)
	})
}

func TestResolve_UnknownTypeIsLoadError(t *testing.T) {
	t.Parallel()

	r := New()
	registerEcho(r)

	_, err := r.Resolve(context.Background(), &config.StepDescriptor{Type: "nope", Name: "x"})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.ErrorIs(t, err, ErrUnknownStepType)
	require.Contains(t, err.Error(), `"nope"`)
}

func TestResolve_BindsSettingsAndBuilds(t *testing.T) {
	t.Parallel()

	r := New()
	registerEcho(r)

	ex, err := r.Resolve(context.Background(), &config.StepDescriptor{
		Type:     "echo",
		Name:     "greeting",
		Settings: map[string]cty.Value{"value": cty.StringVal("hello")},
	})
	require.NoError(t, err)
	require.Equal(t, "echo.greeting", ex.Name())

	out, err := ex.Run(context.Background(), payload.Empty())
	require.NoError(t, err)
	require.Equal(t, "hello", out.Value())
}

func TestResolve_MissingRequiredSettingIsConfigurationError(t *testing.T) {
	t.Parallel()

	r := New()
	registerEcho(r)

	_, err := r.Resolve(context.Background(), &config.StepDescriptor{Type: "echo", Name: "x"})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Contains(t, err.Error(), `missing required setting "value"`)
}

func TestResolve_SemanticValidationIsConfigurationError(t *testing.T) {
	t.Parallel()

	r := New()
	registerEcho(r)

	_, err := r.Resolve(context.Background(), &config.StepDescriptor{
		Type: "echo",
		Name: "x",
		Settings: map[string]cty.Value{
			"value": cty.StringVal("hello"),
			"limit": cty.NumberIntVal(-1),
		},
	})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Contains(t, err.Error(), "limit cannot be negative")
}

func TestResolve_SettingsForSettinglessStepIsConfigurationError(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterStep("bare", &RegisteredStep{
		Build: func(name string, settings any) (executor.Erased, error) {
			return executor.Wrap[payload.None, string](name, step.Func[payload.None, string](
				func(ctx context.Context, _ payload.None) (string, error) { return "", nil })), nil
		},
	})

	_, err := r.Resolve(context.Background(), &config.StepDescriptor{
		Type:     "bare",
		Name:     "x",
		Settings: map[string]cty.Value{"oops": cty.True},
	})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Contains(t, err.Error(), "takes no settings")
}

func TestResolve_BuilderPanicIsLoadError(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterStep("broken", &RegisteredStep{
		Build: func(name string, settings any) (executor.Erased, error) {
			panic("construction exploded")
		},
	})

	_, err := r.Resolve(context.Background(), &config.StepDescriptor{Type: "broken", Name: "x"})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, err.Error(), "construction exploded")
}

func TestResolve_RetryPolicyWrapsExecutor(t *testing.T) {
	t.Parallel()

	calls := 0
	r := New()
	r.RegisterStep("flaky", &RegisteredStep{
		Build: func(name string, settings any) (executor.Erased, error) {
			return executor.Wrap[payload.None, string](name, step.Func[payload.None, string](
				func(ctx context.Context, _ payload.None) (string, error) {
					calls++
					if calls < 3 {
						return "", errors.New("transient")
					}
					return "ok", nil
				})), nil
		},
	})

	ex, err := r.Resolve(context.Background(), &config.StepDescriptor{
		Type:  "flaky",
		Name:  "x",
		Retry: config.RetryPolicy{Attempts: 3},
	})
	require.NoError(t, err)

	out, err := ex.Run(context.Background(), payload.Empty())
	require.NoError(t, err)
	require.Equal(t, "ok", out.Value())
	require.Equal(t, 3, calls)
}
