package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/orchestrator"
)

// Run executes every configured pipeline in name order, aborting on the
// first failure. Cancellation of ctx stops between steps and is reported
// as a clean exit.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.MetricsPort > 0 {
		a.startMetricsServer(appConfig.MetricsPort)
	}

	if len(a.config.Pipelines) == 0 {
		a.logger.Warn("No pipelines found in configuration, nothing to run.")
		return nil
	}

	names := make([]string, 0, len(a.config.Pipelines))
	for name := range a.config.Pipelines {
		names = append(names, name)
	}
	sort.Strings(names)

	orch := orchestrator.New(a.registry)
	for _, name := range names {
		res, err := orch.Execute(ctx, a.config.Pipelines[name])
		a.sink.ObserveRun(res)

		if err != nil {
			return fmt.Errorf("pipeline %q failed: %w", name, err)
		}
		if res.State == orchestrator.StateCancelled {
			a.logger.Info("Run cancelled, remaining pipelines skipped.", "pipeline", name)
			return ctx.Err()
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
