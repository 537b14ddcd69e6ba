// Package select_columns provides the transform step that projects a table
// onto a configured subset of its columns.
package select_columns

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/registry"
	"github.com/vk/chainline/internal/table"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the configuration for the select_columns step.
type Settings struct {
	Columns []string `chain:"columns"`
}

// Validate implements registry.Validator.
func (s *Settings) Validate() error {
	if len(s.Columns) == 0 {
		return errors.New("columns must not be empty")
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Step projects its input table onto the configured columns.
type Step struct {
	settings Settings
}

// NewStep constructs the step from validated settings.
func NewStep(settings Settings) *Step {
	return &Step{settings: settings}
}

// Execute implements the step contract. The input table is not modified; a
// fresh projected table is produced.
func (s *Step) Execute(ctx context.Context, in *table.Table) (*table.Table, error) {
	out, err := in.Select(s.settings.Columns)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Columns selected.", "columns", s.settings.Columns, "rows", out.Len())
	return out, nil
}

// Register registers the step implementation with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("select_columns", &registry.RegisteredStep{
		NewSettings: func() any { return new(Settings) },
		Build: func(name string, settings any) (executor.Erased, error) {
			return executor.Wrap[*table.Table, *table.Table](name, NewStep(*settings.(*Settings))), nil
		},
	})
}
