// Package print provides the sink step that renders a table to the console.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
	"github.com/vk/chainline/internal/registry"
	"github.com/vk/chainline/internal/table"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the configuration for the print step.
type Settings struct {
	// MaxRows caps the rendered rows; 0 prints everything.
	MaxRows int `chain:"max_rows,optional"`
}

// Validate implements registry.Validator.
func (s *Settings) Validate() error {
	if s.MaxRows < 0 {
		return fmt.Errorf("max_rows cannot be negative, got %d", s.MaxRows)
	}
	return nil
}

// Step writes an aligned rendering of its input table to a writer.
type Step struct {
	settings Settings
	out      io.Writer
}

// NewStep constructs the step writing to the given writer.
func NewStep(settings Settings, out io.Writer) *Step {
	return &Step{settings: settings, out: out}
}

// Execute implements the step contract for the sink position: it consumes
// the table and produces the sentinel empty payload.
func (s *Step) Execute(ctx context.Context, in *table.Table) (payload.None, error) {
	widths := make([]int, len(in.Header))
	for i, h := range in.Header {
		widths[i] = len(h)
	}
	rows := in.Rows
	if s.settings.MaxRows > 0 && len(rows) > s.settings.MaxRows {
		rows = rows[:s.settings.MaxRows]
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := s.writeRow(in.Header, widths); err != nil {
		return payload.None{}, err
	}
	separators := make([]string, len(in.Header))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	if err := s.writeRow(separators, widths); err != nil {
		return payload.None{}, err
	}
	for _, row := range rows {
		if err := s.writeRow(row, widths); err != nil {
			return payload.None{}, err
		}
	}
	if truncated := in.Len() - len(rows); truncated > 0 {
		if _, err := fmt.Fprintf(s.out, "... (%d more rows)\n", truncated); err != nil {
			return payload.None{}, err
		}
	}

	ctxlog.FromContext(ctx).Debug("Table printed.", "rows", len(rows), "truncated", in.Len()-len(rows))
	return payload.None{}, nil
}

func (s *Step) writeRow(cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	_, err := fmt.Fprintln(s.out, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

// Register registers the step implementation with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("print", &registry.RegisteredStep{
		NewSettings: func() any { return new(Settings) },
		Build: func(name string, settings any) (executor.Erased, error) {
			return executor.Wrap[*table.Table, payload.None](name, NewStep(*settings.(*Settings), os.Stdout)), nil
		},
	})
}
