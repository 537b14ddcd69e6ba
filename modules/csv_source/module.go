// Package csv_source provides the source step that reads a CSV file into a
// table payload.
package csv_source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/chainline/internal/ctxlog"
	"github.com/vk/chainline/internal/executor"
	"github.com/vk/chainline/internal/payload"
	"github.com/vk/chainline/internal/registry"
	"github.com/vk/chainline/internal/table"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the configuration for the csv_source step.
type Settings struct {
	Path      string `chain:"path"`
	Delimiter string `chain:"delimiter,optional"`
	// NoHeader treats the first row as data; column names become c1..cN.
	NoHeader bool `chain:"no_header,optional"`
}

// Validate implements registry.Validator.
func (s *Settings) Validate() error {
	if s.Path == "" {
		return errors.New("path must not be empty")
	}
	if s.Delimiter != "" && len([]rune(s.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}
	return nil
}

// Step reads a CSV file and produces a *table.Table.
type Step struct {
	settings Settings
}

// NewStep constructs the step from validated settings.
func NewStep(settings Settings) *Step {
	return &Step{settings: settings}
}

// Execute implements the step contract for the source position: it takes
// no input and produces the full table. Rows are read one at a time so a
// cancelled context stops a large file early.
func (s *Step) Execute(ctx context.Context, _ payload.None) (*table.Table, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(s.settings.Path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if s.settings.Delimiter != "" {
		reader.Comma = []rune(s.settings.Delimiter)[0]
	}

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file %s is empty", s.settings.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var t *table.Table
	if s.settings.NoHeader {
		header := make([]string, len(first))
		for i := range header {
			header[i] = fmt.Sprintf("c%d", i+1)
		}
		t = table.New(header)
		if err := t.Append(first); err != nil {
			return nil, err
		}
	} else {
		t = table.New(first)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		if err := t.Append(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", t.Len()+1, err)
		}
	}

	logger.Debug("CSV file read.", "path", s.settings.Path, "rows", t.Len(), "columns", len(t.Header))
	return t, nil
}

// Register registers the step implementation with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterStep("csv_source", &registry.RegisteredStep{
		NewSettings: func() any { return new(Settings) },
		Build: func(name string, settings any) (executor.Erased, error) {
			return executor.Wrap[payload.None, *table.Table](name, NewStep(*settings.(*Settings))), nil
		},
	})
}
