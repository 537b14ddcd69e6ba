package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TranslatesPipelineFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "orders.hcl", `
		pipeline "orders" {
			step "csv_source" "read" {
				settings {
					path      = "orders.csv"
					delimiter = ";"
				}
			}
			step "select_columns" "trim" {
				settings {
					columns = ["id", "total"]
				}
				retries     = 2
				retry_delay = "250ms"
			}
			step "print" "out" {}
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Pipelines, 1)

	p := model.Pipelines["orders"]
	require.NotNil(t, p)
	require.Len(t, p.Steps, 3)

	read := p.Steps[0]
	require.Equal(t, "csv_source", read.Type)
	require.Equal(t, "read", read.Name)
	require.Equal(t, "csv_source.read", read.DisplayName())
	require.Equal(t, cty.StringVal("orders.csv"), read.Settings["path"])
	require.Equal(t, cty.StringVal(";"), read.Settings["delimiter"])
	require.False(t, read.Retry.Enabled())

	trim := p.Steps[1]
	require.Equal(t, 2, trim.Retry.Attempts)
	require.Equal(t, 250*time.Millisecond, trim.Retry.Delay)
	require.True(t, trim.Settings["columns"].RawEquals(
		cty.TupleVal([]cty.Value{cty.StringVal("id"), cty.StringVal("total")})))

	out := p.Steps[2]
	require.Equal(t, "print", out.Type)
	require.Empty(t, out.Settings)
}

func TestLoad_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "one.hcl", `
		pipeline "one" {
			step "print" "out" {}
		}
	`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Contains(t, model.Pipelines, "one")
}

func TestLoad_DuplicatePipelineNameAcrossFilesFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `
		pipeline "dup" {
			step "print" "out" {}
		}
	`)
	writeFile(t, dir, "b.hcl", `
		pipeline "dup" {
			step "print" "out" {}
		}
	`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate pipeline name: dup")
}

func TestLoad_InvalidHCLIsRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `pipeline "broken" {`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoad_NegativeRetriesRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `
		pipeline "p" {
			step "print" "out" {
				retries = -1
			}
		}
	`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "retries cannot be negative")
}

func TestLoad_InvalidRetryDelayRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `
		pipeline "p" {
			step "print" "out" {
				retries     = 1
				retry_delay = "soon"
			}
		}
	`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid retry_delay")
}

func TestLoad_NoFilesFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no .hcl pipeline files found")
}
