package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const ordersYAML = `
pipelines:
  - name: orders
    steps:
      - type: csv_source
        name: read
        settings:
          path: orders.csv
          delimiter: ";"
      - type: select_columns
        name: trim
        settings:
          columns: [id, total]
        retries: 2
        retry_delay: 250ms
      - type: print
        name: out
`

func TestParse_TranslatesPipelineDocument(t *testing.T) {
	t.Parallel()

	model, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)
	require.Len(t, model.Pipelines, 1)

	p := model.Pipelines["orders"]
	require.NotNil(t, p)
	require.Len(t, p.Steps, 3)

	read := p.Steps[0]
	require.Equal(t, "csv_source.read", read.DisplayName())
	require.Equal(t, cty.StringVal("orders.csv"), read.Settings["path"])
	require.False(t, read.Retry.Enabled())

	trim := p.Steps[1]
	require.Equal(t, 2, trim.Retry.Attempts)
	require.Equal(t, 250*time.Millisecond, trim.Retry.Delay)
	require.True(t, trim.Settings["columns"].RawEquals(
		cty.TupleVal([]cty.Value{cty.StringVal("id"), cty.StringVal("total")})))
}

func TestParse_RejectsUnnamedPipeline(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("pipelines:\n  - steps: []\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "pipeline without a name")
}

func TestParse_RejectsUntypedStep(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
pipelines:
  - name: p
    steps:
      - name: lonely
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "step without a type")
}

func TestParse_RejectsNegativeRetries(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
pipelines:
  - name: p
    steps:
      - type: print
        retries: -1
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "retries cannot be negative")
}

func TestLoad_ReadsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.yaml"), []byte(ordersYAML), 0o644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Contains(t, model.Pipelines, "orders")
}

func TestLoad_NoFilesFound(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no .yaml pipeline files found")
}

func TestMarshal_RoundTripPreservesModel(t *testing.T) {
	t.Parallel()

	original, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	data, err := Marshal(original)
	require.NoError(t, err)

	reloaded, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, reloaded.Pipelines, len(original.Pipelines))

	for name, p := range original.Pipelines {
		rp := reloaded.Pipelines[name]
		require.NotNil(t, rp, "pipeline %q lost in round trip", name)
		require.Len(t, rp.Steps, len(p.Steps))
		for i, desc := range p.Steps {
			rdesc := rp.Steps[i]
			require.Equal(t, desc.Type, rdesc.Type)
			require.Equal(t, desc.Name, rdesc.Name)
			require.Equal(t, desc.Retry, rdesc.Retry)
			require.Len(t, rdesc.Settings, len(desc.Settings))
			for key, val := range desc.Settings {
				require.True(t, val.RawEquals(rdesc.Settings[key]),
					"setting %q changed: %#v vs %#v", key, val, rdesc.Settings[key])
			}
		}
	}
}
