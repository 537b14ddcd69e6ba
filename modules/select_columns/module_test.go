package select_columns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chainline/internal/table"
)

func input(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New([]string{"id", "name", "total"})
	require.NoError(t, tbl.Append([]string{"1", "alice", "10"}))
	return tbl
}

func TestExecute_ProjectsColumns(t *testing.T) {
	t.Parallel()

	step := NewStep(Settings{Columns: []string{"name", "id"}})
	out, err := step.Execute(context.Background(), input(t))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "id"}, out.Header)
	require.Equal(t, [][]string{{"alice", "1"}}, out.Rows)
}

func TestExecute_UnknownColumnFails(t *testing.T) {
	t.Parallel()

	step := NewStep(Settings{Columns: []string{"ghost"}})
	_, err := step.Execute(context.Background(), input(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown column "ghost"`)
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, (&Settings{}).Validate())
	require.Error(t, (&Settings{Columns: []string{"a", "a"}}).Validate())
	require.NoError(t, (&Settings{Columns: []string{"a", "b"}}).Validate())
}
