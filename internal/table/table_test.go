package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl := New([]string{"id", "name", "total"})
	require.NoError(t, tbl.Append([]string{"1", "alice", "10"}))
	require.NoError(t, tbl.Append([]string{"2", "bob", "20"}))
	return tbl
}

func TestAppend_RejectsWidthMismatch(t *testing.T) {
	t.Parallel()

	tbl := New([]string{"a", "b"})
	require.Error(t, tbl.Append([]string{"only-one"}))
	require.Zero(t, tbl.Len())
}

func TestLen_CountsDataRowsOnly(t *testing.T) {
	t.Parallel()

	require.Equal(t, 2, sample(t).Len())
	require.Zero(t, New([]string{"a"}).Len())
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	tbl := sample(t)
	idx, ok := tbl.ColumnIndex("name")
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = tbl.ColumnIndex("missing")
	require.False(t, ok)
}

func TestSelect_ProjectsAndReorders(t *testing.T) {
	t.Parallel()

	tbl := sample(t)
	out, err := tbl.Select([]string{"total", "id"})
	require.NoError(t, err)
	require.Equal(t, []string{"total", "id"}, out.Header)
	require.Equal(t, [][]string{{"10", "1"}, {"20", "2"}}, out.Rows)

	// Source table is untouched.
	require.Equal(t, []string{"id", "name", "total"}, tbl.Header)
	require.Equal(t, "alice", tbl.Rows[0][1])
}

func TestSelect_UnknownColumnFails(t *testing.T) {
	t.Parallel()

	_, err := sample(t).Select([]string{"id", "ghost"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown column "ghost"`)
}
