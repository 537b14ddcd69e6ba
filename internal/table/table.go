// Package table provides the tabular payload type shared by the bundled
// pipeline modules.
package table

import (
	"fmt"
	"slices"
)

// Table is an in-memory table of string cells with a named header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates an empty table with the given header.
func New(header []string) *Table {
	return &Table{Header: slices.Clone(header)}
}

// Append adds one row. The row must match the header width.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.Header) {
		return fmt.Errorf("row has %d cells, header has %d columns", len(row), len(t.Header))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows. It satisfies payload.Counter so the
// orchestrator can record row counts without knowing about tables.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Select returns a new table holding only the named columns, in the order
// given. The receiver is not modified.
func (t *Table) Select(columns []string) (*Table, error) {
	indexes := make([]int, 0, len(columns))
	for _, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q (available: %v)", name, t.Header)
		}
		indexes = append(indexes, idx)
	}

	out := New(columns)
	for _, row := range t.Rows {
		projected := make([]string, len(indexes))
		for i, idx := range indexes {
			projected[i] = row[idx]
		}
		out.Rows = append(out.Rows, projected)
	}
	return out, nil
}
