// Package table provides the in-memory tabular structure shared by every
// stage of the dataset pipeline: named columns, row-major nullable cells,
// and the rename/drop/join primitives the sheet unifier is built on.
package table

import (
	"fmt"
)

// Table is a named tabular dataset with string column headers and nullable
// cells. Rows keep their append order, which the pipeline relies on for
// deterministic output.
type Table struct {
	Name    string
	columns []string
	rows    [][]Cell
}

// New creates an empty table with the given name and column headers
func New(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Name:    name,
		columns: cols,
	}
}

// Columns returns a copy of the column headers in order
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the number of rows
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns
func (t *Table) NumCols() int {
	return len(t.columns)
}

// ColumnIndex returns the position of a column, or -1 if absent
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the exact name exists
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendRow adds a row to the table. The row must have exactly one cell per
// column.
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table %q has %d columns", len(cells), t.Name, len(t.columns))
	}
	row := make([]Cell, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns the cells of row i. Callers must not mutate the returned slice.
func (t *Table) Row(i int) []Cell {
	return t.rows[i]
}

// Value returns the cell at row i in the named column. A missing column
// yields a missing cell.
func (t *Table) Value(i int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return Missing()
	}
	return t.rows[i][idx]
}

// SetValue replaces the cell at row i in the named column. Returns false if
// the column does not exist.
func (t *Table) SetValue(i int, column string, c Cell) bool {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return false
	}
	t.rows[i][idx] = c
	return true
}

// RenameColumn renames a column in place. Returns false if the old name does
// not exist.
func (t *Table) RenameColumn(oldName, newName string) bool {
	idx := t.ColumnIndex(oldName)
	if idx < 0 {
		return false
	}
	t.columns[idx] = newName
	return true
}

// DropColumns removes every listed column that exists and returns the names
// actually dropped, in table order. Names not present are ignored.
func (t *Table) DropColumns(names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	var dropped []string
	var keptIdx []int
	var keptCols []string
	for i, col := range t.columns {
		if drop[col] {
			dropped = append(dropped, col)
			continue
		}
		keptIdx = append(keptIdx, i)
		keptCols = append(keptCols, col)
	}

	if len(dropped) == 0 {
		return nil
	}

	t.columns = keptCols
	for r, row := range t.rows {
		kept := make([]Cell, len(keptIdx))
		for j, idx := range keptIdx {
			kept[j] = row[idx]
		}
		t.rows[r] = kept
	}
	return dropped
}

// Copy returns a deep copy of the table
func (t *Table) Copy() *Table {
	c := New(t.Name, t.columns)
	c.rows = make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		cells := make([]Cell, len(row))
		copy(cells, row)
		c.rows[i] = cells
	}
	return c
}
