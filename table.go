package triage

import (
	"fmt"
	"strings"
)

// A Table is the structured result of successfully parsing a RawPartition.
// Rows are stored in row-major order; each value is nil (a null) or a value of
// the Go type matching its column's ColumnType (int64, float64, bool, string or time.Time).
type Table struct {
	Columns []string
	Types   []ColumnType
	Rows    [][]interface{}
}

// NumRows returns the number of rows in this Table
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns in this Table
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndex returns the index of the named column, or -1 if it does not exist
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values in the named column
func (t *Table) Column(name string) ([]interface{}, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %s does not exist", name)
	}
	vals := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals, nil
}

// Value returns the value at a specific row and column
func (t *Table) Value(row int, col int) (interface{}, error) {
	if row < 0 || row >= len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range [0, %d)", row, len(t.Rows))
	}
	if col < 0 || col >= len(t.Columns) {
		return nil, fmt.Errorf("column %d out of range [0, %d)", col, len(t.Columns))
	}
	return t.Rows[row][col], nil
}

// ToString returns a string representation of this Table, printing at most
// maxRows rows (all rows if maxRows < 0)
func (t *Table) ToString(maxRows int) string {
	var res strings.Builder
	fmt.Fprintln(&res, strings.Join(t.Columns, "\t"))
	for i, row := range t.Rows {
		if maxRows >= 0 && i >= maxRows {
			fmt.Fprintf(&res, "... %d more rows\n", len(t.Rows)-i)
			break
		}
		vals := make([]string, len(row))
		for j, v := range row {
			var colType ColumnType
			if j < len(t.Types) {
				colType = t.Types[j]
			}
			vals[j] = FormatValue(colType, v)
		}
		fmt.Fprintln(&res, strings.Join(vals, "\t"))
	}
	return res.String()
}
