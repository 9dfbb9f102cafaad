package sheet

import "strings"

// Table is a header row plus string cells.
type Table struct {
	Header []string
	Rows   [][]string
	// SourceRows holds the 1-based file row of each entry in Rows when the
	// table was read from a file.
	SourceRows []int
	// Numeric lists header names whose cells are written as numbers.
	Numeric map[string]bool
}

// Named pairs a table with the file name it is delivered under.
type Named struct {
	Name  string
	Table *Table
}

// NewTable returns an empty table with the given header.
func NewTable(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// Index returns the position of a header, or -1.
func (t *Table) Index(column string) int {
	for i, h := range t.Header {
		if h == column {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains column.
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// Value returns the cell of row i under column, or "" if either is absent.
func (t *Table) Value(i int, column string) string {
	idx := t.Index(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	t.Rows = append(t.Rows, fit(row, len(t.Header)))
}

// RowNumber returns the file row of data row i. Tables built in memory
// count from the row after the header.
func (t *Table) RowNumber(i int) int {
	if i >= 0 && i < len(t.SourceRows) {
		return t.SourceRows[i]
	}
	return i + 2
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
