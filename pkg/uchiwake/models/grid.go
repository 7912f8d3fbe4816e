// Package models defines data structures for cost-estimate table extraction.
package models

// Grid is one sheet or one detected table as row-major cell text.
// Absent cells read as empty strings, so ragged source rows are safe
// to index uniformly.
type Grid struct {
	// Name identifies the source (sheet name, or e.g. "page3/table1" for
	// a PDF-derived table).
	Name string `json:"name"`
	// Rows holds the raw cell text, row-major.
	Rows [][]string `json:"rows"`
}

// NewGrid builds a Grid over the given rows. The rows slice is used
// as-is, not copied.
func NewGrid(name string, rows [][]string) *Grid {
	return &Grid{Name: name, Rows: rows}
}

// NumRows returns the number of physical rows.
func (g *Grid) NumRows() int {
	return len(g.Rows)
}

// Row returns the physical row at index i, or nil when out of range.
func (g *Grid) Row(i int) []string {
	if i < 0 || i >= len(g.Rows) {
		return nil
	}
	return g.Rows[i]
}

// Cell returns the text at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	r := g.Row(row)
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
