package models

// TableTitle is the optional descriptive triple found between a
// subtable's reference row and its header row.
type TableTitle struct {
	ItemName     string `json:"item_name"`
	Unit         string `json:"unit"`
	UnitQuantity string `json:"unit_quantity"`
}

// Subtable is a self-contained itemized block identified by a reference
// number, bounded by a total row, a table-number row, or the next
// reference.
type Subtable struct {
	// ReferenceNumber identifies the subtable. Repeated occurrences of
	// the same base reference within one grid carry "-2", "-3", …
	// suffixes in encounter order.
	ReferenceNumber string `json:"reference_number"`
	// GridName is the name of the source grid (sheet or page/table).
	GridName string `json:"grid_name,omitempty"`
	// StartRow is the physical row of the reference (zero-based).
	StartRow int `json:"start_row"`
	// HeaderRow is the physical row the column map was resolved from.
	HeaderRow int `json:"header_row"`

	Columns ColumnMap    `json:"column_positions"`
	Rows    []LogicalRow `json:"rows"`
	Title   *TableTitle  `json:"table_title,omitempty"`
}
