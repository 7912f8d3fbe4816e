package models

// LogicalRow is one conceptual line item, possibly reconstructed from
// several physical grid rows.
type LogicalRow struct {
	ItemName  string `json:"item_name"`
	Unit      string `json:"unit"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes"`
	// Code is populated only for layout families that carry a detail-price
	// code column.
	Code string `json:"code,omitempty"`

	// StartRow and EndRow record the physical rows this logical row was
	// assembled from (inclusive, zero-based).
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`

	// TableNumber is the 1-based ordinal of the physical table this row
	// came from when a sheet chains several tables; 0 when unknown.
	TableNumber int `json:"table_number,omitempty"`

	// RawFields snapshots the cell text under the source's own column
	// labels before any interpretation.
	RawFields map[string]string `json:"raw_fields,omitempty"`
}

// IsBlank reports whether the row carries no data at all.
func (r LogicalRow) IsBlank() bool {
	return r.ItemName == "" && r.Unit == "" && r.Quantity == "" &&
		r.UnitPrice == "" && r.Amount == "" && r.Notes == ""
}

// HasNumericData reports whether any of the unit/quantity/price/amount
// fields is populated.
func (r LogicalRow) HasNumericData() bool {
	return r.Unit != "" || r.Quantity != "" || r.UnitPrice != "" || r.Amount != ""
}
