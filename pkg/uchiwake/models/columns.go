package models

// Field names a semantic column of a cost-breakdown table.
type Field string

const (
	FieldItemName  Field = "item_name"
	FieldUnit      Field = "unit"
	FieldQuantity  Field = "quantity"
	FieldUnitPrice Field = "unit_price"
	FieldAmount    Field = "amount"
	FieldNotes     Field = "notes"
	// FieldCode is the optional detail-price code column carried by some
	// layout families.
	FieldCode Field = "code"
)

// ColumnMap maps semantic fields to zero-based column indices. It is
// built once per subtable or table and reused for all of its rows.
type ColumnMap map[Field]int

// Col returns the column index for f, or fallback when f is unmapped.
func (m ColumnMap) Col(f Field, fallback int) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return fallback
}

// Has reports whether f resolved to a column.
func (m ColumnMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}
