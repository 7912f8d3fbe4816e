package parser

import (
	"strings"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// Accepted label variants per semantic field. Order matters: earlier
// fields claim columns first, and a column is consumed by at most one
// field. Matching is canonical (width-folded, whitespace- and
// interpunct-stripped), so 名　称　・　規　格 matches 名称規格.
var headerLabels = []struct {
	field  models.Field
	labels []string
}{
	{models.FieldItemName, []string{
		"名称・規格", "名称規格", "費目・工種・種別・細別・規格", "費目・工種・種別・細別",
		"工事区分・工種・種別・細別", "名称", "規格", "項目", "品名",
	}},
	{models.FieldUnit, []string{"単位"}},
	{models.FieldQuantity, []string{"数量"}},
	{models.FieldUnitPrice, []string{"単価"}},
	{models.FieldAmount, []string{"金額"}},
	{models.FieldNotes, []string{"摘要", "備考"}},
	{models.FieldCode, []string{"明細単価番号"}},
}

// minHeaderFields is the acceptance threshold for a candidate header
// row: fewer resolved fields means "not a header — keep scanning".
const minHeaderFields = 2

// LocateColumns resolves semantic fields to column positions from a
// candidate header row. Returns nil when fewer than two fields resolve.
func LocateColumns(row []string) models.ColumnMap {
	cols := make(models.ColumnMap)
	consumed := make(map[int]bool)

	for _, entry := range headerLabels {
		for col, cell := range row {
			if consumed[col] {
				continue
			}
			if matchesLabel(cell, entry.labels) {
				cols[entry.field] = col
				consumed[col] = true
				break
			}
		}
	}

	if len(cols) < minHeaderFields {
		return nil
	}
	return cols
}

func matchesLabel(cell string, labels []string) bool {
	canon := canonicalLabel(cell)
	if canon == "" {
		return false
	}
	for _, label := range labels {
		want := canonicalLabel(label)
		if canon == want {
			return true
		}
		// Flexible containment handles composite header cells such as
		// 名称・規格　格 or 費目・工種 spanning several nominal labels.
		if strings.Contains(canon, want) || strings.Contains(want, canon) {
			return true
		}
	}
	return false
}

// LocateColumnsNear scans up to window rows starting at start for a
// valid column map, returning the map and the header row index.
func LocateColumnsNear(g *models.Grid, start, window int) (models.ColumnMap, int, bool) {
	for i := start; i < start+window && i < g.NumRows(); i++ {
		if cols := LocateColumns(g.Row(i)); cols != nil {
			return cols, i, true
		}
	}
	return nil, 0, false
}

// DefaultColumnMap is the fixed positional fallback for the standard
// spreadsheet estimate layout, used when fuzzy header detection is
// unreliable for that layout family.
func DefaultColumnMap() models.ColumnMap {
	return models.ColumnMap{
		models.FieldItemName:  1,
		models.FieldUnit:      2,
		models.FieldQuantity:  4,
		models.FieldUnitPrice: 5,
		models.FieldAmount:    6,
		models.FieldNotes:     7,
	}
}

// FillColumnDefaults completes cols with the positional defaults for any
// field fuzzy detection missed.
func FillColumnDefaults(cols models.ColumnMap) models.ColumnMap {
	if cols == nil {
		cols = make(models.ColumnMap)
	}
	for f, idx := range DefaultColumnMap() {
		if !cols.Has(f) {
			cols[f] = idx
		}
	}
	return cols
}

// IsHeaderLabelRow reports whether row repeats column labels (such rows
// appear when a table continues onto a new page block and must not be
// collected as data).
func IsHeaderLabelRow(row []string) bool {
	return LocateColumns(row) != nil
}
