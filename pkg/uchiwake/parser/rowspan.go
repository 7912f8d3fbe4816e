package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// Total-row markers end a subtable. 計 alone appears in spreadsheet
// blocks; 合計 in PDF-derived tables; the asterisk-framed form in detail
// sheets.
var totalMarkers = []string{"計", "合計", "小計", "***合計***", "＊＊＊合計＊＊＊"}

// IsTotalRow reports whether row is a subtable-terminating total row:
// a total marker in one of the leading columns.
func IsTotalRow(row []string) bool {
	limit := referenceColumnLimit
	if len(row) < limit {
		limit = len(row)
	}
	for col := 0; col < limit; col++ {
		canon := Canonical(row[col])
		if canon == "" {
			continue
		}
		for _, marker := range totalMarkers {
			if canon == Canonical(marker) {
				return true
			}
		}
	}
	return false
}

// IsTableNumberRow reports whether row's only non-empty cell parses as
// an integer — the bare page/table ordinal that closes a table block.
func IsTableNumberRow(row []string) bool {
	_, ok := TableNumber(row)
	return ok
}

// TableNumber extracts the ordinal from a table-number-only row.
func TableNumber(row []string) (int, bool) {
	value := ""
	for _, cell := range row {
		c := Canonical(cell)
		if c == "" {
			continue
		}
		if value != "" {
			return 0, false
		}
		value = c
	}
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsEmptyRow reports whether every cell of row is blank.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if Canonical(cell) != "" {
			return false
		}
	}
	return true
}

var meaninglessCellPattern = regexp.MustCompile(`^[-_.．・ー―－‐]+$`)

// IsMeaninglessRow reports whether every non-blank cell is filler
// (dashes, dots, rules). Such rows are layout decoration, not data.
func IsMeaninglessRow(row []string) bool {
	sawContent := false
	for _, cell := range row {
		c := Canonical(cell)
		if c == "" {
			continue
		}
		if !meaninglessCellPattern.MatchString(c) {
			return false
		}
		sawContent = true
	}
	return sawContent
}

// IsSheetTitleRow reports whether row is a bare document title such as
// 明細書 or 金額内訳書: a single non-empty cell naming the sheet kind.
func IsSheetTitleRow(row []string) bool {
	value := ""
	for _, cell := range row {
		c := Canonical(cell)
		if c == "" {
			continue
		}
		if value != "" {
			return false
		}
		value = c
	}
	return strings.Contains(value, "明細書") || strings.Contains(value, "内訳書")
}

// descriptionPattern rejects decimal-fragment candidates that are really
// item descriptions or unit text: letters, ideographs, kana, equals,
// parentheses.
var descriptionPattern = regexp.MustCompile(`[A-Za-zＡ-Ｚａ-ｚ=＝()（）\x{3040}-\x{30ff}\x{4e00}-\x{9faf}]`)

// looksLikeDescription reports whether text reads as descriptive content
// rather than a bare numeric fragment.
func looksLikeDescription(text string) bool {
	return descriptionPattern.MatchString(text)
}

var (
	bareDigitsPattern  = regexp.MustCompile(`^[0-9]{1,3}$`)
	decimalTailPattern = regexp.MustCompile(`^0?\.([0-9]+)$`)
	bareIntegerPattern = regexp.MustCompile(`^[0-9]+$`)
)

// MergeSplitDecimal reassembles a quantity whose integer and decimal
// parts occupy adjacent cells (a habit of one layout family: "1" next to
// "0.5" means 1.5). Only the immediately adjacent cells are considered,
// and any candidate that reads as description text is rejected.
func MergeSplitDecimal(row []string, qtyCol int, quantity string) string {
	canon := Canonical(quantity)
	if !bareIntegerPattern.MatchString(canon) {
		return quantity
	}
	for _, offset := range []int{1, -1} {
		col := qtyCol + offset
		if col < 0 || col >= len(row) {
			continue
		}
		cell := Canonical(row[col])
		if cell == "" || looksLikeDescription(cell) {
			continue
		}
		if m := decimalTailPattern.FindStringSubmatch(cell); m != nil {
			return canon + "." + m[1]
		}
		if bareDigitsPattern.MatchString(cell) {
			return canon + "." + cell
		}
	}
	return quantity
}

// lookaheadWindow bounds how many rows ahead the per-field merge variant
// may search for a missing field.
const lookaheadWindow = 4

// Merger assembles logical rows from physical rows under one column map.
type Merger struct {
	cols models.ColumnMap
}

// NewMerger builds a Merger for the given column map.
func NewMerger(cols models.ColumnMap) *Merger {
	return &Merger{cols: cols}
}

func (m *Merger) cell(row []string, f models.Field) string {
	idx := m.cols.Col(f, -1)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return Clean(row[idx])
}

// itemName preserves leading indentation; hierarchy depth is read from
// it later.
func (m *Merger) itemName(row []string) string {
	idx := m.cols.Col(models.FieldItemName, -1)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimRight(row[idx], " \t")
}

func (m *Merger) readRow(g *models.Grid, i int) models.LogicalRow {
	row := g.Row(i)
	lr := models.LogicalRow{
		ItemName:  m.itemName(row),
		Unit:      m.cell(row, models.FieldUnit),
		Quantity:  m.cell(row, models.FieldQuantity),
		UnitPrice: m.cell(row, models.FieldUnitPrice),
		Amount:    m.cell(row, models.FieldAmount),
		Notes:     m.cell(row, models.FieldNotes),
		Code:      m.cell(row, models.FieldCode),
		StartRow:  i,
		EndRow:    i,
	}
	if lr.Quantity != "" {
		if idx, ok := m.cols[models.FieldQuantity]; ok {
			lr.Quantity = MergeSplitDecimal(row, idx, lr.Quantity)
		}
	}
	return lr
}

// Merge produces one logical row starting at start, consuming a second
// physical row when the first carries only an item name and the next
// carries the numeric/unit fields. Returns the row and the last physical
// row index consumed.
func (m *Merger) Merge(g *models.Grid, start int) (models.LogicalRow, int) {
	lr := m.readRow(g, start)

	if lr.ItemName != "" && !lr.HasNumericData() && start+1 < g.NumRows() {
		next := m.readRow(g, start+1)
		if next.HasNumericData() && !IsTotalRow(g.Row(start+1)) && !IsTableNumberRow(g.Row(start+1)) {
			if name := strings.TrimSpace(next.ItemName); name != "" {
				lr.ItemName = lr.ItemName + " " + name
			}
			lr.Unit = next.Unit
			lr.Quantity = next.Quantity
			lr.UnitPrice = next.UnitPrice
			lr.Amount = next.Amount
			if next.Notes != "" {
				lr.Notes = next.Notes
			}
			if next.Code != "" {
				lr.Code = next.Code
			}
			lr.EndRow = start + 1
		}
	}

	m.snapshotRaw(&lr)
	return lr, lr.EndRow
}

// MergeLookahead produces one logical row starting at start, scanning up
// to four rows ahead independently per missing field. The lookahead
// stops early at another item name, a total marker, or a table-number
// row, so one item can never absorb its successor's figures.
func (m *Merger) MergeLookahead(g *models.Grid, start int) (models.LogicalRow, int) {
	lr := m.readRow(g, start)
	if lr.ItemName == "" {
		m.snapshotRaw(&lr)
		return lr, lr.EndRow
	}

	for ahead := 1; ahead <= lookaheadWindow; ahead++ {
		i := start + ahead
		if i >= g.NumRows() {
			break
		}
		row := g.Row(i)
		if IsTotalRow(row) || IsTableNumberRow(row) || IsHeaderLabelRow(row) {
			break
		}
		if name := strings.TrimSpace(m.itemName(row)); name != "" {
			break
		}
		probe := m.readRow(g, i)
		took := false
		if lr.Unit == "" && probe.Unit != "" {
			lr.Unit = probe.Unit
			took = true
		}
		if lr.Quantity == "" && probe.Quantity != "" {
			lr.Quantity = probe.Quantity
			took = true
		}
		if lr.UnitPrice == "" && probe.UnitPrice != "" {
			lr.UnitPrice = probe.UnitPrice
			took = true
		}
		if lr.Amount == "" && probe.Amount != "" {
			lr.Amount = probe.Amount
			took = true
		}
		if lr.Notes == "" && probe.Notes != "" {
			lr.Notes = probe.Notes
			took = true
		}
		if lr.Code == "" && probe.Code != "" {
			lr.Code = probe.Code
			took = true
		}
		if took {
			lr.EndRow = i
		}
	}

	m.snapshotRaw(&lr)
	return lr, lr.EndRow
}

func (m *Merger) snapshotRaw(lr *models.LogicalRow) {
	raw := map[string]string{
		"名称・規格": lr.ItemName,
		"単位":    lr.Unit,
		"数量":    lr.Quantity,
		"単価":    lr.UnitPrice,
		"金額":    lr.Amount,
		"摘要":    lr.Notes,
	}
	if lr.Code != "" {
		raw["明細単価番号"] = lr.Code
	}
	lr.RawFields = raw
}
