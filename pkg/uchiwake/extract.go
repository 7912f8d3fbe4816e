package uchiwake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/parser"
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/verify"
)

// mainHeaderMarkers identify the estimate main-table header row: the
// composite item-name label spelled across one or more cells.
var mainHeaderMarkers = []string{"費目", "工種", "種別"}

// ExtractSubtables runs the subtable assembly state machine over the
// given grids in order. The grids must belong to one document: the
// global stop flag and the reference occurrence counters span all of
// them.
func ExtractSubtables(grids []*models.Grid, opts Options) []models.Subtable {
	session := newSession(opts)
	var out []models.Subtable
	for _, g := range grids {
		out = append(out, session.Assemble(g)...)
	}
	return out
}

func newSession(opts Options) *parser.Session {
	session := parser.NewSession(opts.logger(), opts.Titles, opts.stopPhrase())
	if opts.Lookahead {
		session = session.WithLookahead()
	}
	return session
}

// Extract opens a workbook and extracts the subtables of every selected
// sheet. Sheet selection follows Options.Sheets; a named sheet that does
// not exist is fatal.
func Extract(path string, opts Options) (*models.WorkbookResult, error) {
	f, sheets, err := openWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	session := newSession(opts)

	result := &models.WorkbookResult{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetResult),
	}
	for _, sheetName := range sheets {
		g, err := readGrid(f, sheetName)
		if err != nil {
			return nil, NewExtractionError(sheetName, "grid", err)
		}
		result.Sheets[sheetName] = models.SheetResult{
			Subtables: session.Assemble(g),
		}
	}
	return result, nil
}

// VerifyWorkbook opens a workbook, extracts the hierarchical main table
// of every selected sheet, runs all verification passes, and returns
// per-sheet items and reports. A sheet without a recognizable main
// table yields a failed report for that sheet, not an error.
func VerifyWorkbook(path string, opts Options) (*models.WorkbookResult, error) {
	f, sheets, err := openWorkbook(path, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log := opts.logger()
	result := &models.WorkbookResult{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetResult),
	}
	for _, sheetName := range sheets {
		g, err := readGrid(f, sheetName)
		if err != nil {
			return nil, NewExtractionError(sheetName, "grid", err)
		}
		items, report := VerifySheet(g, opts)
		result.Sheets[sheetName] = models.SheetResult{
			Items:  items,
			Report: report,
		}
		log.Debug("sheet verified",
			zap.String("sheet", sheetName),
			zap.Int("total_items", report.TotalItems),
			zap.Int("mismatches", report.MismatchedItems))
	}
	return result, nil
}

// VerifySheet extracts the hierarchical main table from one grid and
// runs every verification pass over it. The returned report's
// extraction-successful flag is false when the grid has no main table.
func VerifySheet(g *models.Grid, opts Options) ([]*models.Node, *models.Report) {
	rows, ok := collectMainTableRows(g, opts)
	if !ok {
		return nil, &models.Report{
			Mismatches:    []models.AggregateMismatch{},
			RowMismatches: []models.RowCalculationMismatch{},
			ErrorMessage:  ErrNoMainTable.Error(),
		}
	}

	roots := parser.BuildForest(rows)
	for _, r := range roots {
		r.Walk(func(n *models.Node) { n.IsMainTable = true })
	}

	verify.VerifyAmounts(roots)
	verify.VerifyRowCalculations(roots)
	cross := verify.CrossVerify(roots)
	report := verify.BuildReport(roots, cross)
	return roots, report
}

// findMainHeader locates the estimate header row at or after start: a
// row carrying all of the composite item-name markers.
func findMainHeader(g *models.Grid, start int) (int, bool) {
	for i := start; i < g.NumRows(); i++ {
		var joined strings.Builder
		for _, cell := range g.Row(i) {
			joined.WriteString(parser.Canonical(cell))
		}
		found := true
		for _, marker := range mainHeaderMarkers {
			if !strings.Contains(joined.String(), marker) {
				found = false
				break
			}
		}
		if found {
			return i, true
		}
	}
	return 0, false
}

// collectMainTableRows walks the sheet's main table, spanning multiple
// physical table blocks: a table-number row records the ordinal and
// sends the scan hunting for the next header, and the logical row
// stream continues so hierarchy and formulas can cross block
// boundaries.
func collectMainTableRows(g *models.Grid, opts Options) ([]models.LogicalRow, bool) {
	log := opts.logger()
	stop := opts.stopPhrase()

	headerRow, ok := findMainHeader(g, 0)
	if !ok {
		return nil, false
	}

	cols := parser.FillColumnDefaults(parser.LocateColumns(g.Row(headerRow)))
	merger := parser.NewMerger(cols)

	var rows []models.LogicalRow
	tableNumber := 1
	for i := headerRow + 1; i < g.NumRows(); i++ {
		row := g.Row(i)

		if stop != "" && rowContains(row, stop) {
			log.Info("stop phrase reached", zap.String("grid", g.Name), zap.Int("row", i))
			break
		}
		if n, isNumber := parser.TableNumber(row); isNumber {
			// End of one physical block. The next block restates the
			// header; hierarchy state carries across.
			next, found := findMainHeader(g, i+1)
			if !found {
				break
			}
			tableNumber = n + 1
			i = next
			continue
		}
		if parser.IsEmptyRow(row) || parser.IsHeaderLabelRow(row) ||
			parser.IsMeaninglessRow(row) || parser.IsSheetTitleRow(row) {
			continue
		}

		lr, end := merger.Merge(g, i)
		if lr.IsBlank() {
			continue
		}
		lr.TableNumber = tableNumber
		rows = append(rows, lr)
		i = end
	}
	return rows, true
}

func rowContains(row []string, phrase string) bool {
	want := parser.Canonical(phrase)
	for _, cell := range row {
		if strings.Contains(parser.Canonical(cell), want) {
			return true
		}
	}
	return false
}

func openWorkbook(path string, opts Options) (*excelize.File, []string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	sheets, err := selectSheets(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, sheets, nil
}

// selectSheets resolves the sheets to process. With no explicit names,
// every sheet after the first is used; estimate workbooks put the cover
// summary on the first sheet.
func selectSheets(f *excelize.File, opts Options) ([]string, error) {
	list := f.GetSheetList()
	if len(opts.Sheets) == 0 {
		if len(list) > 1 {
			return list[1:], nil
		}
		return list, nil
	}

	known := make(map[string]bool, len(list))
	for _, name := range list {
		known[name] = true
	}
	for _, name := range opts.Sheets {
		if !known[name] {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
		}
	}
	return opts.Sheets, nil
}

func readGrid(f *excelize.File, sheetName string) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return models.NewGrid(sheetName, rows), nil
}
