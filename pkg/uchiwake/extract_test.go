package uchiwake

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// writeTestWorkbook builds a workbook with a cover sheet, a main
// breakdown sheet, and a subtable sheet.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "表紙"))
	require.NoError(t, f.SetCellValue("表紙", "A1", "工事費内訳書"))

	_, err := f.NewSheet("内訳")
	require.NoError(t, err)
	breakdown := [][]interface{}{
		{"金額内訳書"},
		{"", "費目・工種・種別・細別", "単位", "", "数量", "単価", "金額", "摘要"},
		{"", "土木工事", "", "", "", "", 1000},
		{"", "　土工事", "式", "", 1, 600, 600},
		{"", "　舗装工事", "式", "", 1, 400, 400},
		{"", "直接工事費", "", "", "", "", 1000},
		{"", "純工事費", "", "", "", "", 1000},
		{"", "工事原価", "", "", "", "", 1300},
		{"", "　現場管理費", "", "", "", "", 300},
		{"", "工事価格", "", "", "", "", 1500},
		{"", "　一般管理費等", "", "", "", "", 200},
		{"", "消費税額及び地方消費税額", "", "", "", "", 150},
		{"", "工事費計", "", "", "", "", 1650},
		{"以下余白"},
	}
	for i, row := range breakdown {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("内訳", cell, &row))
	}

	_, err = f.NewSheet("明細")
	require.NoError(t, err)
	detail := [][]interface{}{
		{"内1号"},
		{"", "名称・規格", "単位", "数量", "単価", "金額"},
		{"", "配管工事", "本", 10, 5000, 50000},
		{"計", "", "", "", "", 50000},
	}
	for i, row := range detail {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("明細", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract(t *testing.T) {
	path := writeTestWorkbook(t)

	result, err := Extract(path, Options{Sheets: []string{"明細"}})
	require.NoError(t, err)
	assert.Equal(t, "estimate.xlsx", result.BookName)

	sheet, ok := result.Sheets["明細"]
	require.True(t, ok)
	require.Len(t, sheet.Subtables, 1)

	st := sheet.Subtables[0]
	assert.Equal(t, "内1号", st.ReferenceNumber)
	require.Len(t, st.Rows, 1)
	assert.Equal(t, "配管工事", st.Rows[0].ItemName)
	assert.Equal(t, "50000", st.Rows[0].Amount)
}

func TestExtractDefaultSheetSelection(t *testing.T) {
	path := writeTestWorkbook(t)

	result, err := Extract(path, Options{})
	require.NoError(t, err)

	// Every sheet after the cover is processed.
	assert.Len(t, result.Sheets, 2)
	assert.Contains(t, result.Sheets, "内訳")
	assert.Contains(t, result.Sheets, "明細")
	assert.NotContains(t, result.Sheets, "表紙")
}

func TestExtractMissingSheet(t *testing.T) {
	path := writeTestWorkbook(t)

	_, err := Extract(path, Options{Sheets: []string{"存在しない"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestVerifyWorkbook(t *testing.T) {
	path := writeTestWorkbook(t)

	result, err := VerifyWorkbook(path, Options{Sheets: []string{"内訳"}})
	require.NoError(t, err)

	sheet, ok := result.Sheets["内訳"]
	require.True(t, ok)
	require.NotNil(t, sheet.Report)

	report := sheet.Report
	assert.True(t, report.ExtractionSuccessful)
	assert.True(t, report.BusinessLogicVerified, "mismatches: %+v", report.Mismatches)
	assert.Equal(t, 7, report.TotalItems)
	assert.Equal(t, 7, report.VerifiedItems)
	assert.Empty(t, report.Mismatches)
	assert.Empty(t, report.RowMismatches)
}

func TestVerifySheetHierarchy(t *testing.T) {
	g := models.NewGrid("内訳", [][]string{
		{"", "費目・工種・種別・細別", "単位", "", "数量", "単価", "金額"},
		{"", "土木工事", "", "", "", "", "1000"},
		{"", "　土工事", "式", "", "1", "600", "600"},
		{"", "　舗装工事", "式", "", "1", "400", "400"},
	})

	items, report := VerifySheet(g, Options{})
	require.Len(t, items, 1)

	root := items[0]
	assert.Equal(t, "土木工事", root.ItemName)
	assert.True(t, root.IsMainTable)
	require.Len(t, root.Children, 2)
	assert.Equal(t, 1, root.Children[0].Level)

	require.NotNil(t, root.AmountVerification)
	assert.True(t, root.AmountVerification.IsMatched)

	child := root.Children[0]
	require.NotNil(t, child.CalculationVerification)
	assert.True(t, child.CalculationVerification.IsMatched)

	assert.True(t, report.BusinessLogicVerified)
}

func TestVerifySheetNoMainTable(t *testing.T) {
	g := models.NewGrid("その他", [][]string{
		{"ただのメモ"},
		{"内容なし"},
	})

	items, report := VerifySheet(g, Options{})
	assert.Nil(t, items)
	assert.False(t, report.ExtractionSuccessful)
	assert.NotEmpty(t, report.ErrorMessage)
}

func TestVerifySheetSpansTableBlocks(t *testing.T) {
	// A bare table-number row ends one block; the hierarchy continues
	// into the next block under its restated header.
	g := models.NewGrid("内訳", [][]string{
		{"", "費目・工種・種別・細別", "単位", "", "数量", "単価", "金額"},
		{"", "土木工事", "", "", "", "", "1000"},
		{"", "　土工事", "", "", "", "", "600"},
		{"", "1", "", "", "", "", ""},
		{"", "費目・工種・種別・細別", "単位", "", "数量", "単価", "金額"},
		{"", "　舗装工事", "", "", "", "", "400"},
	})

	items, report := VerifySheet(g, Options{})
	require.Len(t, items, 1)

	root := items[0]
	require.Len(t, root.Children, 2)
	assert.Equal(t, 1, root.Children[0].TableNumber)
	assert.Equal(t, 2, root.Children[1].TableNumber)

	require.NotNil(t, root.AmountVerification)
	assert.True(t, root.AmountVerification.IsMatched)
	assert.True(t, report.BusinessLogicVerified)
}
