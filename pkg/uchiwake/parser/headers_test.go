package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

func TestLocateColumns(t *testing.T) {
	t.Run("standard subtable header", func(t *testing.T) {
		cols := LocateColumns([]string{"", "名称・規格", "単位", "数量", "単価", "金額", "摘要"})
		require.NotNil(t, cols)
		assert.Equal(t, 1, cols[models.FieldItemName])
		assert.Equal(t, 2, cols[models.FieldUnit])
		assert.Equal(t, 3, cols[models.FieldQuantity])
		assert.Equal(t, 4, cols[models.FieldUnitPrice])
		assert.Equal(t, 5, cols[models.FieldAmount])
		assert.Equal(t, 6, cols[models.FieldNotes])
	})

	t.Run("spaced variant labels", func(t *testing.T) {
		cols := LocateColumns([]string{"名 称 ・ 規 格", "単　位", "数 量"})
		require.NotNil(t, cols)
		assert.Equal(t, 0, cols[models.FieldItemName])
		assert.Equal(t, 1, cols[models.FieldUnit])
		assert.Equal(t, 2, cols[models.FieldQuantity])
	})

	t.Run("main table composite label", func(t *testing.T) {
		cols := LocateColumns([]string{"費目・工種・種別・細別", "単位", "数量", "単価", "金額"})
		require.NotNil(t, cols)
		assert.Equal(t, 0, cols[models.FieldItemName])
	})

	t.Run("one field is not a header", func(t *testing.T) {
		assert.Nil(t, LocateColumns([]string{"", "名称", "", ""}))
	})

	t.Run("data row is not a header", func(t *testing.T) {
		assert.Nil(t, LocateColumns([]string{"", "配管工事", "本", "10", "5000", "50000"}))
	})

	t.Run("column consumed once", func(t *testing.T) {
		// 名称 and 規格 are both item-name variants; only the first cell
		// may claim the field.
		cols := LocateColumns([]string{"名称", "規格", "単位"})
		require.NotNil(t, cols)
		assert.Equal(t, 0, cols[models.FieldItemName])
		assert.Equal(t, 2, cols[models.FieldUnit])
	})

	t.Run("detail price code column", func(t *testing.T) {
		cols := LocateColumns([]string{"名称", "単位", "数量", "明細単価番号"})
		require.NotNil(t, cols)
		assert.Equal(t, 3, cols[models.FieldCode])
	})
}

func TestLocateColumnsNear(t *testing.T) {
	g := models.NewGrid("s", [][]string{
		{"内1号"},
		{"何か別の行"},
		{"名称", "単位", "数量"},
		{"配管", "本", "3"},
	})
	cols, headerRow, ok := LocateColumnsNear(g, 1, 3)
	require.True(t, ok)
	assert.Equal(t, 2, headerRow)
	assert.Equal(t, 0, cols[models.FieldItemName])

	_, _, ok = LocateColumnsNear(g, 3, 1)
	assert.False(t, ok)
}

func TestFillColumnDefaults(t *testing.T) {
	cols := models.ColumnMap{models.FieldItemName: 0, models.FieldUnit: 3}
	cols = FillColumnDefaults(cols)
	assert.Equal(t, 0, cols[models.FieldItemName])
	assert.Equal(t, 3, cols[models.FieldUnit])
	assert.Equal(t, 4, cols[models.FieldQuantity])
	assert.Equal(t, 6, cols[models.FieldAmount])

	full := FillColumnDefaults(nil)
	assert.Equal(t, DefaultColumnMap(), full)
}
