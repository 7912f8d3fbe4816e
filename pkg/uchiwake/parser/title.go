package parser

import (
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// TitleExtractor recovers the descriptive title of a subtable from the
// rows between its reference number and its column header. Extraction
// is best effort: implementations return nil when the layout carries no
// recognizable title, and callers treat a nil title as absent.
type TitleExtractor interface {
	Title(g *models.Grid, refRow, headerRow int) *models.TableTitle
}

// markerTitleExtractor reads titles from dense reference rows that carry
// 単位 and 単位数量 marker cells followed by their values. Sparse
// reference rows (the common case) yield no title.
type markerTitleExtractor struct{}

// DefaultTitleExtractor returns the marker-cell title extractor.
func DefaultTitleExtractor() TitleExtractor {
	return markerTitleExtractor{}
}

const titleRowMinCells = 6

func (markerTitleExtractor) Title(g *models.Grid, refRow, headerRow int) *models.TableTitle {
	row := g.Row(refRow)

	var cells []string
	for _, cell := range row {
		if c := Clean(cell); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < titleRowMinCells {
		return nil
	}

	title := &models.TableTitle{}
	for i, cell := range cells {
		switch Canonical(cell) {
		case "単位数量":
			if i+1 < len(cells) {
				title.UnitQuantity = cells[i+1]
			}
		case "単位":
			if i+1 < len(cells) {
				title.Unit = cells[i+1]
			}
		}
	}
	if title.Unit == "" && title.UnitQuantity == "" {
		return nil
	}

	// The item name is the first cell after the reference number that is
	// not a marker or a marker value.
	for i := 1; i < len(cells); i++ {
		c := Canonical(cells[i])
		if c == "単位" || c == "単位数量" {
			break
		}
		title.ItemName = cells[i]
		break
	}
	return title
}
