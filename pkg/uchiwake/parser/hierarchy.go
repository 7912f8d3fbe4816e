package parser

import (
	"strings"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// Level returns the hierarchy depth encoded in an item name's leading
// ideographic spaces. One U+3000 is one level; depth 0 is a top-level
// cost item.
func Level(itemName string) int {
	return len(itemName) - len(strings.TrimLeft(itemName, "　"))
}

// StripIndent removes the leading ideographic spaces from an item name.
func StripIndent(itemName string) string {
	return strings.TrimLeft(itemName, "　")
}

// BuildForest arranges logical rows into trees by indentation depth.
// A row at depth L becomes a child of the most recent row at depth L-1;
// rows deeper than their possible parent are clamped to the next open
// slot. The parent stack survives table boundaries, so items split
// across pages keep their ancestry.
func BuildForest(rows []models.LogicalRow) []*models.Node {
	var (
		roots []*models.Node
		stack []*models.Node
	)

	for i := range rows {
		r := &rows[i]
		if strings.TrimSpace(strings.ReplaceAll(r.ItemName, "　", "")) == "" {
			continue
		}

		level := Level(r.ItemName)
		if level > len(stack) {
			level = len(stack)
		}

		node := &models.Node{
			ItemName:    r.ItemName,
			Unit:        r.Unit,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      r.Amount,
			Notes:       r.Notes,
			Level:       level,
			RawFields:   r.RawFields,
			TableNumber: r.TableNumber,
		}

		stack = stack[:level]
		if level == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[level-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
