package verify

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// CrossVerify re-checks the forest independently of the amount
// verifier's in-place annotations: every parent node at any level is
// compared against the sum of its direct children, and the named
// aggregate formulas are re-derived per level-0 segment. The check runs
// on a deep copy of the forest so neither pass can contaminate the
// other's input.
func CrossVerify(roots []*models.Node) []models.AggregateMismatch {
	var copied []*models.Node
	if err := deepcopy.Copy(&copied, roots); err != nil {
		// A plain-data tree always copies; a failure here means the
		// forest itself is malformed, so report nothing extra.
		return nil
	}

	var out []models.AggregateMismatch

	record := func(n *models.Node, expected, actual float64) {
		diff := actual - expected
		if diff <= Tolerance && diff >= -Tolerance {
			return
		}
		out = append(out, models.AggregateMismatch{
			ItemName:        n.ItemName,
			Level:           n.Level,
			Amount:          actual,
			Expected:        expected,
			Difference:      diff,
			TableNumber:     n.TableNumber,
			ReferenceNumber: n.ReferenceNumber,
		})
	}

	for _, seg := range Segments(copied) {
		for i, n := range seg {
			if kind := KindOf(n.ItemName); kind != FormulaPlain {
				record(n, ExpectedAggregate(kind, seg, i), ParseAmountOrZero(n.Amount))
			}
			n.Walk(func(node *models.Node) {
				if len(node.Children) == 0 || KindOf(node.ItemName) != FormulaPlain {
					return
				}
				record(node, childrenSum(node), ParseAmountOrZero(node.Amount))
			})
		}
	}
	return out
}
