// Package verify implements the layered numeric checks over an
// extracted cost hierarchy: per-parent children sums, the named
// aggregate formulas of the standard estimate summary, row-level
// price-times-quantity checks, and an independent cross pass.
package verify

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// Tolerance is the fixed epsilon under which two amounts compare equal.
// It applies to every comparison in this package.
const Tolerance = 0.01

var amountCleaner = strings.NewReplacer(",", "", "，", "", " ", "", "　", "", "\t", "")

// ParseAmount converts cell text to a number, tolerating full-width
// digits, thousands separators and stray spaces in either width.
func ParseAmount(text string) (float64, error) {
	cleaned := amountCleaner.Replace(width.Fold.String(text))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", text, err)
	}
	return v, nil
}

// ParseAmountOrZero is the degraded-mode variant used by aggregate
// math: unparsable or missing amounts contribute nothing.
func ParseAmountOrZero(text string) float64 {
	v, err := ParseAmount(text)
	if err != nil {
		return 0
	}
	return v
}

func matched(expected, actual float64) *models.VerificationRecord {
	diff := actual - expected
	return &models.VerificationRecord{
		IsMatched:  diff <= Tolerance && diff >= -Tolerance,
		Expected:   expected,
		Actual:     actual,
		Difference: diff,
	}
}

// Segments splits a level-0 node sequence immediately after each grand
// total. Summary sheets restate the full formula chain once per
// construction phase, so each segment is verified independently.
func Segments(roots []*models.Node) [][]*models.Node {
	var segs [][]*models.Node
	start := 0
	for i, n := range roots {
		if KindOf(n.ItemName) == FormulaGrandTotal {
			segs = append(segs, roots[start:i+1])
			start = i + 1
		}
	}
	if start < len(roots) {
		segs = append(segs, roots[start:])
	}
	return segs
}

// VerifyAmounts annotates every level-0 node with an amount
// verification record. Nodes carrying one of the named aggregate labels
// are checked against their dedicated formula; nodes without children
// trivially match; everything else is checked against the sum of its
// direct children's amounts.
func VerifyAmounts(roots []*models.Node) {
	for _, seg := range Segments(roots) {
		for i, n := range seg {
			actual := ParseAmountOrZero(n.Amount)

			var expected float64
			switch kind := KindOf(n.ItemName); {
			case kind != FormulaPlain:
				expected = ExpectedAggregate(kind, seg, i)
			case len(n.Children) == 0:
				expected = actual
			default:
				expected = childrenSum(n)
			}
			n.AmountVerification = matched(expected, actual)
		}
	}
}

func childrenSum(n *models.Node) float64 {
	var sum float64
	for _, c := range n.Children {
		sum += ParseAmountOrZero(c.Amount)
	}
	return sum
}
