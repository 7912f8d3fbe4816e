package verify

import (
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/parser"
)

// FormulaKind names the aggregate formula a level-0 label binds to.
// Plain nodes use the generic children sum.
type FormulaKind int

const (
	FormulaPlain FormulaKind = iota
	FormulaDirectCost
	FormulaNetCost
	FormulaCostBasis
	FormulaConstructionPrice
	FormulaGrandTotal
)

const (
	labelDirectCost        = "直接工事費"
	labelNetCost           = "純工事費"
	labelCostBasis         = "工事原価"
	labelConstructionPrice = "工事価格"
	labelGrandTotal        = "工事費計"
	labelSiteManagement    = "現場管理費"
	labelGeneralAdmin      = "一般管理費等"
	labelConsumptionTax    = "消費税額及び地方消費税額"
)

// KindOf resolves an item name to its formula kind. Indentation and
// spacing are ignored; only exact label matches bind a formula, so
// ordinary items whose names merely contain a label stay Plain.
func KindOf(itemName string) FormulaKind {
	switch parser.Canonical(itemName) {
	case labelDirectCost:
		return FormulaDirectCost
	case labelNetCost:
		return FormulaNetCost
	case labelCostBasis:
		return FormulaCostBasis
	case labelConstructionPrice:
		return FormulaConstructionPrice
	case labelGrandTotal:
		return FormulaGrandTotal
	}
	return FormulaPlain
}

// ExpectedAggregate computes the expected amount for segment[idx] under
// the given formula kind. Every sibling/child lookup degrades to 0 when
// the referenced node is absent or unparsable; omitted optional line
// items are legitimate, not an error.
func ExpectedAggregate(kind FormulaKind, segment []*models.Node, idx int) float64 {
	switch kind {
	case FormulaDirectCost:
		return sumRange(segment, 0, idx)

	case FormulaNetCost:
		// Direct cost plus everything stated between it and the net
		// cost line. With no direct-cost line the sum runs from the
		// segment start, which is the same total.
		di := indexOfKind(segment, FormulaDirectCost, idx)
		base := amountAt(segment, di)
		return base + sumRange(segment, di+1, idx)

	case FormulaCostBasis:
		base := amountAt(segment, indexOfKind(segment, FormulaNetCost, idx))
		return base + childAmount(segment[idx], labelSiteManagement)

	case FormulaConstructionPrice:
		base := amountAt(segment, indexOfKind(segment, FormulaCostBasis, idx))
		return base + childAmount(segment[idx], labelGeneralAdmin)

	case FormulaGrandTotal:
		base := amountAt(segment, indexOfKind(segment, FormulaConstructionPrice, idx))
		return base + siblingAmount(segment, labelConsumptionTax)
	}
	return 0
}

// indexOfKind finds the nearest node of the wanted kind preceding
// before, or -1.
func indexOfKind(segment []*models.Node, kind FormulaKind, before int) int {
	for i := before - 1; i >= 0; i-- {
		if KindOf(segment[i].ItemName) == kind {
			return i
		}
	}
	return -1
}

func amountAt(segment []*models.Node, i int) float64 {
	if i < 0 || i >= len(segment) {
		return 0
	}
	return ParseAmountOrZero(segment[i].Amount)
}

func sumRange(segment []*models.Node, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	var sum float64
	for i := from; i < to && i < len(segment); i++ {
		sum += ParseAmountOrZero(segment[i].Amount)
	}
	return sum
}

func childAmount(n *models.Node, label string) float64 {
	for _, c := range n.Children {
		if parser.Canonical(c.ItemName) == label {
			return ParseAmountOrZero(c.Amount)
		}
	}
	return 0
}

func siblingAmount(segment []*models.Node, label string) float64 {
	for _, n := range segment {
		if parser.Canonical(n.ItemName) == label {
			return ParseAmountOrZero(n.Amount)
		}
	}
	return 0
}
