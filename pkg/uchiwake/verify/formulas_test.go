package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want FormulaKind
	}{
		{"直接工事費", FormulaDirectCost},
		{"純工事費", FormulaNetCost},
		{"工事原価", FormulaCostBasis},
		{"工事価格", FormulaConstructionPrice},
		{"工事費計", FormulaGrandTotal},
		{"　直接工事費", FormulaDirectCost},
		{"直 接 工 事 費", FormulaDirectCost},
		{"配管工事", FormulaPlain},
		// Containing a label is not being a label.
		{"直接工事費内訳", FormulaPlain},
		{"", FormulaPlain},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.name), "name %q", tt.name)
	}
}

// fullSegment models a standard estimate summary chain.
func fullSegment() []*models.Node {
	return []*models.Node{
		node("土木工事", "500"),
		node("舗装工事", "500"),
		node("直接工事費", "1000"),
		node("共通仮設費", "200"),
		node("純工事費", "1200"),
		node("工事原価", "1500", node("　現場管理費", "300")),
		node("工事価格", "1700", node("　一般管理費等", "200")),
		node("消費税額及び地方消費税額", "170"),
		node("工事費計", "1870"),
	}
}

func TestExpectedAggregateChain(t *testing.T) {
	seg := fullSegment()

	assert.Equal(t, 1000.0, ExpectedAggregate(FormulaDirectCost, seg, 2))
	assert.Equal(t, 1200.0, ExpectedAggregate(FormulaNetCost, seg, 4))
	assert.Equal(t, 1500.0, ExpectedAggregate(FormulaCostBasis, seg, 5))
	assert.Equal(t, 1700.0, ExpectedAggregate(FormulaConstructionPrice, seg, 6))
	assert.Equal(t, 1870.0, ExpectedAggregate(FormulaGrandTotal, seg, 8))
}

func TestVerifyAmountsFullChainMatches(t *testing.T) {
	roots := fullSegment()
	VerifyAmounts(roots)

	for _, n := range roots {
		require.NotNil(t, n.AmountVerification, "node %s", n.ItemName)
		assert.True(t, n.AmountVerification.IsMatched, "node %s", n.ItemName)
	}
}

func TestNamedFormulaChecksBeforeLeafRule(t *testing.T) {
	// Childless named nodes still use their formula; a mismatching net
	// cost must not be trivially matched just because it has no
	// children.
	seg := []*models.Node{
		node("直接工事費", "1000"),
		node("項目A", "200"),
		node("純工事費", "1200"),
		node("工事原価", "1200", node("　現場管理費", "0")),
	}
	VerifyAmounts(seg)

	net := seg[2]
	require.NotNil(t, net.AmountVerification)
	assert.True(t, net.AmountVerification.IsMatched)
	assert.Equal(t, 1200.0, net.AmountVerification.Expected)

	basis := seg[3]
	require.NotNil(t, basis.AmountVerification)
	assert.True(t, basis.AmountVerification.IsMatched)
	assert.Equal(t, 1200.0, basis.AmountVerification.Expected)
}

func TestDegradedLookupsContributeZero(t *testing.T) {
	// No direct-cost line, no site-management child, no tax sibling:
	// every lookup degrades to 0 instead of failing.
	seg := []*models.Node{
		node("項目A", "300"),
		node("純工事費", "300"),
		node("工事原価", "300"),
		node("工事価格", "300"),
		node("工事費計", "300"),
	}

	assert.Equal(t, 300.0, ExpectedAggregate(FormulaNetCost, seg, 1))
	assert.Equal(t, 300.0, ExpectedAggregate(FormulaCostBasis, seg, 2))
	assert.Equal(t, 300.0, ExpectedAggregate(FormulaConstructionPrice, seg, 3))
	assert.Equal(t, 300.0, ExpectedAggregate(FormulaGrandTotal, seg, 4))
}

func TestSegmentsResetFormulaState(t *testing.T) {
	roots := append(fullSegment(), fullSegment()...)
	VerifyAmounts(roots)

	for i, n := range roots {
		require.NotNil(t, n.AmountVerification, "node %d %s", i, n.ItemName)
		assert.True(t, n.AmountVerification.IsMatched, "node %d %s", i, n.ItemName)
	}
}
