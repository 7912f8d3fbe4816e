package verify

import (
	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// VerifyRowCalculations annotates every node, at every level, for which
// unit price, quantity and amount are all stated, checking
// unit_price × quantity against the stated amount. Blank or
// non-positive fields leave the node unannotated: the absence of the
// check is informative and must stay distinct from a failed check. A
// populated field that fails to parse produces a failed record with the
// parse error.
func VerifyRowCalculations(roots []*models.Node) {
	for _, r := range roots {
		r.Walk(verifyRowCalculation)
	}
}

func verifyRowCalculation(n *models.Node) {
	if n.UnitPrice == "" || n.Quantity == "" || n.Amount == "" {
		return
	}

	unitPrice, err := ParseAmount(n.UnitPrice)
	if err != nil {
		n.CalculationVerification = &models.VerificationRecord{Error: err.Error()}
		return
	}
	quantity, err := ParseAmount(n.Quantity)
	if err != nil {
		n.CalculationVerification = &models.VerificationRecord{Error: err.Error()}
		return
	}
	amount, err := ParseAmount(n.Amount)
	if err != nil {
		n.CalculationVerification = &models.VerificationRecord{Error: err.Error()}
		return
	}

	if unitPrice <= 0 || quantity <= 0 || amount <= 0 {
		return
	}
	n.CalculationVerification = matched(unitPrice*quantity, amount)
}
