package verify

import (
	"fmt"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// BuildReport reconciles the in-place amount verification with the
// independent cross pass into one report. Aggregate mismatches from the
// two passes are deduplicated by item name, level and table identity;
// row-calculation failures are published separately and never
// deduplicated against aggregate mismatches.
func BuildReport(roots []*models.Node, cross []models.AggregateMismatch) *models.Report {
	report := &models.Report{
		TotalItems:           len(roots),
		ExtractionSuccessful: true,
		Mismatches:           []models.AggregateMismatch{},
		RowMismatches:        []models.RowCalculationMismatch{},
	}

	seen := make(map[string]bool)
	add := func(m models.AggregateMismatch) {
		key := mismatchKey(m.ItemName, m.Level, m.ReferenceNumber, m.TableNumber)
		if seen[key] {
			return
		}
		seen[key] = true
		report.Mismatches = append(report.Mismatches, m)
	}

	for _, n := range roots {
		if v := n.AmountVerification; v != nil && !v.IsMatched {
			add(models.AggregateMismatch{
				ItemName:        n.ItemName,
				Level:           n.Level,
				Amount:          v.Actual,
				Expected:        v.Expected,
				Difference:      v.Difference,
				TableNumber:     n.TableNumber,
				ReferenceNumber: n.ReferenceNumber,
			})
		}
	}
	for _, m := range cross {
		add(m)
	}

	for _, r := range roots {
		r.Walk(func(n *models.Node) {
			v := n.CalculationVerification
			if v == nil || v.IsMatched {
				return
			}
			report.RowMismatches = append(report.RowMismatches, models.RowCalculationMismatch{
				ItemName:        n.ItemName,
				Level:           n.Level,
				UnitPrice:       n.UnitPrice,
				Quantity:        n.Quantity,
				ExpectedAmount:  v.Expected,
				ActualAmount:    v.Actual,
				Difference:      v.Difference,
				Error:           v.Error,
				TableNumber:     n.TableNumber,
				ReferenceNumber: n.ReferenceNumber,
			})
		})
	}

	report.MismatchedItems = len(report.Mismatches)
	report.VerifiedItems = report.TotalItems - report.MismatchedItems
	if report.VerifiedItems < 0 {
		report.VerifiedItems = 0
	}
	report.BusinessLogicVerified = len(report.Mismatches) == 0 && len(report.RowMismatches) == 0
	return report
}

// mismatchKey prefers the reference number over the table number as the
// table identity.
func mismatchKey(itemName string, level int, ref string, table int) string {
	if ref != "" {
		return fmt.Sprintf("%s|%d|r:%s", itemName, level, ref)
	}
	return fmt.Sprintf("%s|%d|t:%d", itemName, level, table)
}
