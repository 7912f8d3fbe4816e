package parser

import (
	"regexp"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// Reference numbers identify subtables: one or more ideographs, digits,
// and the 号 terminator (内1号, 単12号, …). The dialect form carries a
// single trailing ideograph after the terminator (単12号明), used by the
// detail-price-code layout family.
var (
	refPattern        = regexp.MustCompile(`[\x{4e00}-\x{9faf}々]+[0-9]+号`)
	refDialectPattern = regexp.MustCompile(`[\x{4e00}-\x{9faf}々][0-9]+号[\x{4e00}-\x{9faf}々]`)
)

// referenceColumnLimit bounds reference detection to the leading columns;
// matches further right are remark-column back-references, not headers.
const referenceColumnLimit = 4

// ScanRow returns the first reference number found in the leading
// columns of row, matched against canonical cell text.
func ScanRow(row []string) (string, bool) {
	limit := referenceColumnLimit
	if len(row) < limit {
		limit = len(row)
	}
	for col := 0; col < limit; col++ {
		canon := Canonical(row[col])
		if canon == "" {
			continue
		}
		if m := refDialectPattern.FindString(canon); m != "" {
			return m, true
		}
		if m := refPattern.FindString(canon); m != "" {
			return m, true
		}
	}
	return "", false
}

// ScanGrid returns every reference found in g in source order. Duplicate
// base references are reported once; disambiguation suffixes are applied
// later, when subtables are assembled.
func ScanGrid(g *models.Grid) []string {
	var refs []string
	seen := make(map[string]bool)
	for i := 0; i < g.NumRows(); i++ {
		ref, ok := ScanRow(g.Row(i))
		if !ok || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

// ContainsReference reports whether any leading cell of row matches a
// reference pattern.
func ContainsReference(row []string) bool {
	_, ok := ScanRow(row)
	return ok
}
