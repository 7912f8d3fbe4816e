// Package parser implements the grid-scanning core: text normalization,
// reference detection, column-header location, row-span merging, the
// subtable assembly state machine, and hierarchy construction.
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Clean returns text trimmed with internal whitespace runs (including
// full-width space) collapsed to a single ASCII space. Idempotent.
func Clean(text string) string {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// Canonical returns the matching form of text: full-width digits, Latin
// letters and spaces folded to half-width, with all whitespace removed.
// Substring comparisons against labels and markers always use this form.
// Idempotent: Canonical(Canonical(s)) == Canonical(s).
func Canonical(text string) string {
	folded := width.Fold.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// canonicalLabel additionally strips the interpuncts some header labels
// carry (名称・規格 vs 名称規格).
func canonicalLabel(text string) string {
	s := Canonical(text)
	s = strings.ReplaceAll(s, "・", "")
	s = strings.ReplaceAll(s, "･", "")
	return s
}
