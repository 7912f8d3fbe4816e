// Package uchiwake extracts itemized cost-breakdown subtables from
// construction estimate workbooks, rebuilds their indentation
// hierarchy, and verifies numeric consistency between stated amounts
// and their derivable components.
package uchiwake

import (
	"go.uber.org/zap"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/parser"
)

// Options configures extraction and verification behavior.
type Options struct {
	// Logger receives structured diagnostics (skipped references,
	// degraded formulas). If nil, logging is disabled.
	Logger *zap.Logger
	// Sheets names the sheets to process. If empty, every sheet after
	// the first is processed; the first sheet of an estimate workbook is
	// conventionally the cover page.
	Sheets []string
	// StopPhrase ends structured content for the whole workbook once a
	// cell's canonical text contains it. If nil, the standard phrase is
	// used; point at an empty string to disable the global stop.
	StopPhrase *string
	// Titles overrides the table-title extractor. If nil, the
	// marker-cell default is used.
	Titles parser.TitleExtractor
	// Lookahead selects the per-field lookahead row merge instead of the
	// pairwise merge when assembling subtables. Use it for sparse,
	// PDF-derived grids.
	Lookahead bool
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) stopPhrase() string {
	if o.StopPhrase != nil {
		return *o.StopPhrase
	}
	return parser.DefaultStopPhrase
}
