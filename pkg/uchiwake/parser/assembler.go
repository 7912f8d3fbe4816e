package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sekisan-tools/uchiwake-go/pkg/uchiwake/models"
)

// DefaultStopPhrase marks the end of meaningful content in a workbook.
// Once seen, no further subtable is collected on any later grid of the
// same session.
const DefaultStopPhrase = "以下余白"

type assemblerState int

const (
	stateSeekingReference assemblerState = iota
	stateSeekingHeader
	stateCollectingRows
)

// headerSearchWindow is how many rows past a reference may hold its
// column header before the reference is dismissed as incidental.
const headerSearchWindow = 3

// Session assembles subtables across the grids of one workbook. The stop
// phrase and reference occurrence counters persist across grids, so a
// session must not be reused between workbooks.
type Session struct {
	log        *zap.Logger
	titles     TitleExtractor
	stopPhrase string
	lookahead  bool
	stopped    bool
	seen       map[string]int
}

// NewSession builds a subtable assembly session. A nil logger is
// replaced with a no-op logger and a nil extractor with the marker-cell
// default. An empty stopPhrase disables the global stop.
func NewSession(log *zap.Logger, titles TitleExtractor, stopPhrase string) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if titles == nil {
		titles = DefaultTitleExtractor()
	}
	return &Session{
		log:        log,
		titles:     titles,
		stopPhrase: stopPhrase,
		seen:       make(map[string]int),
	}
}

// WithLookahead switches row assembly from the pairwise merge to the
// per-field lookahead variant. Sparse grids, typically PDF-derived,
// scatter one item's fields over several physical rows.
func (s *Session) WithLookahead() *Session {
	s.lookahead = true
	return s
}

// Stopped reports whether the session has seen the stop phrase.
func (s *Session) Stopped() bool { return s.stopped }

func (s *Session) rowHasStopPhrase(row []string) bool {
	if s.stopPhrase == "" {
		return false
	}
	want := Canonical(s.stopPhrase)
	for _, cell := range row {
		if strings.Contains(Canonical(cell), want) {
			return true
		}
	}
	return false
}

// Assemble walks g and returns its subtables in source order. Grids fed
// after the stop phrase has been seen yield nothing.
func (s *Session) Assemble(g *models.Grid) []models.Subtable {
	if s.stopped {
		s.log.Debug("grid skipped after stop phrase", zap.String("grid", g.Name))
		return nil
	}

	var (
		out        []models.Subtable
		state      = stateSeekingReference
		current    models.Subtable
		merger     *Merger
		headerStop int
	)

	flush := func() {
		if len(current.Rows) == 0 {
			if current.ReferenceNumber != "" {
				s.log.Warn("subtable without rows discarded",
					zap.String("grid", g.Name),
					zap.String("reference", current.ReferenceNumber))
			}
			return
		}
		current.ReferenceNumber = s.uniqueReference(current.ReferenceNumber)
		out = append(out, current)
	}

	begin := func(ref string, row int) {
		current = models.Subtable{
			ReferenceNumber: ref,
			GridName:        g.Name,
			StartRow:        row,
		}
		state = stateSeekingHeader
		headerStop = row + headerSearchWindow
	}

	for i := 0; i < g.NumRows(); i++ {
		row := g.Row(i)

		if s.rowHasStopPhrase(row) {
			// The partial subtable under collection is discarded;
			// everything already emitted stays.
			s.log.Info("stop phrase reached",
				zap.String("grid", g.Name), zap.Int("row", i))
			s.stopped = true
			return out
		}

		switch state {
		case stateSeekingReference:
			if ref, ok := ScanRow(row); ok {
				begin(ref, i)
			}

		case stateSeekingHeader:
			if ref, ok := ScanRow(row); ok {
				begin(ref, i)
				continue
			}
			if i > headerStop {
				// No header near the reference: it was incidental text,
				// not a subtable start.
				s.log.Debug("reference without header skipped",
					zap.String("grid", g.Name),
					zap.String("reference", current.ReferenceNumber))
				state = stateSeekingReference
				continue
			}
			if cols := LocateColumns(row); cols != nil {
				FillColumnDefaults(cols)
				current.Columns = cols
				current.HeaderRow = i
				if title := s.titles.Title(g, current.StartRow, i); title != nil {
					current.Title = title
				}
				merger = NewMerger(cols)
				state = stateCollectingRows
			}

		case stateCollectingRows:
			if ref, ok := ScanRow(row); ok {
				flush()
				begin(ref, i)
				continue
			}
			if IsTotalRow(row) || IsTableNumberRow(row) {
				flush()
				state = stateSeekingReference
				continue
			}
			if IsEmptyRow(row) || IsHeaderLabelRow(row) || IsMeaninglessRow(row) || IsSheetTitleRow(row) {
				continue
			}
			var (
				lr  models.LogicalRow
				end int
			)
			if s.lookahead {
				lr, end = merger.MergeLookahead(g, i)
			} else {
				lr, end = merger.Merge(g, i)
			}
			if lr.IsBlank() {
				continue
			}
			current.Rows = append(current.Rows, lr)
			i = end
		}
	}

	// Grid ended mid-collection: the sheet boundary closes the table.
	if state == stateCollectingRows {
		flush()
	}
	return out
}

// uniqueReference disambiguates repeated reference numbers within one
// session: the first occurrence keeps its name, later ones get an
// ordinal suffix (内1号, 内1号-2, 内1号-3).
func (s *Session) uniqueReference(ref string) string {
	s.seen[ref]++
	if n := s.seen[ref]; n > 1 {
		return fmt.Sprintf("%s-%d", ref, n)
	}
	return ref
}
