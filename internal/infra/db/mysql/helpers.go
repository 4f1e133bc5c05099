package mysql

import (
	"strings"
	"time"

	"github.com/bryanwahyu/stratiq/internal/domain/history"
)

// DefaultListLimit is used when the caller passes limit <= 0.
const DefaultListLimit = 20

// dashIfEmpty returns "-" when the input is empty/whitespace
func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// emptyIfDash reverses dashIfEmpty when reading rows back.
func emptyIfDash(s string) string {
	if s == "-" {
		return ""
	}
	return s
}

// prepareEntry fills the columns that must never be blank.
func prepareEntry(e *history.Entry, now time.Time) history.Entry {
	out := *e
	out.AnalysisID = dashIfEmpty(out.AnalysisID)
	out.Format = dashIfEmpty(out.Format)
	out.Location = dashIfEmpty(out.Location)
	out.Message = dashIfEmpty(out.Message)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.CreatedAt = out.CreatedAt.UTC()
	return out
}

// restoreEntry turns placeholder columns back into empty fields.
func restoreEntry(e *history.Entry) {
	e.AnalysisID = emptyIfDash(e.AnalysisID)
	e.Format = emptyIfDash(e.Format)
	e.Location = emptyIfDash(e.Location)
	e.Message = emptyIfDash(e.Message)
	e.CreatedAt = e.CreatedAt.UTC()
}
