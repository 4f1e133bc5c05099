package history

import "time"

// Kind of history entry
type Kind string

const (
	KindExport           Kind = "export"
	KindGenerationFailed Kind = "generation_failed"
)

// Entry represents one append-only audit row of a wizard session.
type Entry struct {
	ID         int64     `json:"id"`
	AnalysisID string    `json:"analysis_id"`
	SessionID  string    `json:"session_id"`
	Kind       Kind      `json:"kind"`
	Format     string    `json:"format,omitempty"` // json | deck | html, exports only
	Location   string    `json:"location,omitempty"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
