package httpserver

import (
	"time"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	domain "github.com/bryanwahyu/stratiq/internal/domain/wizard"
)

// sessionView is the JSON rendering of a wizard session.
type sessionView struct {
	ID           string               `json:"id"`
	Step         string               `json:"step"`
	StepIndex    int                  `json:"step_index"`
	Title        string               `json:"title"`
	Progress     float64              `json:"progress"`
	ProgressText string               `json:"progress_text"`
	Mode         string               `json:"mode"`
	Offline      bool                 `json:"offline_mode"`
	Busy         bool                 `json:"busy"`
	Notices      []domain.Notice      `json:"notices"`
	Catalogue    []analysis.Framework `json:"framework_catalogue"`
	Record       analysis.Record      `json:"record"`
	Editor       *editorView          `json:"editor,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// editorView holds the newline-joined edit fields of the review step.
type editorView struct {
	SWOT   map[string]string `json:"SWOT,omitempty"`
	Ansoff map[string]string `json:"Ansoff,omitempty"`
}

func newSessionView(s domain.Session) sessionView {
	v := sessionView{
		ID:           s.ID,
		Step:         s.Step.String(),
		StepIndex:    int(s.Step),
		Title:        s.Step.Title(),
		Progress:     s.Step.Progress(),
		ProgressText: s.Step.ProgressText(),
		Mode:         s.Mode,
		Offline:      s.Offline,
		Busy:         s.Busy,
		Notices:      s.Notices,
		Catalogue:    analysis.Frameworks,
		Record:       s.Record,
		UpdatedAt:    s.UpdatedAt,
	}
	if v.Notices == nil {
		v.Notices = []domain.Notice{}
	}
	if s.Step == domain.StepReview {
		v.Editor = reviewEditor(s.Record)
	}
	return v
}

func reviewEditor(rec analysis.Record) *editorView {
	e := &editorView{}
	if rec.HasFramework(analysis.FrameworkSWOT) {
		sw := rec.Results.SWOT
		e.SWOT = map[string]string{
			"S": analysis.ListToText(sw.S),
			"W": analysis.ListToText(sw.W),
			"O": analysis.ListToText(sw.O),
			"T": analysis.ListToText(sw.T),
		}
	}
	if rec.HasFramework(analysis.FrameworkAnsoff) {
		a := rec.Results.Ansoff
		e.Ansoff = map[string]string{
			"market_penetration":  analysis.ListToText(a.MarketPenetration),
			"market_development":  analysis.ListToText(a.MarketDevelopment),
			"product_development": analysis.ListToText(a.ProductDevelopment),
			"diversification":     analysis.ListToText(a.Diversification),
		}
	}
	return e
}
