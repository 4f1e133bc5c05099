package wizard

import (
	"time"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

// NoticeLevel enum
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a one-shot message shown with the next view of the session.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// ModeMock is the generator mode label of the offline mock.
const ModeMock = "mock"

// Session is the complete state of one wizard.
type Session struct {
	ID          string          `json:"id"`
	Step        Step            `json:"step"`
	Record      analysis.Record `json:"record"`
	Offline     bool            `json:"offline_mode"`
	PrevCompany string          `json:"prev_company"`
	Busy        bool            `json:"busy"`
	Mode        string          `json:"mode"`
	Notices     []Notice        `json:"notices"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewSession starts a wizard at the inputs step with a fresh analysis record.
func NewSession(id string, offline bool, now time.Time) Session {
	return Session{
		ID:        id,
		Step:      StepInputs,
		Record:    analysis.NewRecord(),
		Offline:   offline,
		Notices:   []Notice{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := s
	out.Record = s.Record.Clone()
	out.Notices = append([]Notice{}, s.Notices...)
	return out
}

// Notify appends a notice.
func (s *Session) Notify(level NoticeLevel, msg string) {
	s.Notices = append(s.Notices, Notice{Level: level, Message: msg})
}

// ClearNotices drops every notice; called at the start of each dispatch.
func (s *Session) ClearNotices() {
	s.Notices = []Notice{}
}
