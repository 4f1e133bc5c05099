package wizard

import "context"

// SessionStore port (interface untuk penyimpanan session wizard)
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (Session, error)
}
