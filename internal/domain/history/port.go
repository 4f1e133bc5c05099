package history

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*Entry, error)
}
