package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "github.com/bryanwahyu/stratiq/internal/domain/history"
)

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS stratiq_history (
  id          BIGSERIAL PRIMARY KEY,
  analysis_id TEXT        NOT NULL,
  session_id  TEXT        NOT NULL,
  kind        TEXT        NOT NULL,
  format      TEXT        NOT NULL DEFAULT '',
  location    TEXT        NOT NULL DEFAULT '',
  message     TEXT        NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_session ON stratiq_history (session_id, created_at DESC);`

// HistoryRepository implements history.Repository on Postgres.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Migrate creates the history table when missing.
func (r *HistoryRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHistoryTable); err != nil {
		return fmt.Errorf("postgres migrate history: %w", err)
	}
	return nil
}

// Save inserts one entry and sets its id
func (r *HistoryRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO stratiq_history
  (analysis_id, session_id, kind, format, location, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id;
`
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, q,
		strings.TrimSpace(e.AnalysisID), e.SessionID, string(e.Kind),
		e.Format, e.Location, e.Message, created,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("postgres save history: %w", err)
	}
	return nil
}

// ListBySession returns the newest entries first
func (r *HistoryRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, analysis_id, session_id, kind, format, location, message, created_at
FROM stratiq_history
WHERE session_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres list history: %w", err)
	}
	defer rows.Close()

	out := []*domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		var kind string
		var created time.Time
		if err := rows.Scan(&e.ID, &e.AnalysisID, &e.SessionID, &kind, &e.Format, &e.Location, &e.Message, &created); err != nil {
			return nil, err
		}
		e.Kind = domain.Kind(kind)
		e.CreatedAt = created.UTC()
		out = append(out, &e)
	}
	return out, rows.Err()
}
