package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/stratiq/internal/domain/history"
)

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS stratiq_history (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  analysis_id VARCHAR(64)  NOT NULL,
  session_id  VARCHAR(64)  NOT NULL,
  kind        VARCHAR(32)  NOT NULL,
  format      VARCHAR(16)  NOT NULL,
  location    TEXT         NOT NULL,
  message     TEXT         NOT NULL,
  created_at  DATETIME(6)  NOT NULL,
  INDEX idx_history_session (session_id, created_at)
) DEFAULT CHARSET=utf8mb4;`

// HistoryRepository implements history.Repository on MySQL.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

// Migrate creates the history table when missing.
func (r *HistoryRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHistoryTable); err != nil {
		return fmt.Errorf("mysql migrate history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO stratiq_history
  (analysis_id, session_id, kind, format, location, message, created_at)
VALUES (?,?,?,?,?,?,?)
`
	row := prepareEntry(e, time.Now())
	res, err := r.db.ExecContext(ctx, q, row.AnalysisID, row.SessionID, string(row.Kind), row.Format, row.Location, row.Message, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("mysql save history: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListBySession returns the newest entries first.
func (r *HistoryRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	const q = `
SELECT id, analysis_id, session_id, kind, format, location, message, created_at
FROM stratiq_history
WHERE session_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("mysql list history: %w", err)
	}
	defer rows.Close()

	out := []*domain.Entry{}
	for rows.Next() {
		var e domain.Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.AnalysisID, &e.SessionID, &kind, &e.Format, &e.Location, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = domain.Kind(kind)
		restoreEntry(&e)
		out = append(out, &e)
	}
	return out, rows.Err()
}
