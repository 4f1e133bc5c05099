// Package session provides storage backends for wizard sessions.
package session

import (
	"context"
	"sync"

	"github.com/bryanwahyu/stratiq/internal/domain/wizard"
)

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]wizard.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]wizard.Session)}
}

func (m *MemoryStore) Save(_ context.Context, s wizard.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (wizard.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return wizard.Session{}, wizard.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Ping always succeeds; present so both stores can back the health check.
func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
