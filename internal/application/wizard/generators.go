package wizard

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	domain "github.com/bryanwahyu/stratiq/internal/domain/wizard"
)

// LiveFactory builds the live generator and returns its "<provider>/<model>"
// label. It returns ErrLiveUnavailable when no provider is configured.
type LiveFactory func() (analysis.Generator, string, error)

// MockFactory builds the offline generator.
type MockFactory func() analysis.Generator

// ErrLiveUnavailable signals that no live provider can be built.
var ErrLiveUnavailable = errors.New("live generator unavailable")

// Selection is a generator together with its mode label.
type Selection struct {
	Offline   bool
	Generator analysis.Generator
	Mode      string
	// Notice is set when the live generator was requested but the mock is used.
	Notice string
}

// Selector picks the generator for an offline flag value.
type Selector struct {
	Live LiveFactory
	Mock MockFactory
	Log  *zap.Logger
}

// Select builds a fresh generator for the flag.
func (s *Selector) Select(offline bool) Selection {
	if !offline && s.Live != nil {
		gen, name, err := s.Live()
		if err == nil && gen != nil {
			return Selection{Offline: offline, Generator: gen, Mode: "live:" + name}
		}
		s.logger().Warn("live generator unavailable, falling back to mock", zap.Error(err))
	}
	sel := Selection{Offline: offline, Generator: s.Mock(), Mode: domain.ModeMock}
	if !offline {
		sel.Notice = "Live generator unavailable; using the offline mock."
	}
	return sel
}

func (s *Selector) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// generatorCache keeps one selection per session, keyed by the offline flag.
// Entries idle for longer than the session TTL are swept on the next resolve.
type generatorCache struct {
	mu        sync.Mutex
	entries   map[string]cacheEntry
	lastSweep time.Time
}

type cacheEntry struct {
	sel  Selection
	used time.Time
}

// resolve returns the cached selection, rebuilding it when the flag changed.
// fresh reports whether a new generator was built.
func (c *generatorCache) resolve(sessionID string, offline bool, sel *Selector, now time.Time, ttl time.Duration) (Selection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	c.sweep(now, ttl)
	if cur, ok := c.entries[sessionID]; ok && cur.sel.Offline == offline {
		cur.used = now
		c.entries[sessionID] = cur
		return cur.sel, false
	}
	next := sel.Select(offline)
	c.entries[sessionID] = cacheEntry{sel: next, used: now}
	return next, true
}

// evict drops the selection of a session that no longer exists.
func (c *generatorCache) evict(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}

func (c *generatorCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sweep runs at most once per ttl; callers hold mu.
func (c *generatorCache) sweep(now time.Time, ttl time.Duration) {
	if ttl <= 0 || now.Sub(c.lastSweep) < ttl {
		return
	}
	c.lastSweep = now
	for id, e := range c.entries {
		if now.Sub(e.used) > ttl {
			delete(c.entries, id)
		}
	}
}
