package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps recent searches in process memory.
// The backing slice is never mutated in place, so List results stay valid after later adds.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []RecentSearch
	max     int
}

// NewMemoryStore creates an in-memory store holding at most max entries.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{max: maxOrDefault(limit)}
}

// Add records query at the front. Empty queries are ignored.
func (s *MemoryStore) Add(_ context.Context, query string) error {
	query = normalizeQuery(query)
	if query == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]RecentSearch, 0, s.max)
	next = append(next, RecentSearch{ID: uuid.New().String(), Query: query, CreatedAt: time.Now()})
	for _, e := range s.entries {
		if len(next) == s.max {
			break
		}
		if e.Query != query {
			next = append(next, e)
		}
	}
	s.entries = next
	return nil
}

// List returns entries most recent first.
func (s *MemoryStore) List(_ context.Context) ([]RecentSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]RecentSearch(nil), s.entries...), nil
}

// Clear removes all entries.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
