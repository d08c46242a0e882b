// Package storage persists recent searches and reports on-disk usage of palette data.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/palette/internal/config"
)

// DefaultMaxEntries is the number of recent searches kept when none is configured.
const DefaultMaxEntries = 5

// ErrUnknownStore is returned by New for an unsupported store type.
var ErrUnknownStore = errors.New("unknown recent-search store")

// RecentSearch is one settled query.
type RecentSearch struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentStore keeps a bounded, most-recent-first list of distinct queries.
// Adding a query already present moves it to the front.
type RecentStore interface {
	Add(ctx context.Context, query string) error
	List(ctx context.Context) ([]RecentSearch, error)
	Clear(ctx context.Context) error
	Close() error
}

// New creates the store selected by cfg.Store.
// Supported stores: "memory" (default), "sqlite", "redis".
func New(cfg *config.RecentConfig) (RecentStore, error) {
	switch cfg.Store {
	case "memory", "":
		return NewMemoryStore(cfg.MaxEntries), nil
	case "sqlite":
		return NewSQLiteStore(cfg.DatabasePath, cfg.MaxEntries)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.RedisKey, cfg.MaxEntries), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: memory, sqlite, redis)", ErrUnknownStore, cfg.Store)
	}
}

// Queries returns the query strings of list in order.
func Queries(list []RecentSearch) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Query
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

func maxOrDefault(n int) int {
	if n <= 0 {
		return DefaultMaxEntries
	}
	return n
}
