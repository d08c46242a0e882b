// Package backend provides the search backends queried by hit source adapters.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
)

// Type names a backend implementation.
type Type string

const (
	// TypeBleve is a local Bleve index fed from content files.
	TypeBleve Type = "bleve"
	// TypeMeilisearch is a hosted Meilisearch instance with one index per category.
	TypeMeilisearch Type = "meilisearch"
)

// ErrUnknownType is returned by New for an unsupported backend type.
var ErrUnknownType = errors.New("unknown backend type")

// Request is one query against one backend index.
type Request struct {
	Index string
	// Query may be empty; the backend then returns its default ordering.
	Query string
	// Filter maps attribute name to the exact value it must hold.
	Filter map[string]string
	Limit  int
}

// Backend runs queries against a search index. Returned hits carry a 1-based
// Position in response order.
type Backend interface {
	Search(ctx context.Context, req Request) ([]models.RawHit, error)
	Type() Type
	Close() error
}

// Error wraps a driver failure with the operation that failed.
type Error struct {
	Op    string
	Index string
	Err   error
}

func (e *Error) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates the backend selected by cfg.Type.
// Supported types: "bleve" (default), "meilisearch".
func New(cfg *config.BackendConfig) (Backend, error) {
	switch Type(cfg.Type) {
	case TypeBleve, "":
		return NewBleveBackend(cfg.Bleve.IndexPath)
	case TypeMeilisearch:
		return NewMeilisearchBackend(cfg.Meilisearch.Host, cfg.Meilisearch.APIKey, cfg.Meilisearch.PrimaryKey), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: bleve, meilisearch)", ErrUnknownType, cfg.Type)
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
