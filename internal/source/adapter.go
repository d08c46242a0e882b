// Package source provides per-category hit source adapters over a search backend.
package source

import (
	"context"
	"fmt"

	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
)

// Adapter issues one query per call for a single category.
type Adapter struct {
	category    models.Category
	index       string
	filterField string
	limit       int
	backend     backend.Backend
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithIndex sets the backend index name; defaults to the category name.
func WithIndex(index string) AdapterOption {
	return func(a *Adapter) {
		if index != "" {
			a.index = index
		}
	}
}

// WithFilterField sets the attribute matched against the product slug. Empty disables filtering.
func WithFilterField(field string) AdapterOption {
	return func(a *Adapter) { a.filterField = field }
}

// WithLimit sets the maximum number of hits fetched per query.
func WithLimit(limit int) AdapterOption {
	return func(a *Adapter) {
		if limit > 0 {
			a.limit = limit
		}
	}
}

// NewAdapter creates an adapter for category over b.
func NewAdapter(category models.Category, b backend.Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		category: category,
		index:    string(category),
		limit:    20,
		backend:  b,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Category returns the category this adapter fetches.
func (a *Adapter) Category() models.Category { return a.category }

// Index returns the backend index name.
func (a *Adapter) Index() string { return a.index }

// Fetch queries the backend for this category. query may be empty. A non-empty product
// restricts hits to that product when the adapter has a filter field. Hits are returned
// in backend order with their backend-assigned positions.
func (a *Adapter) Fetch(ctx context.Context, query, product string) ([]models.RawHit, error) {
	req := backend.Request{
		Index: a.index,
		Query: query,
		Limit: a.limit,
	}
	if product != "" && a.filterField != "" {
		req.Filter = map[string]string{a.filterField: product}
	}
	hits, err := a.backend.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", a.category, err)
	}
	return hits, nil
}

// FromConfig builds one adapter per category, in the fixed category order.
func FromConfig(cfg *config.Config, b backend.Backend) []*Adapter {
	adapters := make([]*Adapter, 0, len(models.Categories))
	for _, category := range models.Categories {
		cc := cfg.Backend.Categories[string(category)]
		limit := cc.Limit
		if limit == 0 {
			limit = cfg.Search.HitsPerCategory
		}
		adapters = append(adapters, NewAdapter(category, b,
			WithIndex(cc.Index),
			WithFilterField(cc.FilterField),
			WithLimit(limit),
		))
	}
	return adapters
}
