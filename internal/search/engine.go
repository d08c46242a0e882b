// Package search aggregates per-category hits into a merged list and per-category tabs.
package search

import (
	"context"
	"time"

	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source fetches raw hits for a single category.
type Source interface {
	Category() models.Category
	Fetch(ctx context.Context, query, product string) ([]models.RawHit, error)
}

// Engine fans a query out to one source per category and presents the aggregated hits.
type Engine struct {
	sources      map[models.Category]Source
	config       *config.SearchConfig
	capabilities Capabilities
	reporter     Reporter
	logger       *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithReporter sets the diagnostics reporter. Defaults to NopReporter.
func WithReporter(r Reporter) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCapabilities sets the product capability data used for tab visibility.
func WithCapabilities(c Capabilities) EngineOption {
	return func(e *Engine) { e.capabilities = c }
}

// NewEngine creates an engine over sources. A later source for the same category replaces an earlier one.
func NewEngine(sources []Source, cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	e := &Engine{
		sources:  make(map[models.Category]Source, len(sources)),
		config:   cfg,
		reporter: NopReporter{},
		logger:   zap.NewNop(),
	}
	for _, s := range sources {
		e.sources[s.Category()] = s
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Categories returns the categories with a source, in the fixed order.
func (e *Engine) Categories() []models.Category {
	out := make([]models.Category, 0, len(e.sources))
	for _, c := range models.Categories {
		if _, ok := e.sources[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Capabilities returns the engine's product capability data.
func (e *Engine) Capabilities() Capabilities {
	return e.capabilities
}

// Reporter returns the engine's diagnostics reporter.
func (e *Engine) Reporter() Reporter {
	return e.reporter
}

// FetchCategory fetches and normalizes hits for one category. It never fails: a fetch
// error, timeout or missing source yields an empty slice and is reported.
func (e *Engine) FetchCategory(ctx context.Context, category models.Category, query, product string) []models.Hit {
	src, ok := e.sources[category]
	if !ok {
		return []models.Hit{}
	}
	fetchCtx := ctx
	if e.config != nil && e.config.FetchTimeoutMs > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, e.config.FetchTimeout())
		defer cancel()
	}

	start := time.Now()
	raws, err := src.Fetch(fetchCtx, query, product)
	if err != nil {
		// The caller went away; nobody is waiting for this category.
		if ctx.Err() != nil {
			e.logger.Debug("category fetch abandoned", zap.String("category", string(category)), zap.Error(err))
			return []models.Hit{}
		}
		e.reporter.FetchFailed(category, query, err)
		return []models.Hit{}
	}
	hits, dropped := Normalize(category, raws)
	if dropped > 0 {
		e.reporter.HitsDropped(category, dropped)
	}
	e.reporter.FetchCompleted(category, time.Since(start), len(hits))
	return hits
}

// Present derives the merged list and the visible tabs from coll.
func (e *Engine) Present(coll models.HitCollection, product string) (models.MergedResultList, []models.Tab) {
	return Merge(coll), BuildTabs(coll, e.capabilities, product)
}

// Search runs one query against every requested category concurrently and returns once
// all of them have settled. An empty query fetches nothing; the response then only
// carries what callers decorate it with.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ProcessQuery(query); err != nil {
		return nil, err
	}
	if query.Query == "" {
		return &models.SearchResponse{
			Results: models.MergedResultList{},
			Tabs:    []models.Tab{},
		}, nil
	}

	categories := make([]models.Category, 0, len(query.Categories))
	for _, c := range e.Categories() {
		if query.Includes(c) {
			categories = append(categories, c)
		}
	}
	results := make([][]models.Hit, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			results[i] = e.FetchCategory(gctx, category, query.Query, query.Product)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coll := models.NewHitCollection()
	for i, category := range categories {
		coll = coll.With(category, results[i])
	}
	merged, tabs := e.Present(coll, query.Product)
	visible := tabs[:0]
	for _, tab := range tabs {
		if query.Includes(tab.Category) {
			visible = append(visible, tab)
		}
	}

	e.logger.Debug("search completed",
		zap.String("query", query.Query),
		zap.String("product", query.Product),
		zap.Int("total", len(merged)))

	return &models.SearchResponse{
		Query:     query.Query,
		Results:   merged,
		Tabs:      visible,
		Total:     len(merged),
		QueryTime: time.Since(startTime).Milliseconds(),
	}, nil
}
