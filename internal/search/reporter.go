package search

import (
	"time"

	"github.com/hyperjump/palette/internal/metrics"
	"github.com/hyperjump/palette/internal/models"
	"go.uber.org/zap"
)

// Reporter receives diagnostics that never reach the user: failed fetches, dropped hits and
// discarded stale responses.
type Reporter interface {
	FetchCompleted(category models.Category, took time.Duration, hits int)
	FetchFailed(category models.Category, query string, err error)
	HitsDropped(category models.Category, n int)
	StaleDiscarded(category models.Category)
	QueryDispatched(query string)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) FetchCompleted(models.Category, time.Duration, int) {}
func (NopReporter) FetchFailed(models.Category, string, error)         {}
func (NopReporter) HitsDropped(models.Category, int)                   {}
func (NopReporter) StaleDiscarded(models.Category)                     {}
func (NopReporter) QueryDispatched(string)                             {}

type logReporter struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewReporter returns a Reporter that logs to logger and, when m is non-nil, records metrics.
func NewReporter(logger *zap.Logger, m *metrics.Metrics) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logReporter{logger: logger, metrics: m}
}

func (r *logReporter) FetchCompleted(category models.Category, took time.Duration, hits int) {
	r.logger.Debug("category fetch completed",
		zap.String("category", string(category)),
		zap.Duration("took", took),
		zap.Int("hits", hits))
	if r.metrics != nil {
		r.metrics.FetchTotal.WithLabelValues(string(category), "ok").Inc()
		r.metrics.FetchDurationSeconds.WithLabelValues(string(category)).Observe(took.Seconds())
	}
}

func (r *logReporter) FetchFailed(category models.Category, query string, err error) {
	r.logger.Warn("category fetch failed; showing no hits",
		zap.String("category", string(category)),
		zap.String("query", query),
		zap.Error(err))
	if r.metrics != nil {
		r.metrics.FetchTotal.WithLabelValues(string(category), "error").Inc()
	}
}

func (r *logReporter) HitsDropped(category models.Category, n int) {
	r.logger.Warn("dropped malformed hits",
		zap.String("category", string(category)),
		zap.Int("count", n))
	if r.metrics != nil {
		r.metrics.HitsDroppedTotal.WithLabelValues(string(category)).Add(float64(n))
	}
}

func (r *logReporter) StaleDiscarded(category models.Category) {
	r.logger.Debug("discarded stale response", zap.String("category", string(category)))
	if r.metrics != nil {
		r.metrics.StaleResponsesTotal.WithLabelValues(string(category)).Inc()
	}
}

func (r *logReporter) QueryDispatched(query string) {
	r.logger.Debug("query dispatched", zap.String("query", query))
	if r.metrics != nil {
		r.metrics.QueriesDispatchedTotal.Inc()
	}
}
