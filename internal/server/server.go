// Package server provides the HTTP API for Palette.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/metrics"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/storage"
	"github.com/hyperjump/palette/internal/suggest"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// CatalogStats reports how much local content is loaded.
type CatalogStats interface {
	Stats() (files, records int)
}

// Server is the HTTP server for the Palette API.
type Server struct {
	engine      *search.Engine
	recent      storage.RecentStore
	suggestions *suggest.Provider
	config      *config.Config
	logger      *zap.Logger

	backend backend.Backend
	catalog CatalogStats
	metrics *metrics.Metrics
	limiter *rate.Limiter

	server *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithBackend exposes the backend type in the status endpoint.
func WithBackend(b backend.Backend) Option {
	return func(s *Server) { s.backend = b }
}

// WithCatalog exposes local content statistics in the status endpoint.
func WithCatalog(c CatalogStats) Option {
	return func(s *Server) { s.catalog = c }
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	recent storage.RecentStore,
	suggestions *suggest.Provider,
	cfg *config.Config,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:      engine,
		recent:      recent,
		suggestions: suggestions,
		config:      cfg,
		logger:      logger,
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.instrument)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(s.rateLimit).Post("/search", s.handleSearch)
		r.Get("/recent", s.handleRecentList)
		r.Delete("/recent", s.handleRecentClear)
		r.Get("/suggestions", s.handleSuggestions)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			s.respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
		if s.metrics != nil {
			s.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		}
	})
}
