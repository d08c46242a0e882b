package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/storage"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.String("product", query.Product))

	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		if errors.Is(err, models.ErrInvalidQuery) || errors.Is(err, models.ErrUnknownCategory) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	var recent []string
	if response.Query == "" {
		recent = s.recentQueries(r)
	} else if s.recent != nil {
		if err := s.recent.Add(ctx, response.Query); err != nil {
			s.logger.Warn("failed to record recent search", zap.Error(err))
		}
	}
	if s.suggestions != nil {
		s.suggestions.Decorate(response, query.Product, recent)
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) recentQueries(r *http.Request) []string {
	if s.recent == nil {
		return nil
	}
	list, err := s.recent.List(r.Context())
	if err != nil {
		s.logger.Warn("failed to list recent searches", zap.Error(err))
		return nil
	}
	return storage.Queries(list)
}

func (s *Server) handleRecentList(w http.ResponseWriter, r *http.Request) {
	if s.recent == nil {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"recent_searches": []storage.RecentSearch{}})
		return
	}
	list, err := s.recent.List(r.Context())
	if err != nil {
		s.logger.Error("list recent searches failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []storage.RecentSearch{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"recent_searches": list})
}

func (s *Server) handleRecentClear(w http.ResponseWriter, r *http.Request) {
	if s.recent != nil {
		if err := s.recent.Clear(r.Context()); err != nil {
			s.logger.Error("clear recent searches failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type suggestionsResponse struct {
	ProductTag      *models.ProductTag     `json:"product_tag,omitempty"`
	RecentSearches  []string               `json:"recent_searches"`
	SuggestedPages  []models.SuggestedPage `json:"suggested_pages"`
	TutorialLibrary *models.SuggestedPage  `json:"tutorial_library,omitempty"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	product := r.URL.Query().Get("product")
	resp := suggestionsResponse{
		RecentSearches: s.recentQueries(r),
		SuggestedPages: []models.SuggestedPage{},
	}
	if resp.RecentSearches == nil {
		resp.RecentSearches = []string{}
	}
	if s.suggestions != nil {
		resp.ProductTag = s.suggestions.ProductTag(product)
		resp.SuggestedPages = s.suggestions.Pages(product)
		resp.TutorialLibrary = s.suggestions.TutorialLibrary(product)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	Backend                  string                 `json:"backend"`
	Categories               []models.Category      `json:"categories"`
	Indexes                  map[string]string      `json:"indexes"`
	ProductsWithIntegrations []string               `json:"products_with_integrations"`
	ContentFiles             int                    `json:"content_files"`
	ContentRecords           int                    `json:"content_records"`
	RecentStore              string                 `json:"recent_store"`
	DiskUsageBytes           int64                  `json:"disk_usage_bytes"`
	Config                   map[string]interface{} `json:"config"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.Status())
}

// Status reports the backend, content and storage state of the server.
func (s *Server) Status() StatusResponse {
	cfg := s.config
	resp := StatusResponse{
		Backend:                  cfg.Backend.Type,
		Categories:               s.engine.Categories(),
		Indexes:                  make(map[string]string, len(cfg.Backend.Categories)),
		ProductsWithIntegrations: s.engine.Capabilities().ProductsWithIntegrations,
		RecentStore:              cfg.Recent.Store,
		Config: map[string]interface{}{
			"debounce_ms":       cfg.Search.DebounceMs,
			"hits_per_category": cfg.Search.HitsPerCategory,
			"fetch_timeout_ms":  cfg.Search.FetchTimeoutMs,
			"rate_limit":        cfg.Server.RateLimit,
		},
	}
	if s.backend != nil {
		resp.Backend = string(s.backend.Type())
	}
	for name, cc := range cfg.Backend.Categories {
		resp.Indexes[name] = cc.Index
	}
	if resp.ProductsWithIntegrations == nil {
		resp.ProductsWithIntegrations = []string{}
	}
	if s.catalog != nil {
		resp.ContentFiles, resp.ContentRecords = s.catalog.Stats()
	}
	if n, err := storage.DiskUsageBytes(storage.DataPaths(cfg)...); err == nil {
		resp.DiskUsageBytes = n
	} else {
		s.logger.Warn("status: disk usage failed", zap.Error(err))
	}
	return resp
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
