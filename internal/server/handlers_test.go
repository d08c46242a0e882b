package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/metrics"
	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/source"
	"github.com/hyperjump/palette/internal/storage"
	"github.com/hyperjump/palette/internal/suggest"
	"go.uber.org/zap"
)

type testEnv struct {
	server  *Server
	recent  *storage.MemoryStore
	metrics *metrics.Metrics
	handler http.Handler
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Backend.Bleve.IndexPath = ""
	cfg.Capabilities.ProductsWithIntegrations = []string{"vault"}
	cfg.Products = []config.ProductConfig{{Slug: "vault", Name: "Vault"}}
	cfg.Suggestions.Global = []config.PageConfig{{Text: "Developer home", URL: "/"}}
	if mutate != nil {
		mutate(cfg)
	}

	b, err := backend.NewBleveBackend("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Close() })
	put := func(index string, records ...backend.Record) {
		if err := b.Put(ctx, index, records); err != nil {
			t.Fatal(err)
		}
	}
	put("docs", backend.Record{ID: "d1", Fields: map[string]interface{}{
		"title": "Vault seal configuration", "url": "/vault/docs/seal", "products": []interface{}{"vault"}}})
	put("tutorials", backend.Record{ID: "t1", Fields: map[string]interface{}{
		"title": "Vault getting started", "url": "/vault/tutorials/start", "products": []interface{}{"vault"}}})
	put("integrations", backend.Record{ID: "i1", Fields: map[string]interface{}{
		"name": "Vault AWS secrets engine", "url": "/vault/integrations/aws", "product": "vault"}})

	adapters := source.FromConfig(cfg, b)
	sources := make([]search.Source, len(adapters))
	for i, a := range adapters {
		sources[i] = a
	}
	m := metrics.NewMetrics("test", "go")
	engine := search.NewEngine(sources, &cfg.Search,
		search.WithCapabilities(search.Capabilities{ProductsWithIntegrations: cfg.Capabilities.ProductsWithIntegrations}),
		search.WithReporter(search.NewReporter(zap.NewNop(), m)))
	recent := storage.NewMemoryStore(cfg.Recent.MaxEntries)
	srv := NewServer(engine, recent, suggest.NewProvider(cfg), cfg, zap.NewNop(),
		WithBackend(b), WithMetrics(m))
	return &testEnv{server: srv, recent: recent, metrics: m, handler: srv.Handler()}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) models.SearchResponse {
	t.Helper()
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleSearch(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodPost, "/api/v1/search", `{"query":"vault","product":"vault"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", w.Code, w.Body.String())
	}
	resp := decodeSearch(t, w)
	if resp.Total != 3 || len(resp.Results) != 3 {
		t.Errorf("expected 3 results, got %d", resp.Total)
	}
	if len(resp.Tabs) != 3 {
		t.Errorf("expected 3 tabs, got %d", len(resp.Tabs))
	}
	if resp.ProductTag == nil || resp.ProductTag.Name != "Vault" {
		t.Errorf("product tag = %+v", resp.ProductTag)
	}
	if resp.SuggestedPages != nil {
		t.Error("suggestions should only be returned for an empty query")
	}
	for _, h := range resp.Results {
		if !h.Consistent() {
			t.Errorf("hit %s payload %T inconsistent", h.Key(), h.Payload)
		}
	}

	list, _ := env.recent.List(context.Background())
	if got := storage.Queries(list); len(got) != 1 || got[0] != "vault" {
		t.Errorf("recent searches = %v", got)
	}
}

func TestHandleSearch_ProductWithoutIntegrations(t *testing.T) {
	env := newTestEnv(t, nil)
	resp := decodeSearch(t, env.do(t, http.MethodPost, "/api/v1/search", `{"query":"vault","product":"terraform"}`))
	for _, tab := range resp.Tabs {
		if tab.Category == models.CategoryIntegrations {
			t.Error("integrations tab should be hidden for terraform")
		}
	}
	if resp.Total != 0 {
		t.Errorf("terraform filter should exclude vault content, got %d", resp.Total)
	}
}

func TestHandleSearch_EmptyQueryReturnsSuggestions(t *testing.T) {
	env := newTestEnv(t, nil)
	_ = env.recent.Add(context.Background(), "consul")

	w := env.do(t, http.MethodPost, "/api/v1/search", `{"query":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	resp := decodeSearch(t, w)
	if len(resp.RecentSearches) != 1 || resp.RecentSearches[0] != "consul" {
		t.Errorf("recent searches = %v", resp.RecentSearches)
	}
	if len(resp.SuggestedPages) != 1 || resp.TutorialLibrary == nil {
		t.Errorf("suggestions missing: %+v %+v", resp.SuggestedPages, resp.TutorialLibrary)
	}
	if len(resp.Results) != 0 || len(resp.Tabs) != 0 || resp.Total != 0 {
		t.Errorf("empty query should not return results: %d results, %d tabs", len(resp.Results), len(resp.Tabs))
	}
	list, _ := env.recent.List(context.Background())
	if len(list) != 1 {
		t.Error("empty query must not be recorded")
	}
}

func TestHandleSearch_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)
	tests := map[string]string{
		"invalid json":     `{"query":`,
		"unknown category": `{"query":"x","categories":["videos"]}`,
		"query too long":   `{"query":"` + strings.Repeat("a", 600) + `"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if w := env.do(t, http.MethodPost, "/api/v1/search", body); w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", w.Code)
			}
		})
	}
}

func TestHandleSearch_RateLimited(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0.001
		cfg.Server.RateBurst = 1
	})
	if w := env.do(t, http.MethodPost, "/api/v1/search", `{"query":"vault"}`); w.Code != http.StatusOK {
		t.Fatalf("first request: got %d", w.Code)
	}
	w := env.do(t, http.MethodPost, "/api/v1/search", `{"query":"vault"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health must not be rate limited, got %d", w.Code)
	}
}

func TestHandleRecent(t *testing.T) {
	env := newTestEnv(t, nil)
	_ = env.recent.Add(context.Background(), "nomad")

	w := env.do(t, http.MethodGet, "/api/v1/recent", "")
	var out struct {
		RecentSearches []storage.RecentSearch `json:"recent_searches"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.RecentSearches) != 1 || out.RecentSearches[0].Query != "nomad" {
		t.Errorf("recent = %+v", out.RecentSearches)
	}

	if w := env.do(t, http.MethodDelete, "/api/v1/recent", ""); w.Code != http.StatusOK {
		t.Errorf("clear: got %d", w.Code)
	}
	list, _ := env.recent.List(context.Background())
	if len(list) != 0 {
		t.Errorf("recent not cleared: %v", list)
	}
}

func TestHandleSuggestions(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/api/v1/suggestions?product=hcp", "")
	var out suggestionsResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ProductTag == nil || out.ProductTag.Name != "HCP" {
		t.Errorf("product tag = %+v", out.ProductTag)
	}
	if out.RecentSearches == nil || len(out.SuggestedPages) != 1 {
		t.Errorf("unexpected suggestions %+v", out)
	}
}

func TestHandleStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.do(t, http.MethodGet, "/api/v1/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Backend != "bleve" || len(out.Categories) != 3 {
		t.Errorf("status = %+v", out)
	}
	if out.Indexes["integrations"] != "integrations" {
		t.Errorf("indexes = %v", out.Indexes)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(t, http.MethodPost, "/api/v1/search", `{"query":"vault"}`)

	w := env.do(t, http.MethodGet, "/metrics", "")
	body := w.Body.String()
	for _, want := range []string{
		`palette_http_requests_total{method="POST",route="/api/v1/search",status="200"} 1`,
		`palette_category_fetch_total{category="docs",outcome="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
