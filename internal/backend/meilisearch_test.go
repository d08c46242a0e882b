package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/palette/internal/config"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter map[string]string
		want   string
	}{
		{"empty", nil, ""},
		{"single", map[string]string{"products": "vault"}, `products = "vault"`},
		{"sorted and joined", map[string]string{"tier": "official", "product": "consul"}, `product = "consul" AND tier = "official"`},
		{"escapes quotes", map[string]string{"product": `a"b\c`}, `product = "a\"b\\c"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFilter(tt.filter); got != tt.want {
				t.Errorf("buildFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringID(t *testing.T) {
	if got := stringID(float64(42)); got != "42" {
		t.Errorf("stringID(42) = %q", got)
	}
	if got := stringID("abc"); got != "abc" {
		t.Errorf("stringID(abc) = %q", got)
	}
	if got := stringID(nil); got != "" {
		t.Errorf("stringID(nil) = %q", got)
	}
}

func TestMeilisearchBackend_Search(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": [
				{"objectID": "b", "title": "Second", "url": "/b"},
				{"objectID": "a", "title": "First", "url": "/a"}
			],
			"query": "vault",
			"processingTimeMs": 1,
			"limit": 20,
			"offset": 0,
			"estimatedTotalHits": 2
		}`))
	}))
	defer srv.Close()

	b := NewMeilisearchBackend(srv.URL, "key", "objectID")
	hits, err := b.Search(context.Background(), Request{
		Index:  "tutorials",
		Query:  "vault",
		Filter: map[string]string{"products": "vault"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(gotPath, "/indexes/tutorials/search") {
		t.Errorf("request path = %s", gotPath)
	}
	if f, _ := gotBody["filter"].(string); f != `products = "vault"` {
		t.Errorf("request filter = %v", gotBody["filter"])
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "b" || hits[0].Position != 1 || hits[1].ID != "a" || hits[1].Position != 2 {
		t.Errorf("hits not in response order: %+v", hits)
	}
	if hits[0].Fields["title"] != "Second" {
		t.Errorf("fields not decoded: %+v", hits[0].Fields)
	}
}

func TestMeilisearchBackend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom","code":"internal","type":"internal","link":""}`))
	}))
	defer srv.Close()

	b := NewMeilisearchBackend(srv.URL, "", "")
	_, err := b.Search(context.Background(), Request{Index: "docs", Query: "x"})
	var berr *Error
	if !errors.As(err, &berr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if berr.Op != "search" || berr.Index != "docs" {
		t.Errorf("unexpected error fields: %+v", berr)
	}
}

func TestMeilisearchBackend_CanceledContext(t *testing.T) {
	b := NewMeilisearchBackend("http://127.0.0.1:1", "", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Search(ctx, Request{Index: "docs"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMeilisearchBackend_DeadlineAbortsSlowRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[{"id":"late"}]}`))
	}))
	defer srv.Close()
	defer close(release)

	b := NewMeilisearchBackend(srv.URL, "", "")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	hits, err := b.Search(ctx, Request{Index: "docs", Query: "vault"})
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got hits=%v err=%v", hits, err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("search returned after %v, deadline was not honored", elapsed)
	}
}

func TestNew(t *testing.T) {
	b, err := New(&config.BackendConfig{Type: "bleve"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Type() != TypeBleve {
		t.Errorf("type = %s", b.Type())
	}
	_ = b.Close()

	m, err := New(&config.BackendConfig{Type: "meilisearch", Meilisearch: config.MeilisearchConfig{Host: "http://localhost:7700"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != TypeMeilisearch {
		t.Errorf("type = %s", m.Type())
	}

	if _, err := New(&config.BackendConfig{Type: "algolia"}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}
