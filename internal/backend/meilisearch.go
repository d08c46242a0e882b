package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperjump/palette/internal/models"
	"github.com/meilisearch/meilisearch-go"
)

// MeilisearchBackend implements Backend against a hosted Meilisearch instance.
// Each logical index maps to a Meilisearch index of the same name.
type MeilisearchBackend struct {
	client     meilisearch.ServiceManager
	primaryKey string
}

// NewMeilisearchBackend creates a backend for the instance at host. primaryKey names
// the document attribute used as hit ID.
func NewMeilisearchBackend(host, apiKey, primaryKey string) *MeilisearchBackend {
	if primaryKey == "" {
		primaryKey = "id"
	}
	return &MeilisearchBackend{
		client:     meilisearch.New(host, meilisearch.WithAPIKey(apiKey)),
		primaryKey: primaryKey,
	}
}

// Type returns TypeMeilisearch.
func (m *MeilisearchBackend) Type() Type { return TypeMeilisearch }

// Search queries req.Index, aborting the request when ctx is done. Hits are returned
// in response order with Position set to their 1-based rank.
func (m *MeilisearchBackend) Search(ctx context.Context, req Request) ([]models.RawHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "search", Index: req.Index, Err: err}
	}
	searchRequest := &meilisearch.SearchRequest{
		Query: req.Query,
		Limit: int64(limitOrDefault(req.Limit)),
	}
	if filter := buildFilter(req.Filter); filter != "" {
		searchRequest.Filter = filter
	}

	result, err := m.client.Index(req.Index).SearchWithContext(ctx, req.Query, searchRequest)
	if err != nil {
		// The driver's error does not unwrap; surface the context error directly.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &Error{Op: "search", Index: req.Index, Err: err}
	}
	docs, err := decodeHits(result.Hits)
	if err != nil {
		return nil, &Error{Op: "decode", Index: req.Index, Err: err}
	}

	out := make([]models.RawHit, 0, len(docs))
	for i, doc := range docs {
		out = append(out, models.RawHit{
			ID:       stringID(doc[m.primaryKey]),
			Position: i + 1,
			Fields:   doc,
		})
	}
	return out, nil
}

// Close releases the client. The HTTP client holds no resources needing release.
func (m *MeilisearchBackend) Close() error {
	return nil
}

// decodeHits converts the driver's hit representation into plain field maps.
func decodeHits(hits interface{}) ([]map[string]interface{}, error) {
	raw, err := json.Marshal(hits)
	if err != nil {
		return nil, err
	}
	var docs []map[string]interface{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// buildFilter renders an equality filter joined with AND, with attributes sorted for
// a stable request.
func buildFilter(filter map[string]string) string {
	if len(filter) == 0 {
		return ""
	}
	fields := make([]string, 0, len(filter))
	for f := range filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s = \"%s\"", f, escapeFilterValue(filter[f])))
	}
	return strings.Join(parts, " AND ")
}

func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}

func stringID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return fmt.Sprint(id)
	}
}
