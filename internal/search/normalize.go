package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/pkg/utils"
)

// ErrMalformedHit is returned when a raw hit lacks the fields its category needs for display.
var ErrMalformedHit = errors.New("malformed hit")

// Normalize converts raw backend hits into hits of category, preserving order.
// Hits that cannot be decoded are skipped; the number skipped is returned.
func Normalize(category models.Category, raws []models.RawHit) ([]models.Hit, int) {
	hits := make([]models.Hit, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		hit, err := NormalizeHit(category, raw)
		if err != nil {
			dropped++
			continue
		}
		hits = append(hits, hit)
	}
	return hits, dropped
}

// NormalizeHit decodes one raw hit into the payload type of category.
func NormalizeHit(category models.Category, raw models.RawHit) (models.Hit, error) {
	if raw.ID == "" {
		return models.Hit{}, fmt.Errorf("%w: missing id", ErrMalformedHit)
	}
	f := fields(raw.Fields)
	var payload models.Payload
	switch category {
	case models.CategoryDocs:
		p := &models.DocumentationPayload{
			Title:    f.str("title"),
			URL:      f.str("url"),
			Excerpt:  utils.CollapseSpace(f.str("excerpt")),
			Products: f.strs("products"),
		}
		if p.Title == "" || p.URL == "" {
			return models.Hit{}, fmt.Errorf("%w: %s %s needs title and url", ErrMalformedHit, category, raw.ID)
		}
		payload = p
	case models.CategoryTutorials:
		p := &models.TutorialPayload{
			Title:    f.str("title"),
			URL:      f.str("url"),
			Excerpt:  utils.CollapseSpace(f.str("excerpt")),
			Products: f.strs("products"),
			ReadTime: f.str("read_time"),
		}
		if p.Title == "" || p.URL == "" {
			return models.Hit{}, fmt.Errorf("%w: %s %s needs title and url", ErrMalformedHit, category, raw.ID)
		}
		payload = p
	case models.CategoryIntegrations:
		p := &models.IntegrationPayload{
			Name:        f.str("name"),
			URL:         f.str("url"),
			Description: utils.CollapseSpace(f.str("description")),
			Product:     f.str("product"),
			Tier:        f.str("tier"),
		}
		if p.Name == "" || p.URL == "" {
			return models.Hit{}, fmt.Errorf("%w: %s %s needs name and url", ErrMalformedHit, category, raw.ID)
		}
		payload = p
	default:
		return models.Hit{}, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}
	return models.Hit{
		ID:       raw.ID,
		Category: category,
		Position: raw.Position,
		Payload:  payload,
	}, nil
}

type fields map[string]interface{}

func (f fields) str(key string) string {
	switch v := f[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		// Single-valued fields may come back wrapped when the index stored an array.
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	case fmt.Stringer:
		return v.String()
	case float64:
		return fmt.Sprintf("%g", v)
	}
	return ""
}

// strs accepts a string array or a lone string; Bleve returns one-element arrays as scalars.
func (f fields) strs(key string) []string {
	switch v := f[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
