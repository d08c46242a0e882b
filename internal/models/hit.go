// Package models defines core data structures for hits, collections, queries, and search responses.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Category is a fixed content type partition of the search results.
type Category string

const (
	CategoryDocs         Category = "docs"
	CategoryTutorials    Category = "tutorials"
	CategoryIntegrations Category = "integrations"
)

// Categories lists every category in the fixed concatenation order used when merging.
var Categories = []Category{CategoryDocs, CategoryTutorials, CategoryIntegrations}

// ErrUnknownCategory is returned when a category name is not one of Categories.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory returns the Category named by s.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Payload is the category-specific display data of a hit.
type Payload interface {
	DisplayTitle() string
	DisplayURL() string
	category() Category
}

// DocumentationPayload is the display data of a documentation page hit.
type DocumentationPayload struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Products []string `json:"products,omitempty"`
}

func (p *DocumentationPayload) DisplayTitle() string { return p.Title }
func (p *DocumentationPayload) DisplayURL() string   { return p.URL }
func (p *DocumentationPayload) category() Category   { return CategoryDocs }

// TutorialPayload is the display data of a tutorial hit.
type TutorialPayload struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Products []string `json:"products,omitempty"`
	ReadTime string   `json:"read_time,omitempty"`
}

func (p *TutorialPayload) DisplayTitle() string { return p.Title }
func (p *TutorialPayload) DisplayURL() string   { return p.URL }
func (p *TutorialPayload) category() Category   { return CategoryTutorials }

// IntegrationPayload is the display data of an integration listing hit.
type IntegrationPayload struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Product     string `json:"product,omitempty"`
	Tier        string `json:"tier,omitempty"`
}

func (p *IntegrationPayload) DisplayTitle() string { return p.Name }
func (p *IntegrationPayload) DisplayURL() string   { return p.URL }
func (p *IntegrationPayload) category() Category   { return CategoryIntegrations }

// Hit is one search result, tagged with the category it was fetched from.
// ID is unique within its category only. Position is the backend relevance rank and is
// only guaranteed comparable with other hits of the same category fetch.
type Hit struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Position int      `json:"position"`
	Payload  Payload  `json:"payload"`
}

// UnmarshalJSON decodes the payload into the concrete type for the hit's category.
func (h *Hit) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID       string          `json:"id"`
		Category Category        `json:"category"`
		Position int             `json:"position"`
		Payload  json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	payload, err := newPayload(aux.Category)
	if err != nil {
		return err
	}
	if len(aux.Payload) > 0 && string(aux.Payload) != "null" {
		if err := json.Unmarshal(aux.Payload, payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", aux.Category, err)
		}
	}
	h.ID = aux.ID
	h.Category = aux.Category
	h.Position = aux.Position
	h.Payload = payload
	return nil
}

func newPayload(c Category) (Payload, error) {
	switch c {
	case CategoryDocs:
		return &DocumentationPayload{}, nil
	case CategoryTutorials:
		return &TutorialPayload{}, nil
	case CategoryIntegrations:
		return &IntegrationPayload{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
}

// RawHit is a hit as returned by a search backend, before normalization.
// Position is 1-based in backend response order.
type RawHit struct {
	ID       string
	Position int
	Fields   map[string]interface{}
}
