package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned by Validate for queries that cannot be searched.
var ErrInvalidQuery = errors.New("invalid query")

// maxQueryLength bounds the query string accepted from clients.
const maxQueryLength = 512

// SearchQuery represents a search request across categories.
type SearchQuery struct {
	// Query may be empty; backends then return their default ordering.
	Query string `json:"query"`
	// Product is the current product slug; it filters every category that has a filter field.
	Product    string     `json:"product,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// Validate normalizes the query and checks its fields.
// Whitespace is trimmed, categories default to all, and unknown categories are rejected.
func (q *SearchQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	q.Product = strings.TrimSpace(q.Product)
	if len(q.Query) > maxQueryLength {
		return fmt.Errorf("%w: query exceeds %d bytes", ErrInvalidQuery, maxQueryLength)
	}
	if len(q.Categories) == 0 {
		q.Categories = append([]Category(nil), Categories...)
		return nil
	}
	seen := make(map[Category]bool, len(q.Categories))
	ordered := make([]Category, 0, len(q.Categories))
	for _, c := range q.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		seen[c] = true
	}
	for _, c := range Categories {
		if seen[c] {
			ordered = append(ordered, c)
		}
	}
	q.Categories = ordered
	return nil
}

// Includes reports whether c is one of the requested categories.
func (q *SearchQuery) Includes(c Category) bool {
	for _, want := range q.Categories {
		if want == c {
			return true
		}
	}
	return false
}
