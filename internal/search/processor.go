package search

import (
	"strings"

	"github.com/hyperjump/palette/internal/models"
)

// ProcessQuery validates and applies defaults to the search query.
// Product slugs are matched case-insensitively, so they are lowercased here.
func ProcessQuery(query *models.SearchQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}
	query.Product = strings.ToLower(query.Product)
	return nil
}
