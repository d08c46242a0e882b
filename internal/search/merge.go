package search

import (
	"sort"

	"github.com/hyperjump/palette/internal/models"
)

// Merge flattens coll into the "all results" list: categories are concatenated in the
// fixed models.Categories order, then stably sorted by Position ascending, so hits with
// equal positions keep that concatenation order.
//
// Positions are per-category backend ranks; comparing them across categories assumes the
// backends rank on a shared scale.
func Merge(coll models.HitCollection) models.MergedResultList {
	merged := make(models.MergedResultList, 0, coll.Len())
	for _, category := range models.Categories {
		merged = append(merged, coll[category]...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Position < merged[j].Position
	})
	return merged
}
