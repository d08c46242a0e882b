package search

import (
	"strings"

	"github.com/hyperjump/palette/internal/models"
)

// Capabilities is the process-wide product capability data consulted when building tabs.
type Capabilities struct {
	ProductsWithIntegrations []string
}

// ShowIntegrations reports whether the integrations tab is visible for product.
// An empty capability list hides it everywhere. With no product context it is always shown;
// otherwise only products listed as having integrations show it.
func (c Capabilities) ShowIntegrations(product string) bool {
	if len(c.ProductsWithIntegrations) == 0 {
		return false
	}
	if product == "" {
		return true
	}
	for _, p := range c.ProductsWithIntegrations {
		if strings.EqualFold(p, product) {
			return true
		}
	}
	return false
}

type tabInfo struct {
	label string
	icon  string
}

var tabInfos = map[models.Category]tabInfo{
	models.CategoryDocs:         {label: "Documentation", icon: "docs-16"},
	models.CategoryTutorials:    {label: "Tutorials", icon: "learn-16"},
	models.CategoryIntegrations: {label: "Integrations", icon: "pipeline-16"},
}

// TabLabel returns the display label of category.
func TabLabel(category models.Category) string {
	if info, ok := tabInfos[category]; ok {
		return info.label
	}
	return string(category)
}

// BuildTabs returns one tab per visible category in the fixed order. Each tab carries
// exactly the collection's hits for its category.
func BuildTabs(coll models.HitCollection, caps Capabilities, product string) []models.Tab {
	tabs := make([]models.Tab, 0, len(models.Categories))
	for _, category := range models.Categories {
		if category == models.CategoryIntegrations && !caps.ShowIntegrations(product) {
			continue
		}
		hits := coll[category]
		if hits == nil {
			hits = []models.Hit{}
		}
		info := tabInfos[category]
		tabs = append(tabs, models.Tab{
			Category: category,
			Label:    info.label,
			Icon:     info.icon,
			Count:    len(hits),
			Hits:     hits,
		})
	}
	return tabs
}
