// Package suggest builds the content shown while the search input is empty.
package suggest

import (
	"net/url"
	"strings"

	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
)

// Provider derives product tags, suggested pages and the tutorial library link from config.
type Provider struct {
	products   map[string]string
	global     []models.SuggestedPage
	perProduct map[string][]models.SuggestedPage
	libraryURL string
}

// NewProvider creates a provider from cfg.
func NewProvider(cfg *config.Config) *Provider {
	p := &Provider{
		products:   make(map[string]string, len(cfg.Products)),
		global:     toPages(cfg.Suggestions.Global),
		perProduct: make(map[string][]models.SuggestedPage, len(cfg.Suggestions.Products)),
		libraryURL: cfg.Suggestions.TutorialLibraryURL,
	}
	for _, prod := range cfg.Products {
		p.products[strings.ToLower(prod.Slug)] = prod.Name
	}
	for slug, pages := range cfg.Suggestions.Products {
		p.perProduct[strings.ToLower(slug)] = toPages(pages)
	}
	return p
}

func toPages(pages []config.PageConfig) []models.SuggestedPage {
	out := make([]models.SuggestedPage, 0, len(pages))
	for _, pg := range pages {
		out = append(out, models.SuggestedPage{Text: pg.Text, URL: pg.URL, Icon: pg.Icon})
	}
	return out
}

// ProductTag returns the tag for product, or nil when product is empty.
// "hcp" is always displayed as "HCP"; unknown slugs fall back to the slug itself.
func (p *Provider) ProductTag(product string) *models.ProductTag {
	slug := strings.ToLower(strings.TrimSpace(product))
	if slug == "" {
		return nil
	}
	name := p.products[slug]
	switch {
	case slug == "hcp":
		name = "HCP"
	case name == "":
		name = slug
	}
	return &models.ProductTag{Slug: slug, Name: name}
}

// Pages returns the suggested pages for product, falling back to the global list.
func (p *Provider) Pages(product string) []models.SuggestedPage {
	if pages, ok := p.perProduct[strings.ToLower(product)]; ok && len(pages) > 0 {
		return append([]models.SuggestedPage(nil), pages...)
	}
	return append([]models.SuggestedPage(nil), p.global...)
}

// TutorialLibrary returns the call to action linking to the tutorial library,
// filtered to product when one is set.
func (p *Provider) TutorialLibrary(product string) *models.SuggestedPage {
	if p.libraryURL == "" {
		return nil
	}
	tag := p.ProductTag(product)
	if tag == nil {
		return &models.SuggestedPage{Text: "Explore the Tutorial Library", URL: p.libraryURL, Icon: "learn-16"}
	}
	u, err := url.Parse(p.libraryURL)
	if err != nil {
		return &models.SuggestedPage{Text: "Explore the Tutorial Library", URL: p.libraryURL, Icon: "learn-16"}
	}
	q := u.Query()
	q.Set("product", tag.Slug)
	u.RawQuery = q.Encode()
	return &models.SuggestedPage{
		Text: "Explore " + tag.Name + " tutorials in the Tutorial Library",
		URL:  u.String(),
		Icon: "learn-16",
	}
}

// Decorate fills the empty-input fields of resp: product tag, suggestions and recent searches.
// Suggestions are only added when resp.Query is empty.
func (p *Provider) Decorate(resp *models.SearchResponse, product string, recent []string) {
	resp.ProductTag = p.ProductTag(product)
	if resp.Query != "" {
		return
	}
	resp.RecentSearches = recent
	resp.SuggestedPages = p.Pages(product)
	resp.TutorialLibrary = p.TutorialLibrary(product)
}
