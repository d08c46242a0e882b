// Package cli provides CLI output helpers for Palette.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact prints one line per hit.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat returns the format named by s.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch f := SearchOutputFormat(strings.ToLower(s)); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text, compact or json)", s)
}

// WriteSearchResults writes search results to w in the given format.
// When tab is non-empty only that category's hits are written.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat, tab models.Category) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, hit := range hitsFor(response, tab) {
			fmt.Fprintf(w, "%-12s %s\t%s\n", hit.Category, hit.Payload.DisplayTitle(), hit.Payload.DisplayURL())
		}
		return nil
	default:
		writeSearchResultsText(w, response, tab)
		return nil
	}
}

func hitsFor(response *models.SearchResponse, tab models.Category) []models.Hit {
	if tab == "" {
		return response.Results
	}
	for _, t := range response.Tabs {
		if t.Category == tab {
			return t.Hits
		}
	}
	return nil
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse, tab models.Category) {
	if response.ProductTag != nil {
		fmt.Fprintf(w, "\nProduct: %s\n", response.ProductTag.Name)
	}
	if response.Query == "" {
		writeSuggestions(w, response)
		return
	}

	fmt.Fprintf(w, "\nFound %d results in %dms\n", response.Total, response.QueryTime)
	counts := make([]string, 0, len(response.Tabs))
	for _, t := range response.Tabs {
		counts = append(counts, fmt.Sprintf("%s (%d)", t.Label, t.Count))
	}
	if len(counts) > 0 {
		fmt.Fprintf(w, "Tabs: %s\n", strings.Join(counts, " | "))
	}
	fmt.Fprintln(w)

	hits := hitsFor(response, tab)
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results match your search.")
		return
	}
	for _, hit := range hits {
		writeOneResult(w, hit)
	}
}

func writeOneResult(w io.Writer, hit models.Hit) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "[%s] #%d %s\n", hit.Category, hit.Position, hit.Payload.DisplayTitle())
	fmt.Fprintf(w, "URL: %s\n", hit.Payload.DisplayURL())
	switch p := hit.Payload.(type) {
	case *models.DocumentationPayload:
		if p.Excerpt != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(p.Excerpt, 200))
		}
	case *models.TutorialPayload:
		if p.ReadTime != "" {
			fmt.Fprintf(w, "Read time: %s\n", p.ReadTime)
		}
		if p.Excerpt != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(p.Excerpt, 200))
		}
	case *models.IntegrationPayload:
		if p.Tier != "" {
			fmt.Fprintf(w, "Tier: %s\n", p.Tier)
		}
		if p.Description != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(p.Description, 200))
		}
	}
	fmt.Fprintln(w)
}

func writeSuggestions(w io.Writer, response *models.SearchResponse) {
	if len(response.RecentSearches) > 0 {
		fmt.Fprintln(w, "\nRecent searches:")
		for _, q := range response.RecentSearches {
			fmt.Fprintf(w, "  %s\n", q)
		}
	}
	if len(response.SuggestedPages) > 0 {
		fmt.Fprintln(w, "\nSuggested pages:")
		for _, p := range response.SuggestedPages {
			fmt.Fprintf(w, "  %s  %s\n", p.Text, p.URL)
		}
	}
	if response.TutorialLibrary != nil {
		fmt.Fprintf(w, "\n%s: %s\n", response.TutorialLibrary.Text, response.TutorialLibrary.URL)
	}
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText, "")
}
