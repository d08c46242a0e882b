// Package e2e provides end-to-end tests with a multi-product content corpus and query cases.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/palette/internal/models"
)

// E2ERecord is one content record in the corpus.
type E2ERecord struct {
	ID       string
	Category models.Category
	Product  string
	Title    string
	Body     string
}

// QueryTestCase defines a query, its product context, and the record IDs that must appear.
type QueryTestCase struct {
	Query       string
	Product     string
	ExpectedIDs []string
	// ForbiddenIDs must not appear (records of other products when a product is set).
	ForbiddenIDs []string
	Description  string
}

// Corpus holds records and query test cases for E2E tests.
type Corpus struct {
	Records      []E2ERecord
	TestCases    []QueryTestCase
	TotalRecords int
	TotalQueries int
}

// Products is the product slugs in the corpus. Only the first three have integrations.
var Products = []string{"vault", "consul", "terraform", "nomad", "packer"}

// ProductsWithIntegrations is the capability list matching the corpus.
var ProductsWithIntegrations = []string{"vault", "consul", "terraform"}

var topics = []struct {
	slug   string
	phrase string
	body   string
}{
	{"install", "installation walkthrough", "Download the binary and follow the installation walkthrough for your platform."},
	{"configure", "configuration reference", "Every option is listed in the configuration reference with its default."},
	{"upgrade", "upgrade procedure", "Plan a rolling upgrade procedure and back up state first."},
	{"acl", "access control policies", "Access control policies restrict what each token may do."},
	{"telemetry", "telemetry collection", "Enable telemetry collection to export runtime metrics."},
	{"backup", "snapshot restore", "Take a snapshot restore test before every release."},
	{"tls", "mutual tls encryption", "Mutual tls encryption protects traffic between agents."},
	{"cli", "command line interface", "The command line interface wraps the HTTP API."},
}

// BuildCorpus returns records for every product, topic and category plus query cases.
// Each record carries a unique signature (product + topic phrase + category word)
// so queries can assert the right record is returned.
func BuildCorpus() *Corpus {
	records := buildRecords()
	cases := buildQueryTestCases(records)
	return &Corpus{
		Records:      records,
		TestCases:    cases,
		TotalRecords: len(records),
		TotalQueries: len(cases),
	}
}

func buildRecords() []E2ERecord {
	var out []E2ERecord
	integrations := make(map[string]bool, len(ProductsWithIntegrations))
	for _, p := range ProductsWithIntegrations {
		integrations[p] = true
	}
	for _, product := range Products {
		for _, topic := range topics {
			out = append(out,
				E2ERecord{
					ID:       fmt.Sprintf("docs-%s-%s", product, topic.slug),
					Category: models.CategoryDocs,
					Product:  product,
					Title:    fmt.Sprintf("%s %s", capitalize(product), topic.phrase),
					Body:     topic.body,
				},
				E2ERecord{
					ID:       fmt.Sprintf("tutorials-%s-%s", product, topic.slug),
					Category: models.CategoryTutorials,
					Product:  product,
					Title:    fmt.Sprintf("Learn %s %s", product, topic.phrase),
					Body:     "Hands-on lab. " + topic.body,
				},
			)
			if integrations[product] && topic.slug == "telemetry" {
				out = append(out, E2ERecord{
					ID:       fmt.Sprintf("integrations-%s-%s", product, topic.slug),
					Category: models.CategoryIntegrations,
					Product:  product,
					Title:    fmt.Sprintf("%s %s exporter", capitalize(product), topic.phrase),
					Body:     "Ships " + topic.phrase + " to an external system.",
				})
			}
		}
	}
	return out
}

func buildQueryTestCases(records []E2ERecord) []QueryTestCase {
	var cases []QueryTestCase
	for _, product := range Products {
		for _, topic := range topics {
			var expected, forbidden []string
			for _, r := range records {
				if !strings.HasSuffix(r.ID, "-"+topic.slug) {
					continue
				}
				if r.Product == product {
					expected = append(expected, r.ID)
				} else {
					forbidden = append(forbidden, r.ID)
				}
			}
			cases = append(cases, QueryTestCase{
				Query:        topic.phrase,
				Product:      product,
				ExpectedIDs:  expected,
				ForbiddenIDs: forbidden,
				Description:  fmt.Sprintf("%s/%s", product, topic.slug),
			})
		}
	}
	return cases
}

// ToContentFiles groups records by category into content file bodies (category -> records).
func (c *Corpus) ToContentFiles() map[models.Category][]map[string]interface{} {
	files := make(map[models.Category][]map[string]interface{})
	for _, r := range c.Records {
		files[r.Category] = append(files[r.Category], r.Fields())
	}
	return files
}

// Fields returns the backend fields of r for its category.
func (r E2ERecord) Fields() map[string]interface{} {
	url := fmt.Sprintf("/%s/%s/%s", r.Product, r.Category, r.ID)
	if r.Category == models.CategoryIntegrations {
		return map[string]interface{}{
			"id":          r.ID,
			"name":        r.Title,
			"url":         url,
			"description": r.Body,
			"product":     r.Product,
			"tier":        "official",
		}
	}
	fields := map[string]interface{}{
		"id":       r.ID,
		"title":    r.Title,
		"url":      url,
		"excerpt":  r.Body,
		"products": []interface{}{r.Product},
	}
	if r.Category == models.CategoryTutorials {
		fields["read_time"] = "10min"
	}
	return fields
}

// containsPhrase reports whether every word of phrase occurs in the record's title or body.
func containsPhrase(r E2ERecord, phrase string) bool {
	text := strings.ToLower(r.Title + " " + r.Body)
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
