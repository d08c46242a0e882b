package backend

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/palette/internal/models"
)

// Reserved stored fields; they are stripped from returned hit fields.
const (
	fieldIndex    = "index_name"
	fieldRecordID = "record_id"
)

// Record is one document stored in a local index.
type Record struct {
	ID     string
	Fields map[string]interface{}
}

// BleveBackend implements Backend with a single Bleve index. Logical indexes are
// separated by a keyword field so that record IDs only need to be unique per index.
type BleveBackend struct {
	index bleve.Index
}

// NewBleveBackend creates or opens a Bleve index at path. An empty path creates
// an in-memory index.
func NewBleveBackend(path string) (*BleveBackend, error) {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	docMapping := bleve.NewDocumentMapping()
	internalFieldMapping := bleve.NewKeywordFieldMapping()
	internalFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt(fieldIndex, internalFieldMapping)
	docMapping.AddFieldMappingsAt(fieldRecordID, internalFieldMapping)
	// Product slugs are matched exactly by the product filter.
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("product", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("products", keywordFieldMapping)
	im.DefaultMapping = docMapping

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory Bleve index: %w", err)
		}
		return &BleveBackend{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveBackend{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveBackend{index: index}, nil
}

// Type returns TypeBleve.
func (b *BleveBackend) Type() Type { return TypeBleve }

// Put indexes records into the named logical index, replacing records with the same ID.
func (b *BleveBackend) Put(ctx context.Context, index string, records []Record) error {
	batch := b.index.NewBatch()
	for _, r := range records {
		doc := make(map[string]interface{}, len(r.Fields)+2)
		for k, v := range r.Fields {
			doc[k] = v
		}
		doc[fieldIndex] = index
		doc[fieldRecordID] = r.ID
		if err := batch.Index(docID(index, r.ID), doc); err != nil {
			return &Error{Op: "put", Index: index, Err: err}
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return &Error{Op: "put", Index: index, Err: err}
	}
	return nil
}

// Remove deletes records from the named logical index.
func (b *BleveBackend) Remove(ctx context.Context, index string, ids []string) error {
	batch := b.index.NewBatch()
	for _, id := range ids {
		batch.Delete(docID(index, id))
	}
	if err := b.index.Batch(batch); err != nil {
		return &Error{Op: "remove", Index: index, Err: err}
	}
	return nil
}

// Count returns the number of records in the named logical index.
func (b *BleveBackend) Count(ctx context.Context, index string) (uint64, error) {
	req := bleve.NewSearchRequestOptions(indexQuery(index), 0, 0, false)
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return 0, &Error{Op: "count", Index: index, Err: err}
	}
	return res.Total, nil
}

// Search runs a match query restricted to req.Index and req.Filter. An empty query
// matches every record of the index.
func (b *BleveBackend) Search(ctx context.Context, req Request) ([]models.RawHit, error) {
	var text blevequery.Query
	if strings.TrimSpace(req.Query) == "" {
		text = bleve.NewMatchAllQuery()
	} else {
		text = bleve.NewMatchQuery(req.Query)
	}
	q := bleve.NewConjunctionQuery(text, indexQuery(req.Index))
	for field, value := range req.Filter {
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		q.AddQuery(tq)
	}

	search := bleve.NewSearchRequestOptions(q, limitOrDefault(req.Limit), 0, false)
	search.Fields = []string{"*"}
	search.SortBy([]string{"-_score", "_id"})
	results, err := b.index.SearchInContext(ctx, search)
	if err != nil {
		return nil, &Error{Op: "search", Index: req.Index, Err: err}
	}

	out := make([]models.RawHit, 0, len(results.Hits))
	for i, hit := range results.Hits {
		fields := make(map[string]interface{}, len(hit.Fields))
		for k, v := range hit.Fields {
			fields[k] = v
		}
		id, _ := fields[fieldRecordID].(string)
		delete(fields, fieldIndex)
		delete(fields, fieldRecordID)
		out = append(out, models.RawHit{ID: id, Position: i + 1, Fields: fields})
	}
	return out, nil
}

// Close closes the underlying index.
func (b *BleveBackend) Close() error {
	return b.index.Close()
}

func indexQuery(index string) blevequery.Query {
	q := bleve.NewTermQuery(index)
	q.SetField(fieldIndex)
	return q
}

func docID(index, id string) string {
	return index + "/" + id
}
