// Package catalog loads content files into the local search index.
//
// A content file is YAML (or JSON) with a category and a list of records:
//
//	category: tutorials
//	records:
//	  - id: get-started
//	    title: Get Started with Vault
//	    url: /vault/tutorials/get-started
//	    products: [vault]
//
// Each record needs an id unique within its category, across all content files; a file
// redefining an id another file owns is rejected. Reloading a file replaces the records
// it previously contributed.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Extensions lists the content file extensions the catalog understands.
var Extensions = []string{".yaml", ".yml", ".json"}

// ErrInvalidFile is returned for content files that cannot be loaded.
var ErrInvalidFile = errors.New("invalid content file")

// Indexer stores and removes records in a named index. *backend.BleveBackend satisfies it.
type Indexer interface {
	Put(ctx context.Context, index string, records []backend.Record) error
	Remove(ctx context.Context, index string, ids []string) error
}

type contentFile struct {
	Category string                   `yaml:"category"`
	Records  []map[string]interface{} `yaml:"records"`
}

type loaded struct {
	index string
	ids   []string
}

// Catalog tracks which records each content file contributed.
type Catalog struct {
	indexer Indexer
	indexes map[models.Category]string
	logger  *zap.Logger

	mu    sync.Mutex
	files map[string]loaded
	// owners maps index/id to the content file that defined it.
	owners map[string]string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger for the catalog.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog writing to indexer, using the index names configured per category.
func New(indexer Indexer, cfg *config.BackendConfig, opts ...Option) *Catalog {
	c := &Catalog{
		indexer: indexer,
		indexes: make(map[models.Category]string, len(models.Categories)),
		logger:  zap.NewNop(),
		files:   make(map[string]loaded),
		owners:  make(map[string]string),
	}
	for _, category := range models.Categories {
		index := string(category)
		if cfg != nil {
			if cc, ok := cfg.Categories[string(category)]; ok && cc.Index != "" {
				index = cc.Index
			}
		}
		c.indexes[category] = index
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsContentFile reports whether path has a content file extension.
func IsContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile indexes the records of the content file at path, replacing any it loaded before.
// It returns the number of records indexed.
func (c *Catalog) LoadFile(ctx context.Context, path string) (int, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	var file contentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}
	category, err := models.ParseCategory(file.Category)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidFile, path, err)
	}
	records, err := toRecords(file.Records)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}
	index := c.indexes[category]

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		if owner, ok := c.owners[ownerKey(index, r.ID)]; ok && owner != path {
			return 0, fmt.Errorf("%w: %s: record id %q already defined in %s", ErrInvalidFile, path, r.ID, owner)
		}
	}
	if prev, ok := c.files[path]; ok {
		stale := staleIDs(prev, index, records)
		if len(stale) > 0 {
			if err := c.indexer.Remove(ctx, prev.index, stale); err != nil {
				return 0, err
			}
			c.release(prev.index, stale)
		}
	}
	if err := c.indexer.Put(ctx, index, records); err != nil {
		return 0, err
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
		c.owners[ownerKey(index, r.ID)] = path
	}
	c.files[path] = loaded{index: index, ids: ids}
	c.logger.Debug("content file loaded",
		zap.String("path", path),
		zap.String("index", index),
		zap.Int("records", len(records)))
	return len(records), nil
}

func ownerKey(index, id string) string { return index + "/" + id }

func (c *Catalog) release(index string, ids []string) {
	for _, id := range ids {
		delete(c.owners, ownerKey(index, id))
	}
}

// staleIDs returns the IDs prev contributed that the new load no longer covers.
func staleIDs(prev loaded, index string, records []backend.Record) []string {
	if prev.index != index {
		return prev.ids
	}
	keep := make(map[string]bool, len(records))
	for _, r := range records {
		keep[r.ID] = true
	}
	var stale []string
	for _, id := range prev.ids {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	return stale
}

func toRecords(raw []map[string]interface{}) ([]backend.Record, error) {
	records := make([]backend.Record, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, fields := range raw {
		id := strings.TrimSpace(fmt.Sprint(fields["id"]))
		if fields["id"] == nil || id == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate record id %q", id)
		}
		seen[id] = true
		rec := backend.Record{ID: id, Fields: make(map[string]interface{}, len(fields))}
		for k, v := range fields {
			if k != "id" {
				rec.Fields[k] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// RemoveFile removes the records that path contributed. Unknown paths are ignored.
func (c *Catalog) RemoveFile(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.files[path]
	if !ok {
		return nil
	}
	if err := c.indexer.Remove(ctx, prev.index, prev.ids); err != nil {
		return err
	}
	c.release(prev.index, prev.ids)
	delete(c.files, path)
	c.logger.Debug("content file removed", zap.String("path", path), zap.Int("records", len(prev.ids)))
	return nil
}

// LoadDirectory loads every content file under dir. Invalid files are logged and skipped.
// It returns the number of files and records loaded.
func (c *Catalog) LoadDirectory(ctx context.Context, dir string) (files, records int, err error) {
	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsContentFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return files, records, err
		}
		n, err := c.LoadFile(ctx, path)
		if err != nil {
			if errors.Is(err, ErrInvalidFile) {
				c.logger.Warn("skipping content file", zap.String("path", path), zap.Error(err))
				continue
			}
			return files, records, err
		}
		files++
		records += n
	}
	return files, records, nil
}

// Stats returns the number of loaded files and records.
func (c *Catalog) Stats() (files, records int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.files {
		records += len(l.ids)
	}
	return len(c.files), records
}
