package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hyperjump/palette/internal/config"
)

// DataPaths lists what palette keeps on local disk for cfg: the Bleve index directory
// when the embedded backend persists it, and the SQLite recent-searches database.
// In-memory index and recent stores contribute nothing.
func DataPaths(cfg *config.Config) []string {
	var paths []string
	if cfg.Backend.Type == "" || cfg.Backend.Type == "bleve" {
		if cfg.Backend.Bleve.IndexPath != "" {
			paths = append(paths, cfg.Backend.Bleve.IndexPath)
		}
	}
	if cfg.Recent.Store == "sqlite" && cfg.Recent.DatabasePath != "" {
		paths = append(paths, cfg.Recent.DatabasePath)
	}
	return paths
}

// DiskUsageBytes sums the size of the palette data at paths, as reported by /status.
// Directories (the Bleve index) are walked; paths not created yet count as zero.
func DiskUsageBytes(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
			return nil
		})
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, err
		}
	}
	return total, nil
}
