package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/catalog"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/models"
)

func TestEncodeContentFile_AllExtensionsLoadable(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "seal", "title": "Seal configuration", "url": "/vault/docs/seal", "products": []interface{}{"vault"}},
	}
	for _, ext := range SupportedFileExtensions {
		t.Run(ext, func(t *testing.T) {
			content, err := EncodeContentFile(ext, models.CategoryDocs, records)
			if err != nil {
				t.Fatalf("EncodeContentFile: %v", err)
			}
			path := filepath.Join(t.TempDir(), "docs"+ext)
			if err := os.WriteFile(path, content, 0644); err != nil {
				t.Fatal(err)
			}

			b, err := backend.NewBleveBackend("")
			if err != nil {
				t.Fatal(err)
			}
			defer b.Close()
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			n, err := catalog.New(b, &cfg.Backend).LoadFile(context.Background(), path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if n != 1 {
				t.Errorf("loaded %d records, want 1", n)
			}
		})
	}
}

func TestEncodeContentFile_UnknownExtension(t *testing.T) {
	if _, err := EncodeContentFile(".md", models.CategoryDocs, nil); err == nil {
		t.Error("expected error for .md")
	}
}
