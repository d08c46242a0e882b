package e2e

import (
	"encoding/json"
	"fmt"

	"github.com/hyperjump/palette/internal/models"
	"gopkg.in/yaml.v3"
)

// SupportedFileExtensions is the list of content file extensions used in E2E file-based tests.
var SupportedFileExtensions = []string{".yaml", ".yml", ".json"}

type contentFile struct {
	Category models.Category          `yaml:"category" json:"category"`
	Records  []map[string]interface{} `yaml:"records" json:"records"`
}

// EncodeContentFile returns the bytes of a content file for category in the format named by ext.
func EncodeContentFile(ext string, category models.Category, records []map[string]interface{}) ([]byte, error) {
	f := contentFile{Category: category, Records: records}
	switch ext {
	case ".yaml", ".yml":
		return yaml.Marshal(f)
	case ".json":
		return json.MarshalIndent(f, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported content extension %q", ext)
	}
}
