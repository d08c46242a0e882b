// Package config provides configuration loading and structs for the palette server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug        bool               `yaml:"debug"`
	Server       ServerConfig       `yaml:"server"`
	Backend      BackendConfig      `yaml:"backend"`
	Search       SearchConfig       `yaml:"search"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	Recent       RecentConfig       `yaml:"recent"`
	Products     []ProductConfig    `yaml:"products"`
	Suggestions  SuggestionsConfig  `yaml:"suggestions"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RateLimit is the sustained number of search requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// BackendConfig selects and configures the search backend.
type BackendConfig struct {
	// Type is "bleve" (local index fed from content files) or "meilisearch".
	Type        string            `yaml:"type"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
	Bleve       BleveConfig       `yaml:"bleve"`
	// Categories maps a category name (docs, tutorials, integrations) to its index settings.
	Categories map[string]CategoryConfig `yaml:"categories"`
}

// MeilisearchConfig holds hosted backend settings.
type MeilisearchConfig struct {
	Host       string `yaml:"host"`
	APIKey     string `yaml:"api_key"`
	PrimaryKey string `yaml:"primary_key"`
}

// BleveConfig holds local backend settings. An empty IndexPath keeps the index in memory.
type BleveConfig struct {
	IndexPath  string `yaml:"index_path"`
	ContentDir string `yaml:"content_dir"`
	Watch      *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to watch the content directory; defaults to true when unset.
func (b *BleveConfig) WatchOrDefault() bool {
	if b.Watch != nil {
		return *b.Watch
	}
	return true
}

// CategoryConfig holds per-category index settings.
type CategoryConfig struct {
	Index string `yaml:"index"`
	// FilterField is the attribute matched against the current product slug.
	FilterField string `yaml:"filter_field"`
	Limit       int    `yaml:"limit"`
}

// SearchConfig holds search session settings.
type SearchConfig struct {
	DebounceMs      int `yaml:"debounce_ms"`
	HitsPerCategory int `yaml:"hits_per_category"`
	FetchTimeoutMs  int `yaml:"fetch_timeout_ms"`
}

// Debounce returns the keystroke debounce interval.
func (s *SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// FetchTimeout returns the per-category fetch timeout.
func (s *SearchConfig) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutMs) * time.Millisecond
}

// CapabilitiesConfig lists process-wide product capabilities.
type CapabilitiesConfig struct {
	ProductsWithIntegrations []string `yaml:"products_with_integrations"`
}

// RecentConfig holds recent-searches persistence settings.
type RecentConfig struct {
	// Store is "memory", "sqlite", or "redis".
	Store        string `yaml:"store"`
	DatabasePath string `yaml:"database_path"`
	RedisAddr    string `yaml:"redis_addr"`
	RedisDB      int    `yaml:"redis_db"`
	RedisKey     string `yaml:"redis_key"`
	MaxEntries   int    `yaml:"max_entries"`
}

// ProductConfig names a product slug for display.
type ProductConfig struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// SuggestionsConfig holds suggested pages shown when the search input is empty.
type SuggestionsConfig struct {
	TutorialLibraryURL string                  `yaml:"tutorial_library_url"`
	Global             []PageConfig            `yaml:"global"`
	Products           map[string][]PageConfig `yaml:"products"`
}

// PageConfig is one suggested page.
type PageConfig struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Backend.Bleve.IndexPath = expandPath(cfg.Backend.Bleve.IndexPath, configDir)
	cfg.Backend.Bleve.ContentDir = expandPath(cfg.Backend.Bleve.ContentDir, configDir)
	cfg.Recent.DatabasePath = expandPath(cfg.Recent.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. Empty paths stay empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
