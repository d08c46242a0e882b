package config

// Default category index names, matching the category identifiers.
var defaultCategories = map[string]CategoryConfig{
	"docs":         {Index: "docs", FilterField: "products"},
	"tutorials":    {Index: "tutorials", FilterField: "products"},
	"integrations": {Index: "integrations", FilterField: "product"},
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit > 0 && cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = int(cfg.Server.RateLimit) + 1
	}
	if cfg.Backend.Type == "" {
		cfg.Backend.Type = "bleve"
	}
	if cfg.Backend.Meilisearch.Host == "" {
		cfg.Backend.Meilisearch.Host = "http://localhost:7700"
	}
	if cfg.Backend.Meilisearch.PrimaryKey == "" {
		cfg.Backend.Meilisearch.PrimaryKey = "id"
	}
	if cfg.Backend.Categories == nil {
		cfg.Backend.Categories = make(map[string]CategoryConfig, len(defaultCategories))
	}
	for name, def := range defaultCategories {
		c := cfg.Backend.Categories[name]
		if c.Index == "" {
			c.Index = def.Index
		}
		if c.FilterField == "" {
			c.FilterField = def.FilterField
		}
		cfg.Backend.Categories[name] = c
	}
	if cfg.Search.DebounceMs == 0 {
		cfg.Search.DebounceMs = 300
	}
	if cfg.Search.HitsPerCategory == 0 {
		cfg.Search.HitsPerCategory = 20
	}
	if cfg.Search.FetchTimeoutMs == 0 {
		cfg.Search.FetchTimeoutMs = 5000
	}
	if cfg.Recent.Store == "" {
		cfg.Recent.Store = "memory"
	}
	if cfg.Recent.DatabasePath == "" {
		cfg.Recent.DatabasePath = "/usr/local/var/palette/data/recent.db"
	}
	if cfg.Recent.RedisAddr == "" {
		cfg.Recent.RedisAddr = "localhost:6379"
	}
	if cfg.Recent.RedisKey == "" {
		cfg.Recent.RedisKey = "palette:recent-searches"
	}
	if cfg.Recent.MaxEntries == 0 {
		cfg.Recent.MaxEntries = 5
	}
	if cfg.Suggestions.TutorialLibraryURL == "" {
		cfg.Suggestions.TutorialLibraryURL = "/tutorials/library"
	}
}
