// Package main is the Palette CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/palette/internal/backend"
	"github.com/hyperjump/palette/internal/catalog"
	"github.com/hyperjump/palette/internal/cli"
	"github.com/hyperjump/palette/internal/config"
	"github.com/hyperjump/palette/internal/metrics"
	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/server"
	"github.com/hyperjump/palette/internal/session"
	"github.com/hyperjump/palette/internal/source"
	"github.com/hyperjump/palette/internal/storage"
	"github.com/hyperjump/palette/internal/suggest"
	"github.com/hyperjump/palette/internal/tui"
	"github.com/hyperjump/palette/internal/watcher"
	"github.com/hyperjump/palette/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/palette/config.yaml"
	defaultServerURL  = "http://localhost:8080"
)

// loadConfig loads config from path. When path is the default and config.yaml exists in
// the current directory, that file is used instead so "palette server" works from a
// project checkout. A missing default config yields built-in defaults.
// Returns the config and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "palette", "ui":
		runPalette()
	case "index":
		runIndex()
	case "recent":
		runRecent()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("palette version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (content reloads, fetch timings, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("backend", cfg.Backend.Type),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if w := components.contentWatcher(logger); w != nil {
		if err := w.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start content watcher", zap.Error(err))
		}
		w.SyncExisting()
	}

	srv := components.server(cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: palette search [flags] [query]\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. An empty query shows recent searches and suggested pages.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  palette search seal configuration
  palette search --product vault "auto unseal"
  palette search --tab integrations --product terraform aws
  palette search --output json consul connect
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// parseCategories splits a comma-separated category list. Empty input means all categories.
func parseCategories(s string) ([]models.Category, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []models.Category
	for _, part := range strings.Split(s, ",") {
		c := models.Category(strings.ToLower(strings.TrimSpace(part)))
		if c == "" {
			continue
		}
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownCategory, c)
		}
		out = append(out, c)
	}
	return out, nil
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = search in-process)")
	product := fs.String("product", "", "current product slug (filters results and hides integrations for products without them)")
	categories := fs.String("categories", "", "comma-separated categories to search: docs, tutorials, integrations (default all)")
	tab := fs.String("tab", "", "only print hits of this category")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cats, err := parseCategories(*categories)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tabCategory := models.Category(strings.ToLower(*tab))
	if tabCategory != "" && !tabCategory.Valid() {
		fmt.Fprintf(os.Stderr, "Unknown tab %q; use docs, tutorials, or integrations\n", *tab)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{
		Query:      buildSearchQuery(fs.Args()),
		Product:    *product,
		Categories: cats,
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		// Use the HTTP API when a server is running (avoids the Bleve index lock).
		response, err = searchViaHTTP(*serverURL, searchQuery)
	} else {
		response, err = searchDirect(*configPath, searchQuery)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format, tabCategory); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(configPath string, query *models.SearchQuery) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()
	return components.search(context.Background(), query, logger)
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runPalette() {
	fs := flag.NewFlagSet("palette", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	product := fs.String("product", "", "current product slug")
	debug := fs.Bool("debug", false, "write debug logs to palette.log in the current directory")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// Log lines on stderr would draw over the alternate screen.
	logPath := ""
	if *debug || cfg.Debug {
		logPath = "palette.log"
	}
	logger, err := utils.NewFileLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	updates := tui.NewUpdates()
	sess := session.New(components.Engine,
		session.WithDebounce(cfg.Search.Debounce()),
		session.WithProduct(*product),
		session.WithRecentStore(components.Recent),
		session.WithReporter(components.Engine.Reporter()),
		session.WithLogger(logger),
		session.WithOnUpdate(updates.Publish),
	)
	defer sess.Close()

	slug := strings.ToLower(strings.TrimSpace(*product))
	selected, err := tui.Run(sess, updates, tui.Options{
		ProductTag:      components.Suggest.ProductTag(slug),
		SuggestedPages:  components.Suggest.Pages(slug),
		TutorialLibrary: components.Suggest.TutorialLibrary(slug),
		Recent: func() []string {
			recent, err := sess.RecentSearches(context.Background())
			if err != nil {
				logger.Warn("failed to list recent searches", zap.Error(err))
			}
			return recent
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Palette failed: %v\n", err)
		os.Exit(1)
	}
	if selected != "" {
		fmt.Println(selected)
	}
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Backend.Type != string(backend.TypeBleve) {
		fmt.Printf("index only applies to the bleve backend (configured: %s)\n", cfg.Backend.Type)
		os.Exit(1)
	}
	path := cfg.Backend.Bleve.ContentDir
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Println("Usage: palette index [flags] <content-file-or-directory>")
		os.Exit(1)
	}
	if cfg.Backend.Bleve.IndexPath == "" {
		fmt.Println("backend.bleve.index_path is empty; an in-memory index would be discarded on exit")
		os.Exit(1)
	}
	// The content directory is loaded by initializeComponents; index the argument only.
	cfg.Backend.Bleve.ContentDir = ""

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		files, records, err := components.Catalog.LoadDirectory(ctx, path)
		if err != nil {
			fmt.Printf("Indexing directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Indexed %d record(s) from %d file(s) in %s\n", records, files, path)
		return
	}
	n, err := components.Catalog.LoadFile(ctx, path)
	if err != nil {
		fmt.Printf("Indexing failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Indexed %d record(s) from %s\n", n, path)
}

func runRecent() {
	sub := "list"
	args := os.Args[2:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet("recent", flag.ExitOnError)
	serverURL := fs.String("server", defaultServerURL, "server URL")
	_ = fs.Parse(args)

	switch sub {
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/recent")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			RecentSearches []storage.RecentSearch `json:"recent_searches"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, q := range storage.Queries(out.RecentSearches) {
			fmt.Println(q)
		}
	case "clear":
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/recent", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Clear failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Println("Recent searches cleared")
	default:
		fmt.Printf("Unknown recent subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = inspect in-process)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status server.StatusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		status = components.server(cfg, logger).Status()
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, &status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func writeStatusText(w io.Writer, status *server.StatusResponse) {
	fmt.Fprintf(w, "backend:            %s\n", status.Backend)
	cats := make([]string, len(status.Categories))
	for i, c := range status.Categories {
		cats[i] = string(c)
	}
	fmt.Fprintf(w, "categories:         %s\n", strings.Join(cats, ", "))
	for _, c := range cats {
		if idx, ok := status.Indexes[c]; ok {
			fmt.Fprintf(w, "  %-16s  index=%s\n", c, idx)
		}
	}
	fmt.Fprintf(w, "integrations for:   %s   # products that show the Integrations tab\n", strings.Join(status.ProductsWithIntegrations, ", "))
	if status.ContentFiles > 0 || status.ContentRecords > 0 {
		fmt.Fprintf(w, "content_files:      %d\n", status.ContentFiles)
		fmt.Fprintf(w, "content_records:    %d\n", status.ContentRecords)
	}
	fmt.Fprintf(w, "recent_store:       %s\n", status.RecentStore)
	fmt.Fprintf(w, "disk_usage_bytes:   %d   # local index + recent store on disk\n", status.DiskUsageBytes)
}

func statusViaHTTP(serverURL string) (*server.StatusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s server.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Backend backend.Backend
	// Catalog is set only for the bleve backend.
	Catalog *catalog.Catalog
	Engine  *search.Engine
	Recent  storage.RecentStore
	Suggest *suggest.Provider
	Metrics *metrics.Metrics

	contentDir string
}

func (c *Components) Close() {
	if c.Recent != nil {
		_ = c.Recent.Close()
	}
	if c.Backend != nil {
		_ = c.Backend.Close()
	}
}

// contentWatcher returns a watcher that reloads content files, or nil when there is
// nothing to watch.
func (c *Components) contentWatcher(logger *zap.Logger) *watcher.Watcher {
	if c.Catalog == nil || c.contentDir == "" {
		return nil
	}
	cat := c.Catalog
	return watcher.New(c.contentDir, catalog.Extensions,
		func(path string) {
			if _, err := cat.LoadFile(context.Background(), path); err != nil {
				logger.Warn("content reload failed", zap.String("path", path), zap.Error(err))
			}
		},
		func(path string) {
			if err := cat.RemoveFile(context.Background(), path); err != nil {
				logger.Warn("content remove failed", zap.String("path", path), zap.Error(err))
			}
		},
		watcher.WithLogger(logger),
	)
}

func (c *Components) server(cfg *config.Config, logger *zap.Logger) *server.Server {
	opts := []server.Option{server.WithBackend(c.Backend), server.WithMetrics(c.Metrics)}
	if c.Catalog != nil {
		opts = append(opts, server.WithCatalog(c.Catalog))
	}
	return server.NewServer(c.Engine, c.Recent, c.Suggest, cfg, logger, opts...)
}

// search runs query in-process the way POST /api/v1/search does.
func (c *Components) search(ctx context.Context, query *models.SearchQuery, logger *zap.Logger) (*models.SearchResponse, error) {
	response, err := c.Engine.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	var recent []string
	if response.Query == "" {
		list, err := c.Recent.List(ctx)
		if err != nil {
			logger.Warn("failed to list recent searches", zap.Error(err))
		}
		recent = storage.Queries(list)
	} else if err := c.Recent.Add(ctx, response.Query); err != nil {
		logger.Warn("failed to record recent search", zap.Error(err))
	}
	c.Suggest.Decorate(response, query.Product, recent)
	return response, nil
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{
		Suggest: suggest.NewProvider(cfg),
		Metrics: metrics.NewMetrics(version, runtime.Version()),
	}

	b, err := backend.New(&cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}
	c.Backend = b

	if bleve, ok := b.(*backend.BleveBackend); ok {
		c.Catalog = catalog.New(bleve, &cfg.Backend, catalog.WithLogger(logger))
		if dir := cfg.Backend.Bleve.ContentDir; dir != "" {
			files, records, err := c.Catalog.LoadDirectory(context.Background(), dir)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				c.Close()
				return nil, fmt.Errorf("failed to load content: %w", err)
			}
			logger.Info("content loaded",
				zap.String("dir", dir),
				zap.Int("files", files),
				zap.Int("records", records))
			if cfg.Backend.Bleve.WatchOrDefault() {
				c.contentDir = dir
			}
		}
	}

	recent, err := storage.New(&cfg.Recent)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize recent store: %w", err)
	}
	c.Recent = recent

	adapters := source.FromConfig(cfg, b)
	sources := make([]search.Source, len(adapters))
	for i, a := range adapters {
		sources[i] = a
	}
	c.Engine = search.NewEngine(sources, &cfg.Search,
		search.WithCapabilities(search.Capabilities{ProductsWithIntegrations: cfg.Capabilities.ProductsWithIntegrations}),
		search.WithReporter(search.NewReporter(logger, c.Metrics)),
		search.WithLogger(logger),
	)
	return c, nil
}

func printUsage() {
	fmt.Println(`palette - Search palette for documentation, tutorials and integrations

Usage:
  palette server [flags]            Start the HTTP server
  palette search [flags] [query]    Search all categories
  palette palette [flags]           Open the interactive search palette
  palette index [flags] [path]      Load content files into the local index
  palette recent [list|clear]       Show or clear recent searches
  palette status [flags]            Show backend/content/storage status
  palette version                   Show version
  palette help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/palette/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string      Config file path (for in-process mode)
  --server string      Server URL (default: http://localhost:8080). Use --server "" to search in-process.
  --product string     Current product slug
  --categories string  Comma-separated categories (default: all)
  --tab string         Only print hits of one category
  --output string      Output format: text, compact or json (default: text)

Palette Flags:
  --config string    Config file path
  --product string   Current product slug
  --debug            Write debug logs to ./palette.log

Status Flags:
  --server string    Server URL (default: http://localhost:8080). Use --server "" to inspect in-process.
  --output string    Output format: text or json (default: text)

Examples:
  palette server
  palette search "seal configuration"
  palette search --product vault --tab tutorials unseal
  palette search --output json "consul connect"
  palette palette --product terraform
  palette index ./content
  palette recent clear
  palette status --output json`)
}
