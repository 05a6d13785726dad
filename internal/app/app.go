// Package app wires configuration into the reader used by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"vato-reader/internal/catalog"
	"vato-reader/internal/config"
	"vato-reader/internal/content"
	"vato-reader/internal/coverage"
	"vato-reader/internal/lastread"
	"vato-reader/internal/service"
	"vato-reader/internal/storage"
)

// App holds the wired components. Close releases them.
type App struct {
	Reader  service.Reader
	Catalog catalog.Loader
	Fetcher content.Fetcher
	Tracker *lastread.Tracker

	documentRoot string // Empty when documents are remote
	db           *sql.DB
	watcher      *catalog.Watcher
}

// ErrRemoteDocuments is returned by Check when documents are not on local disk.
var ErrRemoteDocuments = errors.New("coverage check needs a local DOCUMENT_ROOT")

// Options adjust wiring for a particular front end.
type Options struct {
	// DisableBookmarks forces a headless tracker regardless of config.
	DisableBookmarks bool
	// Watch starts the catalog file watcher when the config allows it.
	Watch bool
}

// New builds the catalog loader, document fetcher and tracker described by cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{}

	client := &http.Client{Timeout: cfg.FetchTimeout}

	var source catalog.Loader
	if cfg.CatalogIsRemote() {
		source = catalog.NewHTTPLoader(cfg.CatalogURL, client)
	} else {
		source = catalog.NewFileLoader(cfg.CatalogPath)
	}
	cache := catalog.NewCachingLoader(source, cfg.CatalogCacheTTL)
	a.Catalog = cache

	if cfg.DocumentsAreRemote() {
		a.Fetcher = content.NewHTTPFetcher(cfg.DocumentBaseURL, client)
	} else {
		a.Fetcher = content.NewFileFetcher(cfg.DocumentRoot)
		a.documentRoot = cfg.DocumentRoot
	}

	if cfg.LastReadEnabled && !opts.DisableBookmarks {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := storage.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.db = db
		a.Tracker = lastread.NewTracker(storage.NewKVRepo(db))
		slog.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)
	} else {
		a.Tracker = lastread.NewTracker(nil)
		slog.InfoContext(ctx, "Last-read tracking disabled")
	}

	if opts.Watch && cfg.WatchCatalog && !cfg.CatalogIsRemote() && cfg.CatalogCacheTTL > 0 {
		w, err := catalog.NewWatcher(cfg.CatalogPath, cache)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			_ = a.Close()
			return nil, fmt.Errorf("failed to watch catalog: %w", err)
		}
		a.watcher = w
	}

	a.Reader = service.NewReader(a.Catalog, a.Fetcher, a.Tracker)
	return a, nil
}

// Check compares the catalog with the local document tree.
func (a *App) Check(ctx context.Context, workers int) (*coverage.Report, error) {
	if a.documentRoot == "" {
		return nil, ErrRemoteDocuments
	}
	records, err := a.Catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	docs, err := coverage.ScanDocuments(ctx, a.documentRoot)
	if err != nil {
		return nil, err
	}
	return coverage.Check(ctx, records, docs, a.Fetcher, workers)
}

// Close stops the watcher and closes the database.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
