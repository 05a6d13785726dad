package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vato-reader/internal/app"
	"vato-reader/internal/config"
	"vato-reader/internal/handlers"
	"vato-reader/internal/http"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, err := app.New(ctx, cfg, app.Options{Watch: true})
	if err != nil {
		log.Fatalf("Failed to initialize reader: %v", err)
	}
	defer func() {
		_ = reader.Close()
	}()
	slog.Info("Reader initialized",
		"catalog", catalogSource(cfg),
		"documents", documentSource(cfg),
		"cache_ttl", cfg.CatalogCacheTTL.String(),
		"last_read", reader.Tracker.Enabled(),
	)

	about, err := handlers.NewAboutHandler()
	if err != nil {
		log.Fatalf("Failed to render about page: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		Reader:           reader.Reader,
		Catalog:          reader.Catalog,
		BookmarksEnabled: reader.Tracker.Enabled(),
		About:            about,
		StaticDir:        cfg.DataDir,
	})

	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			slog.Error("API server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

func catalogSource(cfg *config.Config) string {
	if cfg.CatalogIsRemote() {
		return cfg.CatalogURL
	}
	return cfg.CatalogPath
}

func documentSource(cfg *config.Config) string {
	if cfg.DocumentsAreRemote() {
		return cfg.DocumentBaseURL
	}
	return cfg.DocumentRoot
}
