// Command vato reads the Swamini Vato catalog from the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"vato-reader/internal/app"
	"vato-reader/internal/config"
)

func main() {
	if err := newRootCmd(openReader).Execute(); err != nil {
		os.Exit(1)
	}
}

// openReader builds a session from the environment configuration.
func openReader(ctx context.Context, noBookmark bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Keep the terminal for passages; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: max(cfg.LogLevel, slog.LevelWarn),
	})))

	a, err := app.New(ctx, cfg, app.Options{DisableBookmarks: noBookmark})
	if err != nil {
		return nil, err
	}
	return &session{
		reader: a.Reader,
		check:  a.Check,
		close:  func() { _ = a.Close() },
	}, nil
}
