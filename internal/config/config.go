package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir string

	// CatalogURL, when set, is fetched instead of CatalogPath.
	CatalogURL      string
	CatalogPath     string
	CatalogCacheTTL time.Duration
	WatchCatalog    bool

	// DocumentBaseURL, when set, is used instead of DocumentRoot.
	DocumentBaseURL string
	DocumentRoot    string
	FetchTimeout    time.Duration

	LastReadEnabled bool
	DBPath          string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	dataDir := getEnv("DATA_DIR", "./public")

	cfg := &Config{
		DataDir:         dataDir,
		CatalogURL:      getEnv("CATALOG_URL", ""),
		CatalogPath:     getEnv("CATALOG_PATH", filepath.Join(dataDir, "vato.json")),
		DocumentBaseURL: getEnv("DOCUMENT_BASE_URL", ""),
		DocumentRoot:    getEnv("DOCUMENT_ROOT", filepath.Join(dataDir, "output_html")),
		DBPath:          getEnv("DB_PATH", "./data/vato-reader.db"),
		APIPort:         getEnv("API_PORT", "9000"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.WatchCatalog, err = getBool("WATCH_CATALOG", true); err != nil {
		return nil, err
	}
	if cfg.LastReadEnabled, err = getBool("LAST_READ_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.CatalogCacheTTL < 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}
	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must not be negative")
	}
	if port, err := strconv.Atoi(cfg.APIPort); err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("API_PORT must be a valid port number, got %q", cfg.APIPort)
	}

	// Create the database directory only when bookmarks are persisted
	if cfg.LastReadEnabled {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// CatalogIsRemote reports whether the catalog is fetched over HTTP.
func (c *Config) CatalogIsRemote() bool {
	return c.CatalogURL != ""
}

// DocumentsAreRemote reports whether documents are fetched over HTTP.
func (c *Config) DocumentsAreRemote() bool {
	return c.DocumentBaseURL != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	// A bare "0" is accepted by time.ParseDuration; other unitless numbers are not.
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 30s or 5m: %w", key, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
