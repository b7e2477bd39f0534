// Package config contains everything related to configuration
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL      string
	SessionPath     string
	CacheDBPath     string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
}

// Default values
const (
	defaultRequestTimeout  = 30 * time.Second
	defaultRefreshInterval = 60 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIBaseURL:      getEnvString("MOCKLINGO_API_URL", ""),
		SessionPath:     getEnvString("MOCKLINGO_SESSION_PATH", getDefaultSessionPath()),
		CacheDBPath:     getEnvString("MOCKLINGO_CACHE_DB_PATH", getDefaultCacheDBPath()),
		RequestTimeout:  getEnvDuration("MOCKLINGO_REQUEST_TIMEOUT", defaultRequestTimeout),
		RefreshInterval: getEnvDuration("MOCKLINGO_REFRESH_INTERVAL", defaultRefreshInterval),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("MOCKLINGO_API_URL is required (set via env or .env file)")
	}
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("MOCKLINGO_API_URL is not a valid URL: %w", err)
	}

	// Ensure session directory exists
	if err := ensureDir(filepath.Dir(cfg.SessionPath)); err != nil {
		return nil, err
	}

	// Ensure cache directory exists
	if err := ensureDir(filepath.Dir(cfg.CacheDBPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "mocklingo", "admin-tui", ".env"),
			filepath.Join(home, ".config", "mocklingo", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getDefaultSessionPath returns the default path for the session file.
func getDefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".config", "mocklingo", "admin-tui", "session.json")
}

// getDefaultCacheDBPath returns the default path for the SQLite cache.
func getDefaultCacheDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(home, ".config", "mocklingo", "admin-tui", "cache.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
