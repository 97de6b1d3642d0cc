// Package config loads application configuration from environment variables
// and the client credentials file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Token cache backends accepted by PETSEARCH_TOKEN_CACHE.
const (
	TokenCacheFile   = "file"
	TokenCacheSQLite = "sqlite"
	TokenCacheMemory = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	CredentialsPath string

	TokenCacheBackend string
	TokenCachePath    string
	DBPath            string

	TokenURL    string
	ListingsURL string
	TriviaURL   string

	UpstreamTimeout time.Duration
	SearchTimeout   time.Duration

	LogLevel slog.Level
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional:
//
//	PETSEARCH_LISTEN_ADDR        (127.0.0.1:3000)
//	PETSEARCH_CREDENTIALS_PATH   (auth/credentials.json)
//	PETSEARCH_TOKEN_CACHE        (file; one of file, sqlite, memory)
//	PETSEARCH_TOKEN_CACHE_PATH   (cache/auth-res.json)
//	PETSEARCH_DB_PATH            (petsearch.db)
//	PETSEARCH_TOKEN_URL          (https://api.petfinder.com/v2/oauth2/token)
//	PETSEARCH_LISTINGS_URL       (https://api.petfinder.com)
//	PETSEARCH_TRIVIA_URL         (https://catfact.ninja)
//	PETSEARCH_UPSTREAM_TIMEOUT   (10s)
//	PETSEARCH_SEARCH_TIMEOUT     (30s)
//	PETSEARCH_LOG_LEVEL          (info)
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:        envOr("PETSEARCH_LISTEN_ADDR", "127.0.0.1:3000"),
		CredentialsPath:   envOr("PETSEARCH_CREDENTIALS_PATH", "auth/credentials.json"),
		TokenCacheBackend: envOr("PETSEARCH_TOKEN_CACHE", TokenCacheFile),
		TokenCachePath:    envOr("PETSEARCH_TOKEN_CACHE_PATH", "cache/auth-res.json"),
		DBPath:            envOr("PETSEARCH_DB_PATH", "petsearch.db"),
		TokenURL:          envOr("PETSEARCH_TOKEN_URL", "https://api.petfinder.com/v2/oauth2/token"),
		ListingsURL:       envOr("PETSEARCH_LISTINGS_URL", "https://api.petfinder.com"),
		TriviaURL:         envOr("PETSEARCH_TRIVIA_URL", "https://catfact.ninja"),
	}

	switch cfg.TokenCacheBackend {
	case TokenCacheFile, TokenCacheSQLite, TokenCacheMemory:
	default:
		return nil, fmt.Errorf("PETSEARCH_TOKEN_CACHE has invalid value %q: want file, sqlite or memory", cfg.TokenCacheBackend)
	}

	var err error
	if cfg.UpstreamTimeout, err = durationEnv("PETSEARCH_UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout, err = durationEnv("PETSEARCH_SEARCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.LogLevel = slog.LevelInfo
	if v, ok := os.LookupEnv("PETSEARCH_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("PETSEARCH_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, parsed)
	}
	return parsed, nil
}
