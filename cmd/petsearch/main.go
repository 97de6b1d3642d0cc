// Command petsearch serves the pet adoption search page.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/petsearch/internal/adapter/driven/catfact"
	"github.com/ericfisherdev/petsearch/internal/adapter/driven/petfinder"
	sqliteadapter "github.com/ericfisherdev/petsearch/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/petsearch/internal/adapter/driven/tokencache"
	httphandler "github.com/ericfisherdev/petsearch/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/petsearch/internal/adapter/driving/web"
	"github.com/ericfisherdev/petsearch/internal/application"
	"github.com/ericfisherdev/petsearch/internal/config"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on bad values or a missing credentials file).
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"token_cache", cfg.TokenCacheBackend,
		"upstream_timeout", cfg.UpstreamTimeout,
		"search_timeout", cfg.SearchTimeout,
	)

	creds, err := config.LoadClientCredentials(cfg.CredentialsPath)
	if err != nil {
		return err
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the token cache.
	cache, closeCache, err := openTokenCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// 4. Wire adapters and services.
	authenticator := petfinder.NewAuthenticator(
		creds.ClientID,
		creds.ClientSecret,
		cfg.TokenURL,
		&http.Client{Timeout: cfg.UpstreamTimeout},
	)
	listings := petfinder.NewClient(cfg.ListingsURL, cfg.UpstreamTimeout)
	trivia := catfact.NewClient(cfg.TriviaURL, cfg.UpstreamTimeout)

	tokens := application.NewTokenProvider(cache, authenticator, slog.Default())
	searchSvc := application.NewSearchService(tokens, listings, trivia, cfg.SearchTimeout, slog.Default())

	// 5. Register routes and apply middleware.
	mux := http.NewServeMux()
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(searchSvc, slog.Default()))
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// 6. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 7. Graceful shutdown with 10s timeout to drain in-flight searches.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// loadDotEnv applies the variables in path to the environment. A missing
// file is fine; an unreadable or malformed one is a configuration error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// openTokenCache builds the configured TokenCache backend. The returned
// close function is always safe to call.
func openTokenCache(ctx context.Context, cfg *config.Config) (driven.TokenCache, func(), error) {
	switch cfg.TokenCacheBackend {
	case config.TokenCacheSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		slog.Info("token cache ready", "backend", cfg.TokenCacheBackend, "path", db.Path(), "schema_version", version)
		return sqliteadapter.NewTokenRepo(db), closeDB, nil

	case config.TokenCacheMemory:
		slog.Info("token cache ready", "backend", cfg.TokenCacheBackend)
		return tokencache.NewMemory(), func() {}, nil

	default:
		cache := tokencache.NewFile(cfg.TokenCachePath)
		slog.Info("token cache ready", "backend", cfg.TokenCacheBackend, "path", cache.Path())
		return cache, func() {}, nil
	}
}
