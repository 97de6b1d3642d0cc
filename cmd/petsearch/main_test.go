package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/petsearch/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/petsearch/internal/adapter/driven/tokencache"
	"github.com/ericfisherdev/petsearch/internal/config"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

func TestOpenTokenCache(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		check   func(t *testing.T, cache driven.TokenCache)
	}{
		{config.TokenCacheFile, func(t *testing.T, cache driven.TokenCache) {
			f, ok := cache.(*tokencache.File)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, "auth-res.json"), f.Path())
		}},
		{config.TokenCacheMemory, func(t *testing.T, cache driven.TokenCache) {
			_, ok := cache.(*tokencache.Memory)
			assert.True(t, ok)
		}},
		{config.TokenCacheSQLite, func(t *testing.T, cache driven.TokenCache) {
			_, ok := cache.(*sqliteadapter.TokenRepo)
			assert.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &config.Config{
				TokenCacheBackend: tt.backend,
				TokenCachePath:    filepath.Join(dir, "auth-res.json"),
				DBPath:            filepath.Join(dir, "petsearch.db"),
			}

			cache, closeCache, err := openTokenCache(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(closeCache)

			tt.check(t, cache)

			_, err = cache.Load(context.Background())
			assert.ErrorIs(t, err, driven.ErrTokenNotCached)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(dir, "absent.env")))
	})

	t.Run("valid file sets variables", func(t *testing.T) {
		const key = "PETSEARCH_DOTENV_TEST_VALUE"
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))

		path := filepath.Join(dir, "valid.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "from-file", os.Getenv(key))
	})

	t.Run("unreadable path is an error", func(t *testing.T) {
		err := loadDotEnv(dir)
		assert.Error(t, err)
	})
}
