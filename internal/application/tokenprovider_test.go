package application_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/petsearch/internal/application"
	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestValidToken_CacheHitSkipsIssuer(t *testing.T) {
	cached := model.Credential{AccessToken: "cached", TokenType: "Bearer", Expiration: fixedNow.Add(time.Nanosecond)}
	cache := &mockTokenCache{cred: &cached}
	issuer := issuerReturning("fresh")
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	got, err := provider.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Equal(t, int32(0), issuer.calls.Load())
	assert.Equal(t, int32(0), cache.saves.Load())
}

func TestValidToken_RefreshOnExpiry(t *testing.T) {
	tests := []struct {
		name   string
		cached *model.Credential
	}{
		{name: "nothing cached", cached: nil},
		{name: "expires exactly now", cached: &model.Credential{AccessToken: "old", Expiration: fixedNow}},
		{name: "expired an hour ago", cached: &model.Credential{AccessToken: "old", Expiration: fixedNow.Add(-time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &mockTokenCache{cred: tt.cached}
			issuer := issuerReturning("fresh")
			provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

			got, err := provider.ValidToken(context.Background())
			require.NoError(t, err)

			assert.Equal(t, "fresh", got.AccessToken)
			assert.Equal(t, fixedNow.Add(time.Hour), got.Expiration)
			assert.Equal(t, int32(1), issuer.calls.Load())

			stored := cache.stored()
			require.NotNil(t, stored)
			assert.Equal(t, got, *stored)
		})
	}
}

func TestValidToken_ExpirationIgnoresServerTTL(t *testing.T) {
	cache := &mockTokenCache{}
	issuer := &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		return model.Credential{AccessToken: "short", ExpiresIn: 60}, nil
	}}
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	got, err := provider.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.ExpiresIn)
	assert.Equal(t, fixedNow.Add(model.TokenLifetime), got.Expiration)
}

func TestValidToken_ExpirationStampedBeforeRequest(t *testing.T) {
	clock := fixedNow
	cache := &mockTokenCache{}
	issuer := &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		// Simulate a slow token endpoint.
		clock = clock.Add(5 * time.Second)
		return model.Credential{AccessToken: "slow"}, nil
	}}
	provider := application.NewTokenProviderWithClock(cache, issuer, func() time.Time { return clock }, discardLogger())

	got, err := provider.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), got.Expiration)
}

func TestValidToken_CacheLoadErrorFallsBackToRefresh(t *testing.T) {
	cache := &mockTokenCache{loadErr: errors.New("disk on fire")}
	issuer := issuerReturning("fresh")
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	got, err := provider.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.AccessToken)
	assert.Equal(t, int32(1), issuer.calls.Load())
}

func TestValidToken_CacheSaveErrorStillReturnsToken(t *testing.T) {
	cache := &mockTokenCache{saveErr: errors.New("read-only filesystem")}
	issuer := issuerReturning("fresh")
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	got, err := provider.ValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.AccessToken)
	assert.Equal(t, int32(1), cache.saves.Load())
}

func TestValidToken_IssuerError(t *testing.T) {
	cache := &mockTokenCache{}
	issuer := &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		return model.Credential{}, errors.New("connection refused")
	}}
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	_, err := provider.ValidToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, cache.stored())
}

func TestValidToken_ConcurrentRefreshCollapses(t *testing.T) {
	cache := &mockTokenCache{}
	release := make(chan struct{})
	issuer := &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		<-release
		return model.Credential{AccessToken: "shared"}, nil
	}}
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	const callers = 20
	var wg sync.WaitGroup
	results := make([]model.Credential, callers)
	errs := make([]error, callers)

	wg.Add(callers)
	for i := range callers {
		go func() {
			defer wg.Done()
			results[i], errs[i] = provider.ValidToken(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i].AccessToken)
	}
	assert.Equal(t, int32(1), issuer.calls.Load())
}

func TestValidToken_CallerCancelDoesNotBlock(t *testing.T) {
	cache := &mockTokenCache{}
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	issuer := &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		<-release
		return model.Credential{AccessToken: "late"}, nil
	}}
	provider := application.NewTokenProviderWithClock(cache, issuer, fixedClock, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := provider.ValidToken(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("ValidToken did not return after cancellation")
	}
}
