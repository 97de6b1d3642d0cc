package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

const (
	refreshKey = "access-token"

	// refreshTimeout bounds a shared refresh, which outlives the request
	// that started it.
	refreshTimeout = 30 * time.Second
)

// TokenProvider hands out a valid access token, consulting the cache first
// and refreshing through the issuer on a miss or expiry. Concurrent
// refreshes are collapsed into a single issuer call.
type TokenProvider struct {
	cache  driven.TokenCache
	issuer driven.TokenIssuer
	now    func() time.Time
	group  singleflight.Group
	logger *slog.Logger
}

// NewTokenProvider creates a TokenProvider using the wall clock.
func NewTokenProvider(cache driven.TokenCache, issuer driven.TokenIssuer, logger *slog.Logger) *TokenProvider {
	return NewTokenProviderWithClock(cache, issuer, time.Now, logger)
}

// NewTokenProviderWithClock creates a TokenProvider with a custom clock.
// This constructor is intended for testing.
func NewTokenProviderWithClock(cache driven.TokenCache, issuer driven.TokenIssuer, now func() time.Time, logger *slog.Logger) *TokenProvider {
	return &TokenProvider{
		cache:  cache,
		issuer: issuer,
		now:    now,
		logger: logger,
	}
}

// ValidToken returns a credential whose expiration is strictly after now.
// A cache hit makes no network call. Cache read failures are logged and
// treated as a miss.
func (p *TokenProvider) ValidToken(ctx context.Context) (model.Credential, error) {
	if cred, ok := p.cached(ctx); ok {
		return cred, nil
	}

	ch := p.group.DoChan(refreshKey, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return p.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return model.Credential{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Credential{}, res.Err
		}
		return res.Val.(model.Credential), nil
	}
}

// cached returns the stored credential if it is still valid.
func (p *TokenProvider) cached(ctx context.Context) (model.Credential, bool) {
	cred, err := p.cache.Load(ctx)
	switch {
	case errors.Is(err, driven.ErrTokenNotCached):
		p.logger.Debug("no cached token")
		return model.Credential{}, false
	case err != nil:
		p.logger.Warn("token cache unreadable, requesting a new token", "error", err)
		return model.Credential{}, false
	}

	if !cred.ValidAt(p.now()) {
		p.logger.Info("cached token expired", "expiration", cred.Expiration)
		return model.Credential{}, false
	}

	p.logger.Debug("token cache hit", "expiration", cred.Expiration)
	return cred, true
}

// refresh runs inside the singleflight group. A caller that joins just after
// a previous refresh finished finds the fresh token in the cache.
func (p *TokenProvider) refresh(ctx context.Context) (model.Credential, error) {
	if cred, err := p.cache.Load(ctx); err == nil && cred.ValidAt(p.now()) {
		return cred, nil
	}

	sentAt := p.now()
	p.logger.Info("requesting access token")

	cred, err := p.issuer.Issue(ctx)
	if err != nil {
		return model.Credential{}, fmt.Errorf("refresh access token: %w", err)
	}
	cred.Expiration = model.ExpirationFrom(sentAt)

	if err := p.cache.Save(ctx, cred); err != nil {
		// The token is still usable for this request.
		p.logger.Error("failed to persist access token", "error", err)
	}

	p.logger.Info("access token refreshed", "expiration", cred.Expiration, "expires_in", cred.ExpiresIn)
	return cred, nil
}
