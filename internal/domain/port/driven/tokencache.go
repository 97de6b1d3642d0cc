package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

// ErrTokenNotCached is returned by TokenCache.Load when no credential has been
// stored yet.
var ErrTokenNotCached = errors.New("token not cached")

// TokenCache defines the driven port for persisting the single shared access
// token across requests.
type TokenCache interface {
	// Load returns the stored credential, or ErrTokenNotCached if none exists.
	// A record that exists but cannot be decoded is reported as a plain error.
	Load(ctx context.Context) (model.Credential, error)

	// Save overwrites the stored credential with cred.
	Save(ctx context.Context, cred model.Credential) error
}
