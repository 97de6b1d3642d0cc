package driven

import (
	"context"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

// TokenIssuer defines the driven port for exchanging client credentials for a
// fresh access token. Implementations leave Expiration unset; the caller
// stamps it from its own clock.
type TokenIssuer interface {
	Issue(ctx context.Context) (model.Credential, error)
}
