package driven

import (
	"context"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
)

// ListingsClient defines the driven port for the adoption listings API.
type ListingsClient interface {
	// Search returns at most model.MaxAnimals animals matching query, in the
	// order the upstream API returned them.
	Search(ctx context.Context, token model.Credential, query model.SearchQuery) ([]model.AnimalRecord, error)
}
