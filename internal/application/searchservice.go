package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// Stage names one step of the search pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageToken    Stage = "token"
	StageListings Stage = "listings"
	StageTrivia   Stage = "trivia"
)

// StageError reports which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err was caused by a deadline, either the
// pipeline's own or an HTTP client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// SearchService runs the search pipeline: token, then listings, then trivia.
// Stages run strictly in sequence under one context so that cancelling the
// inbound request aborts whichever upstream call is in flight.
type SearchService struct {
	tokens   *TokenProvider
	listings driven.ListingsClient
	trivia   driven.TriviaClient
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSearchService creates a SearchService. timeout bounds a whole search;
// zero means no pipeline-wide deadline.
func NewSearchService(
	tokens *TokenProvider,
	listings driven.ListingsClient,
	trivia driven.TriviaClient,
	timeout time.Duration,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		tokens:   tokens,
		listings: listings,
		trivia:   trivia,
		timeout:  timeout,
		logger:   logger,
	}
}

// Search returns the animals matching query together with a random fact.
// Any stage failure short-circuits the pipeline with a *StageError.
func (s *SearchService) Search(ctx context.Context, query model.SearchQuery) (model.SearchResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	token, err := s.tokens.ValidToken(ctx)
	if err != nil {
		return model.SearchResult{}, &StageError{Stage: StageToken, Err: err}
	}

	s.logger.Debug("requesting animals", "type", query.Animals)
	animals, err := s.listings.Search(ctx, token, query)
	if err != nil {
		return model.SearchResult{}, &StageError{Stage: StageListings, Err: err}
	}

	s.logger.Debug("requesting fact")
	fact, err := s.trivia.RandomFact(ctx)
	if err != nil {
		return model.SearchResult{}, &StageError{Stage: StageTrivia, Err: err}
	}

	return model.SearchResult{
		Query:   query,
		Fact:    fact,
		Animals: model.TruncateAnimals(animals),
	}, nil
}
