// Package petfinder implements the TokenIssuer and ListingsClient ports
// against the Petfinder v2 API.
package petfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

const (
	// DefaultBaseURL is the Petfinder API root.
	DefaultBaseURL = "https://api.petfinder.com"

	userAgent       = "petsearch/1.0"
	maxResponseSize = 8 << 20
)

// Compile-time interface satisfaction check.
var _ driven.ListingsClient = (*Client)(nil)

// Client implements driven.ListingsClient using the Petfinder animals search
// endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Client whose transport caches GET responses in a
// bounded in-memory LRU. The query string is part of the cache key, so the
// bound keeps arbitrary search terms from growing memory. timeout bounds each
// request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	cacheTransport := httpcache.NewTransport(newResponseCache(defaultCacheEntries, defaultCacheBytes))
	return NewClientWithHTTPClient(&http.Client{
		Transport: cacheTransport,
		Timeout:   timeout,
	}, baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// animalsResponse is the subset of the /v2/animals payload the client reads.
type animalsResponse struct {
	Animals []animalJSON `json:"animals"`
}

type animalJSON struct {
	ID     flexString `json:"id"`
	Breeds struct {
		Primary string `json:"primary"`
	} `json:"breeds"`
	Gender string `json:"gender"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// flexString accepts a JSON string or number. Petfinder sends numeric ids.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*s = flexString(n.String())
	return nil
}

// Search returns the first model.MaxAnimals animals of the given type. An
// animal without a primary breed gets an empty Breed.
func (c *Client) Search(ctx context.Context, token model.Credential, query model.SearchQuery) ([]model.AnimalRecord, error) {
	params := url.Values{}
	params.Set("type", query.Animals)
	endpoint := c.baseURL + "/v2/animals?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create animals request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	bearer := &oauth2.Token{AccessToken: token.AccessToken, TokenType: token.TokenType}
	bearer.SetAuthHeader(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search animals of type %q: %w", query.Animals, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read animals response: %w", err)
	}

	slog.Debug("petfinder animals search",
		"type", query.Animals,
		"status", resp.StatusCode,
		"cached", resp.Header.Get(httpcache.XFromCache) != "",
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("animals API returned %s", resp.Status)
	}

	var payload animalsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode animals response: %w", err)
	}

	animals := make([]model.AnimalRecord, 0, min(len(payload.Animals), model.MaxAnimals))
	for _, a := range payload.Animals {
		animals = append(animals, model.AnimalRecord{
			ID:     string(a.ID),
			Breed:  a.Breeds.Primary,
			Gender: a.Gender,
			Name:   a.Name,
			Status: a.Status,
		})
	}

	return model.TruncateAnimals(animals), nil
}
