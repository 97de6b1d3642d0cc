// Package catfact implements the TriviaClient port against catfact.ninja.
package catfact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

const (
	// DefaultBaseURL is the catfact.ninja API root.
	DefaultBaseURL = "https://catfact.ninja"

	// MinLengthHint and MaxLengthHint bound the max_length parameter sent
	// with every request, both inclusive.
	MinLengthHint = 20
	MaxLengthHint = 219

	maxResponseSize = 64 << 10
)

// Compile-time interface satisfaction check.
var _ driven.TriviaClient = (*Client)(nil)

// Client implements driven.TriviaClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	intn       func(n int) int
}

// NewClient creates a Client whose requests are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		intn:       rand.IntN,
	}
}

// LengthHint picks a max_length value uniformly from
// [MinLengthHint, MaxLengthHint] using intn as the random source.
func LengthHint(intn func(n int) int) int {
	return MinLengthHint + intn(MaxLengthHint-MinLengthHint+1)
}

// RandomFact fetches one fact. The length hint is only a request parameter;
// the returned fact is not checked against it.
func (c *Client) RandomFact(ctx context.Context) (string, error) {
	hint := LengthHint(c.intn)
	endpoint := c.baseURL + "/fact?max_length=" + strconv.Itoa(hint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create fact request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch fact (max_length=%d): %w", hint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read fact response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fact API returned %s", resp.Status)
	}

	var fact model.TriviaFact
	if err := json.Unmarshal(body, &fact); err != nil {
		return "", fmt.Errorf("decode fact response: %w", err)
	}

	return fact.Fact, nil
}
