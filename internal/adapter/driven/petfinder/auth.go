package petfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// DefaultTokenURL is the Petfinder OAuth2 token endpoint.
const DefaultTokenURL = "https://api.petfinder.com/v2/oauth2/token"

// Compile-time interface satisfaction check.
var _ driven.TokenIssuer = (*Authenticator)(nil)

// Authenticator implements driven.TokenIssuer with the OAuth2
// client-credentials grant. Client id and secret are sent as HTTP Basic auth
// and grant_type=client_credentials is sent as a form body.
type Authenticator struct {
	config     clientcredentials.Config
	httpClient *http.Client
}

// NewAuthenticator creates an Authenticator for the given client credentials.
// httpClient may be nil, in which case http.DefaultClient is used.
func NewAuthenticator(clientID, clientSecret, tokenURL string, httpClient *http.Client) *Authenticator {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Authenticator{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
	}
}

// Issue requests a new access token. Expiration is left for the caller to
// stamp; ExpiresIn carries the server-reported lifetime in seconds.
func (a *Authenticator) Issue(ctx context.Context) (model.Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := a.config.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return model.Credential{}, fmt.Errorf("token endpoint returned %s: %w", re.Response.Status, err)
		}
		return model.Credential{}, fmt.Errorf("request access token: %w", err)
	}

	return model.Credential{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   expiresIn(tok),
	}, nil
}

// expiresIn recovers the raw expires_in value from the token response,
// falling back to the library-computed expiry.
func expiresIn(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}

	if tok.Expiry.IsZero() {
		return 0
	}
	return int64(math.Round(time.Until(tok.Expiry).Seconds()))
}
