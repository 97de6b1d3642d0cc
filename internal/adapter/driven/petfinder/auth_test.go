package petfinder_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/petsearch/internal/adapter/driven/petfinder"
)

func TestIssue_ClientCredentialsGrant(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/oauth2/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		id, secret, ok := r.BasicAuth()
		assert.True(t, ok, "expected basic auth")
		assert.Equal(t, "my-client", id)
		assert.Equal(t, "my-secret", secret)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token_type":"Bearer","expires_in":3600,"access_token":"fresh-token"}`)
	}))
	t.Cleanup(server.Close)

	auth := petfinder.NewAuthenticator("my-client", "my-secret", server.URL+"/v2/oauth2/token", server.Client())

	cred, err := auth.Issue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.AccessToken)
	assert.Equal(t, "Bearer", cred.TokenType)
	assert.Equal(t, int64(3600), cred.ExpiresIn)
	assert.True(t, cred.Expiration.IsZero(), "issuer must leave expiration to the caller")
	assert.Equal(t, int32(1), calls.Load())
}

func TestIssue_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client","error_description":"Client authentication failed"}`)
	}))
	t.Cleanup(server.Close)

	auth := petfinder.NewAuthenticator("bad", "creds", server.URL, server.Client())

	_, err := auth.Issue(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestIssue_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	auth := petfinder.NewAuthenticator("id", "secret", url, nil)

	_, err := auth.Issue(context.Background())
	assert.Error(t, err)
}
