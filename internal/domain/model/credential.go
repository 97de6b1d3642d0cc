package model

import "time"

// TokenLifetime is how long an issued access token is trusted, measured from
// the moment the token request was sent. The server-reported ExpiresIn is
// kept for reference only.
const TokenLifetime = time.Hour

// Credential is an OAuth2 access token obtained through the client-credentials
// grant, augmented with a locally computed Expiration. The JSON layout is the
// on-disk format of the token cache.
type Credential struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	Expiration  time.Time `json:"expiration"`
}

// ValidAt reports whether the credential is still usable at now. The
// comparison is strict: a credential expiring exactly at now is expired.
func (c Credential) ValidAt(now time.Time) bool {
	return c.Expiration.After(now)
}

// ExpirationFrom returns the expiration for a token whose request was sent at
// issuedAt.
func ExpirationFrom(issuedAt time.Time) time.Time {
	return issuedAt.Add(TokenLifetime)
}
