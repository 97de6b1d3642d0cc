package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenCache = (*TokenRepo)(nil)

// defaultSlot names the single row the repo reads and writes.
const defaultSlot = "petfinder"

// TokenRepo is the SQLite implementation of the TokenCache port. It keeps one
// row per slot and overwrites it wholesale on Save.
type TokenRepo struct {
	db   *DB
	slot string
}

// NewTokenRepo creates a TokenRepo backed by db.
func NewTokenRepo(db *DB) *TokenRepo {
	return &TokenRepo{db: db, slot: defaultSlot}
}

// Load returns the stored credential or driven.ErrTokenNotCached.
func (r *TokenRepo) Load(ctx context.Context) (model.Credential, error) {
	const query = `
		SELECT access_token, token_type, expires_in, expiration
		FROM oauth_tokens
		WHERE slot = ?
	`

	var cred model.Credential
	var expiration string
	err := r.db.Reader.QueryRowContext(ctx, query, r.slot).Scan(
		&cred.AccessToken, &cred.TokenType, &cred.ExpiresIn, &expiration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Credential{}, driven.ErrTokenNotCached
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("load token %q: %w", r.slot, err)
	}

	cred.Expiration, err = time.Parse(time.RFC3339Nano, expiration)
	if err != nil {
		return model.Credential{}, fmt.Errorf("parse expiration for token %q: %w", r.slot, err)
	}

	return cred, nil
}

// Save inserts or replaces the stored credential.
func (r *TokenRepo) Save(ctx context.Context, cred model.Credential) error {
	const query = `
		INSERT INTO oauth_tokens (slot, access_token, token_type, expires_in, expiration, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			expires_in = excluded.expires_in,
			expiration = excluded.expiration,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		r.slot,
		cred.AccessToken,
		cred.TokenType,
		cred.ExpiresIn,
		cred.Expiration.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save token %q: %w", r.slot, err)
	}
	return nil
}
