package tokencache

import (
	"context"
	"sync"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenCache = (*Memory)(nil)

// Memory keeps the credential in process memory. It does not survive a
// restart.
type Memory struct {
	mu   sync.RWMutex
	cred *model.Credential
}

// NewMemory creates an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored credential or driven.ErrTokenNotCached.
func (m *Memory) Load(_ context.Context) (model.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cred == nil {
		return model.Credential{}, driven.ErrTokenNotCached
	}
	return *m.cred, nil
}

// Save replaces the stored credential.
func (m *Memory) Save(_ context.Context, cred model.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &cred
	return nil
}
