package application_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockTokenCache struct {
	mu      sync.Mutex
	cred    *model.Credential
	loadErr error
	saveErr error
	loads   atomic.Int32
	saves   atomic.Int32
}

func (m *mockTokenCache) Load(_ context.Context) (model.Credential, error) {
	m.loads.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return model.Credential{}, m.loadErr
	}
	if m.cred == nil {
		return model.Credential{}, driven.ErrTokenNotCached
	}
	return *m.cred, nil
}

func (m *mockTokenCache) Save(_ context.Context, cred model.Credential) error {
	m.saves.Add(1)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &cred
	return nil
}

func (m *mockTokenCache) stored() *model.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

type mockIssuer struct {
	issue func(ctx context.Context) (model.Credential, error)
	calls atomic.Int32
}

func (m *mockIssuer) Issue(ctx context.Context) (model.Credential, error) {
	m.calls.Add(1)
	return m.issue(ctx)
}

func issuerReturning(token string) *mockIssuer {
	return &mockIssuer{issue: func(context.Context) (model.Credential, error) {
		return model.Credential{AccessToken: token, TokenType: "Bearer", ExpiresIn: 3600}, nil
	}}
}

type mockListings struct {
	search func(ctx context.Context, token model.Credential, query model.SearchQuery) ([]model.AnimalRecord, error)
	calls  atomic.Int32
}

func (m *mockListings) Search(ctx context.Context, token model.Credential, query model.SearchQuery) ([]model.AnimalRecord, error) {
	m.calls.Add(1)
	return m.search(ctx, token, query)
}

type mockTrivia struct {
	fact  func(ctx context.Context) (string, error)
	calls atomic.Int32
}

func (m *mockTrivia) RandomFact(ctx context.Context) (string, error) {
	m.calls.Add(1)
	return m.fact(ctx)
}
