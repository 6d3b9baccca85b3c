// Package storage owns the client's persisted state: the local sqlite
// database and the access token kept in it.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recetario/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/recetario/internal/logging"
)

// TokenKey is the metadata key the access token is persisted under.
const TokenKey = "token"

// TokenStore is the read/write view of the credential that the HTTP client,
// the session and the router guard share.
type TokenStore interface {
	Token() string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// CredentialStore is a write-through cache of the persisted token. The
// persisted row and the in-memory copy change together under one lock, so
// readers never see one without the other.
type CredentialStore struct {
	mu    sync.RWMutex
	repo  metadata.Repository
	log   logging.Logger
	token string
}

// NewCredentialStore loads any token persisted by a previous run.
func NewCredentialStore(ctx context.Context, repo metadata.Repository, log logging.Logger) (*CredentialStore, error) {
	token, _, err := repo.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return &CredentialStore{repo: repo, log: log, token: token}, nil
}

func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken persists token and then publishes it. On a persistence error the
// previous token stays in effect. An empty token clears the credential.
func (s *CredentialStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.token = token
	return nil
}

// ClearToken forgets the token. The in-memory copy is dropped even when the
// persisted row cannot be removed; the error is still reported.
func (s *CredentialStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		s.log.Error(ctx, "failed to delete persisted token", "error", err)
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
