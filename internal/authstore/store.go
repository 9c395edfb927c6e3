// Package authstore persists the session token that authenticates every
// API call. Storage is pluggable so tests can run without touching disk.
package authstore

import (
	"log/slog"
	"strings"

	domainerrors "github.com/secondbrain/brain-client/internal/errors"
)

// TokenKey is the single storage key holding the raw token.
const TokenKey = "jwt_token"

// Backend is a durable string key-value medium.
type Backend interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Store wraps a Backend with the token semantics the client relies on:
// writes fail loudly, reads and clears never do.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a token store over backend.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Set persists token. A storage failure is returned to the caller.
func (s *Store) Set(token string) error {
	if err := s.backend.Set(TokenKey, token); err != nil {
		s.logger.Error("Error storing token", "error", err)
		return domainerrors.Storage(err, "Failed to store authentication token")
	}
	s.logger.Debug("Token stored successfully")
	return nil
}

// Token returns the stored token, or "" when none is stored or the read fails.
func (s *Store) Token() string {
	token, ok, err := s.backend.Get(TokenKey)
	if err != nil {
		s.logger.Error("Error retrieving token", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return token
}

// Clear removes the token. Failures are logged and otherwise ignored.
func (s *Store) Clear() {
	if err := s.backend.Delete(TokenKey); err != nil {
		s.logger.Error("Error removing token", "error", err)
		return
	}
	s.logger.Debug("Token removed successfully")
}

// IsAuthenticated reports whether a non-blank token is stored.
func (s *Store) IsAuthenticated() bool {
	return strings.TrimSpace(s.Token()) != ""
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
