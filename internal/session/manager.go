package session

import (
	"context"
	"time"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/crypto"
)

// Manager owns the admin session lifecycle. Login is the only code path that
// creates a session; everything else can only observe or destroy one.
type Manager struct {
	verifier CredentialVerifier
	backend  Backend
	ttl      time.Duration
}

func NewManager(verifier CredentialVerifier, backend Backend, ttl time.Duration) *Manager {
	return &Manager{verifier: verifier, backend: backend, ttl: ttl}
}

// Login validates the credential pair and, on success, opens a session and
// returns its opaque token. On failure the session state is untouched and the
// returned error identifies the specific validation failure.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (string, error) {
	if err := m.verifier.Verify(identifier, secret); err != nil {
		return "", err
	}
	token, err := crypto.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := m.backend.Put(ctx, crypto.HashToken(token), m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Logout destroys the session. Idempotent: logging out a token that never
// existed, or twice, is not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.backend.Delete(ctx, crypto.HashToken(token))
}

func (m *Manager) IsAuthenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := m.backend.Exists(ctx, crypto.HashToken(token))
	if err != nil {
		return false
	}
	return ok
}

func (m *Manager) TTL() time.Duration { return m.ttl }
