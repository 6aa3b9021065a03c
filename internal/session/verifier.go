package session

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/crypto"
)

var (
	ErrIdentifierRequired = errors.New("identifier_required")
	ErrIdentifierFormat   = errors.New("identifier_format")
	ErrSecretRequired     = errors.New("secret_required")
	ErrSecretTooShort     = errors.New("secret_too_short")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// CredentialVerifier is the single authority on whether an identifier/secret
// pair may open an admin session. Implementations are swappable: format-only
// validation for demos, a static credential pair for a single-admin deployment,
// eventually a directory-backed verifier.
type CredentialVerifier interface {
	Verify(identifier, secret string) error
}

var validate = validator.New()

// FormatVerifier accepts any credential pair that is well-formed: a valid
// email address and a secret of at least six characters.
type FormatVerifier struct{}

func (FormatVerifier) Verify(identifier, secret string) error {
	if strings.TrimSpace(identifier) == "" {
		return ErrIdentifierRequired
	}
	if err := validate.Var(identifier, "email"); err != nil {
		return ErrIdentifierFormat
	}
	if strings.TrimSpace(secret) == "" {
		return ErrSecretRequired
	}
	if len(secret) < 6 {
		return ErrSecretTooShort
	}
	return nil
}

// StaticVerifier compares against one configured admin credential pair.
// The stored secret is a bcrypt hash, never the plaintext.
type StaticVerifier struct {
	Email        string
	PasswordHash string
}

func NewStaticVerifier(email, password string) (StaticVerifier, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return StaticVerifier{}, err
	}
	return StaticVerifier{Email: strings.ToLower(strings.TrimSpace(email)), PasswordHash: hash}, nil
}

func (v StaticVerifier) Verify(identifier, secret string) error {
	if strings.TrimSpace(identifier) == "" {
		return ErrIdentifierRequired
	}
	if strings.TrimSpace(secret) == "" {
		return ErrSecretRequired
	}
	if strings.ToLower(strings.TrimSpace(identifier)) != v.Email {
		return ErrInvalidCredentials
	}
	if err := crypto.CheckPassword(v.PasswordHash, secret); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
