package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := NewSessionToken("secret", "issuer", time.Minute, Claims{
		SessionID: "session-1",
		Email:     "admin@example.edu",
	})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", "issuer", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.SessionID != "session-1" || claims.Email != "admin@example.edu" {
		t.Fatalf("unexpected claims")
	}
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionToken("secret", "issuer", time.Minute, Claims{SessionID: "session-1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other-secret", "issuer", token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestSessionTokenRejectsWrongIssuer(t *testing.T) {
	token, err := NewSessionToken("secret", "issuer", time.Minute, Claims{SessionID: "session-1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "another-issuer", token); err == nil {
		t.Fatalf("expected parse failure with wrong issuer")
	}
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	token, err := NewSessionToken("secret", "issuer", -time.Minute, Claims{SessionID: "session-1"})
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "issuer", token); err == nil {
		t.Fatalf("expected parse failure for expired token")
	}
}
