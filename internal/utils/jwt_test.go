package utils

import (
	"errors"
	"testing"
)

func TestNewAndParseAccessToken_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	tok, err := NewAccessToken(secret, 42, "alice@example.com", "admin", 24)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	claims, err := ParseAccessToken(secret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.ID != 42 || claims.Email != "alice@example.com" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	tok, err := NewAccessToken(secret, 1, "a@b.co", "user", -1)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	_, err = ParseAccessToken(secret, tok.Token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken("right-secret", 1, "a@b.co", "user", 1)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	_, err = ParseAccessToken("wrong-secret", tok.Token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseAccessToken("k", "not.a.jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}
