package utils

import (
	"testing"
	"time"
)

func TestNewManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.NewAccessToken(42, true, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ParseClaims(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if !claims.IsStaff {
		t.Error("IsStaff = false, want true")
	}
}

func TestParseClaimsRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.NewAccessToken(7, false, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ParseClaims(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseClaimsRejectsWrongKey(t *testing.T) {
	m1, _ := NewManager("key-one")
	m2, _ := NewManager("key-two")

	token, err := m1.NewAccessToken(1, false, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m2.ParseClaims(token); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two refresh tokens are identical")
	}
}
