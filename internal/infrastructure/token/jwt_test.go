package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiori/inventory-api/internal/core/domain"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m, err := NewManager("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	raw, exp, err := m.Issue(7)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	claims, err := m.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected user id %d", claims.UserID)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected a token id")
	}
	if !claims.ExpiresAt.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("expiry mismatch: %v vs %v", claims.ExpiresAt, exp)
	}

	other, _, _ := m.Issue(7)
	c2, _ := m.Verify(other)
	if c2.TokenID == claims.TokenID {
		t.Fatalf("token ids must be unique")
	}
}

func TestManager_VerifyRejects(t *testing.T) {
	m, _ := NewManager("secret", time.Hour)
	wrongKey, _ := NewManager("other-secret", time.Hour)
	foreign, _, _ := wrongKey.Issue(7)

	expired, _ := NewManager("secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Issue(7)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "7",
		ID:        "x",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ID:        "x",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	cases := map[string]string{
		"garbage":     "not-a-token",
		"wrong key":   foreign,
		"expired":     stale,
		"alg none":    unsigned,
		"bad subject": badSubject,
	}
	for name, raw := range cases {
		if _, err := m.Verify(raw); !errors.Is(err, domain.ErrAuthFailure) {
			t.Fatalf("%s: expected ErrAuthFailure, got %v", name, err)
		}
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	m, _ := NewManager("s", 0)
	if m.TTL() != defaultTTL {
		t.Fatalf("expected default ttl, got %v", m.TTL())
	}
}
