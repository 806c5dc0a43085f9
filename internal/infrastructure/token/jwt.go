// Package token issues and verifies the HS256 access tokens of the API.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fiori/inventory-api/internal/core/domain"
)

const defaultTTL = 12 * time.Hour

// Claims is what a verified token proves.
type Claims struct {
	UserID    uint
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Manager signs and verifies tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of freshly issued tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue implements ports.TokenIssuer.
func (m *Manager) Issue(userID uint) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported
// as domain.ErrAuthFailure.
func (m *Manager) Verify(raw string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &rc, m.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrAuthFailure)
	}

	id, err := strconv.ParseUint(rc.Subject, 10, 64)
	if err != nil || id == 0 || rc.ID == "" {
		return nil, fmt.Errorf("malformed token claims: %w", domain.ErrAuthFailure)
	}

	c := &Claims{UserID: uint(id), TokenID: rc.ID, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}

func (m *Manager) key(*jwt.Token) (interface{}, error) {
	return m.secret, nil
}
