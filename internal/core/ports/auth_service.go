package ports

import (
	"context"
	"time"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// TokenIssuer creates signed access tokens for a user.
type TokenIssuer interface {
	Issue(userID uint) (token string, expiresAt time.Time, err error)
}

// TokenRevoker invalidates a token id until its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService authenticates users and manages credentials.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
	SetCredential(ctx context.Context, userID uint, password string) error
}
