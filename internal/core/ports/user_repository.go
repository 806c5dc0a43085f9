package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. Returned users
// carry the password hash; services strip it before it leaves the core.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create inserts a user and assigns its ID. Duplicate username or email
	// yields domain.ErrConflict.
	Create(ctx context.Context, user *domain.User) error
	// CreateWithID inserts a user under a fixed ID (bootstrap accounts).
	CreateWithID(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}
