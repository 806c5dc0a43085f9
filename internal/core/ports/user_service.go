package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// CreateUserInput carries the data for a new account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// EditUserInput is a partial update; nil fields are left unchanged.
type EditUserInput struct {
	ID          uint
	Username    *string
	Email       *string
	OldPassword *string
	NewPassword *string
	Permissions *[]string
}

// UserService manages accounts and their permission sets.
type UserService interface {
	Home(ctx context.Context, userID uint) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	EditUser(ctx context.Context, input EditUserInput, actor uint) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}
