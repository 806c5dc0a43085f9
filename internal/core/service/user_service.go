package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// UserService manages accounts. Deleting a user removes everything the user
// owns inside one transaction.
type UserService struct {
	users ports.UserRepository
	perms ports.PermissionRepository
	tx    ports.TxRunner
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, perms ports.PermissionRepository, tx ports.TxRunner, log zerolog.Logger) *UserService {
	return &UserService{users: users, perms: perms, tx: tx, log: log}
}

// Home returns the authenticated user with its permissions.
func (s *UserService) Home(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, user)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		p, err := s.present(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateUser registers an account with no permissions.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", domain.ErrInvalidInput)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("username", username).Msg("user created")
	return s.present(ctx, user)
}

// EditUser applies a partial update. A new password is only accepted
// together with the current one. Permission changes are ignored for the
// administrator.
func (s *UserService) EditUser(ctx context.Context, input ports.EditUserInput, actor uint) (*domain.User, error) {
	var edited *domain.User
	err := s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		user, err := tx.Users().FindByID(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.Username != nil {
			name := strings.TrimSpace(*input.Username)
			if name == "" {
				return fmt.Errorf("username cannot be empty: %w", domain.ErrInvalidInput)
			}
			user.Username = name
		}
		if input.Email != nil {
			email := strings.TrimSpace(*input.Email)
			if email == "" {
				return fmt.Errorf("email cannot be empty: %w", domain.ErrInvalidInput)
			}
			user.Email = email
		}
		if input.NewPassword != nil {
			if input.OldPassword == nil || !checkPassword(user.PasswordHash, *input.OldPassword) {
				return fmt.Errorf("current password does not match: %w", domain.ErrInvalidInput)
			}
			if *input.NewPassword == "" {
				return fmt.Errorf("new password cannot be empty: %w", domain.ErrInvalidInput)
			}
			hash, err := hashPassword(*input.NewPassword)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}

		if input.Permissions != nil {
			if user.IsAdmin() {
				s.log.Warn().Uint("actor", actor).Msg("ignoring permission change for administrator")
			} else if err := setGrants(ctx, tx.Permissions(), user.ID, *input.Permissions, actor); err != nil {
				return err
			}
		}
		edited = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("edit user %d: %w", input.ID, err)
	}

	s.log.Info().Uint("user_id", edited.ID).Uint("actor", actor).Msg("user edited")
	return s.present(ctx, edited)
}

// DeleteUser removes a user with its orders (stock reversed), products and
// grants. The administrator cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if id == domain.AdminUserID {
		return fmt.Errorf("the administrator cannot be deleted: %w", domain.ErrConflict)
	}

	var removedOrders, removedProducts int
	err := s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		if _, err := tx.Users().FindByID(ctx, id); err != nil {
			return err
		}

		orders, err := tx.Orders().ListByCreator(ctx, id)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if err := reverseOrder(ctx, tx, o); err != nil {
				return err
			}
		}
		removedOrders = len(orders)

		products, err := tx.Products().ListByCreator(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range products {
			n, err := tx.Products().CountOrderItems(ctx, p.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("product %d is referenced by orders of other users: %w", p.ID, domain.ErrConflict)
			}
			if err := tx.Products().Delete(ctx, p.ID); err != nil {
				return err
			}
		}
		removedProducts = len(products)

		if err := tx.Permissions().DeleteForUser(ctx, id); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	s.log.Info().
		Uint("user_id", id).
		Int("orders", removedOrders).
		Int("products", removedProducts).
		Msg("user deleted")
	return nil
}

func (s *UserService) present(ctx context.Context, u *domain.User) (*domain.User, error) {
	perms, err := permissionsOf(ctx, s.perms, u)
	if err != nil {
		return nil, err
	}
	out := *u
	out.PasswordHash = ""
	out.Permissions = perms
	return &out, nil
}
