package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// AuthService implements credential verification, login and logout.
type AuthService struct {
	users   ports.UserRepository
	perms   ports.PermissionRepository
	tokens  ports.TokenIssuer
	revoker ports.TokenRevoker
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	perms ports.PermissionRepository,
	tokens ports.TokenIssuer,
	revoker ports.TokenRevoker,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, perms: perms, tokens: tokens, revoker: revoker, log: log}
}

// VerifyCredentials returns the user owning username when password matches.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrAuthFailure
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			burnCompare(password)
			return nil, domain.ErrAuthFailure
		}
		return nil, err
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, domain.ErrAuthFailure
	}
	return user, nil
}

// SetCredential replaces the stored hash of userID.
func (s *AuthService) SetCredential(ctx context.Context, userID uint, password string) error {
	if password == "" {
		return fmt.Errorf("password is required: %w", domain.ErrInvalidInput)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", userID).Msg("credential updated")
	return nil
}

// Login verifies credentials and issues an access token. The returned user
// carries its permission names and no password hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailure) {
			s.log.Info().Str("username", username).Msg("login rejected")
		}
		return "", nil, err
	}

	perms, err := permissionsOf(ctx, s.perms, user)
	if err != nil {
		return "", nil, err
	}
	user.Permissions = perms
	user.PasswordHash = ""

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the token id until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrAuthFailure
	}
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
