package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// BootstrapConfig describes the accounts created on first start.
type BootstrapConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	SeedSeller     bool
	SellerUsername string
	SellerEmail    string
	SellerPassword string
}

// Bootstrapper reconciles the permission catalog and the built-in accounts.
// Running it repeatedly converges to the same state; existing rows and
// passwords are never reset.
type Bootstrapper struct {
	users    ports.UserRepository
	perms    ports.PermissionRepository
	registry *PermissionService
	log      zerolog.Logger
}

func NewBootstrapper(users ports.UserRepository, perms ports.PermissionRepository, registry *PermissionService, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{users: users, perms: perms, registry: registry, log: log}
}

func (b *Bootstrapper) Run(ctx context.Context, cfg BootstrapConfig) error {
	if err := b.registry.ReconcileCatalog(ctx, domain.PermissionCatalog); err != nil {
		return err
	}

	if err := b.ensureUser(ctx, domain.AdminUserID, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	// Listing convenience only; the gate never reads these rows for the admin.
	for _, name := range domain.PermissionCatalog {
		if err := grant(ctx, b.perms, domain.AdminUserID, name, domain.AdminUserID); err != nil {
			return fmt.Errorf("bootstrap admin grants: %w", err)
		}
	}

	if cfg.SeedSeller {
		if err := b.ensureUser(ctx, domain.SellerUserID, cfg.SellerUsername, cfg.SellerEmail, cfg.SellerPassword); err != nil {
			return fmt.Errorf("bootstrap seller: %w", err)
		}
		for _, name := range domain.SellerPermissions {
			if err := grant(ctx, b.perms, domain.SellerUserID, name, domain.AdminUserID); err != nil {
				return fmt.Errorf("bootstrap seller grants: %w", err)
			}
		}
	}

	b.log.Info().Int("permissions", len(domain.PermissionCatalog)).Bool("seller", cfg.SeedSeller).Msg("bootstrap complete")
	return nil
}

func (b *Bootstrapper) ensureUser(ctx context.Context, id uint, username, email, password string) error {
	_, err := b.users.FindByID(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("user %d is missing and no credentials are configured: %w", id, domain.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := b.users.CreateWithID(ctx, &domain.User{ID: id, Username: username, Email: email, PasswordHash: hash}); err != nil {
		return err
	}
	b.log.Info().Uint("user_id", id).Str("username", username).Msg("built-in user created")
	return nil
}
