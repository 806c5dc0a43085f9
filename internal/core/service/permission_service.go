package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// PermissionService is the permission registry: the stored catalog and the
// grants made from it.
type PermissionService struct {
	users ports.UserRepository
	perms ports.PermissionRepository
	tx    ports.TxRunner
	log   zerolog.Logger
}

func NewPermissionService(users ports.UserRepository, perms ports.PermissionRepository, tx ports.TxRunner, log zerolog.Logger) *PermissionService {
	return &PermissionService{users: users, perms: perms, tx: tx, log: log}
}

// ReconcileCatalog adds every missing name and never removes one.
func (s *PermissionService) ReconcileCatalog(ctx context.Context, names []string) error {
	if err := s.perms.EnsurePermissions(ctx, names); err != nil {
		return fmt.Errorf("reconcile catalog: %w", err)
	}
	return nil
}

// ListCatalog returns the stored permissions.
func (s *PermissionService) ListCatalog(ctx context.Context) ([]domain.Permission, error) {
	return s.perms.List(ctx)
}

// Grant gives name to userID. Granting twice leaves a single row.
func (s *PermissionService) Grant(ctx context.Context, userID uint, name string, grantedBy uint) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("grant %s: %w", name, err)
	}
	return grant(ctx, s.perms, userID, name, grantedBy)
}

// Revoke removes the grant if present.
func (s *PermissionService) Revoke(ctx context.Context, userID uint, name string) error {
	p, err := s.perms.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("revoke %s: %w", name, err)
	}
	return s.perms.Revoke(ctx, userID, p.ID)
}

// ListGrants returns the names granted to userID.
func (s *PermissionService) ListGrants(ctx context.Context, userID uint) ([]string, error) {
	return s.perms.GrantNames(ctx, userID)
}

// SetGrants makes the grant set of userID equal to names. The administrator's
// grants cannot be edited.
func (s *PermissionService) SetGrants(ctx context.Context, userID uint, names []string, grantedBy uint) error {
	if userID == domain.AdminUserID {
		return fmt.Errorf("administrator permissions are fixed: %w", domain.ErrConflict)
	}
	err := s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return err
		}
		return setGrants(ctx, tx.Permissions(), userID, names, grantedBy)
	})
	if err != nil {
		return fmt.Errorf("set grants: %w", err)
	}
	s.log.Info().Uint("user_id", userID).Uint("granted_by", grantedBy).Strs("permissions", names).Msg("permissions replaced")
	return nil
}

func grant(ctx context.Context, perms ports.PermissionRepository, userID uint, name string, grantedBy uint) error {
	p, err := perms.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("grant %s: %w", name, err)
	}
	if grantedBy == 0 {
		grantedBy = domain.AdminUserID
	}
	return perms.Grant(ctx, userID, p.ID, grantedBy)
}

func setGrants(ctx context.Context, perms ports.PermissionRepository, userID uint, names []string, grantedBy uint) error {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}

	current, err := perms.GrantNames(ctx, userID)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(current))
	for _, n := range current {
		have[n] = struct{}{}
		if _, keep := want[n]; keep {
			continue
		}
		p, err := perms.FindByName(ctx, n)
		if err != nil {
			return err
		}
		if err := perms.Revoke(ctx, userID, p.ID); err != nil {
			return err
		}
	}

	for _, n := range names {
		if _, ok := have[n]; ok {
			continue
		}
		if err := grant(ctx, perms, userID, n, grantedBy); err != nil {
			return err
		}
	}
	return nil
}

// permissionsOf returns the names listed for u. The administrator is shown
// the full catalog, matching what the gate allows.
func permissionsOf(ctx context.Context, perms ports.PermissionRepository, u *domain.User) ([]string, error) {
	if u.IsAdmin() {
		return append([]string(nil), domain.PermissionCatalog...), nil
	}
	names, err := perms.GrantNames(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
