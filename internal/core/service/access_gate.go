package service

import (
	"context"
	"fmt"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// Decide is the authorization rule. The administrator holds every catalog
// capability regardless of stored grants; anyone else needs an explicit grant.
func Decide(principal uint, grants []string, capability string) error {
	if principal == 0 {
		return domain.ErrAuthFailure
	}
	if !domain.IsCatalogPermission(capability) {
		return fmt.Errorf("unknown capability %q: %w", capability, domain.ErrPermissionDenied)
	}
	if principal == domain.AdminUserID {
		return nil
	}
	for _, g := range grants {
		if g == capability {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", capability, domain.ErrPermissionDenied)
}

// AccessGate implements ports.Authorizer on top of the permission registry.
type AccessGate struct {
	perms ports.PermissionRepository
}

func NewAccessGate(perms ports.PermissionRepository) *AccessGate {
	return &AccessGate{perms: perms}
}

// Authorize loads the principal's grants and applies Decide. Grant rows are
// not consulted for the administrator.
func (g *AccessGate) Authorize(ctx context.Context, principal uint, capability string) error {
	if principal == 0 || principal == domain.AdminUserID {
		return Decide(principal, nil, capability)
	}
	grants, err := g.perms.GrantNames(ctx, principal)
	if err != nil {
		return fmt.Errorf("authorize: %w", err)
	}
	return Decide(principal, grants, capability)
}
