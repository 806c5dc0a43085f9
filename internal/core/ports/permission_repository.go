package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// PermissionRepository stores the capability catalog and the grants made
// from it.
type PermissionRepository interface {
	// EnsurePermissions inserts every name that is not stored yet. Existing
	// rows are never touched.
	EnsurePermissions(ctx context.Context, names []string) error
	List(ctx context.Context) ([]domain.Permission, error)
	FindByName(ctx context.Context, name string) (*domain.Permission, error)
	// Grant is a no-op when the (user, permission) pair already exists.
	Grant(ctx context.Context, userID, permissionID, grantedBy uint) error
	Revoke(ctx context.Context, userID, permissionID uint) error
	// GrantNames returns the permission names granted to userID, in catalog
	// insertion order.
	GrantNames(ctx context.Context, userID uint) ([]string, error)
	// DeleteForUser removes grants held by userID and grants made by userID.
	DeleteForUser(ctx context.Context, userID uint) error
}
