package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fiori/inventory-api/internal/core/domain"
)

func newPermissionFixture(t *testing.T) (*memStore, *PermissionService) {
	t.Helper()
	store := newMemStore()
	seedUser(t, store, domain.AdminUserID, "admin", "secret")
	seedUser(t, store, 9, "clerk", "secret")
	return store, NewPermissionService(memUsers{store}, memPerms{store}, store, discardLogger)
}

func TestPermissionService_ReconcileIsIdempotent(t *testing.T) {
	store, svc := newPermissionFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.ReconcileCatalog(ctx, domain.PermissionCatalog); err != nil {
			t.Fatalf("reconcile: %v", err)
		}
	}
	if len(store.perms) != len(domain.PermissionCatalog) {
		t.Fatalf("expected %d permissions, got %d", len(domain.PermissionCatalog), len(store.perms))
	}

	if err := svc.ReconcileCatalog(ctx, []string{domain.PermCreateOrder}); err != nil {
		t.Fatalf("reconcile subset: %v", err)
	}
	if len(store.perms) != len(domain.PermissionCatalog) {
		t.Fatalf("reconcile must never remove permissions")
	}
}

func TestPermissionService_GrantTwiceLeavesOneRow(t *testing.T) {
	store, svc := newPermissionFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.Grant(ctx, 9, domain.PermCreateOrder, domain.AdminUserID); err != nil {
			t.Fatalf("grant: %v", err)
		}
	}
	if n := store.grantRows(9); n != 1 {
		t.Fatalf("expected 1 grant row, got %d", n)
	}
}

func TestPermissionService_GrantErrors(t *testing.T) {
	_, svc := newPermissionFixture(t)
	ctx := context.Background()

	if err := svc.Grant(ctx, 9, "NOT_A_PERMISSION", domain.AdminUserID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown permission, got %v", err)
	}
	if err := svc.Grant(ctx, 404, domain.PermCreateOrder, domain.AdminUserID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestPermissionService_Revoke(t *testing.T) {
	_, svc := newPermissionFixture(t)
	ctx := context.Background()

	_ = svc.Grant(ctx, 9, domain.PermCreateOrder, domain.AdminUserID)
	if err := svc.Revoke(ctx, 9, domain.PermCreateOrder); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := svc.Revoke(ctx, 9, domain.PermCreateOrder); err != nil {
		t.Fatalf("revoking an absent grant should succeed: %v", err)
	}
	grants, _ := svc.ListGrants(ctx, 9)
	if len(grants) != 0 {
		t.Fatalf("expected no grants, got %v", grants)
	}
}

func TestPermissionService_SetGrantsReplacesSet(t *testing.T) {
	_, svc := newPermissionFixture(t)
	ctx := context.Background()

	_ = svc.Grant(ctx, 9, domain.PermCreateOrder, domain.AdminUserID)
	_ = svc.Grant(ctx, 9, domain.PermDeleteOrder, domain.AdminUserID)

	want := []string{domain.PermCreateOrder, domain.PermGetTodaySales}
	if err := svc.SetGrants(ctx, 9, want, domain.AdminUserID); err != nil {
		t.Fatalf("set grants: %v", err)
	}
	got, _ := svc.ListGrants(ctx, 9)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPermissionService_SetGrantsRollsBackOnUnknownName(t *testing.T) {
	_, svc := newPermissionFixture(t)
	ctx := context.Background()

	_ = svc.Grant(ctx, 9, domain.PermCreateOrder, domain.AdminUserID)
	err := svc.SetGrants(ctx, 9, []string{domain.PermGetMonthSales, "BOGUS"}, domain.AdminUserID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, _ := svc.ListGrants(ctx, 9)
	if !reflect.DeepEqual(got, []string{domain.PermCreateOrder}) {
		t.Fatalf("grants changed despite failure: %v", got)
	}
}

func TestPermissionService_SetGrantsRefusesAdmin(t *testing.T) {
	_, svc := newPermissionFixture(t)
	err := svc.SetGrants(context.Background(), domain.AdminUserID, nil, domain.AdminUserID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
