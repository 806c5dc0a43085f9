package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fiori/inventory-api/internal/core/domain"
)

func newBootstrapFixture() (*memStore, *Bootstrapper) {
	store := newMemStore()
	registry := NewPermissionService(memUsers{store}, memPerms{store}, store, discardLogger)
	return store, NewBootstrapper(memUsers{store}, memPerms{store}, registry, discardLogger)
}

func bootstrapConfig() BootstrapConfig {
	return BootstrapConfig{
		AdminUsername:  "admin",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "admin-pass",
		SeedSeller:     true,
		SellerUsername: "seller",
		SellerEmail:    "seller@example.com",
		SellerPassword: "seller-pass",
	}
}

func TestBootstrapper_RunConverges(t *testing.T) {
	store, boot := newBootstrapFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := boot.Run(ctx, bootstrapConfig()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	if len(store.perms) != len(domain.PermissionCatalog) {
		t.Fatalf("expected %d permissions, got %d", len(domain.PermissionCatalog), len(store.perms))
	}
	if len(store.users) != 2 {
		t.Fatalf("expected admin and seller, got %d users", len(store.users))
	}
	if n := store.grantRows(domain.AdminUserID); n != len(domain.PermissionCatalog) {
		t.Fatalf("expected admin grants for the full catalog, got %d", n)
	}
	if n := store.grantRows(domain.SellerUserID); n != len(domain.SellerPermissions) {
		t.Fatalf("expected %d seller grants, got %d", len(domain.SellerPermissions), n)
	}
	if !checkPassword(store.users[domain.AdminUserID].PasswordHash, "admin-pass") {
		t.Fatalf("admin password not set")
	}
}

func TestBootstrapper_KeepsExistingPassword(t *testing.T) {
	store, boot := newBootstrapFixture()
	ctx := context.Background()

	if err := boot.Run(ctx, bootstrapConfig()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	cfg := bootstrapConfig()
	cfg.AdminPassword = "changed"
	if err := boot.Run(ctx, cfg); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !checkPassword(store.users[domain.AdminUserID].PasswordHash, "admin-pass") {
		t.Fatalf("bootstrap must not reset an existing password")
	}
}

func TestBootstrapper_WithoutSeller(t *testing.T) {
	store, boot := newBootstrapFixture()
	cfg := bootstrapConfig()
	cfg.SeedSeller = false

	if err := boot.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := store.users[domain.SellerUserID]; ok {
		t.Fatalf("seller created although disabled")
	}
}

func TestBootstrapper_MissingAdminCredentials(t *testing.T) {
	_, boot := newBootstrapFixture()
	cfg := bootstrapConfig()
	cfg.AdminPassword = ""

	if err := boot.Run(context.Background(), cfg); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
