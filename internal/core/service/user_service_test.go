package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

func newUserFixture(t *testing.T) (*memStore, *UserService) {
	t.Helper()
	store := newMemStore()
	seedUser(t, store, domain.AdminUserID, "admin", "admin-pass")
	return store, NewUserService(memUsers{store}, memPerms{store}, store, discardLogger)
}

func TestUserService_CreateUser(t *testing.T) {
	_, svc := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, ports.CreateUserInput{Username: "carol", Email: "carol@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.ID == 0 || user.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Permissions == nil || len(user.Permissions) != 0 {
		t.Fatalf("new users start with an empty permission list, got %v", user.Permissions)
	}

	_, err = svc.CreateUser(ctx, ports.CreateUserInput{Username: "carol", Email: "other@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
	_, err = svc.CreateUser(ctx, ports.CreateUserInput{Username: "dave", Password: "pw"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUserService_EditUser(t *testing.T) {
	store, svc := newUserFixture(t)
	seedUser(t, store, 5, "erin", "old-pass", domain.PermCreateOrder)
	ctx := context.Background()

	perms := []string{domain.PermGetTodaySales}
	user, err := svc.EditUser(ctx, ports.EditUserInput{
		ID:          5,
		Email:       ptr("erin@shop.test"),
		OldPassword: ptr("old-pass"),
		NewPassword: ptr("new-pass"),
		Permissions: &perms,
	}, domain.AdminUserID)
	if err != nil {
		t.Fatalf("EditUser returned error: %v", err)
	}
	if user.Email != "erin@shop.test" {
		t.Fatalf("email not updated: %s", user.Email)
	}
	if !reflect.DeepEqual(user.Permissions, perms) {
		t.Fatalf("expected %v, got %v", perms, user.Permissions)
	}
	if !checkPassword(store.users[5].PasswordHash, "new-pass") {
		t.Fatalf("password not updated")
	}
}

func TestUserService_EditUserWrongOldPassword(t *testing.T) {
	store, svc := newUserFixture(t)
	seedUser(t, store, 5, "erin", "old-pass")

	_, err := svc.EditUser(context.Background(), ports.EditUserInput{
		ID:          5,
		Username:    ptr("erin2"),
		OldPassword: ptr("wrong"),
		NewPassword: ptr("new-pass"),
	}, domain.AdminUserID)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if store.users[5].Username != "erin" {
		t.Fatalf("username changed although the edit failed")
	}
}

func TestUserService_EditAdminPermissionsIgnored(t *testing.T) {
	_, svc := newUserFixture(t)
	empty := []string{}

	user, err := svc.EditUser(context.Background(), ports.EditUserInput{ID: domain.AdminUserID, Permissions: &empty}, domain.AdminUserID)
	if err != nil {
		t.Fatalf("EditUser returned error: %v", err)
	}
	if len(user.Permissions) != len(domain.PermissionCatalog) {
		t.Fatalf("admin permissions must stay complete, got %v", user.Permissions)
	}
}

func TestUserService_DeleteAdminRefused(t *testing.T) {
	_, svc := newUserFixture(t)
	if err := svc.DeleteUser(context.Background(), domain.AdminUserID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserService_DeleteUserCascades(t *testing.T) {
	store, svc := newUserFixture(t)
	seedUser(t, store, 5, "erin", "pw", domain.PermCreateOrder)
	ctx := context.Background()

	stock := seedProduct(t, store, "Widget", 10, domain.AdminUserID)
	own := seedProduct(t, store, "Erin's gadget", 4, 5)

	orders := NewOrderService(store, memOrders{store}, newStubIdempotency(), &stubAudit{}, discardLogger)
	if _, err := orders.CreateOrder(ctx, ports.CreateOrderInput{
		CreatedBy: 5,
		Items:     []ports.LineItemInput{{ProductID: stock.ID, Qty: 3, TotalPrice: 30, TotalCost: 18}},
	}); err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if err := svc.DeleteUser(ctx, 5); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	if _, ok := store.users[5]; ok {
		t.Fatalf("user still present")
	}
	if _, ok := store.products[own.ID]; ok {
		t.Fatalf("product created by the user still present")
	}
	if len(store.orders) != 0 {
		t.Fatalf("orders of the user still present")
	}
	if n := store.grantRows(5); n != 0 {
		t.Fatalf("grants of the user still present: %d", n)
	}
	if p := mustProduct(t, store, stock.ID); p.Qty != 10 || p.Sold != 0 {
		t.Fatalf("stock not restored: qty=%d sold=%d", p.Qty, p.Sold)
	}
}

func TestUserService_DeleteUserConflictRollsBack(t *testing.T) {
	store, svc := newUserFixture(t)
	seedUser(t, store, 5, "erin", "pw")
	seedUser(t, store, 6, "frank", "pw")
	ctx := context.Background()

	erinsProduct := seedProduct(t, store, "Gizmo", 10, 5)
	other := seedProduct(t, store, "Bolt", 10, domain.AdminUserID)

	orders := NewOrderService(store, memOrders{store}, newStubIdempotency(), &stubAudit{}, discardLogger)
	mustOrder := func(by uint, productID uint) {
		t.Helper()
		if _, err := orders.CreateOrder(ctx, ports.CreateOrderInput{
			CreatedBy: by,
			Items:     []ports.LineItemInput{{ProductID: productID, Qty: 2, TotalPrice: 20, TotalCost: 12}},
		}); err != nil {
			t.Fatalf("CreateOrder returned error: %v", err)
		}
	}
	mustOrder(5, other.ID)
	mustOrder(6, erinsProduct.ID)

	err := svc.DeleteUser(ctx, 5)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, ok := store.users[5]; !ok {
		t.Fatalf("user removed despite conflict")
	}
	if len(store.orders) != 2 {
		t.Fatalf("expected both orders to survive, got %d", len(store.orders))
	}
	if p := mustProduct(t, store, other.ID); p.Qty != 8 || p.Sold != 2 {
		t.Fatalf("stock reversal leaked out of the failed transaction: qty=%d sold=%d", p.Qty, p.Sold)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	store, svc := newUserFixture(t)
	seedUser(t, store, 2, "seller", "pw", domain.SellerPermissions...)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatalf("password hash leaked for %s", u.Username)
		}
	}
	if !reflect.DeepEqual(users[1].Permissions, domain.SellerPermissions) {
		t.Fatalf("unexpected seller permissions %v", users[1].Permissions)
	}
}
