package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{{ID: 1, Username: "admin"}, {ID: 2, Username: "seller"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(http.MethodGet, "/users/all", "", 1)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decode(t, rec)
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("unexpected users payload: %+v", resp["users"])
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Username != "bob" || input.Email != "bob@example.com" || input.Password != "hunter22" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 9, Username: "bob", Email: "bob@example.com", Permissions: []string{}}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(http.MethodPost, "/users/new", `{"username":"bob","email":"bob@example.com","password":"hunter22"}`, 1)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	user, ok := decode(t, rec)["user"].(map[string]any)
	if !ok || user["id"] != float64(9) {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestUserHandler_Create_InvalidEmail(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(http.MethodPost, "/users/new", `{"username":"bob","email":"nope","password":"hunter22"}`, 1)
	if code := httpCode(t, handler.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrConflict
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(http.MethodPost, "/users/new", `{"username":"bob","email":"bob@example.com","password":"hunter22"}`, 1)
	if err := handler.Create(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserHandler_Edit_PassesPartialFieldsAndActor(t *testing.T) {
	stub := &stubUserService{
		editFn: func(ctx context.Context, input ports.EditUserInput, actor uint) (*domain.User, error) {
			if actor != 1 {
				t.Fatalf("expected actor 1, got %d", actor)
			}
			if input.ID != 5 || input.Username != nil || input.Email == nil || *input.Email != "new@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			want := []string{domain.PermCreateOrder}
			if input.Permissions == nil || !reflect.DeepEqual(*input.Permissions, want) {
				t.Fatalf("unexpected permissions: %v", input.Permissions)
			}
			return &domain.User{ID: 5, Username: "carol", Email: *input.Email, Permissions: want}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"id":5,"email":"new@example.com","userPermissions":["CREATE_ORDER"]}`
	c, rec := newContext(http.MethodPatch, "/users/edit", body, 1)
	if err := handler.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decode(t, rec)
	if resp["message"] != "user of ID: 5 edited successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if _, ok := resp["editedUser"].(map[string]any); !ok {
		t.Fatalf("expected editedUser in response")
	}
}

func TestUserHandler_Edit_PasswordChange(t *testing.T) {
	stub := &stubUserService{
		editFn: func(ctx context.Context, input ports.EditUserInput, actor uint) (*domain.User, error) {
			if !reflect.DeepEqual(input.OldPassword, ptr("old-secret")) || !reflect.DeepEqual(input.NewPassword, ptr("new-secret")) {
				t.Fatalf("unexpected passwords: %v %v", input.OldPassword, input.NewPassword)
			}
			return &domain.User{ID: input.ID}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(http.MethodPatch, "/users/edit", `{"id":5,"oldPassword":"old-secret","newPassword":"new-secret"}`, 5)
	if err := handler.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	var deleted uint
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(http.MethodDelete, "/users/delete/7", "", 1)
	c.SetParamNames("user_id")
	c.SetParamValues("7")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if deleted != 7 {
		t.Fatalf("expected user 7 deleted, got %d", deleted)
	}
	if decode(t, rec)["message"] != "user of ID: 7 deleted successfully" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_Delete_Administrator(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id uint) error {
			return domain.ErrConflict
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(http.MethodDelete, "/users/delete/1", "", 1)
	c.SetParamNames("user_id")
	c.SetParamValues("1")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserHandler_Delete_BadID(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newContext(http.MethodDelete, "/users/delete/abc", "", 1)
	c.SetParamNames("user_id")
	c.SetParamValues("abc")
	if code := httpCode(t, handler.Delete(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
