package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fiori/inventory-api/internal/api/middleware"
	"github.com/fiori/inventory-api/internal/core/domain"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{ID: 4, Username: "alice", Permissions: []string{domain.PermCreateOrder}}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, rec := newContext(http.MethodPost, "/login", `{"username":"alice","password":"secret"}`, 0)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["success"] != true || resp["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["authed_user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["authed_user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialised")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrAuthFailure
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, _ := newContext(http.MethodPost, "/login", `{"username":"alice","password":"bad"}`, 0)
	err := handler.Login(c)

	if !errors.Is(err, domain.ErrAuthFailure) {
		t.Fatalf("expected ErrAuthFailure, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, _ := newContext(http.MethodPost, "/login", "{", 0)
	if code := httpCode(t, handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, _ := newContext(http.MethodPost, "/login", `{"username":"alice"}`, 0)
	if code := httpCode(t, handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Logout_RevokesCurrentToken(t *testing.T) {
	exp := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	var gotID string
	var gotExp time.Time
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			gotID, gotExp = tokenID, expiresAt
			return nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, rec := newContext(http.MethodGet, "/logout", "", 4)
	c.Set(middleware.ContextTokenID, "jti-1")
	c.Set(middleware.ContextTokenExp, exp)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "jti-1" || !gotExp.Equal(exp) {
		t.Fatalf("revoked %q until %v", gotID, gotExp)
	}
}

func TestAuthHandler_Home(t *testing.T) {
	users := &stubUserService{
		homeFn: func(ctx context.Context, userID uint) (*domain.User, error) {
			if userID != 4 {
				t.Fatalf("expected principal 4, got %d", userID)
			}
			return &domain.User{ID: 4, Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users)

	c, rec := newContext(http.MethodGet, "/", "", 4)
	if err := handler.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decode(t, rec)
	if resp["message"] != "Welcome!alice" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Home_WithoutPrincipal(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, &stubUserService{})

	c, _ := newContext(http.MethodGet, "/", "", 0)
	if code := httpCode(t, handler.Home(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
