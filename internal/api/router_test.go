package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/api/handler"
	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
	"github.com/fiori/inventory-api/internal/infrastructure/token"
)

type grantAuthorizer struct {
	grants map[uint][]string
}

func (a *grantAuthorizer) Authorize(_ context.Context, principal uint, capability string) error {
	if principal == 0 {
		return domain.ErrAuthFailure
	}
	for _, g := range a.grants[principal] {
		if g == capability {
			return nil
		}
	}
	return domain.ErrPermissionDenied
}

type listOnlyUsers struct {
	ports.UserService
}

func (listOnlyUsers) ListUsers(context.Context) ([]*domain.User, error) {
	return []*domain.User{{ID: 1, Username: "admin"}}, nil
}

func newTestRouter(t *testing.T) (*token.Manager, http.Handler) {
	t.Helper()
	tokens, err := token.NewManager("router-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	e := NewRouter(Dependencies{
		Users:         listOnlyUsers{},
		Access:        &grantAuthorizer{grants: map[uint][]string{5: {domain.PermGetAllUsers}}},
		Tokens:        tokens,
		Issuer:        tokens,
		RefreshWindow: 10 * time.Minute,
		Database:      handler.Dependency{Name: "database", Ping: func(context.Context) error { return nil }},
		Log:           zerolog.Nop(),
	})
	return tokens, e
}

func serve(h http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicProbes(t *testing.T) {
	_, h := newTestRouter(t)

	for _, path := range []string{"/health", "/health/ready", "/check", "/metrics"} {
		if rec := serve(h, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_GatedRouteRequiresToken(t *testing.T) {
	_, h := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/users/all", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Success {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestRouter_GatedRouteChecksCapability(t *testing.T) {
	tokens, h := newTestRouter(t)

	denied, _, _ := tokens.Issue(6)
	if rec := serve(h, http.MethodGet, "/users/all", denied); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	allowed, _, _ := tokens.Issue(5)
	rec := serve(h, http.MethodGet, "/users/all", allowed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool             `json:"success"`
		Users   []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || !body.Success || len(body.Users) != 1 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	_, h := newTestRouter(t)

	if rec := serve(h, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
