package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/api/middleware"
	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) VerifyCredentials(context.Context, string, string) (*domain.User, error) {
	panic("not used by handlers")
}

func (s *stubAuthService) SetCredential(context.Context, uint, string) error {
	panic("not used by handlers")
}

type stubUserService struct {
	homeFn   func(ctx context.Context, userID uint) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	editFn   func(ctx context.Context, input ports.EditUserInput, actor uint) (*domain.User, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubUserService) Home(ctx context.Context, userID uint) (*domain.User, error) {
	return s.homeFn(ctx, userID)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) EditUser(ctx context.Context, input ports.EditUserInput, actor uint) (*domain.User, error) {
	return s.editFn(ctx, input, actor)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubProductService struct {
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id uint, input ports.UpdateProductInput) (*domain.Product, error)
	getFn    func(ctx context.Context, id uint) (*domain.Product, error)
	searchFn func(ctx context.Context, term string) ([]*domain.Product, error)
	listFn   func(ctx context.Context, page, size int) (*ports.ProductPage, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id uint, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	return s.searchFn(ctx, term)
}

func (s *stubProductService) List(ctx context.Context, page, size int) (*ports.ProductPage, error) {
	return s.listFn(ctx, page, size)
}

func (s *stubProductService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubOrderService struct {
	createFn func(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error)
	deleteFn func(ctx context.Context, orderID, actor uint) error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubOrderService) DeleteOrder(ctx context.Context, orderID, actor uint) error {
	return s.deleteFn(ctx, orderID, actor)
}

func (s *stubOrderService) GetOrder(context.Context, uint) (*domain.Order, error) {
	panic("not used by handlers")
}

type stubSalesService struct {
	todayFn     func(ctx context.Context) ([]*domain.Order, error)
	monthFn     func(ctx context.Context) ([]*domain.Order, error)
	periodFn    func(ctx context.Context, input ports.PeriodInput) ([]*domain.Order, error)
	userTodayFn func(ctx context.Context, userID uint) ([]*domain.Order, error)
}

func (s *stubSalesService) Today(ctx context.Context) ([]*domain.Order, error) {
	return s.todayFn(ctx)
}

func (s *stubSalesService) Month(ctx context.Context) ([]*domain.Order, error) {
	return s.monthFn(ctx)
}

func (s *stubSalesService) Period(ctx context.Context, input ports.PeriodInput) ([]*domain.Order, error) {
	return s.periodFn(ctx, input)
}

func (s *stubSalesService) UserToday(ctx context.Context, userID uint) ([]*domain.Order, error) {
	return s.userTodayFn(ctx, userID)
}

// newContext builds an echo context with the validator registered, a JSON
// body when body is non-empty and, when userID > 0, the principal the Auth
// middleware would have injected.
func newContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set(middleware.ContextUserID, userID)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func ptr[T any](v T) *T { return &v }
