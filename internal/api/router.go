package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fiori/inventory-api/docs"
	"github.com/fiori/inventory-api/internal/api/handler"
	"github.com/fiori/inventory-api/internal/api/middleware"
	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
	Sales    ports.SalesService
	Access   ports.Authorizer

	Tokens        middleware.TokenVerifier
	Issuer        ports.TokenIssuer
	Revoker       ports.TokenRevoker
	RefreshWindow time.Duration

	Database handler.Dependency
	Probes   []handler.Dependency
	PageSize int
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	productHandler := handler.NewProductHandler(d.Products, d.PageSize)
	orderHandler := handler.NewOrderHandler(d.Orders)
	salesHandler := handler.NewSalesHandler(d.Sales)
	healthHandler := handler.NewHealthHandler(d.Database, d.Probes...)

	// --- Public routes ---
	e.GET("/check", healthHandler.Check)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	auth := middleware.Auth(middleware.AuthConfig{
		Verifier:      d.Tokens,
		Issuer:        d.Issuer,
		Revoker:       d.Revoker,
		RefreshWindow: d.RefreshWindow,
		Log:           d.Log,
	})
	e.GET("/", authHandler.Home, auth)
	e.GET("/logout", authHandler.Logout, auth)

	// --- Permission-gated routes: Auth first, then exactly one capability ---
	gated := func(method, path string, h echo.HandlerFunc, capability string) {
		e.Add(method, path, h, auth, middleware.RequirePermission(d.Access, capability))
	}

	gated(http.MethodGet, "/users/all", userHandler.List, domain.PermGetAllUsers)
	gated(http.MethodPost, "/users/new", userHandler.Create, domain.PermCreateNewUser)
	gated(http.MethodDelete, "/users/delete/:user_id", userHandler.Delete, domain.PermDeleteUser)
	gated(http.MethodPatch, "/users/edit", userHandler.Edit, domain.PermEditUser)

	gated(http.MethodPost, "/products/new", productHandler.Create, domain.PermCreateNewProduct)
	gated(http.MethodPatch, "/products/edit", productHandler.Edit, domain.PermEditProduct)
	gated(http.MethodGet, "/products/all/:page", productHandler.List, domain.PermGetAllProducts)
	gated(http.MethodGet, "/products/search/id/:product_id", productHandler.GetByID, domain.PermSearchProductsByID)
	gated(http.MethodGet, "/products/search/:search_term", productHandler.Search, domain.PermSearchProductsByTerm)
	gated(http.MethodDelete, "/products/delete/:product_id", productHandler.Delete, domain.PermDeleteProduct)

	gated(http.MethodPost, "/orders/new", orderHandler.Create, domain.PermCreateOrder)
	gated(http.MethodDelete, "/orders/delete/:order_id", orderHandler.Delete, domain.PermDeleteOrder)

	gated(http.MethodGet, "/sales/month", salesHandler.Month, domain.PermGetMonthSales)
	gated(http.MethodPost, "/sales/period", salesHandler.Period, domain.PermGetPeriodSales)
	gated(http.MethodGet, "/sales/today", salesHandler.Today, domain.PermGetTodaySales)
	gated(http.MethodGet, "/user/sales/today", salesHandler.UserToday, domain.PermGetUserTodaySales)

	return e
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			userID, _ := c.Get(middleware.ContextUserID).(uint)
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Uint("user_id", userID).
				Msg("request")
			return nil
		},
	})
}
