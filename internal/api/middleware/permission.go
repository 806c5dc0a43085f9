package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/api/metrics"
	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// RequirePermission enforces a single capability on a route. It must run
// after Auth.
func RequirePermission(authz ports.Authorizer, capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(uint)

			err := authz.Authorize(c.Request().Context(), userID, capability)
			switch {
			case err == nil:
				return next(c)
			case errors.Is(err, domain.ErrAuthFailure):
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			case errors.Is(err, domain.ErrPermissionDenied):
				metrics.AccessDeniedTotal.WithLabelValues(capability).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "missing permission "+capability)
			default:
				return err
			}
		}
	}
}
