package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/api/middleware"
)

// principal returns the user id injected by the Auth middleware. A missing
// id means the route was registered without Auth; reject with 401.
func principal(c echo.Context) (uint, error) {
	id, _ := c.Get(middleware.ContextUserID).(uint)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// tokenClaims returns the token id and expiry of the current request.
func tokenClaims(c echo.Context) (string, time.Time) {
	id, _ := c.Get(middleware.ContextTokenID).(string)
	exp, _ := c.Get(middleware.ContextTokenExp).(time.Time)
	return id, exp
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(v), nil
}

// bindAndValidate decodes the body into req and runs struct validation when
// a validator is registered.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
