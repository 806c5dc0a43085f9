package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/api/metrics"
	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailure) {
			metrics.LoginFailuresTotal.Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:    true,
		Message:    "User LoggedIn Correctly AS: " + user.Username,
		AuthedUser: user,
		Token:      token,
	})
}

// Logout revokes the bearer token of the request.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, exp := tokenClaims(c)
	if err := h.authService.Logout(c.Request().Context(), tokenID, exp); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "logout Successful"})
}

// Home returns the authenticated user with its permissions.
//
// @Summary      Authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  homeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Home(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, homeResponse{
		Success:    true,
		Message:    "Welcome!" + user.Username,
		AuthedUser: user,
	})
}
