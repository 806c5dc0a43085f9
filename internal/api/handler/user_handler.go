package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/core/ports"
)

// UserHandler serves account management for administrators.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users/all.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/all [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}

// Create handles POST /users/new.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/new [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{
		Success: true,
		Message: "user created successfully, Please Go To Edit User Permissions To Give The User Required Access",
		User:    user,
	})
}

// Edit handles PATCH /users/edit.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editUserRequest  true  "Fields to change"
// @Success      200   {object}  editedUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/edit [patch]
func (h *UserHandler) Edit(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req editUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.EditUser(c.Request().Context(), ports.EditUserInput{
		ID:          req.ID,
		Username:    req.Username,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		Permissions: req.UserPermissions,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, editedUserResponse{
		Success:    true,
		Message:    fmt.Sprintf("user of ID: %d edited successfully", user.ID),
		EditedUser: user,
	})
}

// Delete handles DELETE /users/delete/:user_id.
//
// @Summary      Delete a user with its orders and products
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true  "User ID"
// @Success      200      {object}  messageResponse
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /users/delete/{user_id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("user of ID: %d deleted successfully", id),
	})
}
