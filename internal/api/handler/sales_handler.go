package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/core/ports"
)

// SalesHandler serves read-only order reports.
type SalesHandler struct {
	service ports.SalesService
}

func NewSalesHandler(service ports.SalesService) *SalesHandler {
	return &SalesHandler{service: service}
}

// Month handles GET /sales/month.
//
// @Summary      Orders of the current month
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Failure      403  {object}  errorResponse
// @Router       /sales/month [get]
func (h *SalesHandler) Month(c echo.Context) error {
	orders, err := h.service.Month(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// Period handles POST /sales/period.
//
// @Summary      Orders of a custom period
// @Description  periodFrom and periodTo accept 2006-01-02, "2006-01-02 15:04:05" or RFC3339. A bare periodTo date includes the whole day.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      periodRequest  true  "Period boundaries"
// @Success      200   {object}  ordersResponse
// @Failure      400   {object}  errorResponse
// @Router       /sales/period [post]
func (h *SalesHandler) Period(c echo.Context) error {
	var req periodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	orders, err := h.service.Period(c.Request().Context(), ports.PeriodInput{From: req.PeriodFrom, To: req.PeriodTo})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// Today handles GET /sales/today.
//
// @Summary      Orders placed today
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Router       /sales/today [get]
func (h *SalesHandler) Today(c echo.Context) error {
	orders, err := h.service.Today(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders})
}

// UserToday handles GET /user/sales/today.
//
// @Summary      Orders the caller placed today
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ordersResponse
// @Router       /user/sales/today [get]
func (h *SalesHandler) UserToday(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}

	orders, err := h.service.UserToday(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders})
}
