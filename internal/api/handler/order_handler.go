package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/api/metrics"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// OrderHandler places and deletes orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /orders/new. Totals are recomputed from the cart
// lines; the order is attributed to the caller.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createOrderRequest  true   "Cart"
// @Success      201              {object}  orderResponse
// @Success      200              {object}  orderResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /orders/new [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.CreateOrderInput{
		Items:          make([]ports.LineItemInput, 0, len(req.CartItems)),
		CreatedBy:      userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}
	for _, item := range req.CartItems {
		in.Items = append(in.Items, ports.LineItemInput{
			ProductID:  item.ID,
			Qty:        item.Quantity,
			TotalPrice: item.Total,
			TotalCost:  item.TotalCost,
		})
	}
	if req.TotalQuantity != nil && req.Total != nil && req.TotalCost != nil {
		in.ClientTotals = &ports.OrderTotalsInput{
			Qty:        *req.TotalQuantity,
			TotalPrice: *req.Total,
			TotalCost:  *req.TotalCost,
		}
	}

	result, err := h.service.CreateOrder(c.Request().Context(), in)
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.OrdersCreatedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, orderResponse{
			Success:  true,
			Message:  "Order already added",
			Order:    result.Order,
			Replayed: true,
		})
	}

	metrics.OrdersCreatedTotal.WithLabelValues("created").Inc()
	metrics.UnitsSoldTotal.Add(float64(result.Order.Qty))
	return c.JSON(http.StatusCreated, orderResponse{
		Success: true,
		Message: "Order Added successfully",
		Order:   result.Order,
	})
}

// Delete handles DELETE /orders/delete/:order_id and restores the stock of
// every line.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      int  true  "Order ID"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /orders/delete/{order_id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "order_id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteOrder(c.Request().Context(), id, actor); err != nil {
		return err
	}
	metrics.OrdersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "order deleted successfully"})
}
