package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// LineItemInput is one cart line of a new order.
type LineItemInput struct {
	ProductID  uint
	Qty        int64
	TotalPrice int64
	TotalCost  int64
}

// OrderTotalsInput are aggregates computed by the client. They are advisory:
// the server always recomputes them from the lines.
type OrderTotalsInput struct {
	Qty        int64
	TotalPrice int64
	TotalCost  int64
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items          []LineItemInput
	CreatedBy      uint
	ClientTotals   *OrderTotalsInput
	IdempotencyKey string
}

// OrderResult is returned after placing an order.
type OrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the idempotency key matched an earlier order.
	AlreadyExisted bool
}

// OrderService is the only component that mutates stock levels.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	DeleteOrder(ctx context.Context, orderID, actor uint) error
	GetOrder(ctx context.Context, orderID uint) (*domain.Order, error)
}

// IdempotencyStore remembers which order an idempotency key produced. A key
// is reserved before the order is placed, so duplicates sent concurrently
// cannot both go through.
type IdempotencyStore interface {
	// Reserve claims key. When it is already taken, orderID is the order it
	// produced, or 0 while the first request is still in flight.
	Reserve(ctx context.Context, key string) (reserved bool, orderID uint, err error)
	// Remember binds a reserved key to the order it produced.
	Remember(ctx context.Context, key string, orderID uint) error
	// Release frees a reserved key after the order failed.
	Release(ctx context.Context, key string) error
}

// AuditLog records committed order transitions.
type AuditLog interface {
	RecordOrderEvent(ctx context.Context, event domain.OrderEvent) error
}
