package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders and their items.
type OrderRepository interface {
	// Create inserts the order and its items, assigning IDs and CreatedOn.
	Create(ctx context.Context, order *domain.Order) error
	// FindByID returns the order with its items.
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	// Delete removes the items and then the order.
	Delete(ctx context.Context, id uint) error
	ListByCreator(ctx context.Context, userID uint) ([]*domain.Order, error)
}
