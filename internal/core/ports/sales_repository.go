package ports

import (
	"context"
	"time"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// SalesFilter selects orders with From <= created_on < To.
type SalesFilter struct {
	From      time.Time
	To        time.Time
	CreatedBy *uint // nil = every user
}

// SalesRepository is the read side used by reporting.
type SalesRepository interface {
	// ListOrders returns matching orders with items, most recent first.
	ListOrders(ctx context.Context, filter SalesFilter) ([]*domain.Order, error)
}
