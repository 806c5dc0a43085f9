package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// PeriodInput holds the raw boundaries of a custom sales period. To is
// inclusive through the end of its day when given as a bare date.
type PeriodInput struct {
	From string
	To   string
}

// SalesService provides time-windowed, read-only views over orders.
type SalesService interface {
	Today(ctx context.Context) ([]*domain.Order, error)
	Month(ctx context.Context) ([]*domain.Order, error)
	Period(ctx context.Context, input PeriodInput) ([]*domain.Order, error)
	UserToday(ctx context.Context, userID uint) ([]*domain.Order, error)
}
