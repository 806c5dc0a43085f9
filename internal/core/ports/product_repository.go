package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	// Update persists descriptive fields and thresholds. Qty and Sold are
	// left untouched.
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uint) error
	// Search matches term case-insensitively against name or description,
	// newest first.
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	// Page returns one page (1-based) newest first and the total row count.
	Page(ctx context.Context, page, size int) ([]*domain.Product, int64, error)
	CountOrderItems(ctx context.Context, productID uint) (int64, error)
	ListByCreator(ctx context.Context, userID uint) ([]*domain.Product, error)
	// RecordSale applies qty -= units and sold += units in a single
	// statement. Negative units reverse a sale.
	RecordSale(ctx context.Context, productID uint, units int64) error
}
