package ports

import (
	"context"

	"github.com/fiori/inventory-api/internal/core/domain"
)

// CreateProductInput carries a new product. Nil optional fields take their
// defaults: Qty 0, Mini 0, Maxi Qty+1, Sold 0.
type CreateProductInput struct {
	Name        string
	Description string
	SellPrice   *int64
	BuyPrice    *int64
	Qty         *int64
	Mini        *int64
	Maxi        *int64
	Sold        *int64
	Image       []byte
	CreatedBy   uint
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	SellPrice   *int64
	BuyPrice    *int64
	Mini        *int64
	Maxi        *int64
	Image       []byte
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Items      []*domain.Product
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// ProductService defines catalog use cases.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	List(ctx context.Context, page, size int) (*ProductPage, error)
	Delete(ctx context.Context, id uint) error
}
