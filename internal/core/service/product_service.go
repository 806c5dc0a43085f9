package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// ProductService implements the product catalog. It never changes Qty or
// Sold of an existing product; that is the order engine's job.
type ProductService struct {
	repo ports.ProductRepository
	tx   ports.TxRunner
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, tx ports.TxRunner, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, tx: tx, log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if in.SellPrice == nil || in.BuyPrice == nil {
		return nil, fmt.Errorf("sell and buy prices are required: %w", domain.ErrInvalidInput)
	}
	if *in.SellPrice < 0 || *in.BuyPrice < 0 {
		return nil, fmt.Errorf("prices must not be negative: %w", domain.ErrInvalidInput)
	}
	if in.CreatedBy == 0 {
		return nil, fmt.Errorf("creator is required: %w", domain.ErrInvalidInput)
	}

	p := &domain.Product{
		Name:        name,
		Description: in.Description,
		SellPrice:   *in.SellPrice,
		BuyPrice:    *in.BuyPrice,
		Qty:         valueOr(in.Qty, 0),
		Mini:        valueOr(in.Mini, 0),
		Sold:        valueOr(in.Sold, 0),
		Image:       in.Image,
		CreatedBy:   in.CreatedBy,
	}
	p.Maxi = valueOr(in.Maxi, p.Qty+1)

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Uint("product_id", p.ID).Uint("created_by", p.CreatedBy).Msg("product created")
	return p, nil
}

// Update applies only the provided fields.
func (s *ProductService) Update(ctx context.Context, id uint, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.SellPrice != nil {
		if *in.SellPrice < 0 {
			return nil, fmt.Errorf("sell price must not be negative: %w", domain.ErrInvalidInput)
		}
		p.SellPrice = *in.SellPrice
	}
	if in.BuyPrice != nil {
		if *in.BuyPrice < 0 {
			return nil, fmt.Errorf("buy price must not be negative: %w", domain.ErrInvalidInput)
		}
		p.BuyPrice = *in.BuyPrice
	}
	if in.Mini != nil {
		p.Mini = *in.Mini
	}
	if in.Maxi != nil {
		p.Maxi = *in.Maxi
	}
	if in.Image != nil {
		p.Image = in.Image
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Uint("product_id", p.ID).Msg("product updated")
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.Search(ctx, term)
}

// List returns a 1-based page, newest first.
func (s *ProductService) List(ctx context.Context, page, size int) (*ports.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = domain.DefaultPageSize
	}

	items, total, err := s.repo.Page(ctx, page, size)
	if err != nil {
		return nil, err
	}
	return &ports.ProductPage{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: domain.TotalPages(total, size),
	}, nil
}

// Delete refuses with domain.ErrConflict while any order item references
// the product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		if _, err := tx.Products().FindByID(ctx, id); err != nil {
			return err
		}
		n, err := tx.Products().CountOrderItems(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("product %d is associated with %d order items: %w", id, n, domain.ErrConflict)
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}

func valueOr(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}
