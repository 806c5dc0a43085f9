package gormdb

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fiori/inventory-api/internal/core/domain"
)

const newestFirst = "created_on DESC, id DESC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("find product %d", id), err)
	}
	return row.toDomain(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	row := productFromDomain(p)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("create product", err)
	}
	p.ID, p.CreatedOn = row.ID, row.CreatedOn
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&productRow{ID: p.ID}).Updates(map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"sell_price":  p.SellPrice,
		"buy_price":   p.BuyPrice,
		"mini":        p.Mini,
		"maxi":        p.Maxi,
		"image":       p.Image,
	})
	if res.Error != nil {
		return translate(fmt.Sprintf("update product %d", p.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update product %d: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&productRow{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete product %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Search treats term literally; LIKE wildcards in it are escaped.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	var rows []productRow
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, translate("search products", err)
	}
	return toProducts(rows), nil
}

func (r *ProductRepository) Page(ctx context.Context, page, size int) ([]*domain.Product, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&productRow{}).Count(&total).Error; err != nil {
		return nil, 0, translate("count products", err)
	}

	var rows []productRow
	err := db.Order(newestFirst).Offset((page - 1) * size).Limit(size).Find(&rows).Error
	if err != nil {
		return nil, 0, translate("page products", err)
	}
	return toProducts(rows), total, nil
}

func (r *ProductRepository) CountOrderItems(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&orderItemRow{}).Where("product_id = ?", productID).Count(&n).Error
	if err != nil {
		return 0, translate("count order items", err)
	}
	return n, nil
}

func (r *ProductRepository) ListByCreator(ctx context.Context, userID uint) ([]*domain.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, translate("list products by creator", err)
	}
	return toProducts(rows), nil
}

// RecordSale moves units from qty to sold in one UPDATE, so concurrent sales
// of the same product never lose an increment.
func (r *ProductRepository) RecordSale(ctx context.Context, productID uint, units int64) error {
	res := r.db.WithContext(ctx).
		Model(&productRow{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]any{
			"qty":  gorm.Expr("qty - ?", units),
			"sold": gorm.Expr("sold + ?", units),
		})
	if res.Error != nil {
		return translate(fmt.Sprintf("record sale of product %d", productID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record sale of product %d: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func toProducts(rows []productRow) []*domain.Product {
	out := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
