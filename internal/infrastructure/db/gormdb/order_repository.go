package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	row := orderFromDomain(o)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate("create order", err)
	}
	o.ID, o.CreatedOn = row.ID, row.CreatedOn
	for i := range o.Items {
		o.Items[i].ID = row.Items[i].ID
		o.Items[i].OrderID = row.ID
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var row orderRow
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&row, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("find order %d", id), err)
	}
	return row.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&orderItemRow{}).Error; err != nil {
		return translate(fmt.Sprintf("delete items of order %d", id), err)
	}
	res := db.Delete(&orderRow{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("delete order %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) ListByCreator(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var rows []orderRow
	err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("created_by = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list orders by creator", err)
	}
	return toOrders(rows), nil
}

// SalesRepository is the reporting read side over orders.
type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) ListOrders(ctx context.Context, f ports.SalesFilter) ([]*domain.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		Where("created_on >= ? AND created_on < ?", f.From.UTC(), f.To.UTC())
	if f.CreatedBy != nil {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}

	var rows []orderRow
	if err := q.Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, translate("list sales", err)
	}
	return toOrders(rows), nil
}

func toOrders(rows []orderRow) []*domain.Order {
	out := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
