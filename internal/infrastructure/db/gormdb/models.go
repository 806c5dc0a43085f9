package gormdb

import (
	"time"

	"github.com/fiori/inventory-api/internal/core/domain"
)

var models = []any{
	&userRow{},
	&permissionRow{},
	&userPermissionRow{},
	&productRow{},
	&orderRow{},
	&orderItemRow{},
}

type userRow struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;not null;uniqueIndex"`
	Email        string    `gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

type permissionRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null;uniqueIndex"`
}

func (permissionRow) TableName() string { return "permissions" }

// user_permissions
type userPermissionRow struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"not null;uniqueIndex:idx_user_permission"`
	PermissionID uint `gorm:"not null;uniqueIndex:idx_user_permission"`
	CreatedBy    uint `gorm:"not null;index"`

	User       *userRow       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Permission *permissionRow `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (userPermissionRow) TableName() string { return "user_permissions" }

type productRow struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:128;not null;index"`
	Description string    `gorm:"type:text"`
	SellPrice   int64     `gorm:"not null"`
	BuyPrice    int64     `gorm:"not null"`
	Qty         int64     `gorm:"not null"`
	Mini        int64     `gorm:"not null"`
	Maxi        int64     `gorm:"not null"`
	Sold        int64     `gorm:"not null"`
	Image       []byte    `gorm:"column:image"`
	CreatedBy   uint      `gorm:"not null;index"`
	CreatedOn   time.Time `gorm:"autoCreateTime;not null;index"`

	Creator *userRow `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (productRow) TableName() string { return "products" }

func productFromDomain(p *domain.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SellPrice:   p.SellPrice,
		BuyPrice:    p.BuyPrice,
		Qty:         p.Qty,
		Mini:        p.Mini,
		Maxi:        p.Maxi,
		Sold:        p.Sold,
		Image:       p.Image,
		CreatedBy:   p.CreatedBy,
		CreatedOn:   p.CreatedOn,
	}
}

func (r *productRow) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		SellPrice:   r.SellPrice,
		BuyPrice:    r.BuyPrice,
		Qty:         r.Qty,
		Mini:        r.Mini,
		Maxi:        r.Maxi,
		Sold:        r.Sold,
		Image:       r.Image,
		CreatedBy:   r.CreatedBy,
		CreatedOn:   r.CreatedOn,
	}
}

type orderRow struct {
	ID         uint      `gorm:"primaryKey"`
	Qty        int64     `gorm:"not null"`
	TotalPrice int64     `gorm:"not null"`
	TotalCost  int64     `gorm:"not null"`
	CreatedBy  uint      `gorm:"not null;index"`
	CreatedOn  time.Time `gorm:"autoCreateTime;not null;index"`

	Items   []orderItemRow `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Creator *userRow       `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (orderRow) TableName() string { return "orders" }

type orderItemRow struct {
	ID         uint  `gorm:"primaryKey"`
	OrderID    uint  `gorm:"not null;index"`
	ProductID  uint  `gorm:"not null;index"`
	Qty        int64 `gorm:"not null"`
	TotalPrice int64 `gorm:"not null"`
	TotalCost  int64 `gorm:"not null"`

	Product *productRow `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (orderItemRow) TableName() string { return "order_items" }

func orderFromDomain(o *domain.Order) orderRow {
	row := orderRow{
		Qty:        o.Qty,
		TotalPrice: o.TotalPrice,
		TotalCost:  o.TotalCost,
		CreatedBy:  o.CreatedBy,
		Items:      make([]orderItemRow, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		row.Items = append(row.Items, orderItemRow{
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			TotalPrice: it.TotalPrice,
			TotalCost:  it.TotalCost,
		})
	}
	return row
}

func (r *orderRow) toDomain() *domain.Order {
	o := &domain.Order{
		ID:         r.ID,
		Qty:        r.Qty,
		TotalPrice: r.TotalPrice,
		TotalCost:  r.TotalCost,
		CreatedBy:  r.CreatedBy,
		CreatedOn:  r.CreatedOn,
		Items:      make([]domain.OrderItem, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ID:         it.ID,
			OrderID:    it.OrderID,
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			TotalPrice: it.TotalPrice,
			TotalCost:  it.TotalCost,
		})
	}
	return o
}
