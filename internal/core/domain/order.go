package domain

import "time"

// OrderItem is one product line inside an order.
type OrderItem struct {
	ID         uint  `json:"id"`
	OrderID    uint  `json:"order_id"`
	ProductID  uint  `json:"product_id"`
	Qty        int64 `json:"qty"`
	TotalPrice int64 `json:"total_price"`
	TotalCost  int64 `json:"total_cost"`
}

// Order is immutable once created; its only transition is deletion.
type Order struct {
	ID         uint        `json:"id"`
	Qty        int64       `json:"qty"`
	TotalPrice int64       `json:"total_price"`
	TotalCost  int64       `json:"total_cost"`
	CreatedBy  uint        `json:"created_by"`
	CreatedOn  time.Time   `json:"created_on"`
	Items      []OrderItem `json:"items"`
}

// Recompute sets the order aggregates from its items.
func (o *Order) Recompute() {
	o.Qty, o.TotalPrice, o.TotalCost = 0, 0, 0
	for _, it := range o.Items {
		o.Qty += it.Qty
		o.TotalPrice += it.TotalPrice
		o.TotalCost += it.TotalCost
	}
}

// OrderEventKind names an entry in the order audit trail.
type OrderEventKind string

const (
	OrderEventCreated OrderEventKind = "order_created"
	OrderEventDeleted OrderEventKind = "order_deleted"
)

// OrderEvent is an audit record written after an order transaction commits.
type OrderEvent struct {
	Kind       OrderEventKind
	OrderID    uint
	Actor      uint
	Qty        int64
	TotalPrice int64
	TotalCost  int64
	ProductIDs []uint
	At         time.Time
}
