package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// OrderService is the order engine: the only place where product Qty and
// Sold change. Every mutation runs inside a single transaction.
type OrderService struct {
	tx     ports.TxRunner
	orders ports.OrderRepository
	idem   ports.IdempotencyStore
	audit  ports.AuditLog
	now    func() time.Time
	log    zerolog.Logger
}

func NewOrderService(
	tx ports.TxRunner,
	orders ports.OrderRepository,
	idem ports.IdempotencyStore,
	audit ports.AuditLog,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		tx:     tx,
		orders: orders,
		idem:   idem,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

// CreateOrder persists the order, its items and the stock movements of every
// line atomically. A line pointing at an unknown product aborts the whole
// order. Aggregates are always recomputed from the lines.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	key, existing, err := s.claim(ctx, idempotencyKey(in.CreatedBy, in.IdempotencyKey))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ports.OrderResult{Order: existing, AlreadyExisted: true}, nil
	}

	order := &domain.Order{
		CreatedBy: in.CreatedBy,
		Items:     make([]domain.OrderItem, 0, len(in.Items)),
	}
	for _, li := range in.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:  li.ProductID,
			Qty:        li.Qty,
			TotalPrice: li.TotalPrice,
			TotalCost:  li.TotalCost,
		})
	}
	order.Recompute()

	if t := in.ClientTotals; t != nil && (t.Qty != order.Qty || t.TotalPrice != order.TotalPrice || t.TotalCost != order.TotalCost) {
		s.log.Warn().
			Uint("user_id", in.CreatedBy).
			Int64("client_qty", t.Qty).Int64("qty", order.Qty).
			Int64("client_total", t.TotalPrice).Int64("total", order.TotalPrice).
			Int64("client_cost", t.TotalCost).Int64("cost", order.TotalCost).
			Msg("client order totals differ from line items; using recomputed totals")
	}

	var lowStock []*domain.Product
	err = s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		for i, it := range order.Items {
			if _, err := tx.Products().FindByID(ctx, it.ProductID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("line %d: product %d does not exist: %w", i+1, it.ProductID, domain.ErrInvalidInput)
				}
				return err
			}
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			if err := tx.Products().RecordSale(ctx, it.ProductID, it.Qty); err != nil {
				return err
			}
		}

		lowStock = lowStock[:0]
		for _, id := range productIDs(order) {
			p, err := tx.Products().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if p.BelowMinimum() {
				lowStock = append(lowStock, p)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Uint("user_id", in.CreatedBy).Int("lines", len(in.Items)).Msg("failed to create order")
		if key != "" {
			if rerr := s.idem.Release(ctx, key); rerr != nil {
				s.log.Warn().Err(rerr).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info().
		Uint("order_id", order.ID).
		Uint("user_id", order.CreatedBy).
		Int64("qty", order.Qty).
		Int64("total_price", order.TotalPrice).
		Msg("order created")
	for _, p := range lowStock {
		s.log.Warn().Uint("product_id", p.ID).Int64("qty", p.Qty).Int64("mini", p.Mini).Msg("product stock below minimum")
	}

	s.record(ctx, domain.OrderEventCreated, order, order.CreatedBy)
	if key != "" {
		if err := s.idem.Remember(ctx, key, order.ID); err != nil {
			s.log.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to store idempotency key")
		}
	}
	return &ports.OrderResult{Order: order}, nil
}

// DeleteOrder reverses the stock effect of every item and removes the order.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID, actor uint) error {
	var deleted *domain.Order
	err := s.tx.WithinTx(ctx, func(tx ports.Tx) error {
		order, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := reverseOrder(ctx, tx, order); err != nil {
			return err
		}
		deleted = order
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete order %d: %w", orderID, err)
	}

	s.log.Info().Uint("order_id", orderID).Uint("actor", actor).Int("items", len(deleted.Items)).Msg("order deleted")
	s.record(ctx, domain.OrderEventDeleted, deleted, actor)
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// claim reserves key for a new order and returns it. When key already
// produced an order, that order is returned instead. Store failures are
// logged and the order proceeds without a key.
func (s *OrderService) claim(ctx context.Context, key string) (string, *domain.Order, error) {
	if key == "" {
		return "", nil, nil
	}
	reserved, id, err := s.idem.Reserve(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency reservation failed, processing anyway")
		return "", nil, nil
	}
	if reserved {
		return key, nil, nil
	}
	if id == 0 {
		return "", nil, fmt.Errorf("an order with this idempotency key is still being placed: %w", domain.ErrConflict)
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Uint("order_id", id).Msg("idempotent order no longer available")
		return "", nil, nil
	}
	s.log.Info().Uint("order_id", id).Msg("idempotent replay")
	return "", order, nil
}

// record writes the audit trail. Failures never undo a committed order.
func (s *OrderService) record(ctx context.Context, kind domain.OrderEventKind, o *domain.Order, actor uint) {
	event := domain.OrderEvent{
		Kind:       kind,
		OrderID:    o.ID,
		Actor:      actor,
		Qty:        o.Qty,
		TotalPrice: o.TotalPrice,
		TotalCost:  o.TotalCost,
		ProductIDs: productIDs(o),
		At:         s.now(),
	}
	if err := s.audit.RecordOrderEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Uint("order_id", o.ID).Str("kind", string(kind)).Msg("failed to record audit event")
	}
}

// reverseOrder undoes the stock movements of o and deletes it. It must run
// inside the caller's transaction.
func reverseOrder(ctx context.Context, tx ports.Tx, o *domain.Order) error {
	for _, it := range o.Items {
		if err := tx.Products().RecordSale(ctx, it.ProductID, -it.Qty); err != nil {
			return err
		}
	}
	return tx.Orders().Delete(ctx, o.ID)
}

func validateOrderInput(in ports.CreateOrderInput) error {
	if in.CreatedBy == 0 {
		return fmt.Errorf("order creator is required: %w", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("order needs at least one line item: %w", domain.ErrInvalidInput)
	}
	for i, li := range in.Items {
		if li.ProductID == 0 {
			return fmt.Errorf("line %d: product id is required: %w", i+1, domain.ErrInvalidInput)
		}
		if li.Qty <= 0 {
			return fmt.Errorf("line %d: quantity must be positive: %w", i+1, domain.ErrInvalidInput)
		}
		if li.TotalPrice < 0 || li.TotalCost < 0 {
			return fmt.Errorf("line %d: totals must not be negative: %w", i+1, domain.ErrInvalidInput)
		}
	}
	return nil
}

func idempotencyKey(userID uint, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%d:%s", userID, key)
}

// productIDs lists the distinct products of o in line order.
func productIDs(o *domain.Order) []uint {
	seen := make(map[uint]struct{}, len(o.Items))
	ids := make([]uint, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
