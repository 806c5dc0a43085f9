package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fiori/inventory-api/internal/core/domain"
)

const orderEventsCollection = "order_events"

// AuditRepository implements ports.AuditLog on the order_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(orderEventsCollection)}
}

type orderEventDoc struct {
	Kind       string    `bson:"kind"`
	OrderID    int64     `bson:"order_id"`
	Actor      int64     `bson:"actor"`
	Qty        int64     `bson:"qty"`
	TotalPrice int64     `bson:"total_price"`
	TotalCost  int64     `bson:"total_cost"`
	ProductIDs []int64   `bson:"product_ids"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

func toEventDoc(e domain.OrderEvent, recordedAt time.Time) orderEventDoc {
	ids := make([]int64, 0, len(e.ProductIDs))
	for _, id := range e.ProductIDs {
		ids = append(ids, int64(id))
	}
	return orderEventDoc{
		Kind:       string(e.Kind),
		OrderID:    int64(e.OrderID),
		Actor:      int64(e.Actor),
		Qty:        e.Qty,
		TotalPrice: e.TotalPrice,
		TotalCost:  e.TotalCost,
		ProductIDs: ids,
		At:         e.At.UTC(),
		RecordedAt: recordedAt.UTC(),
	}
}

// RecordOrderEvent appends one entry to the audit trail.
func (r *AuditRepository) RecordOrderEvent(ctx context.Context, e domain.OrderEvent) error {
	if _, err := r.coll.InsertOne(ctx, toEventDoc(e, time.Now())); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes of the audit trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "at", Value: 1}}},
		{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "at", Value: -1}}, Options: options.Index().SetName("actor_at")},
	})
	if err != nil {
		return fmt.Errorf("create order event indexes: %w", err)
	}
	return nil
}

// History returns the audit entries of one order, oldest first.
func (r *AuditRepository) History(ctx context.Context, orderID uint) ([]domain.OrderEvent, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"order_id": int64(orderID)},
		options.Find().SetSort(bson.D{{Key: "at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find order events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode order events: %w", err)
	}
	out := make([]domain.OrderEvent, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (d orderEventDoc) toDomain() domain.OrderEvent {
	ids := make([]uint, 0, len(d.ProductIDs))
	for _, id := range d.ProductIDs {
		ids = append(ids, uint(id))
	}
	return domain.OrderEvent{
		Kind:       domain.OrderEventKind(d.Kind),
		OrderID:    uint(d.OrderID),
		Actor:      uint(d.Actor),
		Qty:        d.Qty,
		TotalPrice: d.TotalPrice,
		TotalCost:  d.TotalCost,
		ProductIDs: ids,
		At:         d.At,
	}
}
