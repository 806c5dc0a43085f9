package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/fiori/inventory-api/internal/core/domain"
)

func TestOrderEventDocRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	event := domain.OrderEvent{
		Kind:       domain.OrderEventCreated,
		OrderID:    42,
		Actor:      2,
		Qty:        5,
		TotalPrice: 50,
		TotalCost:  30,
		ProductIDs: []uint{3, 9},
		At:         at,
	}

	raw, err := bson.Marshal(toEventDoc(event, at.Add(time.Second)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["kind"] != "order_created" || fields["order_id"] != int64(42) {
		t.Fatalf("unexpected document fields: %v", fields)
	}

	var doc orderEventDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	got := doc.toDomain()
	got.At = got.At.UTC()
	if !reflect.DeepEqual(got, event) {
		t.Fatalf("expected %+v, got %+v", event, got)
	}
}
