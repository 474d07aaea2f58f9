package router

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/internal/analytics/types"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	outboxpayloads "github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
)

func TestOrderCreatedHandlerInsertsOrderFactRow(t *testing.T) {
	writer := &fakeWriter{}
	handler := newOrderCreatedHandler(writer, logger.New(logger.Options{ServiceName: "router-order-created-test"}))
	now := time.Now().UTC()
	wishID := uuid.New()
	event := &outboxpayloads.OrderCreatedEvent{
		OrderID:      uuid.New(),
		UserID:       uuid.New(),
		VendorID:     uuid.New(),
		VendorName:   "Dosa Palace",
		DeliveryType: enums.DeliveryTypeAgent,
		Subtotal:     decimal.RequireFromString("210"),
		Tax:          decimal.RequireFromString("10.50"),
		DeliveryFee:  decimal.RequireFromString("30"),
		GrandTotal:   decimal.RequireFromString("250.50"),
		ItemCount:    3,
		LinkedWishID: &wishID,
	}

	envelope := types.Envelope{
		EventID:    "event-id",
		EventType:  enums.EventOrderCreated,
		OccurredAt: now,
		Payload:    []byte("{}"),
	}

	if err := handler.Handle(context.Background(), envelope, event); err != nil {
		t.Fatalf("handle order_created: %v", err)
	}

	if len(writer.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(writer.inserted))
	}

	row := writer.inserted[0]
	if row.EventID != envelope.EventID {
		t.Fatalf("unexpected event id: %s", row.EventID)
	}
	if row.OrderID == nil || *row.OrderID != event.OrderID.String() {
		t.Fatalf("order id mismatch: got %v", row.OrderID)
	}
	if row.VendorID == nil || *row.VendorID != event.VendorID.String() {
		t.Fatalf("vendor id mismatch: got %v", row.VendorID)
	}
	if row.Status == nil || *row.Status != string(enums.OrderStatusConfirmed) {
		t.Fatalf("status mismatch: %v", row.Status)
	}
	if row.DeliveryType == nil || *row.DeliveryType != string(enums.DeliveryTypeAgent) {
		t.Fatalf("delivery type mismatch: %v", row.DeliveryType)
	}
	if row.Subtotal == nil || *row.Subtotal != 210 {
		t.Fatalf("subtotal mismatch: %v", row.Subtotal)
	}
	if row.Tax == nil || *row.Tax != 10.5 {
		t.Fatalf("tax mismatch: %v", row.Tax)
	}
	if row.DeliveryFee == nil || *row.DeliveryFee != 30 {
		t.Fatalf("delivery fee mismatch: %v", row.DeliveryFee)
	}
	if row.GrandTotal == nil || *row.GrandTotal != 250.5 {
		t.Fatalf("grand total mismatch: %v", row.GrandTotal)
	}
	if row.ItemCount == nil || *row.ItemCount != 3 {
		t.Fatalf("item count mismatch: %v", row.ItemCount)
	}
	if row.LinkedWishID == nil || *row.LinkedWishID != wishID.String() {
		t.Fatalf("linked wish mismatch: %v", row.LinkedWishID)
	}

	if !row.Payload.Valid {
		t.Fatal("payload json not valid")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(row.Payload.JSONVal), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["order_id"] != event.OrderID.String() {
		t.Fatalf("payload order id mismatch: %v", payload["order_id"])
	}
	if payload["vendor_name"] != "Dosa Palace" {
		t.Fatalf("payload vendor name mismatch: %v", payload["vendor_name"])
	}
}

func TestOrderCreatedHandlerRejectsWrongPayload(t *testing.T) {
	writer := &fakeWriter{}
	handler := newOrderCreatedHandler(writer, logger.New(logger.Options{ServiceName: "router-order-created-test"}))

	err := handler.Handle(context.Background(), types.Envelope{}, &outboxpayloads.WishCreatedEvent{})
	if err == nil {
		t.Fatal("expected error for wrong payload type")
	}
	if len(writer.inserted) != 0 {
		t.Fatalf("expected no inserts, got %d", len(writer.inserted))
	}
}
