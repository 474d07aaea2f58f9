package router

import (
	"context"
	"fmt"

	"github.com/quickwishapp/quickwish-backend/internal/analytics/types"
	analyticswriter "github.com/quickwishapp/quickwish-backend/internal/analytics/writer"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	outboxpayloads "github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
)

type orderCreatedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newOrderCreatedHandler(writer Writer, logg *logger.Logger) Handler {
	return &orderCreatedHandler{writer: writer, logg: logg}
}

func (h *orderCreatedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*outboxpayloads.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for order_created")
	}

	fields := map[string]any{
		"event_type": envelope.EventType,
		"order_id":   event.OrderID,
		"vendor_id":  event.VendorID,
		"user_id":    event.UserID,
	}
	logCtx := h.logg.WithFields(ctx, fields)

	row, err := buildOrderCreatedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build order fact row", err)
		return err
	}

	if err := h.writer.InsertOrderFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert order fact row", err)
		return err
	}

	h.logg.Info(logCtx, "order_created handler inserted order fact row")
	return nil
}

func buildOrderCreatedRow(envelope types.Envelope, event *outboxpayloads.OrderCreatedEvent) (types.OrderFactRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.OrderFactRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	var linkedWishID *string
	if event.LinkedWishID != nil {
		linkedWishID = stringPtr(event.LinkedWishID.String())
	}

	return types.OrderFactRow{
		EventID:      envelope.EventID,
		EventType:    string(envelope.EventType),
		OccurredAt:   envelope.OccurredAt,
		OrderID:      stringPtr(event.OrderID.String()),
		UserID:       stringPtr(event.UserID.String()),
		VendorID:     stringPtr(event.VendorID.String()),
		Status:       stringPtr(string(enums.OrderStatusConfirmed)),
		DeliveryType: stringPtr(string(event.DeliveryType)),
		Subtotal:     moneyPtr(event.Subtotal),
		Tax:          moneyPtr(event.Tax),
		DeliveryFee:  moneyPtr(event.DeliveryFee),
		GrandTotal:   moneyPtr(event.GrandTotal),
		ItemCount:    int64Ptr(int64(event.ItemCount)),
		LinkedWishID: linkedWishID,
		Payload:      payloadJSON,
	}, nil
}
