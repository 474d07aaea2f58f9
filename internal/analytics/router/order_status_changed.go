package router

import (
	"context"
	"fmt"

	"github.com/quickwishapp/quickwish-backend/internal/analytics/types"
	analyticswriter "github.com/quickwishapp/quickwish-backend/internal/analytics/writer"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	outboxpayloads "github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
)

type orderStatusChangedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newOrderStatusChangedHandler(writer Writer, logg *logger.Logger) Handler {
	return &orderStatusChangedHandler{writer: writer, logg: logg}
}

func (h *orderStatusChangedHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*outboxpayloads.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for order_status_changed")
	}

	fields := map[string]any{
		"event_type": envelope.EventType,
		"order_id":   event.OrderID,
		"status":     event.Status,
	}
	logCtx := h.logg.WithFields(ctx, fields)

	row, err := buildOrderStatusChangedRow(envelope, event)
	if err != nil {
		h.logg.Error(logCtx, "failed to build order fact row", err)
		return err
	}

	if err := h.writer.InsertOrderFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert order fact row", err)
		return err
	}

	h.logg.Info(logCtx, "order_status_changed handler inserted order fact row")
	return nil
}

func buildOrderStatusChangedRow(envelope types.Envelope, event *outboxpayloads.OrderStatusChangedEvent) (types.OrderFactRow, error) {
	payloadJSON, err := analyticswriter.EncodeJSON(event)
	if err != nil {
		return types.OrderFactRow{}, fmt.Errorf("encode payload json: %w", err)
	}

	occurred := event.ChangedAt
	if occurred.IsZero() {
		occurred = envelope.OccurredAt
	}

	return types.OrderFactRow{
		EventID:    envelope.EventID,
		EventType:  string(envelope.EventType),
		OccurredAt: occurred.UTC(),
		OrderID:    stringPtr(event.OrderID.String()),
		UserID:     stringPtr(event.UserID.String()),
		VendorID:   stringPtr(event.VendorID.String()),
		Status:     stringPtr(string(event.Status)),
		Payload:    payloadJSON,
	}, nil
}
