package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/idempotency"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/registry"
)

const userNotificationConsumer = "user-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Consumer watches domain events and turns order and wish progress into
// in-app notifications.
type Consumer struct {
	repo         repository
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	decoders     *registry.DecoderRegistry
	logg         *logger.Logger
}

// NewConsumer builds a user notification consumer.
func NewConsumer(repo repository, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		idempotency:  manager,
		decoders:     newDecoderRegistry(),
		logg:         logg,
	}, nil
}

func newDecoderRegistry() *registry.DecoderRegistry {
	decoders := registry.NewDecoderRegistry()
	decoders.Register(enums.EventOrderCreated, 1, func(data json.RawMessage) (interface{}, error) {
		var payload payloads.OrderCreatedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	decoders.Register(enums.EventOrderStatusChanged, 1, func(data json.RawMessage) (interface{}, error) {
		var payload payloads.OrderStatusChangedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	decoders.Register(enums.EventWishAccepted, 1, func(data json.RawMessage) (interface{}, error) {
		var payload payloads.WishAcceptedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
	return decoders
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	switch eventType {
	case enums.EventOrderCreated, enums.EventOrderStatusChanged, enums.EventWishAccepted:
	default:
		c.logg.Info(logCtx, "skipping unhandled event")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, userNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	decoded, err := c.decoders.Decode(eventType, envelope.Version, envelope.Data)
	if err != nil {
		c.logg.Error(logCtx, "failed to decode payload", err)
		_ = c.idempotency.Delete(ctx, userNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	notification := buildNotification(decoded)
	if notification == nil {
		c.logg.Info(logCtx, "event carries no notification")
		return processResult{ack: true}
	}

	if err := c.repo.Create(ctx, notification); err != nil {
		c.logg.Error(logCtx, "notification write failed", err)
		_ = c.idempotency.Delete(ctx, userNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	logCtx = c.logg.WithField(logCtx, "user_id", notification.UserID.String())
	c.logg.Info(logCtx, "user notified")
	return processResult{ack: true}
}

// buildNotification maps a decoded event payload onto the notification row it
// produces, or nil when the event warrants none.
func buildNotification(decoded interface{}) *models.Notification {
	switch payload := decoded.(type) {
	case payloads.OrderCreatedEvent:
		return &models.Notification{
			UserID:      payload.UserID,
			Type:        enums.NotificationTypeOrderUpdate,
			Title:       "Order confirmed",
			Body:        fmt.Sprintf("Your order from %s is confirmed.", payload.VendorName),
			ReferenceID: &payload.OrderID,
		}
	case payloads.OrderStatusChangedEvent:
		body := payload.Message
		if body == "" {
			body = fmt.Sprintf("Your order is now %s.", payload.Status)
		}
		return &models.Notification{
			UserID:      payload.UserID,
			Type:        enums.NotificationTypeOrderUpdate,
			Title:       "Order update",
			Body:        body,
			ReferenceID: &payload.OrderID,
		}
	case payloads.WishAcceptedEvent:
		return &models.Notification{
			UserID:      payload.AgentID,
			Type:        enums.NotificationTypeWishUpdate,
			Title:       "Offer approved",
			Body:        "Your offer was approved. The wish is now in progress.",
			ReferenceID: &payload.WishID,
		}
	}
	return nil
}
