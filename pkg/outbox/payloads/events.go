package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// OrderCreatedEvent signals a successful checkout.
type OrderCreatedEvent struct {
	OrderID      uuid.UUID          `json:"order_id"`
	UserID       uuid.UUID          `json:"user_id"`
	VendorID     uuid.UUID          `json:"vendor_id"`
	VendorName   string             `json:"vendor_name"`
	DeliveryType enums.DeliveryType `json:"delivery_type"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Tax          decimal.Decimal    `json:"tax"`
	DeliveryFee  decimal.Decimal    `json:"delivery_fee"`
	GrandTotal   decimal.Decimal    `json:"grand_total"`
	ItemCount    int                `json:"item_count"`
	LinkedWishID *uuid.UUID         `json:"linked_wish_id,omitempty"`
}

// OrderStatusChangedEvent is emitted on every accepted status transition.
type OrderStatusChangedEvent struct {
	OrderID        uuid.UUID         `json:"order_id"`
	UserID         uuid.UUID         `json:"user_id"`
	VendorID       uuid.UUID         `json:"vendor_id"`
	PreviousStatus enums.OrderStatus `json:"previous_status"`
	Status         enums.OrderStatus `json:"status"`
	Message        string            `json:"message"`
	ChangedAt      time.Time         `json:"changed_at"`
}

// WishCreatedEvent signals a new wish, whether posted directly or spawned
// by an agent-delivery checkout.
type WishCreatedEvent struct {
	WishID        uuid.UUID       `json:"wish_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Type          enums.WishType  `json:"type"`
	Title         string          `json:"title"`
	Remuneration  decimal.Decimal `json:"remuneration"`
	RadiusKM      float64         `json:"radius_km"`
	LinkedOrderID *uuid.UUID      `json:"linked_order_id,omitempty"`
}

// WishAcceptedEvent is emitted when the wish owner approves an agent.
type WishAcceptedEvent struct {
	WishID     uuid.UUID `json:"wish_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	AgentID    uuid.UUID `json:"agent_id"`
	ChatRoomID uuid.UUID `json:"chat_room_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}
