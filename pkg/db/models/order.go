package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// Order is an immutable snapshot taken at checkout. Vendor details and unit
// prices are denormalized so later catalog edits never rewrite history; only
// status, agent tracking fields, and timestamps change after creation.
type Order struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	VendorID          uuid.UUID           `gorm:"column:vendor_id;type:uuid;not null;index"`
	VendorName        string              `gorm:"column:vendor_name;not null"`
	VendorImageURL    *string             `gorm:"column:vendor_image_url"`
	VendorPhone       *string             `gorm:"column:vendor_phone"`
	VendorAddress     string              `gorm:"column:vendor_address;not null"`
	Subtotal          decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax               decimal.Decimal     `gorm:"column:tax;type:numeric(12,2);not null"`
	DeliveryFee       decimal.Decimal     `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	GrandTotal        decimal.Decimal     `gorm:"column:grand_total;type:numeric(12,2);not null"`
	DeliveryType      enums.DeliveryType  `gorm:"column:delivery_type;type:delivery_type_enum;not null"`
	DeliveryAddress   types.Location      `gorm:"column:delivery_address;type:jsonb;serializer:json"`
	Status            enums.OrderStatus   `gorm:"column:status;type:order_status_enum;not null;default:confirmed"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;type:payment_status_enum;not null;default:pending"`
	EstimatedDelivery *time.Time          `gorm:"column:estimated_delivery"`
	LinkedWishID      *uuid.UUID          `gorm:"column:linked_wish_id;type:uuid"`
	AgentID           *uuid.UUID          `gorm:"column:agent_id;type:uuid"`
	AgentLocation     *types.Location     `gorm:"column:agent_location;type:jsonb;serializer:json"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Items         []OrderItem        `gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusEntry `gorm:"foreignKey:OrderID"`
}
