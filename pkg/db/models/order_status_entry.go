package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// OrderStatusEntry is one row of an order's append-only status history.
type OrderStatusEntry struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:order_status_enum;not null"`
	Message   string            `gorm:"column:message;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
