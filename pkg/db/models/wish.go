package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// Wish is a task a user posts for nearby agents: an errand, a shopping run,
// or a delivery. Delivery wishes spawned by checkout carry a LinkedOrderID
// and mirror the order's delivery fee as remuneration.
type Wish struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Title         string           `gorm:"column:title;not null"`
	Description   string           `gorm:"column:description"`
	Type          enums.WishType   `gorm:"column:type;type:wish_type_enum;not null"`
	Status        enums.WishStatus `gorm:"column:status;type:wish_status_enum;not null;default:pending"`
	Remuneration  decimal.Decimal  `gorm:"column:remuneration;type:numeric(12,2);not null"`
	Location      types.Location   `gorm:"column:location;type:jsonb;serializer:json"`
	Destination   *types.Location  `gorm:"column:destination;type:jsonb;serializer:json"`
	RadiusKM      float64          `gorm:"column:radius_km;not null;default:5"`
	ImageURLs     pq.StringArray   `gorm:"column:image_urls;type:text[]"`
	Deadline      *time.Time       `gorm:"column:deadline"`
	AcceptedBy    *uuid.UUID       `gorm:"column:accepted_by;type:uuid"`
	LinkedOrderID *uuid.UUID       `gorm:"column:linked_order_id;type:uuid"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
