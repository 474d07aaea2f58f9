package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's pending selection for one vendor. A user keeps at most
// one cart per vendor; shopping across vendors yields separate carts that
// check out independently.
type Cart struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_carts_user_vendor"`
	VendorID  uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:ux_carts_user_vendor"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Items  []CartItem `gorm:"foreignKey:CartID"`
	Vendor *HubVendor `gorm:"foreignKey:VendorID"`
}
