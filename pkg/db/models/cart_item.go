package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. Quantity is always positive;
// setting it to zero removes the line instead.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:ux_cart_items_cart_product"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_cart_items_cart_product"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Cart    *Cart    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Product *Product `gorm:"foreignKey:ProductID"`
}
