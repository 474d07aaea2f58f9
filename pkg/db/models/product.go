package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry owned by a hub vendor. DiscountedPrice, when
// set, is the price actually charged; Price remains the list price.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null;index"`
	Name            string           `gorm:"column:name;not null"`
	Description     string           `gorm:"column:description"`
	Category        string           `gorm:"column:category;index"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountedPrice *decimal.Decimal `gorm:"column:discounted_price;type:numeric(12,2)"`
	ImageURLs       pq.StringArray   `gorm:"column:image_urls;type:text[]"`
	InStock         bool             `gorm:"column:in_stock;not null;default:true"`
	LikeCount       int              `gorm:"column:like_count;not null;default:0"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	Vendor *HubVendor `gorm:"foreignKey:VendorID"`
}

// EffectivePrice is the amount a buyer pays for one unit.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
