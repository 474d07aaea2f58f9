package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// HubVendor is a seller on the services hub. Vendors own a product catalog
// and fulfil orders either with their own couriers or through agents.
type HubVendor struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Category       string         `gorm:"column:category;not null;index"`
	Description    string         `gorm:"column:description"`
	ImageURL       *string        `gorm:"column:image_url"`
	GalleryURLs    pq.StringArray `gorm:"column:gallery_urls;type:text[]"`
	Phone          *string        `gorm:"column:phone"`
	Address        string         `gorm:"column:address;not null"`
	Location       types.Location `gorm:"column:location;type:jsonb;serializer:json"`
	Rating         float64        `gorm:"column:rating;not null;default:0"`
	RatingCount    int            `gorm:"column:rating_count;not null;default:0"`
	HasOwnDelivery bool           `gorm:"column:has_own_delivery;not null;default:false"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	OpeningHours   *string        `gorm:"column:opening_hours"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`

	Products []Product `gorm:"foreignKey:VendorID"`
}
