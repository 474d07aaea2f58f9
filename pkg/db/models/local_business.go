package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// LocalBusiness is a directory listing on the local hub. Unlike hub vendors,
// listings carry no catalog; they exist for discovery and contact.
type LocalBusiness struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Category    string         `gorm:"column:category;not null;index"`
	Description string         `gorm:"column:description"`
	ImageURL    *string        `gorm:"column:image_url"`
	Phone       *string        `gorm:"column:phone"`
	Address     string         `gorm:"column:address;not null"`
	Location    types.Location `gorm:"column:location;type:jsonb;serializer:json"`
	Rating      float64        `gorm:"column:rating;not null;default:0"`
	RatingCount int            `gorm:"column:rating_count;not null;default:0"`
	IsVerified  bool           `gorm:"column:is_verified;not null;default:false"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
