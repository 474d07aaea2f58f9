package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// ExplorePost is a community feed entry: a recommendation, offer, or local
// tip shown on the explore tab.
type ExplorePost struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthorID   uuid.UUID      `gorm:"column:author_id;type:uuid;not null;index"`
	AuthorName string         `gorm:"column:author_name;not null"`
	Title      string         `gorm:"column:title;not null"`
	Body       string         `gorm:"column:body"`
	Category   string         `gorm:"column:category;index"`
	ImageURLs  pq.StringArray `gorm:"column:image_urls;type:text[]"`
	Location   types.Location `gorm:"column:location;type:jsonb;serializer:json"`
	LikeCount  int            `gorm:"column:like_count;not null;default:0"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
