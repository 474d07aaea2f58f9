package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// User is an account on the platform. Role decides what the account can do:
// plain users post wishes and shop the hub, agents additionally accept wishes
// and deliveries, admins manage vendors and seeded content.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	Phone        *string        `gorm:"column:phone"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;type:user_role_enum;not null;default:user"`
	AvatarURL    *string        `gorm:"column:avatar_url"`
	Location     types.Location `gorm:"column:location;type:jsonb;serializer:json"`
	Rating       float64        `gorm:"column:rating;not null;default:0"`
	RatingCount  int            `gorm:"column:rating_count;not null;default:0"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
