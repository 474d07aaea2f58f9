package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one message inside a chat room.
type ChatMessage struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    uuid.UUID  `gorm:"column:room_id;type:uuid;not null;index"`
	SenderID  uuid.UUID  `gorm:"column:sender_id;type:uuid;not null"`
	Body      string     `gorm:"column:body;not null"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`

	Room *ChatRoom `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
