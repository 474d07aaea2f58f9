package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// ChatRoom is the negotiation channel between a wish owner and one
// interested agent. Approving the room assigns the agent to the wish.
type ChatRoom struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WishID    uuid.UUID            `gorm:"column:wish_id;type:uuid;not null;uniqueIndex:ux_chat_rooms_wish_agent"`
	OwnerID   uuid.UUID            `gorm:"column:owner_id;type:uuid;not null;index"`
	AgentID   uuid.UUID            `gorm:"column:agent_id;type:uuid;not null;uniqueIndex:ux_chat_rooms_wish_agent"`
	Status    enums.ChatRoomStatus `gorm:"column:status;type:chat_room_status_enum;not null;default:active"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Wish     *Wish         `gorm:"foreignKey:WishID"`
	Messages []ChatMessage `gorm:"foreignKey:RoomID"`
}
