package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// RoomWishDTO is the wish summary embedded in room listings so clients can
// render the negotiation context without a second lookup.
type RoomWishDTO struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Type         enums.WishType   `json:"type"`
	Status       enums.WishStatus `json:"status"`
	Remuneration decimal.Decimal  `json:"remuneration"`
}

// MessageDTO is one chat message as returned to clients.
type MessageDTO struct {
	ID        uuid.UUID  `json:"id"`
	RoomID    uuid.UUID  `json:"room_id"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoomDTO is a chat room with its negotiation context.
type RoomDTO struct {
	ID          uuid.UUID            `json:"id"`
	WishID      uuid.UUID            `json:"wish_id"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	AgentID     uuid.UUID            `json:"agent_id"`
	Status      enums.ChatRoomStatus `json:"status"`
	Wish        *RoomWishDTO         `json:"wish,omitempty"`
	LastMessage *MessageDTO          `json:"last_message,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// MessageListResult pages messages newest first with an opaque cursor.
type MessageListResult struct {
	Messages   []MessageDTO `json:"messages"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// RoomFromModel maps a persisted room into a DTO.
func RoomFromModel(m *models.ChatRoom) *RoomDTO {
	if m == nil {
		return nil
	}
	dto := &RoomDTO{
		ID:        m.ID,
		WishID:    m.WishID,
		OwnerID:   m.OwnerID,
		AgentID:   m.AgentID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Wish != nil {
		dto.Wish = &RoomWishDTO{
			ID:           m.Wish.ID,
			Title:        m.Wish.Title,
			Type:         m.Wish.Type,
			Status:       m.Wish.Status,
			Remuneration: m.Wish.Remuneration,
		}
	}
	return dto
}

// MessageFromModel maps a persisted message into a DTO.
func MessageFromModel(m *models.ChatMessage) *MessageDTO {
	if m == nil {
		return nil
	}
	return &MessageDTO{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
