package wishes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// WishDTO exposes a wish in API responses.
type WishDTO struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Type          enums.WishType   `json:"type"`
	Status        enums.WishStatus `json:"status"`
	Remuneration  decimal.Decimal  `json:"remuneration"`
	Location      types.Location   `json:"location"`
	Destination   *types.Location  `json:"destination,omitempty"`
	RadiusKM      float64          `json:"radius_km"`
	ImageURLs     []string         `json:"image_urls,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	AcceptedBy    *uuid.UUID       `json:"accepted_by,omitempty"`
	LinkedOrderID *uuid.UUID       `json:"linked_order_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NearbyWishDTO pairs a wish with its distance from the searching agent.
type NearbyWishDTO struct {
	WishDTO
	DistanceKM float64 `json:"distance_km"`
}

// WishListResult pages wishes with an opaque cursor.
type WishListResult struct {
	Wishes     []WishDTO `json:"wishes"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted wish into a DTO.
func FromModel(m *models.Wish) *WishDTO {
	if m == nil {
		return nil
	}

	dto := &WishDTO{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		Type:          m.Type,
		Status:        m.Status,
		Remuneration:  m.Remuneration,
		Location:      m.Location,
		Destination:   m.Destination,
		RadiusKM:      m.RadiusKM,
		Deadline:      m.Deadline,
		AcceptedBy:    m.AcceptedBy,
		LinkedOrderID: m.LinkedOrderID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if len(m.ImageURLs) > 0 {
		dto.ImageURLs = append([]string(nil), m.ImageURLs...)
	}
	return dto
}
