package localhub

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// BusinessDTO is the transport shape of a directory listing.
type BusinessDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Address     string         `json:"address"`
	Location    types.Location `json:"location"`
	Rating      float64        `json:"rating"`
	RatingCount int            `json:"rating_count"`
	IsVerified  bool           `json:"is_verified"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BusinessListResult is one directory page plus the cursor for the next one.
type BusinessListResult struct {
	Businesses []BusinessDTO `json:"businesses"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CategoryCount pairs a directory category with how many listings carry it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

func FromModel(m *models.LocalBusiness) *BusinessDTO {
	if m == nil {
		return nil
	}

	return &BusinessDTO{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Phone:       m.Phone,
		Address:     m.Address,
		Location:    m.Location,
		Rating:      m.Rating,
		RatingCount: m.RatingCount,
		IsVerified:  m.IsVerified,
		CreatedAt:   m.CreatedAt,
	}
}
