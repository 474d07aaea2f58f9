package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// VendorDTO exposes hub vendor data in API responses.
type VendorDTO struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Description    string         `json:"description,omitempty"`
	ImageURL       *string        `json:"image_url,omitempty"`
	GalleryURLs    []string       `json:"gallery_urls,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	Address        string         `json:"address"`
	Location       types.Location `json:"location"`
	Rating         float64        `json:"rating"`
	RatingCount    int            `json:"rating_count"`
	HasOwnDelivery bool           `json:"has_own_delivery"`
	IsActive       bool           `json:"is_active"`
	OpeningHours   *string        `json:"opening_hours,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NearbyVendorDTO pairs a vendor with its distance from the search origin.
type NearbyVendorDTO struct {
	VendorDTO
	DistanceKM float64 `json:"distance_km"`
}

// FromModel maps the persisted vendor into a DTO.
func FromModel(m *models.HubVendor) *VendorDTO {
	if m == nil {
		return nil
	}

	dto := &VendorDTO{
		ID:             m.ID,
		Name:           m.Name,
		Category:       m.Category,
		Description:    m.Description,
		Address:        m.Address,
		Location:       m.Location,
		Rating:         m.Rating,
		RatingCount:    m.RatingCount,
		HasOwnDelivery: m.HasOwnDelivery,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.ImageURL != nil {
		dto.ImageURL = cloneStringPtr(m.ImageURL)
	}
	if m.Phone != nil {
		dto.Phone = cloneStringPtr(m.Phone)
	}
	if m.OpeningHours != nil {
		dto.OpeningHours = cloneStringPtr(m.OpeningHours)
	}
	if len(m.GalleryURLs) > 0 {
		dto.GalleryURLs = append([]string(nil), m.GalleryURLs...)
	}

	return dto
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
