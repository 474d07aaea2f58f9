package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
)

// VendorSummary exposes the minimal vendor data used by product read paths.
type VendorSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL *string   `json:"image_url,omitempty"`
}

// ProductSummary is the compact row returned by catalog listings.
type ProductSummary struct {
	ID              uuid.UUID        `json:"id"`
	VendorID        uuid.UUID        `json:"vendor_id"`
	VendorName      string           `json:"vendor_name"`
	Name            string           `json:"name"`
	Category        string           `json:"category,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	InStock         bool             `json:"in_stock"`
	LikeCount       int              `json:"like_count"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ProductListResult wraps a page of summaries plus the next page cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ProductDTO is the full product detail returned to clients.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	VendorID        uuid.UUID        `json:"vendor_id"`
	Vendor          *VendorSummary   `json:"vendor,omitempty"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	EffectivePrice  decimal.Decimal  `json:"effective_price"`
	ImageURLs       []string         `json:"image_urls,omitempty"`
	InStock         bool             `json:"in_stock"`
	LikeCount       int              `json:"like_count"`
	Liked           bool             `json:"liked"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewProductDTO maps the persisted product into its API shape.
func NewProductDTO(product *models.Product, liked bool) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		VendorID:        product.VendorID,
		Name:            product.Name,
		Description:     product.Description,
		Category:        product.Category,
		Price:           product.Price,
		DiscountedPrice: product.DiscountedPrice,
		EffectivePrice:  product.EffectivePrice(),
		ImageURLs:       product.ImageURLs,
		InStock:         product.InStock,
		LikeCount:       product.LikeCount,
		Liked:           liked,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Vendor != nil {
		dto.Vendor = &VendorSummary{
			ID:       product.Vendor.ID,
			Name:     product.Vendor.Name,
			ImageURL: product.Vendor.ImageURL,
		}
	}
	return dto
}
