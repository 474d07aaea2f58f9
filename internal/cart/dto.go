package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemInput carries the data required to add a product to a cart.
type AddItemInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// AddItemResult reports the cart affected by an add and its new size.
type AddItemResult struct {
	CartID    uuid.UUID `json:"cart_id"`
	VendorID  uuid.UUID `json:"vendor_id"`
	ItemCount int       `json:"item_count"`
}

// UpdateItemInput carries the data required to set or remove a cart line.
// VendorID is optional; when nil the vendor is resolved from the product.
type UpdateItemInput struct {
	UserID    uuid.UUID
	VendorID  *uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// ItemView is a cart line joined with live product data for display.
type ItemView struct {
	ProductID       uuid.UUID        `json:"product_id"`
	Name            string           `json:"name"`
	ImageURL        *string          `json:"image_url,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Quantity        int              `json:"quantity"`
	LineTotal       decimal.Decimal  `json:"line_total"`
	InStock         bool             `json:"in_stock"`
}

// View is one vendor's cart enriched with product data. Lines whose product
// no longer exists are dropped rather than surfaced as errors.
type View struct {
	CartID     uuid.UUID       `json:"cart_id"`
	VendorID   uuid.UUID       `json:"vendor_id"`
	VendorName string          `json:"vendor_name,omitempty"`
	Items      []ItemView      `json:"items"`
	ItemCount  int             `json:"item_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}
