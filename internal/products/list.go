package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Category    *string          `json:"category,omitempty"`
	PriceMin    *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax    *decimal.Decimal `json:"price_max,omitempty"`
	InStockOnly bool             `json:"in_stock_only,omitempty"`
	Query       string           `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate and filter the
// catalog. VendorID narrows the listing to one vendor's shelf.
type ListProductsInput struct {
	VendorID   *uuid.UUID
	Filters    ProductListFilters
	Pagination pagination.Params
}
