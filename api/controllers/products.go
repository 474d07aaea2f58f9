package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/api/validators"
	"github.com/quickwishapp/quickwish-backend/internal/products"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

func productIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "productId")))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}

func parseProductListQuery(r *http.Request) (products.ListProductsInput, error) {
	query := r.URL.Query()
	input := products.ListProductsInput{}

	if raw := strings.TrimSpace(query.Get("category")); raw != "" {
		input.Filters.Category = &raw
	}
	if raw := strings.TrimSpace(query.Get("price_min")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price_min")
		}
		input.Filters.PriceMin = &value
	}
	if raw := strings.TrimSpace(query.Get("price_max")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price_max")
		}
		input.Filters.PriceMax = &value
	}
	if raw := strings.TrimSpace(query.Get("in_stock_only")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid in_stock_only value")
		}
		input.Filters.InStockOnly = value
	}
	input.Filters.Query = strings.TrimSpace(query.Get("q"))

	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(query.Get("cursor")),
	}
	return input, nil
}

// HubProducts searches the whole catalog with filters and pagination.
func HubProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		input, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// HubVendorProducts lists one vendor's shelf with the same filters as the
// catalog search.
func HubVendorProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		vendorID, err := vendorIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseProductListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.VendorID = &vendorID

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// HubProductGet returns one product. When the caller is signed in the
// response carries their like state.
func HubProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		product, err := svc.GetProduct(r.Context(), productID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	VendorID        uuid.UUID        `json:"vendor_id" validate:"required"`
	Name            string           `json:"name" validate:"required,min=2,max=200"`
	Description     string           `json:"description" validate:"max=2000"`
	Category        string           `json:"category" validate:"required"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	ImageURLs       []string         `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	InStock         bool             `json:"in_stock"`
}

func (req createProductRequest) toInput() products.CreateProductInput {
	return products.CreateProductInput{
		VendorID:        req.VendorID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		ImageURLs:       req.ImageURLs,
		InStock:         req.InStock,
	}
}

// ProductCreate adds a product to a vendor's shelf.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), role, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name            *string              `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category        *string              `json:"category,omitempty"`
	Price           *decimal.Decimal     `json:"price,omitempty"`
	DiscountedPrice *decimal.NullDecimal `json:"discounted_price,omitempty"`
	ImageURLs       *[]string            `json:"image_urls,omitempty"`
	InStock         *bool                `json:"in_stock,omitempty"`
}

func (req updateProductRequest) toInput() products.UpdateProductInput {
	return products.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		ImageURLs:       req.ImageURLs,
		InStock:         req.InStock,
	}
}

// ProductUpdate applies partial edits to a product. A null discounted_price
// clears the discount.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), role, productID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product from the catalog.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), role, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
