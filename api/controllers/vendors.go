package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/api/validators"
	"github.com/quickwishapp/quickwish-backend/internal/vendors"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

func vendorIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "vendorId")))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor id")
	}
	return id, nil
}

// HubVendors lists active vendors. With lat and lng it becomes a radius
// search returning distances, closest first; without them it is a plain
// listing filtered by category.
func HubVendors(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		query := r.URL.Query()

		var category *string
		if raw := strings.TrimSpace(query.Get("category")); raw != "" {
			category = &raw
		}

		hasLat := strings.TrimSpace(query.Get("lat")) != ""
		hasLng := strings.TrimSpace(query.Get("lng")) != ""
		if hasLat != hasLng {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng must be provided together"))
			return
		}

		if hasLat {
			lat, err := validators.ParseQueryFloat(r, "lat", 0, -90, 90)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			lng, err := validators.ParseQueryFloat(r, "lng", 0, -180, 180)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			input := vendors.NearbyVendorsInput{Lat: lat, Lng: lng, Category: category}
			if raw := strings.TrimSpace(query.Get("radius_km")); raw != "" {
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil || value <= 0 {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "radius_km must be a positive number"))
					return
				}
				input.RadiusKM = value
			}

			results, err := svc.NearbyVendors(r.Context(), input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, results)
			return
		}

		results, err := svc.ListVendors(r.Context(), vendors.ListVendorsInput{Category: category})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// HubVendorGet returns one vendor's public profile.
func HubVendorGet(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := vendorIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.GetByID(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

type createVendorRequest struct {
	Name           string         `json:"name" validate:"required,min=2,max=200"`
	Category       string         `json:"category" validate:"required"`
	Description    string         `json:"description" validate:"max=2000"`
	ImageURL       *string        `json:"image_url,omitempty" validate:"omitempty,url"`
	GalleryURLs    []string       `json:"gallery_urls,omitempty" validate:"omitempty,dive,url"`
	Phone          *string        `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address        string         `json:"address" validate:"required"`
	Location       types.Location `json:"location" validate:"required"`
	HasOwnDelivery bool           `json:"has_own_delivery"`
	OpeningHours   *string        `json:"opening_hours,omitempty"`
}

func (req createVendorRequest) toInput() vendors.CreateVendorInput {
	return vendors.CreateVendorInput{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		GalleryURLs:    req.GalleryURLs,
		Phone:          req.Phone,
		Address:        req.Address,
		Location:       req.Location,
		HasOwnDelivery: req.HasOwnDelivery,
		OpeningHours:   req.OpeningHours,
	}
}

// VendorCreate registers a vendor in the hub catalog.
func VendorCreate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		var body createVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.CreateVendor(r.Context(), role, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

type updateVendorRequest struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Category       *string         `json:"category,omitempty"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL       *string         `json:"image_url,omitempty" validate:"omitempty,url"`
	GalleryURLs    []string        `json:"gallery_urls,omitempty" validate:"omitempty,dive,url"`
	Phone          *string         `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address        *string         `json:"address,omitempty"`
	Location       *types.Location `json:"location,omitempty"`
	HasOwnDelivery *bool           `json:"has_own_delivery,omitempty"`
	IsActive       *bool           `json:"is_active,omitempty"`
	OpeningHours   *string         `json:"opening_hours,omitempty"`
}

func (req updateVendorRequest) toInput() vendors.UpdateVendorInput {
	return vendors.UpdateVendorInput{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		GalleryURLs:    req.GalleryURLs,
		Phone:          req.Phone,
		Address:        req.Address,
		Location:       req.Location,
		HasOwnDelivery: req.HasOwnDelivery,
		IsActive:       req.IsActive,
		OpeningHours:   req.OpeningHours,
	}
}

// VendorUpdate applies partial edits to a vendor, including activation.
func VendorUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))

		vendorID, err := vendorIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.UpdateVendor(r.Context(), role, vendorID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}
