package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/api/validators"
	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

func wishActor(r *http.Request) (wishes.Actor, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return wishes.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return wishes.Actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return wishes.Actor{
		UserID: uid,
		Role:   enums.UserRole(middleware.RoleFromContext(r.Context())),
	}, nil
}

func wishIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "wishId")))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish id")
	}
	return id, nil
}

type createWishRequest struct {
	Title        string          `json:"title" validate:"required,min=3,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	Type         string          `json:"type" validate:"required"`
	Remuneration decimal.Decimal `json:"remuneration" validate:"required"`
	Location     types.Location  `json:"location" validate:"required"`
	Destination  *types.Location `json:"destination,omitempty"`
	RadiusKM     float64         `json:"radius_km" validate:"omitempty,min=0"`
	ImageURLs    []string        `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
}

func (req createWishRequest) toInput() (wishes.CreateWishInput, error) {
	wishType, err := enums.ParseWishType(req.Type)
	if err != nil {
		return wishes.CreateWishInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish type")
	}
	return wishes.CreateWishInput{
		Title:        req.Title,
		Description:  req.Description,
		Type:         wishType,
		Remuneration: req.Remuneration,
		Location:     req.Location,
		Destination:  req.Destination,
		RadiusKM:     req.RadiusKM,
		ImageURLs:    req.ImageURLs,
		Deadline:     req.Deadline,
	}, nil
}

// WishCreate posts a new wish for nearby agents to pick up.
func WishCreate(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.CreateWish(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, wish)
	}
}

// WishGet returns a single wish.
func WishGet(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.GetWish(r.Context(), wishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wish)
	}
}

// WishesList returns the caller's wishes, optionally narrowed to one status.
func WishesList(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.WishStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseWishStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish status"))
				return
			}
			status = &parsed
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListUserWishes(r.Context(), actor.UserID, status, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// WishesNearby lists open wishes around the agent's position, closest first.
func WishesNearby(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		if strings.TrimSpace(query.Get("lat")) == "" || strings.TrimSpace(query.Get("lng")) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng query parameters required"))
			return
		}

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

		input := wishes.NearbyWishesInput{Lat: lat, Lng: lng}

		if raw := strings.TrimSpace(query.Get("radius_km")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "radius_km must be a positive number"))
				return
			}
			input.RadiusKM = value
		}
		if raw := strings.TrimSpace(query.Get("type")); raw != "" {
			parsed, err := enums.ParseWishType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish type"))
				return
			}
			input.Type = &parsed
		}

		results, err := svc.NearbyWishes(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

type updateWishRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Remuneration *decimal.Decimal `json:"remuneration,omitempty"`
	Location     *types.Location  `json:"location,omitempty"`
	Destination  *types.Location  `json:"destination,omitempty"`
	RadiusKM     *float64         `json:"radius_km,omitempty" validate:"omitempty,min=0"`
	ImageURLs    []string         `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Deadline     *time.Time       `json:"deadline,omitempty"`
}

func (req updateWishRequest) toInput() wishes.UpdateWishInput {
	return wishes.UpdateWishInput{
		Title:        req.Title,
		Description:  req.Description,
		Remuneration: req.Remuneration,
		Location:     req.Location,
		Destination:  req.Destination,
		RadiusKM:     req.RadiusKM,
		ImageURLs:    req.ImageURLs,
		Deadline:     req.Deadline,
	}
}

// WishUpdate edits a wish that is still pending.
func WishUpdate(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.UpdateWish(r.Context(), actor, wishID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wish)
	}
}

// WishDelete removes a wish no agent is working on.
func WishDelete(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteWish(r.Context(), actor, wishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// WishCancel closes a pending wish without deleting it.
func WishCancel(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.CancelWish(r.Context(), actor, wishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wish)
	}
}

// WishComplete marks a wish fulfilled.
func WishComplete(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		actor, err := wishActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wish, err := svc.CompleteWish(r.Context(), actor, wishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wish)
	}
}
