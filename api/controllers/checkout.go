package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/api/validators"
	"github.com/quickwishapp/quickwish-backend/internal/checkout"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

type checkoutRequest struct {
	VendorID        uuid.UUID      `json:"vendor_id" validate:"required"`
	DeliveryType    string         `json:"delivery_type" validate:"required"`
	DeliveryAddress types.Location `json:"delivery_address" validate:"required"`
}

func (req checkoutRequest) toInput() (checkout.CheckoutInput, error) {
	deliveryType, err := enums.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		return checkout.CheckoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type")
	}
	return checkout.CheckoutInput{
		VendorID:        req.VendorID,
		DeliveryType:    deliveryType,
		DeliveryAddress: req.DeliveryAddress,
	}, nil
}

// CheckoutCreate turns the caller's cart for one vendor into an order.
func CheckoutCreate(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
