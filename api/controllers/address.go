package controllers

import (
	"net/http"
	"strings"

	"github.com/quickwishapp/quickwish-backend/api/responses"
	"github.com/quickwishapp/quickwish-backend/internal/address"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
)

// AddressSuggest proxies place autocomplete for address entry.
func AddressSuggest(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "q query parameter required"))
			return
		}

		suggestions, err := svc.Suggest(r.Context(), address.SuggestRequest{
			Query:    query,
			Country:  strings.TrimSpace(r.URL.Query().Get("country")),
			Language: strings.TrimSpace(r.URL.Query().Get("language")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestions)
	}
}

// AddressResolve turns a place id from autocomplete into coordinates and a
// formatted address.
func AddressResolve(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		placeID := strings.TrimSpace(r.URL.Query().Get("place_id"))
		if placeID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "place_id query parameter required"))
			return
		}

		location, err := svc.Resolve(r.Context(), address.ResolveRequest{PlaceID: placeID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, location)
	}
}
