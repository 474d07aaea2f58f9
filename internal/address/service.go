package address

import (
	"context"
	"strings"

	"github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/maps"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// Service turns Places lookups into delivery locations.
type Service interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
	Resolve(ctx context.Context, req ResolveRequest) (types.Location, error)
}

type service struct {
	maps *maps.Client
}

// NewService wraps the Places client. A nil client is allowed so deployments
// without an API key keep booting; calls then fail with a dependency error.
func NewService(client *maps.Client) Service {
	return &service{maps: client}
}

func (s *service) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New(errors.CodeValidation, "query is required")
	}

	payload := maps.AutocompleteRequest{
		Input: req.Query,
	}
	if country := strings.TrimSpace(req.Country); country != "" {
		payload.IncludedRegionCodes = []string{strings.ToUpper(country)}
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		payload.LanguageCode = lang
	}

	resp, err := s.maps.Autocomplete(ctx, payload)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp))
	for _, item := range resp {
		suggestions = append(suggestions, Suggestion{
			PlaceID:     item.PlaceID,
			Description: item.Description,
		})
	}
	return suggestions, nil
}

func (s *service) Resolve(ctx context.Context, req ResolveRequest) (types.Location, error) {
	if s == nil || s.maps == nil {
		return types.Location{}, errors.New(errors.CodeDependency, "maps client unavailable")
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		return types.Location{}, errors.New(errors.CodeValidation, "place_id is required")
	}

	details, err := s.maps.ResolvePlace(ctx, req.PlaceID)
	if err != nil {
		return types.Location{}, err
	}

	return mapPlaceDetails(details)
}

// mapPlaceDetails flattens a resolved place into the location shape stored on
// carts, orders, and wishes.
func mapPlaceDetails(details *maps.PlaceDetails) (types.Location, error) {
	if details == nil {
		return types.Location{}, errors.New(errors.CodeDependency, "place details missing")
	}
	if details.Location.Latitude == 0 && details.Location.Longitude == 0 {
		return types.Location{}, errors.New(errors.CodeDependency, "place location missing")
	}

	address := strings.TrimSpace(details.FormattedAddress)
	if address == "" {
		parts := make([]string, 0, len(details.AddressComponents))
		for _, comp := range details.AddressComponents {
			if comp.LongName != "" {
				parts = append(parts, comp.LongName)
			}
		}
		address = strings.Join(parts, ", ")
	}
	if address == "" {
		return types.Location{}, errors.New(errors.CodeDependency, "place address missing")
	}

	return types.Location{
		Lat:     details.Location.Latitude,
		Lng:     details.Location.Longitude,
		Address: address,
	}, nil
}

type SuggestRequest struct {
	Query    string
	Country  string
	Language string
}

type ResolveRequest struct {
	PlaceID string
}

type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}
