package vendors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/geo"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

const (
	// defaultNearbyRadiusKM is used when the caller does not give a radius.
	defaultNearbyRadiusKM = 5.0
	// maxNearbyRadiusKM caps how far a nearby search may reach.
	maxNearbyRadiusKM = 10.0
)

// vendorRepo captures the persistence calls the service depends on.
type vendorRepo interface {
	Create(ctx context.Context, vendor *models.HubVendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.HubVendor, error)
	List(ctx context.Context, filters ListFilters) ([]models.HubVendor, error)
	Update(ctx context.Context, vendor *models.HubVendor) error
}

// ListVendorsInput filters the vendor directory.
type ListVendorsInput struct {
	Category        *string
	IncludeInactive bool
}

// NearbyVendorsInput describes a radius search around a coordinate.
type NearbyVendorsInput struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
	Category *string
}

// CreateVendorInput holds creation-time data for a new vendor.
type CreateVendorInput struct {
	Name           string
	Category       string
	Description    string
	ImageURL       *string
	GalleryURLs    []string
	Phone          *string
	Address        string
	Location       types.Location
	HasOwnDelivery bool
	OpeningHours   *string
}

// UpdateVendorInput carries optional vendor updates. Nil fields are left
// untouched.
type UpdateVendorInput struct {
	Name           *string
	Category       *string
	Description    *string
	ImageURL       *string
	GalleryURLs    []string
	Phone          *string
	Address        *string
	Location       *types.Location
	HasOwnDelivery *bool
	IsActive       *bool
	OpeningHours   *string
}

// Service exposes vendor directory operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	ListVendors(ctx context.Context, input ListVendorsInput) ([]VendorDTO, error)
	NearbyVendors(ctx context.Context, input NearbyVendorsInput) ([]NearbyVendorDTO, error)
	CreateVendor(ctx context.Context, actorRole enums.UserRole, input CreateVendorInput) (*VendorDTO, error)
	UpdateVendor(ctx context.Context, actorRole enums.UserRole, vendorID uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
}

type service struct {
	repo vendorRepo
}

// NewService wires the vendor service with its repository.
func NewService(repo vendorRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository is required")
	}
	return &service{repo: repo}, nil
}

// GetByID returns a single vendor profile.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return FromModel(vendor), nil
}

// ListVendors returns the vendor directory, optionally narrowed by category.
// Inactive vendors are hidden unless the caller asks for them.
func (s *service) ListVendors(ctx context.Context, input ListVendorsInput) ([]VendorDTO, error) {
	vendors, err := s.repo.List(ctx, ListFilters{
		Category:   input.Category,
		OnlyActive: !input.IncludeInactive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	dtos := make([]VendorDTO, 0, len(vendors))
	for i := range vendors {
		dtos = append(dtos, *FromModel(&vendors[i]))
	}
	return dtos, nil
}

// NearbyVendors returns active vendors within the requested radius, closest
// first. Radius defaults to 5km and is capped at 10km.
func (s *service) NearbyVendors(ctx context.Context, input NearbyVendorsInput) ([]NearbyVendorDTO, error) {
	if input.Lat < -90 || input.Lat > 90 || input.Lng < -180 || input.Lng > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}

	radius := input.RadiusKM
	if radius <= 0 {
		radius = defaultNearbyRadiusKM
	}
	if radius > maxNearbyRadiusKM {
		radius = maxNearbyRadiusKM
	}

	vendors, err := s.repo.List(ctx, ListFilters{
		Category:   input.Category,
		OnlyActive: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	results := make([]NearbyVendorDTO, 0, len(vendors))
	for i := range vendors {
		vendor := &vendors[i]
		distance := geo.DistanceKM(input.Lat, input.Lng, vendor.Location.Lat, vendor.Location.Lng)
		if distance > radius {
			continue
		}
		results = append(results, NearbyVendorDTO{
			VendorDTO:  *FromModel(vendor),
			DistanceKM: geo.RoundKM(distance),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKM < results[j].DistanceKM
	})
	return results, nil
}

// CreateVendor registers a new vendor. Admin only.
func (s *service) CreateVendor(ctx context.Context, actorRole enums.UserRole, input CreateVendorInput) (*VendorDTO, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}
	if err := validateCreateVendor(input); err != nil {
		return nil, err
	}

	vendor := &models.HubVendor{
		Name:           strings.TrimSpace(input.Name),
		Category:       strings.TrimSpace(input.Category),
		Description:    input.Description,
		ImageURL:       cloneStringPtr(input.ImageURL),
		GalleryURLs:    pq.StringArray(append([]string(nil), input.GalleryURLs...)),
		Phone:          cloneStringPtr(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		Location:       input.Location,
		HasOwnDelivery: input.HasOwnDelivery,
		IsActive:       true,
		OpeningHours:   cloneStringPtr(input.OpeningHours),
	}

	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return FromModel(vendor), nil
}

// UpdateVendor applies the provided fields to an existing vendor. Admin only.
func (s *service) UpdateVendor(ctx context.Context, actorRole enums.UserRole, vendorID uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}

	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	if err := applyVendorUpdate(vendor, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return FromModel(vendor), nil
}

func applyVendorUpdate(vendor *models.HubVendor, input UpdateVendorInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "vendor category cannot be empty")
		}
		vendor.Category = category
	}
	if input.Description != nil {
		vendor.Description = *input.Description
	}
	if input.ImageURL != nil {
		vendor.ImageURL = cloneStringPtr(input.ImageURL)
	}
	if input.GalleryURLs != nil {
		vendor.GalleryURLs = pq.StringArray(append([]string(nil), input.GalleryURLs...))
	}
	if input.Phone != nil {
		vendor.Phone = cloneStringPtr(input.Phone)
	}
	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "vendor address cannot be empty")
		}
		vendor.Address = address
	}
	if input.Location != nil {
		if err := validateLocation(*input.Location); err != nil {
			return err
		}
		vendor.Location = *input.Location
	}
	if input.HasOwnDelivery != nil {
		vendor.HasOwnDelivery = *input.HasOwnDelivery
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}
	if input.OpeningHours != nil {
		vendor.OpeningHours = cloneStringPtr(input.OpeningHours)
	}
	return nil
}

func validateCreateVendor(input CreateVendorInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor category is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor address is required")
	}
	return validateLocation(input.Location)
}

func validateLocation(loc types.Location) error {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor coordinates")
	}
	return nil
}

func ensureAdmin(role enums.UserRole) error {
	if role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}
