package vendors

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
)

// ListFilters narrows the vendor directory query.
type ListFilters struct {
	Category   *string
	OnlyActive bool
}

// Repository handles hub vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new vendor row.
func (r *Repository) Create(ctx context.Context, vendor *models.HubVendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}
	return r.db.WithContext(ctx).Create(vendor).Error
}

// FindByID loads a vendor by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.HubVendor, error) {
	var vendor models.HubVendor
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByName loads a vendor by its exact name. Used by the seeder's
// upsert-by-name pass.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.HubVendor, error) {
	var vendor models.HubVendor
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List returns the vendor directory, best rated first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.HubVendor, error) {
	query := r.db.WithContext(ctx).Model(&models.HubVendor{})

	if filters.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filters.Category != nil && *filters.Category != "" {
		query = query.Where("category = ?", *filters.Category)
	}

	var vendors []models.HubVendor
	if err := query.Order("rating DESC, name ASC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Update saves the provided vendor.
func (r *Repository) Update(ctx context.Context, vendor *models.HubVendor) error {
	if vendor == nil {
		return fmt.Errorf("vendor is required")
	}
	return r.db.WithContext(ctx).Save(vendor).Error
}
