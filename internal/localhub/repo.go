package localhub

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// ListFilters narrows the directory query.
type ListFilters struct {
	Category *string
	Query    string
}

// Repository handles local business persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to directory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new listing.
func (r *Repository) Create(ctx context.Context, business *models.LocalBusiness) error {
	if business == nil {
		return fmt.Errorf("business is required")
	}
	return r.db.WithContext(ctx).Create(business).Error
}

// FindByID loads a listing by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LocalBusiness, error) {
	var business models.LocalBusiness
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// FindByName loads a listing by its exact name. Used by the seeder's
// upsert-by-name pass.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.LocalBusiness, error) {
	var business models.LocalBusiness
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// Update saves the provided listing.
func (r *Repository) Update(ctx context.Context, business *models.LocalBusiness) error {
	if business == nil {
		return fmt.Errorf("business is required")
	}
	return r.db.WithContext(ctx).Save(business).Error
}

// List pages through the directory newest first with keyset pagination. One
// extra row beyond the page size signals that another page exists; the
// service trims it off.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.LocalBusiness, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.LocalBusiness{})
	if filters.Category != nil && *filters.Category != "" {
		query = query.Where("category = ?", *filters.Category)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var businesses []models.LocalBusiness
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&businesses).
		Error
	return businesses, err
}

// CategoryCounts returns every directory category with its listing count,
// busiest category first.
func (r *Repository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.LocalBusiness{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Order("category ASC").
		Scan(&counts).
		Error
	return counts, err
}
