package explore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// ListFilters narrows the feed query.
type ListFilters struct {
	Category *string
}

// Repository handles explore post persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to explore post operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new post row.
func (r *Repository) Create(ctx context.Context, post *models.ExplorePost) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID loads a post by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ExplorePost, error) {
	var post models.ExplorePost
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByTitle loads a post by its exact title. Used by the seeder's
// upsert-by-title pass.
func (r *Repository) FindByTitle(ctx context.Context, title string) (*models.ExplorePost, error) {
	var post models.ExplorePost
	if err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update saves the provided post.
func (r *Repository) Update(ctx context.Context, post *models.ExplorePost) error {
	if post == nil {
		return fmt.Errorf("post is required")
	}
	return r.db.WithContext(ctx).Save(post).Error
}

// List pages through the feed newest first with keyset pagination. One extra
// row beyond the page size signals that another page exists; the service
// trims it off.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.ExplorePost, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.ExplorePost{})
	if filters.Category != nil && *filters.Category != "" {
		query = query.Where("category = ?", *filters.Category)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var posts []models.ExplorePost
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&posts).
		Error
	return posts, err
}

// IncrementLikeCount bumps the post's counter and reports whether the post
// exists.
func (r *Repository) IncrementLikeCount(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ExplorePost{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	return res.RowsAffected, res.Error
}
