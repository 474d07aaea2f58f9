package wishes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// ListWishesInput narrows a wish listing. Nil filters are ignored.
type ListWishesInput struct {
	UserID     *uuid.UUID
	Status     *enums.WishStatus
	Type       *enums.WishType
	Pagination pagination.Params
}

// Repository defines persistence operations for wishes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, wish *models.Wish) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Wish, error)
	List(ctx context.Context, input ListWishesInput) ([]models.Wish, error)
	ListPending(ctx context.Context, wishType *enums.WishType) ([]models.Wish, error)
	Update(ctx context.Context, wish *models.Wish) error
	UpdateStatus(ctx context.Context, wishID uuid.UUID, status enums.WishStatus) error
	MarkAccepted(ctx context.Context, wishID, agentID uuid.UUID, status enums.WishStatus) error
	Delete(ctx context.Context, wishID uuid.UUID) error
	ExpirePending(ctx context.Context, cutoff time.Time) (int64, error)
	ExpireStale(ctx context.Context, olderThan time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to wish operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository scoped to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create persists a new wish.
func (r *repository) Create(ctx context.Context, wish *models.Wish) error {
	return r.db.WithContext(ctx).Create(wish).Error
}

// FindByID loads a wish by its UUID.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wish).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// List pages wishes newest first using keyset pagination.
func (r *repository) List(ctx context.Context, input ListWishesInput) ([]models.Wish, error) {
	query := r.db.WithContext(ctx).Model(&models.Wish{})

	if input.UserID != nil {
		query = query.Where("user_id = ?", *input.UserID)
	}
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	if input.Type != nil {
		query = query.Where("type = ?", *input.Type)
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var wishes []models.Wish
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&wishes).Error
	if err != nil {
		return nil, err
	}
	return wishes, nil
}

// ListPending returns every open wish, newest first. The nearby search
// filters by distance in the service layer.
func (r *repository) ListPending(ctx context.Context, wishType *enums.WishType) ([]models.Wish, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("status = ?", enums.WishStatusPending)

	if wishType != nil {
		query = query.Where("type = ?", *wishType)
	}

	var wishes []models.Wish
	if err := query.Order("created_at DESC").Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// Update saves the provided wish.
func (r *repository) Update(ctx context.Context, wish *models.Wish) error {
	return r.db.WithContext(ctx).Save(wish).Error
}

// UpdateStatus sets the wish's current status.
func (r *repository) UpdateStatus(ctx context.Context, wishID uuid.UUID, status enums.WishStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", wishID).
		Update("status", status).Error
}

// MarkAccepted records the agent taking the wish and moves its status in one
// update.
func (r *repository) MarkAccepted(ctx context.Context, wishID, agentID uuid.UUID, status enums.WishStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("id = ?", wishID).
		Updates(map[string]interface{}{
			"accepted_by": agentID,
			"status":      status,
		}).Error
}

// Delete removes the wish row outright.
func (r *repository) Delete(ctx context.Context, wishID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", wishID).
		Delete(&models.Wish{}).Error
}

// ExpirePending cancels pending wishes whose deadline passed before the
// cutoff. Returns how many rows were touched.
func (r *repository) ExpirePending(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", enums.WishStatusPending, cutoff).
		Update("status", enums.WishStatusCancelled)
	return result.RowsAffected, result.Error
}

// ExpireStale cancels pending wishes created before the cutoff that no
// agent ever accepted. Covers wishes posted without a deadline.
func (r *repository) ExpireStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("status = ? AND created_at < ?", enums.WishStatusPending, olderThan).
		Update("status", enums.WishStatusCancelled)
	return result.RowsAffected, result.Error
}
