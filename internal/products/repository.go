package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// Repository wires together catalog and like persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the products that still exist; missing IDs are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByVendorAndName loads the vendor's product with the exact name. Used
// by the seeder's upsert-by-name pass.
func (r *Repository) FindByVendorAndName(ctx context.Context, vendorID uuid.UUID, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND name = ?", vendorID, name).
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail fetches a product with its vendor preloaded.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListByVendor lists one vendor's shelf ordered newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

type productListQuery struct {
	Pagination pagination.Params
	Filters    ProductListFilters
	VendorID   *uuid.UUID
}

// ListProductSummaries pages through the catalog with keyset pagination.
// Without a vendor scope only products of active vendors are returned.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.vendor_id",
			"v.name AS vendor_name",
			"p.name",
			"p.category",
			"p.price",
			"p.discounted_price",
			"p.image_urls",
			"p.in_stock",
			"p.like_count",
			"p.created_at",
		}, ", ")).
		Joins("JOIN hub_vendors v ON v.id = p.vendor_id")

	filter := query.Filters
	if filter.Category != nil {
		qb = qb.Where("p.category = ?", *filter.Category)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("p.price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("p.price <= ?", *filter.PriceMax)
	}
	if filter.InStockOnly {
		qb = qb.Where("p.in_stock = ?", true)
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	if query.VendorID != nil {
		qb = qb.Where("p.vendor_id = ?", *query.VendorID)
	} else {
		qb = qb.Where("v.is_active = ?", true)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID              uuid.UUID
	VendorID        uuid.UUID
	VendorName      string
	Name            string
	Category        string
	Price           decimal.Decimal
	DiscountedPrice decimal.NullDecimal
	ImageURLs       pq.StringArray `gorm:"column:image_urls;type:text[]"`
	InStock         bool
	LikeCount       int
	CreatedAt       time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	summary := ProductSummary{
		ID:         r.ID,
		VendorID:   r.VendorID,
		VendorName: r.VendorName,
		Name:       r.Name,
		Category:   r.Category,
		Price:      r.Price,
		InStock:    r.InStock,
		LikeCount:  r.LikeCount,
		CreatedAt:  r.CreatedAt,
	}
	if r.DiscountedPrice.Valid {
		value := r.DiscountedPrice.Decimal
		summary.DiscountedPrice = &value
	}
	if len(r.ImageURLs) > 0 {
		url := r.ImageURLs[0]
		summary.ImageURL = &url
	}
	return summary
}

// FindLike returns the like row for the (product, user) pair.
func (r *Repository) FindLike(ctx context.Context, productID, userID uuid.UUID) (*models.ProductLike, error) {
	var like models.ProductLike
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateLike inserts a like row.
func (r *Repository) CreateLike(ctx context.Context, like *models.ProductLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes the like row and reports how many rows were deleted.
func (r *Repository) DeleteLike(ctx context.Context, productID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Delete(&models.ProductLike{})
	return res.RowsAffected, res.Error
}

// AdjustLikeCount shifts the denormalized like counter by delta.
func (r *Repository) AdjustLikeCount(ctx context.Context, productID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).
		Error
}

// ListLikedProducts returns the products a user has liked with their vendor
// preloaded, newest product first.
func (r *Repository) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("id IN (SELECT product_id FROM product_likes WHERE user_id = ?)", userID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
