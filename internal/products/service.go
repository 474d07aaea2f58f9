package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db"
	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
)

// Service exposes catalog management, browse, and like operations.
type Service interface {
	CreateProduct(ctx context.Context, actorRole enums.UserRole, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	LikeProduct(ctx context.Context, userID, productID uuid.UUID) (*LikeResult, error)
	UnlikeProduct(ctx context.Context, userID, productID uuid.UUID) (*LikeResult, error)
	ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]ProductSummary, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	VendorID        uuid.UUID
	Name            string
	Description     string
	Category        string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	ImageURLs       []string
	InStock         bool
}

// UpdateProductInput holds optional mutation values for a product. A nil
// field leaves the current value untouched; DiscountedPrice with Valid set
// to false clears the discount.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Category        *string
	Price           *decimal.Decimal
	DiscountedPrice *decimal.NullDecimal
	ImageURLs       *[]string
	InStock         *bool
}

// LikeResult reports the like state after a like or unlike call.
type LikeResult struct {
	ProductID uuid.UUID `json:"product_id"`
	LikeCount int       `json:"like_count"`
	Liked     bool      `json:"liked"`
}

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.HubVendor, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	vendors  vendorLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, vendors vendorLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor loader required")
	}
	return &service{repo: repo, dbClient: dbClient, vendors: vendors}, nil
}

func (s *service) CreateProduct(ctx context.Context, actorRole enums.UserRole, input CreateProductInput) (*ProductDTO, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if err := validatePrices(input.Price, input.DiscountedPrice); err != nil {
		return nil, err
	}

	if _, err := s.vendors.FindByID(ctx, input.VendorID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	created, err := s.repo.CreateProduct(ctx, &models.Product{
		VendorID:        input.VendorID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		DiscountedPrice: input.DiscountedPrice,
		ImageURLs:       input.ImageURLs,
		InStock:         input.InStock,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	return s.loadDetail(ctx, created.ID, nil)
}

func (s *service) UpdateProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.DiscountedPrice != nil {
		if input.DiscountedPrice.Valid {
			value := input.DiscountedPrice.Decimal
			product.DiscountedPrice = &value
		} else {
			product.DiscountedPrice = nil
		}
	}
	if err := validatePrices(product.Price, product.DiscountedPrice); err != nil {
		return nil, err
	}
	if input.ImageURLs != nil {
		product.ImageURLs = *input.ImageURLs
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	return s.loadDetail(ctx, product.ID, nil)
}

func (s *service) DeleteProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID) error {
	if err := ensureAdmin(actorRole); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.loadDetail(ctx, productID, userID)
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
		VendorID:   input.VendorID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) LikeProduct(ctx context.Context, userID, productID uuid.UUID) (*LikeResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	var result LikeResult
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		_, err = txRepo.FindLike(ctx, productID, userID)
		switch {
		case err == nil:
			result = LikeResult{ProductID: productID, LikeCount: product.LikeCount, Liked: true}
			return nil
		case err == gorm.ErrRecordNotFound:
			// fallthrough to insert
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load like")
		}

		if err := txRepo.CreateLike(ctx, &models.ProductLike{ProductID: productID, UserID: userID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert like")
		}
		if err := txRepo.AdjustLikeCount(ctx, productID, 1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment like count")
		}
		result = LikeResult{ProductID: productID, LikeCount: product.LikeCount + 1, Liked: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) UnlikeProduct(ctx context.Context, userID, productID uuid.UUID) (*LikeResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	var result LikeResult
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		deleted, err := txRepo.DeleteLike(ctx, productID, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete like")
		}
		if deleted == 0 {
			result = LikeResult{ProductID: productID, LikeCount: product.LikeCount, Liked: false}
			return nil
		}
		if err := txRepo.AdjustLikeCount(ctx, productID, -1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement like count")
		}
		result = LikeResult{ProductID: productID, LikeCount: product.LikeCount - 1, Liked: false}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]ProductSummary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	rows, err := s.repo.ListLikedProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list liked products")
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summaryFromModel(row))
	}
	return summaries, nil
}

func (s *service) loadDetail(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindDetail(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}

	liked := false
	if userID != nil && *userID != uuid.Nil {
		if _, err := s.repo.FindLike(ctx, productID, *userID); err == nil {
			liked = true
		} else if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load like")
		}
	}
	return NewProductDTO(product, liked), nil
}

func summaryFromModel(product models.Product) ProductSummary {
	summary := ProductSummary{
		ID:              product.ID,
		VendorID:        product.VendorID,
		Name:            product.Name,
		Category:        product.Category,
		Price:           product.Price,
		DiscountedPrice: product.DiscountedPrice,
		InStock:         product.InStock,
		LikeCount:       product.LikeCount,
		CreatedAt:       product.CreatedAt,
	}
	if product.Vendor != nil {
		summary.VendorName = product.Vendor.Name
	}
	if len(product.ImageURLs) > 0 {
		url := product.ImageURLs[0]
		summary.ImageURL = &url
	}
	return summary
}

func ensureAdmin(role enums.UserRole) error {
	if role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

func validatePrices(price decimal.Decimal, discounted *decimal.Decimal) error {
	if !price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if discounted != nil {
		if discounted.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted price cannot be negative")
		}
		if discounted.GreaterThanOrEqual(price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted price must undercut the list price")
		}
	}
	return nil
}
