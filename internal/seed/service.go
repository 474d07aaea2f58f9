package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// businessDirectory captures the local hub calls the seeder depends on.
type businessDirectory interface {
	FindByName(ctx context.Context, name string) (*models.LocalBusiness, error)
	Create(ctx context.Context, business *models.LocalBusiness) error
	Update(ctx context.Context, business *models.LocalBusiness) error
}

// postFeed captures the explore feed calls the seeder depends on.
type postFeed interface {
	FindByTitle(ctx context.Context, title string) (*models.ExplorePost, error)
	Create(ctx context.Context, post *models.ExplorePost) error
	Update(ctx context.Context, post *models.ExplorePost) error
}

// vendorDirectory captures the hub vendor calls the seeder depends on.
type vendorDirectory interface {
	FindByName(ctx context.Context, name string) (*models.HubVendor, error)
	Create(ctx context.Context, vendor *models.HubVendor) error
	Update(ctx context.Context, vendor *models.HubVendor) error
}

// productCatalog captures the catalog calls the seeder depends on.
type productCatalog interface {
	FindByVendorAndName(ctx context.Context, vendorID uuid.UUID, name string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
}

// authorLoader resolves the admin whose name is stamped on seeded posts.
type authorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// LocalhubSeedResult reports what the local hub pass created or refreshed.
type LocalhubSeedResult struct {
	BusinessesCreated int `json:"businesses_created"`
	BusinessesUpdated int `json:"businesses_updated"`
	PostsCreated      int `json:"posts_created"`
	PostsUpdated      int `json:"posts_updated"`
}

// HubSeedResult reports what the hub pass created or refreshed.
type HubSeedResult struct {
	VendorsCreated  int `json:"vendors_created"`
	VendorsUpdated  int `json:"vendors_updated"`
	ProductsCreated int `json:"products_created"`
	ProductsUpdated int `json:"products_updated"`
}

// Service loads the demo dataset. Both passes upsert by name, so re-seeding
// refreshes the canonical rows instead of duplicating them.
type Service interface {
	SeedLocalhub(ctx context.Context, actorRole enums.UserRole, actorID uuid.UUID) (*LocalhubSeedResult, error)
	SeedHub(ctx context.Context, actorRole enums.UserRole) (*HubSeedResult, error)
}

type service struct {
	businesses businessDirectory
	posts      postFeed
	vendors    vendorDirectory
	products   productCatalog
	users      authorLoader
}

// NewService wires the seeder with the repositories it loads data through.
func NewService(
	businesses businessDirectory,
	posts postFeed,
	vendors vendorDirectory,
	products productCatalog,
	users authorLoader,
) (Service, error) {
	if businesses == nil {
		return nil, fmt.Errorf("business repository required")
	}
	if posts == nil {
		return nil, fmt.Errorf("post repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{
		businesses: businesses,
		posts:      posts,
		vendors:    vendors,
		products:   products,
		users:      users,
	}, nil
}

// SeedLocalhub loads the demo businesses and explore posts. The acting admin
// becomes the author of any post created by this pass. Admin only.
func (s *service) SeedLocalhub(ctx context.Context, actorRole enums.UserRole, actorID uuid.UUID) (*LocalhubSeedResult, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "author not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}

	result := &LocalhubSeedResult{}
	for _, def := range demoBusinesses() {
		created, err := s.upsertBusiness(ctx, def)
		if err != nil {
			return nil, err
		}
		if created {
			result.BusinessesCreated++
		} else {
			result.BusinessesUpdated++
		}
	}
	for _, def := range demoPosts() {
		created, err := s.upsertPost(ctx, author, def)
		if err != nil {
			return nil, err
		}
		if created {
			result.PostsCreated++
		} else {
			result.PostsUpdated++
		}
	}
	return result, nil
}

// SeedHub loads the demo vendors with their catalogs. Admin only.
func (s *service) SeedHub(ctx context.Context, actorRole enums.UserRole) (*HubSeedResult, error) {
	if err := ensureAdmin(actorRole); err != nil {
		return nil, err
	}

	result := &HubSeedResult{}
	for _, def := range demoVendors() {
		vendor, created, err := s.upsertVendor(ctx, def)
		if err != nil {
			return nil, err
		}
		if created {
			result.VendorsCreated++
		} else {
			result.VendorsUpdated++
		}

		for _, productDef := range def.Products {
			productCreated, err := s.upsertProduct(ctx, vendor.ID, productDef)
			if err != nil {
				return nil, err
			}
			if productCreated {
				result.ProductsCreated++
			} else {
				result.ProductsUpdated++
			}
		}
	}
	return result, nil
}

func (s *service) upsertBusiness(ctx context.Context, def businessSeed) (bool, error) {
	existing, err := s.businesses.FindByName(ctx, def.Name)
	switch {
	case err == nil:
		applyBusinessSeed(existing, def)
		if err := s.businesses.Update(ctx, existing); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update business")
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		business := &models.LocalBusiness{}
		applyBusinessSeed(business, def)
		if err := s.businesses.Create(ctx, business); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create business")
		}
		return true, nil
	default:
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find business")
	}
}

func (s *service) upsertPost(ctx context.Context, author *models.User, def postSeed) (bool, error) {
	existing, err := s.posts.FindByTitle(ctx, def.Title)
	switch {
	case err == nil:
		// Refresh the content but keep the original author and like count.
		existing.Body = def.Body
		existing.Category = def.Category
		if err := s.posts.Update(ctx, existing); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		post := &models.ExplorePost{
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Title:      def.Title,
			Body:       def.Body,
			Category:   def.Category,
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
		}
		return true, nil
	default:
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find post")
	}
}

func (s *service) upsertVendor(ctx context.Context, def vendorSeed) (*models.HubVendor, bool, error) {
	existing, err := s.vendors.FindByName(ctx, def.Name)
	switch {
	case err == nil:
		applyVendorSeed(existing, def)
		if err := s.vendors.Update(ctx, existing); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
		}
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		vendor := &models.HubVendor{IsActive: true}
		applyVendorSeed(vendor, def)
		if err := s.vendors.Create(ctx, vendor); err != nil {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
		}
		return vendor, true, nil
	default:
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find vendor")
	}
}

func (s *service) upsertProduct(ctx context.Context, vendorID uuid.UUID, def productSeed) (bool, error) {
	existing, err := s.products.FindByVendorAndName(ctx, vendorID, def.Name)
	switch {
	case err == nil:
		// Refresh catalog data but keep the organic like count.
		applyProductSeed(existing, def)
		if _, err := s.products.UpdateProduct(ctx, existing); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		product := &models.Product{
			VendorID:  vendorID,
			InStock:   true,
			LikeCount: def.LikeCount,
		}
		applyProductSeed(product, def)
		if _, err := s.products.CreateProduct(ctx, product); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}
		return true, nil
	default:
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
}

func applyBusinessSeed(business *models.LocalBusiness, def businessSeed) {
	business.Name = def.Name
	business.Category = def.Category
	business.Description = def.Description
	business.Address = def.Address
	business.Location = types.Location{Lat: def.Lat, Lng: def.Lng, Address: def.Address}
	business.Rating = def.Rating
}

func applyVendorSeed(vendor *models.HubVendor, def vendorSeed) {
	vendor.Name = def.Name
	vendor.Category = def.Category
	vendor.Description = def.Description
	vendor.ImageURL = optionalString(def.ImageURL)
	vendor.Phone = optionalString(def.Phone)
	vendor.Address = def.Address
	vendor.Location = types.Location{Lat: def.Lat, Lng: def.Lng, Address: def.Address}
	vendor.Rating = def.Rating
	vendor.RatingCount = def.RatingCount
	vendor.HasOwnDelivery = def.HasOwnDelivery
	vendor.OpeningHours = optionalString(def.OpeningHours)
}

func applyProductSeed(product *models.Product, def productSeed) {
	product.Name = def.Name
	product.Description = def.Description
	product.Category = def.Category
	product.Price = decimal.NewFromInt(def.Price)
	product.DiscountedPrice = nil
	if def.DiscountedPrice > 0 {
		discounted := decimal.NewFromInt(def.DiscountedPrice)
		product.DiscountedPrice = &discounted
	}
	product.ImageURLs = pq.StringArray(append([]string(nil), def.ImageURLs...))
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func ensureAdmin(role enums.UserRole) error {
	if role != enums.UserRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}
