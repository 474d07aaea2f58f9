package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service exposes the per-vendor cart ledger. Every user holds at most one
// cart per vendor; adding a product routes it to that vendor's cart.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) error
	GetCart(ctx context.Context, userID, vendorID uuid.UUID) (*View, error)
	GetCarts(ctx context.Context, userID uuid.UUID) ([]View, error)
	Summary(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int, error)
	Clear(ctx context.Context, userID uuid.UUID, vendorID *uuid.UUID) error
}

type service struct {
	repo     Repository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service with the required dependencies.
func NewService(repo Repository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var result AddItemResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		target, err := txRepo.FindByUserAndVendor(ctx, input.UserID, product.VendorID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
			}
			target, err = txRepo.Create(ctx, &models.Cart{
				UserID:   input.UserID,
				VendorID: product.VendorID,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		}

		line, err := txRepo.FindItem(ctx, target.ID, product.ID)
		switch {
		case err == nil:
			if err := txRepo.UpdateItemQuantity(ctx, line.ID, line.Quantity+input.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart line")
			}
		case err == gorm.ErrRecordNotFound:
			if err := txRepo.CreateItem(ctx, &models.CartItem{
				CartID:    target.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		count, err := txRepo.CountItems(ctx, target.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
		}
		result = AddItemResult{CartID: target.ID, VendorID: target.VendorID, ItemCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	vendorID, err := s.resolveVendor(ctx, input)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		target, err := txRepo.FindByUserAndVendor(ctx, input.UserID, vendorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		line, err := txRepo.FindItem(ctx, target.ID, input.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		if input.Quantity > 0 {
			if err := txRepo.UpdateItemQuantity(ctx, line.ID, input.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set cart line quantity")
			}
			return nil
		}

		if err := txRepo.DeleteItem(ctx, line.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
		}
		remaining, err := txRepo.CountItems(ctx, target.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart items")
		}
		if remaining == 0 {
			if err := txRepo.Delete(ctx, target.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete empty cart")
			}
		}
		return nil
	})
}

// resolveVendor picks the cart's vendor for an update: the explicit vendor if
// supplied, otherwise the owning vendor of the product being updated. An
// explicit vendor that disagrees with the product is rejected.
func (s *service) resolveVendor(ctx context.Context, input UpdateItemInput) (uuid.UUID, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if input.VendorID == nil {
		return product.VendorID, nil
	}
	if *input.VendorID != product.VendorID {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeVendorConflict, "product belongs to a different vendor")
	}
	return *input.VendorID, nil
}

func (s *service) GetCart(ctx context.Context, userID, vendorID uuid.UUID) (*View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	target, err := s.repo.FindByUserAndVendor(ctx, userID, vendorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	views, err := s.buildViews(ctx, []models.Cart{*target})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) GetCarts(ctx context.Context, userID uuid.UUID) ([]View, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	carts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}
	return s.buildViews(ctx, carts)
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	carts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}

	summary := make(map[uuid.UUID]int, len(carts))
	for _, c := range carts {
		total := 0
		for _, line := range c.Items {
			total += line.Quantity
		}
		summary[c.VendorID] = total
	}
	return summary, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID, vendorID *uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	if vendorID == nil {
		if err := s.repo.DeleteByUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear carts")
		}
		return nil
	}

	target, err := s.repo.FindByUserAndVendor(ctx, userID, *vendorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// buildViews joins cart lines against the live catalog. Lines whose product
// has since been deleted are dropped from the view, not errored.
func (s *service) buildViews(ctx context.Context, carts []models.Cart) ([]View, error) {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, c := range carts {
		for _, line := range c.Items {
			if _, ok := seen[line.ProductID]; ok {
				continue
			}
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}

	byID := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) > 0 {
		live, err := s.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
		}
		for _, p := range live {
			byID[p.ID] = p
		}
	}

	views := make([]View, 0, len(carts))
	for _, c := range carts {
		view := View{
			CartID:   c.ID,
			VendorID: c.VendorID,
			Items:    make([]ItemView, 0, len(c.Items)),
			Subtotal: decimal.Zero,
		}
		if c.Vendor != nil {
			view.VendorName = c.Vendor.Name
		}
		for _, line := range c.Items {
			product, ok := byID[line.ProductID]
			if !ok {
				continue
			}
			lineTotal := product.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity)))
			view.Items = append(view.Items, ItemView{
				ProductID:       product.ID,
				Name:            product.Name,
				ImageURL:        firstImageURL(product.ImageURLs),
				Price:           product.Price,
				DiscountedPrice: copyDecimalPtr(product.DiscountedPrice),
				Quantity:        line.Quantity,
				LineTotal:       lineTotal,
				InStock:         product.InStock,
			})
			view.ItemCount += line.Quantity
			view.Subtotal = view.Subtotal.Add(lineTotal)
		}
		views = append(views, view)
	}
	return views, nil
}

func firstImageURL(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	url := urls[0]
	return &url
}

func copyDecimalPtr(value *decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
