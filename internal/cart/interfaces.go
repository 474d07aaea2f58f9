package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
)

// Repository defines the persistence surface required by the cart service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindByUserAndVendor(ctx context.Context, userID, vendorID uuid.UUID) (*models.Cart, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Cart, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	CountItems(ctx context.Context, cartID uuid.UUID) (int, error)
	Delete(ctx context.Context, cartID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
