package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// ListOrdersInput narrows an order listing. Nil filters are ignored.
type ListOrdersInput struct {
	UserID     *uuid.UUID
	VendorID   *uuid.UUID
	Status     *enums.OrderStatus
	Pagination pagination.Params
}

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	CreateStatusEntry(ctx context.Context, entry *models.OrderStatusEntry) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, input ListOrdersInput) ([]models.Order, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	LinkWish(ctx context.Context, orderID, wishID uuid.UUID) error
	AssignAgent(ctx context.Context, orderID, agentID uuid.UUID) error
	UpdateAgentLocation(ctx context.Context, orderID uuid.UUID, location types.Location) error
}
