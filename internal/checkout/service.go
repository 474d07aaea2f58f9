package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/internal/cart"
	"github.com/quickwishapp/quickwish-backend/internal/orders"
	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/pricing"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// estimatedDeliveryWindow is how far out the initial delivery estimate sits.
const estimatedDeliveryWindow = 45 * time.Minute

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.HubVendor, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// CheckoutInput selects which vendor cart to convert and how the order
// reaches the customer.
type CheckoutInput struct {
	VendorID        uuid.UUID
	DeliveryType    enums.DeliveryType
	DeliveryAddress types.Location
}

// Service converts a vendor cart into an order snapshot. The whole
// conversion commits as one transaction: order, lines, history, the spawned
// delivery wish, outbox events, and the cart removal all land together or
// not at all.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error)
}

type service struct {
	tx         txRunner
	cartRepo   cart.Repository
	ordersRepo orders.Repository
	wishesRepo wishes.Repository
	products   productLoader
	vendors    vendorLoader
	outbox     outboxPublisher
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	ordersRepo orders.Repository,
	wishesRepo wishes.Repository,
	products productLoader,
	vendors vendorLoader,
	publisher outboxPublisher,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if wishesRepo == nil {
		return nil, fmt.Errorf("wishes repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor loader required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		wishesRepo: wishesRepo,
		products:   products,
		vendors:    vendors,
		outbox:     publisher,
	}, nil
}

// Execute prices the vendor cart and freezes it into an order. A cart line
// whose product vanished from the catalog aborts the checkout so the bill
// never silently shrinks. Agent deliveries spawn a linked wish whose
// remuneration is the delivery fee.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if !input.DeliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery type %q", input.DeliveryType))
	}
	if input.DeliveryAddress.Address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address required")
	}
	if input.DeliveryAddress.Lat < -90 || input.DeliveryAddress.Lat > 90 ||
		input.DeliveryAddress.Lng < -180 || input.DeliveryAddress.Lng > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery coordinates")
	}

	var result *orders.OrderDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)
		wishesRepo := s.wishesRepo.WithTx(tx)

		record, err := cartRepo.FindByUserAndVendor(ctx, userID, input.VendorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
			}
			return err
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		vendor, err := s.vendors.FindByID(ctx, input.VendorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return err
		}
		if !vendor.IsActive {
			return pkgerrors.New(pkgerrors.CodeConflict, "vendor is not taking orders")
		}

		lines, err := s.buildLines(ctx, record.Items)
		if err != nil {
			return err
		}

		quote, err := pricing.BuildQuote(lines, input.DeliveryType, vendor.HasOwnDelivery)
		if err != nil {
			return err
		}

		estimated := time.Now().UTC().Add(estimatedDeliveryWindow)
		order := &models.Order{
			UserID:            userID,
			VendorID:          vendor.ID,
			VendorName:        vendor.Name,
			VendorImageURL:    vendor.ImageURL,
			VendorPhone:       vendor.Phone,
			VendorAddress:     vendor.Address,
			Subtotal:          quote.Subtotal,
			Tax:               quote.Tax,
			DeliveryFee:       quote.DeliveryFee,
			GrandTotal:        quote.GrandTotal,
			DeliveryType:      input.DeliveryType,
			DeliveryAddress:   input.DeliveryAddress,
			Status:            enums.OrderStatusConfirmed,
			PaymentStatus:     enums.PaymentStatusPaid,
			EstimatedDelivery: &estimated,
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				ImageURL:    line.ImageURL,
				UnitPrice:   line.UnitPrice,
				Quantity:    line.Quantity,
				LineTotal:   line.LineTotal,
			})
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		if err := ordersRepo.CreateStatusEntry(ctx, &models.OrderStatusEntry{
			OrderID: order.ID,
			Status:  enums.OrderStatusConfirmed,
			Message: orders.StatusMessage(enums.OrderStatusConfirmed),
		}); err != nil {
			return err
		}

		var wish *models.Wish
		if input.DeliveryType == enums.DeliveryTypeAgent {
			wish, err = s.spawnDeliveryWish(ctx, wishesRepo, ordersRepo, order, vendor, quote, input.DeliveryAddress)
			if err != nil {
				return err
			}
			order.LinkedWishID = &wish.ID
		}

		if err := s.emitOrderCreated(ctx, tx, userID, order, quote); err != nil {
			return err
		}
		if wish != nil {
			if err := s.emitWishCreated(ctx, tx, userID, wish); err != nil {
				return err
			}
		}

		if err := cartRepo.Delete(ctx, record.ID); err != nil {
			return err
		}

		created, err := ordersRepo.FindByID(ctx, order.ID)
		if err != nil {
			return err
		}
		result = orders.FromModel(created)
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}
	return result, nil
}

// buildLines resolves cart lines against the live catalog. A line whose
// product no longer exists fails the checkout; cart display reads tolerate
// stale lines, the bill does not.
func (s *service) buildLines(ctx context.Context, items []models.CartItem) ([]pricing.Line, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s is no longer available", item.ProductID))
		}
		lines = append(lines, pricing.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    firstImage(product.ImageURLs),
			UnitPrice:   product.EffectivePrice(),
			Quantity:    item.Quantity,
		})
	}
	return lines, nil
}

// spawnDeliveryWish posts the pickup task for agent-delivery orders and
// links the two records both ways.
func (s *service) spawnDeliveryWish(
	ctx context.Context,
	wishesRepo wishes.Repository,
	ordersRepo orders.Repository,
	order *models.Order,
	vendor *models.HubVendor,
	quote *pricing.Quote,
	destination types.Location,
) (*models.Wish, error) {
	pickup := vendor.Location
	if pickup.Address == "" {
		pickup.Address = vendor.Address
	}

	wish := &models.Wish{
		UserID:        order.UserID,
		Title:         fmt.Sprintf("Delivery from %s", vendor.Name),
		Description:   fmt.Sprintf("Pick up order #%s from %s and deliver to customer", orderRef(order.ID), vendor.Name),
		Type:          enums.WishTypeDelivery,
		Status:        enums.WishStatusPending,
		Remuneration:  quote.DeliveryFee,
		Location:      pickup,
		Destination:   &destination,
		RadiusKM:      5,
		LinkedOrderID: &order.ID,
	}
	if err := wishesRepo.Create(ctx, wish); err != nil {
		return nil, err
	}
	if err := ordersRepo.LinkWish(ctx, order.ID, wish.ID); err != nil {
		return nil, err
	}
	return wish, nil
}

func (s *service) emitOrderCreated(ctx context.Context, tx *gorm.DB, userID uuid.UUID, order *models.Order, quote *pricing.Quote) error {
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleUser)},
		Data: payloads.OrderCreatedEvent{
			OrderID:      order.ID,
			UserID:       order.UserID,
			VendorID:     order.VendorID,
			VendorName:   order.VendorName,
			DeliveryType: order.DeliveryType,
			Subtotal:     order.Subtotal,
			Tax:          order.Tax,
			DeliveryFee:  order.DeliveryFee,
			GrandTotal:   order.GrandTotal,
			ItemCount:    quote.ItemCount(),
			LinkedWishID: order.LinkedWishID,
		},
	})
}

func (s *service) emitWishCreated(ctx context.Context, tx *gorm.DB, userID uuid.UUID, wish *models.Wish) error {
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventWishCreated,
		AggregateType: enums.AggregateWish,
		AggregateID:   wish.ID,
		Actor:         &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleUser)},
		Data: payloads.WishCreatedEvent{
			WishID:        wish.ID,
			UserID:        wish.UserID,
			Type:          wish.Type,
			Title:         wish.Title,
			Remuneration:  wish.Remuneration,
			RadiusKM:      wish.RadiusKM,
			LinkedOrderID: wish.LinkedOrderID,
		},
	})
}

// orderRef is the short order reference shown to agents: the tail of the
// order UUID.
func orderRef(id uuid.UUID) string {
	raw := id.String()
	return raw[len(raw)-8:]
}

func firstImage(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	first := urls[0]
	return &first
}
