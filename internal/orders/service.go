package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type wishLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Wish, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Actor identifies who is calling into the service.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// UpdateStatusInput moves an order along its lifecycle. An empty message
// falls back to the canonical text for the target status.
type UpdateStatusInput struct {
	Status  enums.OrderStatus
	Message string
}

// Service exposes order tracking operations. Orders are created by checkout;
// from here they only advance status, record agent positions, and get read.
type Service interface {
	GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderListResult, error)
	ListOrders(ctx context.Context, actor Actor, input ListOrdersInput) (*OrderListResult, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error)
	UpdateAgentLocation(ctx context.Context, actor Actor, orderID uuid.UUID, location types.Location) error
}

type service struct {
	repo   Repository
	tx     txRunner
	wishes wishLoader
	outbox outboxPublisher
}

// NewService wires the orders service with its dependencies.
func NewService(repo Repository, tx txRunner, wishes wishLoader, publisher outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if wishes == nil {
		return nil, fmt.Errorf("wish loader is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	return &service{repo: repo, tx: tx, wishes: wishes, outbox: publisher}, nil
}

// orderStatusFlow is the forward chain of the delivery lifecycle. Cancelled
// is reachable from any non-terminal status and is handled separately.
var orderStatusFlow = map[enums.OrderStatus]enums.OrderStatus{
	enums.OrderStatusConfirmed: enums.OrderStatusPreparing,
	enums.OrderStatusPreparing: enums.OrderStatusReady,
	enums.OrderStatusReady:     enums.OrderStatusPickedUp,
	enums.OrderStatusPickedUp:  enums.OrderStatusOnTheWay,
	enums.OrderStatusOnTheWay:  enums.OrderStatusNearby,
	enums.OrderStatusNearby:    enums.OrderStatusDelivered,
}

var statusMessages = map[enums.OrderStatus]string{
	enums.OrderStatusConfirmed: "Order confirmed",
	enums.OrderStatusPreparing: "Vendor is preparing your order",
	enums.OrderStatusReady:     "Order is ready for pickup",
	enums.OrderStatusPickedUp:  "Order picked up",
	enums.OrderStatusOnTheWay:  "Order is on the way",
	enums.OrderStatusNearby:    "Your delivery is nearby",
	enums.OrderStatusDelivered: "Order delivered",
	enums.OrderStatusCancelled: "Order cancelled",
}

func canTransition(from, to enums.OrderStatus) bool {
	if to == enums.OrderStatusCancelled {
		return !from.IsTerminal()
	}
	next, ok := orderStatusFlow[from]
	return ok && next == to
}

// StatusMessage returns the canonical history text for a status.
func StatusMessage(status enums.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Order status changed to %s", status)
}

// GetOrder returns a single order. Visible to its owner, the assigned agent,
// and admins.
func (s *service) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	dto := FromModel(order)
	s.attachLinkedWish(ctx, order, dto)
	return dto, nil
}

// attachLinkedWish embeds the delivery wish on agent-delivery orders. A
// missing or unreadable wish row degrades the response to the bare id so
// order reads never fail on the wish lookup.
func (s *service) attachLinkedWish(ctx context.Context, order *models.Order, dto *OrderDTO) {
	if order.LinkedWishID == nil {
		return
	}
	wish, err := s.wishes.FindByID(ctx, *order.LinkedWishID)
	if err != nil || wish == nil {
		return
	}
	dto.LinkedWish = linkedWishFromModel(wish)
}

// ListUserOrders pages the caller's own orders, newest first.
func (s *service) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.List(ctx, ListOrdersInput{UserID: &userID, Pagination: params})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return pageOrders(rows, params.Limit), nil
}

// ListOrders pages orders across users with optional filters. Admin only.
func (s *service) ListOrders(ctx context.Context, actor Actor, input ListOrdersInput) (*OrderListResult, error) {
	if actor.Role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return pageOrders(rows, input.Pagination.Limit), nil
}

// UpdateStatus advances the order lifecycle. Admins may apply any legal
// transition, the assigned agent may advance delivery, and the order owner
// may only cancel. Every accepted transition appends a history row and emits
// an order_status_changed event in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidStatus, fmt.Sprintf("unknown order status %q", input.Status))
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actingAgent := s.isAssignedAgent(ctx, actor, order)
	if !s.canUpdateStatus(actor, order, input.Status, actingAgent) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to update this order")
	}

	if !canTransition(order.Status, input.Status) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status),
		)
	}

	message := input.Message
	if message == "" {
		message = StatusMessage(input.Status)
	}

	previous := order.Status
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.UpdateStatus(ctx, order.ID, input.Status); err != nil {
			return err
		}
		if err := txRepo.CreateStatusEntry(ctx, &models.OrderStatusEntry{
			OrderID: order.ID,
			Status:  input.Status,
			Message: message,
		}); err != nil {
			return err
		}
		if actingAgent && order.AgentID == nil {
			if err := txRepo.AssignAgent(ctx, order.ID, actor.UserID); err != nil {
				return err
			}
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         buildActor(actor),
			Data: payloads.OrderStatusChangedEvent{
				OrderID:        order.ID,
				UserID:         order.UserID,
				VendorID:       order.VendorID,
				PreviousStatus: previous,
				Status:         input.Status,
				Message:        message,
				ChangedAt:      time.Now().UTC(),
			},
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	return s.GetOrder(ctx, actor, orderID)
}

// UpdateAgentLocation overwrites the delivery agent's reported position.
// Only the assigned agent may report, and only while the order is live.
func (s *service) UpdateAgentLocation(ctx context.Context, actor Actor, orderID uuid.UUID, location types.Location) error {
	if location.Lat < -90 || location.Lat > 90 || location.Lng < -180 || location.Lng > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid coordinates")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !s.isAssignedAgent(ctx, actor, order) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the assigned agent can report a location")
	}
	if order.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer in delivery")
	}

	if err := s.repo.UpdateAgentLocation(ctx, order.ID, location); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent location")
	}
	return nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) canView(ctx context.Context, actor Actor, order *models.Order) bool {
	if actor.Role == enums.UserRoleAdmin || order.UserID == actor.UserID {
		return true
	}
	return s.isAssignedAgent(ctx, actor, order)
}

// isAssignedAgent reports whether the actor fulfils this order, either via
// the denormalized agent_id or through the linked wish's accepted agent.
func (s *service) isAssignedAgent(ctx context.Context, actor Actor, order *models.Order) bool {
	if order.AgentID != nil {
		return *order.AgentID == actor.UserID
	}
	if order.LinkedWishID == nil {
		return false
	}
	wish, err := s.wishes.FindByID(ctx, *order.LinkedWishID)
	if err != nil || wish.AcceptedBy == nil {
		return false
	}
	return *wish.AcceptedBy == actor.UserID
}

func (s *service) canUpdateStatus(actor Actor, order *models.Order, target enums.OrderStatus, actingAgent bool) bool {
	if actor.Role == enums.UserRoleAdmin {
		return true
	}
	if actingAgent {
		return true
	}
	if order.UserID == actor.UserID {
		return target == enums.OrderStatusCancelled
	}
	return false
}

func pageOrders(rows []models.Order, limit int) *OrderListResult {
	pageSize := pagination.NormalizeLimit(limit)

	result := &OrderListResult{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &cursor
	}

	result.Orders = make([]OrderDTO, 0, len(rows))
	for i := range rows {
		result.Orders = append(result.Orders, *FromModel(&rows[i]))
	}
	return result
}

func buildActor(actor Actor) *outbox.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &outbox.ActorRef{UserID: actor.UserID, Role: string(actor.Role)}
}
