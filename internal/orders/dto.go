package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

// OrderItemDTO is a frozen order line as returned to clients.
type OrderItemDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    *string         `json:"image_url,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// StatusEntryDTO is one row of the order's status history.
type StatusEntryDTO struct {
	Status    enums.OrderStatus `json:"status"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// LinkedWishDTO summarizes the delivery wish spawned for an agent-delivery
// order, enough for a tracking view to show claim state.
type LinkedWishDTO struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Status       enums.WishStatus `json:"status"`
	Remuneration decimal.Decimal  `json:"remuneration"`
	AcceptedBy   *uuid.UUID       `json:"accepted_by,omitempty"`
}

// OrderDTO exposes a full order snapshot in API responses.
type OrderDTO struct {
	ID                uuid.UUID           `json:"id"`
	UserID            uuid.UUID           `json:"user_id"`
	VendorID          uuid.UUID           `json:"vendor_id"`
	VendorName        string              `json:"vendor_name"`
	VendorImageURL    *string             `json:"vendor_image_url,omitempty"`
	VendorPhone       *string             `json:"vendor_phone,omitempty"`
	VendorAddress     string              `json:"vendor_address"`
	Items             []OrderItemDTO      `json:"items"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	Tax               decimal.Decimal     `json:"tax"`
	DeliveryFee       decimal.Decimal     `json:"delivery_fee"`
	GrandTotal        decimal.Decimal     `json:"grand_total"`
	DeliveryType      enums.DeliveryType  `json:"delivery_type"`
	DeliveryAddress   types.Location      `json:"delivery_address"`
	Status            enums.OrderStatus   `json:"status"`
	PaymentStatus     enums.PaymentStatus `json:"payment_status"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery,omitempty"`
	LinkedWishID      *uuid.UUID          `json:"linked_wish_id,omitempty"`
	LinkedWish        *LinkedWishDTO      `json:"linked_wish,omitempty"`
	AgentID           *uuid.UUID          `json:"agent_id,omitempty"`
	AgentLocation     *types.Location     `json:"agent_location,omitempty"`
	StatusHistory     []StatusEntryDTO    `json:"status_history"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// OrderListResult pages orders with an opaque cursor.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted order into a DTO.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}

	dto := &OrderDTO{
		ID:                m.ID,
		UserID:            m.UserID,
		VendorID:          m.VendorID,
		VendorName:        m.VendorName,
		VendorImageURL:    m.VendorImageURL,
		VendorPhone:       m.VendorPhone,
		VendorAddress:     m.VendorAddress,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		DeliveryFee:       m.DeliveryFee,
		GrandTotal:        m.GrandTotal,
		DeliveryType:      m.DeliveryType,
		DeliveryAddress:   m.DeliveryAddress,
		Status:            m.Status,
		PaymentStatus:     m.PaymentStatus,
		EstimatedDelivery: m.EstimatedDelivery,
		LinkedWishID:      m.LinkedWishID,
		AgentID:           m.AgentID,
		AgentLocation:     m.AgentLocation,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	dto.Items = make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}

	dto.StatusHistory = make([]StatusEntryDTO, 0, len(m.StatusHistory))
	for _, entry := range m.StatusHistory {
		dto.StatusHistory = append(dto.StatusHistory, StatusEntryDTO{
			Status:    entry.Status,
			Message:   entry.Message,
			CreatedAt: entry.CreatedAt,
		})
	}

	return dto
}

func linkedWishFromModel(m *models.Wish) *LinkedWishDTO {
	return &LinkedWishDTO{
		ID:           m.ID,
		Title:        m.Title,
		Status:       m.Status,
		Remuneration: m.Remuneration,
		AcceptedBy:   m.AcceptedBy,
	}
}
