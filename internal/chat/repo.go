package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

// ListMessagesInput pages one room's messages.
type ListMessagesInput struct {
	RoomID     uuid.UUID
	Pagination pagination.Params
}

// Repository defines persistence operations for chat rooms and messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	FindRoomByID(ctx context.Context, id uuid.UUID) (*models.ChatRoom, error)
	FindRoomByWishAndAgent(ctx context.Context, wishID, agentID uuid.UUID) (*models.ChatRoom, error)
	ListRoomsByUser(ctx context.Context, userID uuid.UUID) ([]models.ChatRoom, error)
	UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status enums.ChatRoomStatus) error

	CreateMessage(ctx context.Context, message *models.ChatMessage) error
	ListMessages(ctx context.Context, input ListMessagesInput) ([]models.ChatMessage, error)
	LastMessage(ctx context.Context, roomID uuid.UUID) (*models.ChatMessage, error)
	MarkRead(ctx context.Context, roomID, readerID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to chat operations.
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

func (r *repository) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) FindRoomByID(ctx context.Context, id uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("Wish").
		Where("id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) FindRoomByWishAndAgent(ctx context.Context, wishID, agentID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("Wish").
		Where("wish_id = ? AND agent_id = ?", wishID, agentID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsByUser returns rooms the user participates in on either side,
// newest first.
func (r *repository) ListRoomsByUser(ctx context.Context, userID uuid.UUID) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("Wish").
		Where("owner_id = ? OR agent_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status enums.ChatRoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

func (r *repository) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListMessages pages one room's messages newest first using keyset
// pagination.
func (r *repository) ListMessages(ctx context.Context, input ListMessagesInput) ([]models.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("room_id = ?", input.RoomID)

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

	var messages []models.ChatMessage
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(input.Pagination.Limit)).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) LastMessage(ctx context.Context, roomID uuid.UUID) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkRead stamps every unread message the reader did not send themselves.
func (r *repository) MarkRead(ctx context.Context, roomID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND read_at IS NULL", roomID, readerID).
		Update("read_at", time.Now().UTC()).Error
}
