package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service runs the negotiation channel between wish owners and agents. A
// room is opened by an interested agent; approving it assigns the agent to
// the wish in the same transaction.
type Service interface {
	OpenRoom(ctx context.Context, agentID, wishID uuid.UUID) (*RoomDTO, error)
	ListRooms(ctx context.Context, userID uuid.UUID) ([]RoomDTO, error)
	GetRoom(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error)
	ListMessages(ctx context.Context, userID, roomID uuid.UUID, params pagination.Params) (*MessageListResult, error)
	SendMessage(ctx context.Context, userID, roomID uuid.UUID, body string) (*MessageDTO, error)
	Approve(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error)
	Complete(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error)
	Cancel(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error)
}

type service struct {
	repo       Repository
	wishesRepo wishes.Repository
	tx         txRunner
	outbox     outboxPublisher
}

// NewService wires the chat service with its dependencies.
func NewService(repo Repository, wishesRepo wishes.Repository, tx txRunner, publisher outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository is required")
	}
	if wishesRepo == nil {
		return nil, fmt.Errorf("wishes repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	return &service{repo: repo, wishesRepo: wishesRepo, tx: tx, outbox: publisher}, nil
}

// OpenRoom starts a negotiation on an open wish. One room exists per
// (wish, agent) pair; reopening returns the existing room unchanged.
func (s *service) OpenRoom(ctx context.Context, agentID, wishID uuid.UUID) (*RoomDTO, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id is required")
	}
	if wishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish id is required")
	}

	wish, err := s.wishesRepo.FindByID(ctx, wishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish")
	}
	if wish.UserID == agentID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot open a chat on your own wish")
	}
	if wish.Status != enums.WishStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "wish is no longer open")
	}

	existing, err := s.repo.FindRoomByWishAndAgent(ctx, wishID, agentID)
	if err == nil {
		return RoomFromModel(existing), nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find chat room")
	}

	room := &models.ChatRoom{
		WishID:  wishID,
		OwnerID: wish.UserID,
		AgentID: agentID,
		Status:  enums.ChatRoomStatusActive,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create chat room")
	}
	room.Wish = wish
	return RoomFromModel(room), nil
}

// ListRooms returns the caller's rooms on both sides of the table, newest
// first, each decorated with its latest message.
func (s *service) ListRooms(ctx context.Context, userID uuid.UUID) ([]RoomDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rooms, err := s.repo.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list chat rooms")
	}

	result := make([]RoomDTO, 0, len(rooms))
	for i := range rooms {
		dto := RoomFromModel(&rooms[i])
		last, err := s.repo.LastMessage(ctx, rooms[i].ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load last message")
		}
		dto.LastMessage = MessageFromModel(last)
		result = append(result, *dto)
	}
	return result, nil
}

// GetRoom returns one room. Non-participants get a not-found so room ids do
// not leak who is negotiating with whom.
func (s *service) GetRoom(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.loadRoomForUser(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	dto := RoomFromModel(room)
	last, err := s.repo.LastMessage(ctx, room.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load last message")
	}
	dto.LastMessage = MessageFromModel(last)
	return dto, nil
}

// ListMessages pages a room's messages newest first. Reading marks the other
// side's messages as read.
func (s *service) ListMessages(ctx context.Context, userID, roomID uuid.UUID, params pagination.Params) (*MessageListResult, error) {
	room, err := s.loadRoomForUser(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListMessages(ctx, ListMessagesInput{RoomID: room.ID, Pagination: params})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	if err := s.repo.MarkRead(ctx, room.ID, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark messages read")
	}

	return pageMessages(rows, params.Limit), nil
}

// SendMessage appends a message to an open room.
func (s *service) SendMessage(ctx context.Context, userID, roomID uuid.UUID, body string) (*MessageDTO, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	room, err := s.loadRoomForUser(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "chat room is closed")
	}

	message := &models.ChatMessage{
		RoomID:   room.ID,
		SenderID: userID,
		Body:     body,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}
	return MessageFromModel(message), nil
}

// Approve seals the deal: the owner accepts this room's agent, the room
// moves to approved, and the wish goes in_progress with accepted_by set, all
// in one transaction.
func (s *service) Approve(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.loadRoomForUser(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if room.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the wish owner can approve")
	}
	if room.Status != enums.ChatRoomStatusActive {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot approve a %s room", room.Status),
		)
	}

	wish, err := s.wishesRepo.FindByID(ctx, room.WishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wish")
	}
	if wish.Status != enums.WishStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "wish is no longer open")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateRoomStatus(ctx, room.ID, enums.ChatRoomStatusApproved); err != nil {
			return err
		}
		if err := s.wishesRepo.WithTx(tx).MarkAccepted(ctx, wish.ID, room.AgentID, enums.WishStatusInProgress); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventWishAccepted,
			AggregateType: enums.AggregateWish,
			AggregateID:   wish.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: string(enums.UserRoleUser)},
			Data: payloads.WishAcceptedEvent{
				WishID:     wish.ID,
				OwnerID:    room.OwnerID,
				AgentID:    room.AgentID,
				ChatRoomID: room.ID,
				AcceptedAt: time.Now().UTC(),
			},
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve deal")
	}

	return s.GetRoom(ctx, userID, roomID)
}

// Complete closes an approved room once the deal is done.
func (s *service) Complete(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error) {
	return s.closeRoom(ctx, userID, roomID, enums.ChatRoomStatusApproved, enums.ChatRoomStatusCompleted,
		"only approved deals can be completed")
}

// Cancel withdraws from a negotiation that has not been approved yet.
func (s *service) Cancel(ctx context.Context, userID, roomID uuid.UUID) (*RoomDTO, error) {
	return s.closeRoom(ctx, userID, roomID, enums.ChatRoomStatusActive, enums.ChatRoomStatusCancelled,
		"approved deals cannot be cancelled")
}

func (s *service) closeRoom(ctx context.Context, userID, roomID uuid.UUID, from, to enums.ChatRoomStatus, conflictMsg string) (*RoomDTO, error) {
	room, err := s.loadRoomForUser(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != from {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, conflictMsg)
	}

	if err := s.repo.UpdateRoomStatus(ctx, room.ID, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update chat room")
	}
	return s.GetRoom(ctx, userID, roomID)
}

// loadRoomForUser resolves a room the caller participates in. Missing rooms
// and rooms belonging to other pairs both surface as not found.
func (s *service) loadRoomForUser(ctx context.Context, userID, roomID uuid.UUID) (*models.ChatRoom, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	room, err := s.repo.FindRoomByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load chat room")
	}
	if room.OwnerID != userID && room.AgentID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat room not found")
	}
	return room, nil
}

func pageMessages(rows []models.ChatMessage, limit int) *MessageListResult {
	pageSize := pagination.NormalizeLimit(limit)

	result := &MessageListResult{}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &cursor
	}

	result.Messages = make([]MessageDTO, 0, len(rows))
	for i := range rows {
		result.Messages = append(result.Messages, *MessageFromModel(&rows[i]))
	}
	return result
}
