package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	"github.com/quickwishapp/quickwish-backend/pkg/db/models"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox/payloads"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

type stubChatRepo struct {
	createRoom       func(ctx context.Context, room *models.ChatRoom) error
	findRoomByID     func(ctx context.Context, id uuid.UUID) (*models.ChatRoom, error)
	findRoomByPair   func(ctx context.Context, wishID, agentID uuid.UUID) (*models.ChatRoom, error)
	listRoomsByUser  func(ctx context.Context, userID uuid.UUID) ([]models.ChatRoom, error)
	updateRoomStatus func(ctx context.Context, roomID uuid.UUID, status enums.ChatRoomStatus) error
	createMessage    func(ctx context.Context, message *models.ChatMessage) error
	listMessages     func(ctx context.Context, input ListMessagesInput) ([]models.ChatMessage, error)
	lastMessage      func(ctx context.Context, roomID uuid.UUID) (*models.ChatMessage, error)
	markRead         func(ctx context.Context, roomID, readerID uuid.UUID) error
}

func (s *stubChatRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubChatRepo) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	if s.createRoom == nil {
		panic("not implemented")
	}
	return s.createRoom(ctx, room)
}

func (s *stubChatRepo) FindRoomByID(ctx context.Context, id uuid.UUID) (*models.ChatRoom, error) {
	if s.findRoomByID == nil {
		panic("not implemented")
	}
	return s.findRoomByID(ctx, id)
}

func (s *stubChatRepo) FindRoomByWishAndAgent(ctx context.Context, wishID, agentID uuid.UUID) (*models.ChatRoom, error) {
	if s.findRoomByPair == nil {
		panic("not implemented")
	}
	return s.findRoomByPair(ctx, wishID, agentID)
}

func (s *stubChatRepo) ListRoomsByUser(ctx context.Context, userID uuid.UUID) ([]models.ChatRoom, error) {
	if s.listRoomsByUser == nil {
		panic("not implemented")
	}
	return s.listRoomsByUser(ctx, userID)
}

func (s *stubChatRepo) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, status enums.ChatRoomStatus) error {
	if s.updateRoomStatus == nil {
		panic("not implemented")
	}
	return s.updateRoomStatus(ctx, roomID, status)
}

func (s *stubChatRepo) CreateMessage(ctx context.Context, message *models.ChatMessage) error {
	if s.createMessage == nil {
		panic("not implemented")
	}
	return s.createMessage(ctx, message)
}

func (s *stubChatRepo) ListMessages(ctx context.Context, input ListMessagesInput) ([]models.ChatMessage, error) {
	if s.listMessages == nil {
		panic("not implemented")
	}
	return s.listMessages(ctx, input)
}

func (s *stubChatRepo) LastMessage(ctx context.Context, roomID uuid.UUID) (*models.ChatMessage, error) {
	if s.lastMessage == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.lastMessage(ctx, roomID)
}

func (s *stubChatRepo) MarkRead(ctx context.Context, roomID, readerID uuid.UUID) error {
	if s.markRead == nil {
		panic("not implemented")
	}
	return s.markRead(ctx, roomID, readerID)
}

type stubWishStore struct {
	findByID     func(ctx context.Context, id uuid.UUID) (*models.Wish, error)
	markAccepted func(ctx context.Context, wishID, agentID uuid.UUID, status enums.WishStatus) error
}

func (s *stubWishStore) WithTx(_ *gorm.DB) wishes.Repository { return s }

func (s *stubWishStore) Create(context.Context, *models.Wish) error { panic("not implemented") }

func (s *stubWishStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Wish, error) {
	if s.findByID == nil {
		panic("not implemented")
	}
	return s.findByID(ctx, id)
}

func (s *stubWishStore) List(context.Context, wishes.ListWishesInput) ([]models.Wish, error) {
	panic("not implemented")
}

func (s *stubWishStore) ListPending(context.Context, *enums.WishType) ([]models.Wish, error) {
	panic("not implemented")
}

func (s *stubWishStore) Update(context.Context, *models.Wish) error { panic("not implemented") }

func (s *stubWishStore) UpdateStatus(context.Context, uuid.UUID, enums.WishStatus) error {
	panic("not implemented")
}

func (s *stubWishStore) MarkAccepted(ctx context.Context, wishID, agentID uuid.UUID, status enums.WishStatus) error {
	if s.markAccepted == nil {
		panic("not implemented")
	}
	return s.markAccepted(ctx, wishID, agentID, status)
}

func (s *stubWishStore) Delete(context.Context, uuid.UUID) error { panic("not implemented") }

func (s *stubWishStore) ExpirePending(context.Context, time.Time) (int64, error) {
	panic("not implemented")
}

func (s *stubWishStore) ExpireStale(context.Context, time.Time) (int64, error) {
	panic("not implemented")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubOutboxPublisher) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func newTestService(t *testing.T, repo Repository, wishStore wishes.Repository, publisher *stubOutboxPublisher) Service {
	t.Helper()
	svc, err := NewService(repo, wishStore, stubTxRunner{}, publisher)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseChatWish(status enums.WishStatus) *models.Wish {
	return &models.Wish{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Title:        "Pick up a parcel",
		Type:         enums.WishTypeErrand,
		Status:       status,
		Remuneration: decimal.NewFromInt(50),
		Location:     types.Location{Lat: 12.9716, Lng: 77.5946},
		RadiusKM:     5,
	}
}

func baseRoom(wish *models.Wish, status enums.ChatRoomStatus) *models.ChatRoom {
	return &models.ChatRoom{
		ID:        uuid.New(),
		WishID:    wish.ID,
		OwnerID:   wish.UserID,
		AgentID:   uuid.New(),
		Status:    status,
		Wish:      wish,
		CreatedAt: time.Now().UTC(),
	}
}

func TestOpenRoomCreatesActiveRoom(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	agentID := uuid.New()

	var created *models.ChatRoom
	repo := &stubChatRepo{
		findRoomByPair: func(_ context.Context, _, _ uuid.UUID) (*models.ChatRoom, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createRoom: func(_ context.Context, room *models.ChatRoom) error {
			room.ID = uuid.New()
			created = room
			return nil
		},
	}
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
	}

	svc := newTestService(t, repo, wishStore, &stubOutboxPublisher{})
	dto, err := svc.OpenRoom(context.Background(), agentID, wish.ID)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}

	if created == nil {
		t.Fatal("expected a room to be created")
	}
	if dto.Status != enums.ChatRoomStatusActive {
		t.Fatalf("expected active room got %s", dto.Status)
	}
	if dto.OwnerID != wish.UserID || dto.AgentID != agentID {
		t.Fatal("expected room to pair the wish owner with the agent")
	}
	if dto.Wish == nil || dto.Wish.Title != wish.Title {
		t.Fatal("expected wish summary on the room")
	}
}

func TestOpenRoomReturnsExistingRoom(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByPair: func(_ context.Context, _, _ uuid.UUID) (*models.ChatRoom, error) {
			return room, nil
		},
	}
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
	}

	svc := newTestService(t, repo, wishStore, &stubOutboxPublisher{})
	dto, err := svc.OpenRoom(context.Background(), room.AgentID, wish.ID)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}
	if dto.ID != room.ID {
		t.Fatalf("expected existing room %s got %s", room.ID, dto.ID)
	}
}

func TestOpenRoomRejectsOwnWish(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
	}

	svc := newTestService(t, &stubChatRepo{}, wishStore, &stubOutboxPublisher{})
	_, err := svc.OpenRoom(context.Background(), wish.UserID, wish.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenRoomRequiresOpenWish(t *testing.T) {
	wish := baseChatWish(enums.WishStatusInProgress)
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
	}

	svc := newTestService(t, &stubChatRepo{}, wishStore, &stubOutboxPublisher{})
	_, err := svc.OpenRoom(context.Background(), uuid.New(), wish.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestOpenRoomWishNotFound(t *testing.T) {
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := newTestService(t, &stubChatRepo{}, wishStore, &stubOutboxPublisher{})
	_, err := svc.OpenRoom(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApproveAssignsAgentAndEmits(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) {
			copied := *room
			return &copied, nil
		},
		updateRoomStatus: func(_ context.Context, _ uuid.UUID, status enums.ChatRoomStatus) error {
			room.Status = status
			return nil
		},
	}

	var acceptedAgent uuid.UUID
	var acceptedStatus enums.WishStatus
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
		markAccepted: func(_ context.Context, _ uuid.UUID, agentID uuid.UUID, status enums.WishStatus) error {
			acceptedAgent = agentID
			acceptedStatus = status
			return nil
		},
	}

	publisher := &stubOutboxPublisher{}
	svc := newTestService(t, repo, wishStore, publisher)

	dto, err := svc.Approve(context.Background(), room.OwnerID, room.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if dto.Status != enums.ChatRoomStatusApproved {
		t.Fatalf("expected approved room got %s", dto.Status)
	}
	if acceptedAgent != room.AgentID {
		t.Fatalf("expected wish assigned to %s got %s", room.AgentID, acceptedAgent)
	}
	if acceptedStatus != enums.WishStatusInProgress {
		t.Fatalf("expected wish in_progress got %s", acceptedStatus)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one event got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.EventType != enums.EventWishAccepted {
		t.Fatalf("expected wish_accepted got %s", event.EventType)
	}
	payload, ok := event.Data.(payloads.WishAcceptedEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Data)
	}
	if payload.AgentID != room.AgentID || payload.ChatRoomID != room.ID {
		t.Fatal("expected payload to name the agent and the room")
	}
}

func TestApproveOwnerOnly(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.Approve(context.Background(), room.AgentID, room.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestApproveRequiresActiveRoom(t *testing.T) {
	wish := baseChatWish(enums.WishStatusInProgress)
	room := baseRoom(wish, enums.ChatRoomStatusApproved)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.Approve(context.Background(), room.OwnerID, room.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestApproveRequiresOpenWish(t *testing.T) {
	wish := baseChatWish(enums.WishStatusInProgress)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}
	wishStore := &stubWishStore{
		findByID: func(_ context.Context, _ uuid.UUID) (*models.Wish, error) { return wish, nil },
	}

	svc := newTestService(t, repo, wishStore, &stubOutboxPublisher{})
	_, err := svc.Approve(context.Background(), room.OwnerID, room.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestSendMessagePersistsTrimmedBody(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	var created *models.ChatMessage
	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
		createMessage: func(_ context.Context, message *models.ChatMessage) error {
			message.ID = uuid.New()
			created = message
			return nil
		},
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	dto, err := svc.SendMessage(context.Background(), room.AgentID, room.ID, "  I can do it for 50  ")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if created == nil || created.Body != "I can do it for 50" {
		t.Fatalf("expected trimmed body, got %+v", created)
	}
	if dto.SenderID != room.AgentID {
		t.Fatalf("expected sender %s got %s", room.AgentID, dto.SenderID)
	}
}

func TestSendMessageHiddenFromStrangers(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.SendMessage(context.Background(), uuid.New(), room.ID, "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSendMessageRejectsClosedRoom(t *testing.T) {
	wish := baseChatWish(enums.WishStatusCancelled)
	room := baseRoom(wish, enums.ChatRoomStatusCancelled)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.SendMessage(context.Background(), room.OwnerID, room.ID, "anyone there?")
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListMessagesPagesAndMarksRead(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusApproved)

	now := time.Now().UTC().Truncate(time.Second)
	rows := []models.ChatMessage{
		{ID: uuid.New(), RoomID: room.ID, SenderID: room.AgentID, Body: "third", CreatedAt: now},
		{ID: uuid.New(), RoomID: room.ID, SenderID: room.OwnerID, Body: "second", CreatedAt: now.Add(-time.Minute)},
		{ID: uuid.New(), RoomID: room.ID, SenderID: room.AgentID, Body: "first", CreatedAt: now.Add(-2 * time.Minute)},
	}

	var readRoom, reader uuid.UUID
	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
		listMessages: func(_ context.Context, input ListMessagesInput) ([]models.ChatMessage, error) {
			if input.RoomID != room.ID {
				t.Fatalf("unexpected room %s", input.RoomID)
			}
			return rows, nil
		},
		markRead: func(_ context.Context, roomID, readerID uuid.UUID) error {
			readRoom = roomID
			reader = readerID
			return nil
		},
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	result, err := svc.ListMessages(context.Background(), room.OwnerID, room.ID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}

	if len(result.Messages) != 2 {
		t.Fatalf("expected 2 messages got %d", len(result.Messages))
	}
	if result.Messages[0].Body != "third" {
		t.Fatalf("expected newest first, got %q", result.Messages[0].Body)
	}
	if result.NextCursor == nil {
		t.Fatal("expected a next cursor")
	}
	if readRoom != room.ID || reader != room.OwnerID {
		t.Fatal("expected the reader's view to mark messages read")
	}
}

func TestCompleteRequiresApprovedRoom(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.Complete(context.Background(), room.OwnerID, room.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCancelOnlyBeforeApproval(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	active := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) {
			copied := *active
			return &copied, nil
		},
		updateRoomStatus: func(_ context.Context, _ uuid.UUID, status enums.ChatRoomStatus) error {
			active.Status = status
			return nil
		},
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	dto, err := svc.Cancel(context.Background(), active.AgentID, active.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dto.Status != enums.ChatRoomStatusCancelled {
		t.Fatalf("expected cancelled got %s", dto.Status)
	}

	approved := baseRoom(wish, enums.ChatRoomStatusApproved)
	repo.findRoomByID = func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return approved, nil }
	_, err = svc.Cancel(context.Background(), approved.OwnerID, approved.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListRoomsDecoratesLastMessage(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)
	last := &models.ChatMessage{
		ID:       uuid.New(),
		RoomID:   room.ID,
		SenderID: room.AgentID,
		Body:     "still interested?",
	}

	repo := &stubChatRepo{
		listRoomsByUser: func(_ context.Context, userID uuid.UUID) ([]models.ChatRoom, error) {
			if userID != room.OwnerID {
				t.Fatalf("unexpected user %s", userID)
			}
			return []models.ChatRoom{*room}, nil
		},
		lastMessage: func(_ context.Context, _ uuid.UUID) (*models.ChatMessage, error) { return last, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	rooms, err := svc.ListRooms(context.Background(), room.OwnerID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room got %d", len(rooms))
	}
	if rooms[0].LastMessage == nil || rooms[0].LastMessage.Body != last.Body {
		t.Fatal("expected last message on the room")
	}
	if rooms[0].Wish == nil || rooms[0].Wish.ID != wish.ID {
		t.Fatal("expected wish summary on the room")
	}
}

func TestGetRoomHiddenFromStrangers(t *testing.T) {
	wish := baseChatWish(enums.WishStatusPending)
	room := baseRoom(wish, enums.ChatRoomStatusActive)

	repo := &stubChatRepo{
		findRoomByID: func(_ context.Context, _ uuid.UUID) (*models.ChatRoom, error) { return room, nil },
	}

	svc := newTestService(t, repo, &stubWishStore{}, &stubOutboxPublisher{})
	_, err := svc.GetRoom(context.Background(), uuid.New(), room.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
