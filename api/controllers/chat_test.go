package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/internal/chat"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

type testChatService struct {
	openRoomFn     func(ctx context.Context, agentID, wishID uuid.UUID) (*chat.RoomDTO, error)
	listRoomsFn    func(ctx context.Context, userID uuid.UUID) ([]chat.RoomDTO, error)
	getRoomFn      func(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error)
	listMessagesFn func(ctx context.Context, userID, roomID uuid.UUID, params pagination.Params) (*chat.MessageListResult, error)
	sendMessageFn  func(ctx context.Context, userID, roomID uuid.UUID, body string) (*chat.MessageDTO, error)
	approveFn      func(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error)
	completeFn     func(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error)
	cancelFn       func(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error)
}

func (s *testChatService) OpenRoom(ctx context.Context, agentID, wishID uuid.UUID) (*chat.RoomDTO, error) {
	if s.openRoomFn != nil {
		return s.openRoomFn(ctx, agentID, wishID)
	}
	return &chat.RoomDTO{}, nil
}

func (s *testChatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]chat.RoomDTO, error) {
	if s.listRoomsFn != nil {
		return s.listRoomsFn(ctx, userID)
	}
	return nil, nil
}

func (s *testChatService) GetRoom(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	if s.getRoomFn != nil {
		return s.getRoomFn(ctx, userID, roomID)
	}
	return &chat.RoomDTO{}, nil
}

func (s *testChatService) ListMessages(ctx context.Context, userID, roomID uuid.UUID, params pagination.Params) (*chat.MessageListResult, error) {
	if s.listMessagesFn != nil {
		return s.listMessagesFn(ctx, userID, roomID, params)
	}
	return &chat.MessageListResult{}, nil
}

func (s *testChatService) SendMessage(ctx context.Context, userID, roomID uuid.UUID, body string) (*chat.MessageDTO, error) {
	if s.sendMessageFn != nil {
		return s.sendMessageFn(ctx, userID, roomID, body)
	}
	return &chat.MessageDTO{}, nil
}

func (s *testChatService) Approve(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, userID, roomID)
	}
	return &chat.RoomDTO{}, nil
}

func (s *testChatService) Complete(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	if s.completeFn != nil {
		return s.completeFn(ctx, userID, roomID)
	}
	return &chat.RoomDTO{}, nil
}

func (s *testChatService) Cancel(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, userID, roomID)
	}
	return &chat.RoomDTO{}, nil
}

func TestChatRoomOpenSuccess(t *testing.T) {
	agentID := uuid.New()
	wishID := uuid.New()
	svc := &testChatService{
		openRoomFn: func(ctx context.Context, aid, wid uuid.UUID) (*chat.RoomDTO, error) {
			if aid != agentID {
				t.Fatalf("unexpected agent %s", aid)
			}
			if wid != wishID {
				t.Fatalf("unexpected wish %s", wid)
			}
			return &chat.RoomDTO{ID: uuid.New()}, nil
		},
	}

	body := `{"wish_id":"` + wishID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), agentID.String()))

	resp := httptest.NewRecorder()
	handler := ChatRoomOpen(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestChatRoomOpenRequiresWishID(t *testing.T) {
	agentID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/rooms", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), agentID.String()))

	resp := httptest.NewRecorder()
	handler := ChatRoomOpen(&testChatService{}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChatMessageSendRejectsEmptyBody(t *testing.T) {
	userID := uuid.New()
	roomID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/rooms/"+roomID.String()+"/messages", strings.NewReader(`{"body":""}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "roomId", roomID.String())

	resp := httptest.NewRecorder()
	handler := ChatMessageSend(&testChatService{
		sendMessageFn: func(ctx context.Context, uid, rid uuid.UUID, body string) (*chat.MessageDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChatMessageSendSuccess(t *testing.T) {
	userID := uuid.New()
	roomID := uuid.New()
	svc := &testChatService{
		sendMessageFn: func(ctx context.Context, uid, rid uuid.UUID, body string) (*chat.MessageDTO, error) {
			if rid != roomID {
				t.Fatalf("unexpected room %s", rid)
			}
			if body != "Is the price negotiable?" {
				t.Fatalf("unexpected body %q", body)
			}
			return &chat.MessageDTO{ID: uuid.New()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/rooms/"+roomID.String()+"/messages", strings.NewReader(`{"body":"Is the price negotiable?"}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "roomId", roomID.String())

	resp := httptest.NewRecorder()
	handler := ChatMessageSend(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestChatApprovePassesRoom(t *testing.T) {
	userID := uuid.New()
	roomID := uuid.New()
	called := false
	svc := &testChatService{
		approveFn: func(ctx context.Context, uid, rid uuid.UUID) (*chat.RoomDTO, error) {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if rid != roomID {
				t.Fatalf("unexpected room %s", rid)
			}
			return &chat.RoomDTO{ID: rid}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/rooms/"+roomID.String()+"/approve", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "roomId", roomID.String())

	resp := httptest.NewRecorder()
	handler := ChatApprove(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestChatMessagesListPassesPagination(t *testing.T) {
	userID := uuid.New()
	roomID := uuid.New()
	svc := &testChatService{
		listMessagesFn: func(ctx context.Context, uid, rid uuid.UUID, params pagination.Params) (*chat.MessageListResult, error) {
			if params.Limit != 50 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			return &chat.MessageListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/rooms/"+roomID.String()+"/messages?limit=50", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "roomId", roomID.String())

	resp := httptest.NewRecorder()
	handler := ChatMessagesList(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
