package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/api/middleware"
	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
)

type testWishesService struct {
	createWishFn     func(ctx context.Context, userID uuid.UUID, input wishes.CreateWishInput) (*wishes.WishDTO, error)
	getWishFn        func(ctx context.Context, wishID uuid.UUID) (*wishes.WishDTO, error)
	listUserWishesFn func(ctx context.Context, userID uuid.UUID, status *enums.WishStatus, params pagination.Params) (*wishes.WishListResult, error)
	nearbyWishesFn   func(ctx context.Context, agentID uuid.UUID, input wishes.NearbyWishesInput) ([]wishes.NearbyWishDTO, error)
	updateWishFn     func(ctx context.Context, actor wishes.Actor, wishID uuid.UUID, input wishes.UpdateWishInput) (*wishes.WishDTO, error)
	cancelWishFn     func(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error)
	completeWishFn   func(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error)
	deleteWishFn     func(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) error
}

func (s *testWishesService) CreateWish(ctx context.Context, userID uuid.UUID, input wishes.CreateWishInput) (*wishes.WishDTO, error) {
	if s.createWishFn != nil {
		return s.createWishFn(ctx, userID, input)
	}
	return &wishes.WishDTO{}, nil
}

func (s *testWishesService) GetWish(ctx context.Context, wishID uuid.UUID) (*wishes.WishDTO, error) {
	if s.getWishFn != nil {
		return s.getWishFn(ctx, wishID)
	}
	return &wishes.WishDTO{}, nil
}

func (s *testWishesService) ListUserWishes(ctx context.Context, userID uuid.UUID, status *enums.WishStatus, params pagination.Params) (*wishes.WishListResult, error) {
	if s.listUserWishesFn != nil {
		return s.listUserWishesFn(ctx, userID, status, params)
	}
	return &wishes.WishListResult{}, nil
}

func (s *testWishesService) NearbyWishes(ctx context.Context, agentID uuid.UUID, input wishes.NearbyWishesInput) ([]wishes.NearbyWishDTO, error) {
	if s.nearbyWishesFn != nil {
		return s.nearbyWishesFn(ctx, agentID, input)
	}
	return nil, nil
}

func (s *testWishesService) UpdateWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID, input wishes.UpdateWishInput) (*wishes.WishDTO, error) {
	if s.updateWishFn != nil {
		return s.updateWishFn(ctx, actor, wishID, input)
	}
	return &wishes.WishDTO{}, nil
}

func (s *testWishesService) CancelWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error) {
	if s.cancelWishFn != nil {
		return s.cancelWishFn(ctx, actor, wishID)
	}
	return &wishes.WishDTO{}, nil
}

func (s *testWishesService) CompleteWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error) {
	if s.completeWishFn != nil {
		return s.completeWishFn(ctx, actor, wishID)
	}
	return &wishes.WishDTO{}, nil
}

func (s *testWishesService) DeleteWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) error {
	if s.deleteWishFn != nil {
		return s.deleteWishFn(ctx, actor, wishID)
	}
	return nil
}

func TestWishCreateSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &testWishesService{
		createWishFn: func(ctx context.Context, uid uuid.UUID, input wishes.CreateWishInput) (*wishes.WishDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if input.Type != enums.WishTypeErrand {
				t.Fatalf("unexpected type %s", input.Type)
			}
			if !input.Remuneration.Equal(decimal.NewFromFloat(12.5)) {
				t.Fatalf("unexpected remuneration %s", input.Remuneration)
			}
			if input.Location.Lat != 40.4 {
				t.Fatalf("unexpected lat %f", input.Location.Lat)
			}
			return &wishes.WishDTO{ID: uuid.New()}, nil
		},
	}

	body := `{"title":"Walk my dog","description":"Golden retriever, very friendly","type":"errand","remuneration":12.5,"location":{"lat":40.4,"lng":-3.7,"address":"Calle Mayor 1"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	handler := WishCreate(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestWishCreateRejectsUnknownType(t *testing.T) {
	userID := uuid.New()
	body := `{"title":"Walk my dog","type":"teleport","remuneration":12.5,"location":{"lat":40.4,"lng":-3.7}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	handler := WishCreate(&testWishesService{
		createWishFn: func(ctx context.Context, uid uuid.UUID, input wishes.CreateWishInput) (*wishes.WishDTO, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWishesNearbyRequiresCoordinates(t *testing.T) {
	agentID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishes/nearby?lat=40.4", nil)
	ctx := middleware.WithUserID(req.Context(), agentID.String())
	ctx = middleware.WithRole(ctx, string(enums.UserRoleAgent))
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	handler := WishesNearby(&testWishesService{}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWishesNearbyPassesFilters(t *testing.T) {
	agentID := uuid.New()
	svc := &testWishesService{
		nearbyWishesFn: func(ctx context.Context, aid uuid.UUID, input wishes.NearbyWishesInput) ([]wishes.NearbyWishDTO, error) {
			if aid != agentID {
				t.Fatalf("unexpected agent %s", aid)
			}
			if input.Lat != 40.4 || input.Lng != -3.7 {
				t.Fatalf("unexpected coordinates %f,%f", input.Lat, input.Lng)
			}
			if input.RadiusKM != 8 {
				t.Fatalf("unexpected radius %f", input.RadiusKM)
			}
			if input.Type == nil || *input.Type != enums.WishTypeDelivery {
				t.Fatal("expected delivery type filter")
			}
			return []wishes.NearbyWishDTO{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishes/nearby?lat=40.4&lng=-3.7&radius_km=8&type=delivery", nil)
	ctx := middleware.WithUserID(req.Context(), agentID.String())
	ctx = middleware.WithRole(ctx, string(enums.UserRoleAgent))
	req = req.WithContext(ctx)

	resp := httptest.NewRecorder()
	handler := WishesNearby(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestWishesListParsesStatus(t *testing.T) {
	userID := uuid.New()
	svc := &testWishesService{
		listUserWishesFn: func(ctx context.Context, uid uuid.UUID, status *enums.WishStatus, params pagination.Params) (*wishes.WishListResult, error) {
			if status == nil || *status != enums.WishStatusPending {
				t.Fatal("expected pending filter")
			}
			return &wishes.WishListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishes?status=pending", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler := WishesList(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestWishDeleteSuccess(t *testing.T) {
	userID := uuid.New()
	wishID := uuid.New()
	called := false
	svc := &testWishesService{
		deleteWishFn: func(ctx context.Context, actor wishes.Actor, wid uuid.UUID) error {
			called = true
			if actor.UserID != userID {
				t.Fatalf("unexpected actor %s", actor.UserID)
			}
			if wid != wishID {
				t.Fatalf("unexpected wish %s", wid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wishes/"+wishID.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "wishId", wishID.String())

	resp := httptest.NewRecorder()
	handler := WishDelete(svc, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestWishCancelInvalidID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishes/nope/cancel", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	req = addRouteParam(req, "wishId", "nope")

	resp := httptest.NewRecorder()
	handler := WishCancel(&testWishesService{}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
