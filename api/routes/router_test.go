package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quickwishapp/quickwish-backend/internal/address"
	"github.com/quickwishapp/quickwish-backend/internal/auth"
	"github.com/quickwishapp/quickwish-backend/internal/cart"
	"github.com/quickwishapp/quickwish-backend/internal/chat"
	checkoutsvc "github.com/quickwishapp/quickwish-backend/internal/checkout"
	"github.com/quickwishapp/quickwish-backend/internal/explore"
	"github.com/quickwishapp/quickwish-backend/internal/localhub"
	"github.com/quickwishapp/quickwish-backend/internal/notifications"
	"github.com/quickwishapp/quickwish-backend/internal/orders"
	"github.com/quickwishapp/quickwish-backend/internal/products"
	"github.com/quickwishapp/quickwish-backend/internal/seed"
	"github.com/quickwishapp/quickwish-backend/internal/users"
	"github.com/quickwishapp/quickwish-backend/internal/vendors"
	"github.com/quickwishapp/quickwish-backend/internal/wishes"
	pkgAuth "github.com/quickwishapp/quickwish-backend/pkg/auth"
	"github.com/quickwishapp/quickwish-backend/pkg/auth/session"
	"github.com/quickwishapp/quickwish-backend/pkg/config"
	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/pagination"
	"github.com/quickwishapp/quickwish-backend/pkg/redis"
	"github.com/quickwishapp/quickwish-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.AuthResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

type stubUsersService struct{}

func (stubUsersService) GetByID(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) UpdateProfile(ctx context.Context, userID uuid.UUID, input users.UpdateProfileInput) (*users.UserDTO, error) {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, input cart.AddItemInput) (*cart.AddItemResult, error) {
	panic("unimplemented")
}

func (stubCartService) UpdateItem(ctx context.Context, input cart.UpdateItemInput) error {
	panic("unimplemented")
}

func (stubCartService) GetCart(ctx context.Context, userID, vendorID uuid.UUID) (*cart.View, error) {
	panic("unimplemented")
}

func (stubCartService) GetCarts(ctx context.Context, userID uuid.UUID) ([]cart.View, error) {
	return []cart.View{}, nil
}

func (stubCartService) Summary(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]int, error) {
	return map[uuid.UUID]int{}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID, vendorID *uuid.UUID) error {
	return nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(ctx context.Context, userID uuid.UUID, input checkoutsvc.CheckoutInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: uuid.New()}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) GetOrder(ctx context.Context, actor orders.Actor, orderID uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) ListUserOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*orders.OrderListResult, error) {
	return &orders.OrderListResult{}, nil
}

func (stubOrdersService) ListOrders(ctx context.Context, actor orders.Actor, input orders.ListOrdersInput) (*orders.OrderListResult, error) {
	return &orders.OrderListResult{}, nil
}

func (stubOrdersService) UpdateStatus(ctx context.Context, actor orders.Actor, orderID uuid.UUID, input orders.UpdateStatusInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: orderID, Status: input.Status}, nil
}

func (stubOrdersService) UpdateAgentLocation(ctx context.Context, actor orders.Actor, orderID uuid.UUID, location types.Location) error {
	return nil
}

type stubWishesService struct{}

func (stubWishesService) CreateWish(ctx context.Context, userID uuid.UUID, input wishes.CreateWishInput) (*wishes.WishDTO, error) {
	panic("unimplemented")
}

func (stubWishesService) GetWish(ctx context.Context, wishID uuid.UUID) (*wishes.WishDTO, error) {
	panic("unimplemented")
}

func (stubWishesService) ListUserWishes(ctx context.Context, userID uuid.UUID, status *enums.WishStatus, params pagination.Params) (*wishes.WishListResult, error) {
	return &wishes.WishListResult{}, nil
}

func (stubWishesService) NearbyWishes(ctx context.Context, agentID uuid.UUID, input wishes.NearbyWishesInput) ([]wishes.NearbyWishDTO, error) {
	return []wishes.NearbyWishDTO{}, nil
}

func (stubWishesService) UpdateWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID, input wishes.UpdateWishInput) (*wishes.WishDTO, error) {
	panic("unimplemented")
}

func (stubWishesService) CancelWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error) {
	panic("unimplemented")
}

func (stubWishesService) CompleteWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) (*wishes.WishDTO, error) {
	panic("unimplemented")
}

func (stubWishesService) DeleteWish(ctx context.Context, actor wishes.Actor, wishID uuid.UUID) error {
	panic("unimplemented")
}

type stubChatService struct{}

func (stubChatService) OpenRoom(ctx context.Context, agentID, wishID uuid.UUID) (*chat.RoomDTO, error) {
	panic("unimplemented")
}

func (stubChatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]chat.RoomDTO, error) {
	return []chat.RoomDTO{}, nil
}

func (stubChatService) GetRoom(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	panic("unimplemented")
}

func (stubChatService) ListMessages(ctx context.Context, userID, roomID uuid.UUID, params pagination.Params) (*chat.MessageListResult, error) {
	panic("unimplemented")
}

func (stubChatService) SendMessage(ctx context.Context, userID, roomID uuid.UUID, body string) (*chat.MessageDTO, error) {
	panic("unimplemented")
}

func (stubChatService) Approve(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	panic("unimplemented")
}

func (stubChatService) Complete(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	panic("unimplemented")
}

func (stubChatService) Cancel(ctx context.Context, userID, roomID uuid.UUID) (*chat.RoomDTO, error) {
	panic("unimplemented")
}

type stubVendorsService struct{}

func (stubVendorsService) GetByID(ctx context.Context, id uuid.UUID) (*vendors.VendorDTO, error) {
	panic("unimplemented")
}

func (stubVendorsService) ListVendors(ctx context.Context, input vendors.ListVendorsInput) ([]vendors.VendorDTO, error) {
	return []vendors.VendorDTO{}, nil
}

func (stubVendorsService) NearbyVendors(ctx context.Context, input vendors.NearbyVendorsInput) ([]vendors.NearbyVendorDTO, error) {
	return []vendors.NearbyVendorDTO{}, nil
}

func (stubVendorsService) CreateVendor(ctx context.Context, actorRole enums.UserRole, input vendors.CreateVendorInput) (*vendors.VendorDTO, error) {
	panic("unimplemented")
}

func (stubVendorsService) UpdateVendor(ctx context.Context, actorRole enums.UserRole, vendorID uuid.UUID, input vendors.UpdateVendorInput) (*vendors.VendorDTO, error) {
	panic("unimplemented")
}

type stubProductsService struct{}

func (stubProductsService) CreateProduct(ctx context.Context, actorRole enums.UserRole, input products.CreateProductInput) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductsService) UpdateProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID, input products.UpdateProductInput) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductsService) DeleteProduct(ctx context.Context, actorRole enums.UserRole, productID uuid.UUID) error {
	panic("unimplemented")
}

func (stubProductsService) GetProduct(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*products.ProductDTO, error) {
	panic("unimplemented")
}

func (stubProductsService) ListProducts(ctx context.Context, input products.ListProductsInput) (*products.ProductListResult, error) {
	return &products.ProductListResult{}, nil
}

func (stubProductsService) LikeProduct(ctx context.Context, userID, productID uuid.UUID) (*products.LikeResult, error) {
	panic("unimplemented")
}

func (stubProductsService) UnlikeProduct(ctx context.Context, userID, productID uuid.UUID) (*products.LikeResult, error) {
	panic("unimplemented")
}

func (stubProductsService) ListLikedProducts(ctx context.Context, userID uuid.UUID) ([]products.ProductSummary, error) {
	return []products.ProductSummary{}, nil
}

type stubLocalhubService struct{}

func (stubLocalhubService) ListBusinesses(ctx context.Context, input localhub.ListBusinessesInput) (*localhub.BusinessListResult, error) {
	return &localhub.BusinessListResult{}, nil
}

func (stubLocalhubService) GetBusiness(ctx context.Context, id uuid.UUID) (*localhub.BusinessDTO, error) {
	panic("unimplemented")
}

func (stubLocalhubService) ListCategories(ctx context.Context) ([]localhub.CategoryCount, error) {
	return []localhub.CategoryCount{}, nil
}

type stubExploreService struct{}

func (stubExploreService) ListPosts(ctx context.Context, input explore.ListPostsInput) (*explore.PostListResult, error) {
	return &explore.PostListResult{}, nil
}

func (stubExploreService) CreatePost(ctx context.Context, authorID uuid.UUID, input explore.CreatePostInput) (*explore.PostDTO, error) {
	panic("unimplemented")
}

func (stubExploreService) LikePost(ctx context.Context, id uuid.UUID) (*explore.LikeResult, error) {
	panic("unimplemented")
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubAddressService struct{}

func (stubAddressService) Suggest(ctx context.Context, req address.SuggestRequest) ([]address.Suggestion, error) {
	panic("unimplemented")
}

func (stubAddressService) Resolve(ctx context.Context, req address.ResolveRequest) (types.Location, error) {
	panic("unimplemented")
}

type stubSeedService struct{}

func (stubSeedService) SeedLocalhub(ctx context.Context, actorRole enums.UserRole, actorID uuid.UUID) (*seed.LocalhubSeedResult, error) {
	return &seed.LocalhubSeedResult{}, nil
}

func (stubSeedService) SeedHub(ctx context.Context, actorRole enums.UserRole) (*seed.HubSeedResult, error) {
	return &seed.HubSeedResult{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessions{},
		stubAuthService{},
		stubUsersService{},
		stubCartService{},
		stubCheckoutService{},
		stubOrdersService{},
		stubWishesService{},
		stubChatService{},
		stubVendorsService{},
		stubProductsService{},
		stubLocalhubService{},
		stubExploreService{},
		stubNotificationsService{},
		stubAddressService{},
		stubSeedService{},
	)
}

func TestAuthedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAuthedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart fetch got %d", resp.Code)
	}
}

func TestAuthMeRoutesThroughAuthMount(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous me got %d", resp.Code)
	}

	authed := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	authed.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, authed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed me got %d", resp.Code)
	}
}

func TestOrderStatusRequiresCourierRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/hub/orders/" + uuid.NewString() + "/status?status=preparing"

	user := httptest.NewRequest(http.MethodPut, target, nil)
	user.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, user)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user got %d", resp.Code)
	}

	agent := httptest.NewRequest(http.MethodPut, target, nil)
	agent.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAgent))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, agent)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for agent status update got %d", resp.Code)
	}
}

func TestWishesNearbyRequiresAgentRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/wishes/nearby?lat=40.41&lng=-3.70"

	user := httptest.NewRequest(http.MethodGet, target, nil)
	user.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, user)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user got %d", resp.Code)
	}

	agent := httptest.NewRequest(http.MethodGet, target, nil)
	agent.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAgent))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, agent)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for agent nearby got %d", resp.Code)
	}
}

func TestAdminSeedRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	agent := httptest.NewRequest(http.MethodPost, "/api/admin/v1/seed/hub", nil)
	agent.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAgent))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, agent)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin seed got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, "/api/admin/v1/seed/hub", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin seed got %d", resp.Code)
	}
}

func TestAdminOrdersListRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	user := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	user.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, user)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin orders got %d", resp.Code)
	}
}

func TestPublicBrowseNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	paths := []string{
		"/api/public/v1/hub/vendors",
		"/api/public/v1/localhub/categories",
		"/api/public/v1/explore",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestCheckoutReachesHandler(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"vendor_id":"` + uuid.NewString() + `","delivery_type":"agent_delivery","delivery_address":{"lat":40.41,"lng":-3.70,"address":"Calle Mayor 1"}}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hub/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for checkout got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(testConfig())

	live := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, live)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}

	// Redis is not wired in this harness, so readiness must report failure.
	ready := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, ready)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for ready without redis got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
