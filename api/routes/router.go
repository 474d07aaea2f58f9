package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickwishapp/quickwish-backend/api/controllers"
	"github.com/quickwishapp/quickwish-backend/api/middleware"
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
	"github.com/quickwishapp/quickwish-backend/pkg/auth/session"
	"github.com/quickwishapp/quickwish-backend/pkg/config"
	"github.com/quickwishapp/quickwish-backend/pkg/db"
	"github.com/quickwishapp/quickwish-backend/pkg/logger"
	"github.com/quickwishapp/quickwish-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	authService auth.Service,
	usersService users.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	wishesService wishes.Service,
	chatService chat.Service,
	vendorsService vendors.Service,
	productsService products.Service,
	localhubService localhub.Service,
	exploreService explore.Service,
	notificationsService notifications.Service,
	addressService address.Service,
	seedService seed.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A typed-nil *redis.Client must not reach the store interfaces, so the
	// stores stay untyped-nil unless a client is actually wired.
	var limiterStore middleware.RateLimiterStore
	var idemStore redis.IdempotencyStore
	if redisClient != nil {
		limiterStore = redisClient
		idemStore = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	// Browse surface: no account needed to window-shop the hub or localhub.
	r.Route("/api/public/v1", func(r chi.Router) {
		r.Get("/hub/vendors", controllers.HubVendors(vendorsService, logg))
		r.Get("/hub/vendors/{vendorId}", controllers.HubVendorGet(vendorsService, logg))
		r.Get("/hub/vendors/{vendorId}/products", controllers.HubVendorProducts(productsService, logg))
		r.Get("/hub/products", controllers.HubProducts(productsService, logg))
		r.Get("/hub/products/{productId}", controllers.HubProductGet(productsService, logg))
		r.Get("/localhub/businesses", controllers.LocalhubBusinesses(localhubService, logg))
		r.Get("/localhub/businesses/{businessId}", controllers.LocalhubBusinessGet(localhubService, logg))
		r.Get("/localhub/categories", controllers.LocalhubCategories(localhubService, logg))
		r.Get("/explore", controllers.ExplorePosts(exploreService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		// Logout accepts expired access tokens so stale clients can still
		// clear their session.
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Get("/me", controllers.AuthMe(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Put("/profile", controllers.ProfileUpdate(usersService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/add", controllers.CartAdd(cartService, logg))
			r.Put("/update", controllers.CartUpdate(cartService, logg))
			r.Get("/summary", controllers.CartSummary(cartService, logg))
			r.Delete("/clear", controllers.CartClear(cartService, logg))
		})

		r.Route("/hub/orders", func(r chi.Router) {
			r.Post("/", controllers.CheckoutCreate(checkoutService, logg))
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderGet(ordersService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, "agent", "admin"))
				r.Put("/{orderId}/status", controllers.OrderStatusUpdate(ordersService, logg))
				r.Put("/{orderId}/agent-location", controllers.OrderAgentLocation(ordersService, logg))
			})
		})

		r.Route("/hub/products", func(r chi.Router) {
			r.Get("/liked", controllers.LikedProducts(productsService, logg))
			r.Post("/{productId}/like", controllers.ProductLike(productsService, logg))
			r.Delete("/{productId}/like", controllers.ProductUnlike(productsService, logg))
		})

		r.Route("/wishes", func(r chi.Router) {
			r.Post("/", controllers.WishCreate(wishesService, logg))
			r.Get("/", controllers.WishesList(wishesService, logg))
			r.With(middleware.RequireAnyRole(logg, "agent", "admin")).Get("/nearby", controllers.WishesNearby(wishesService, logg))
			r.Get("/{wishId}", controllers.WishGet(wishesService, logg))
			r.Put("/{wishId}", controllers.WishUpdate(wishesService, logg))
			r.Delete("/{wishId}", controllers.WishDelete(wishesService, logg))
			r.Post("/{wishId}/cancel", controllers.WishCancel(wishesService, logg))
			r.Post("/{wishId}/complete", controllers.WishComplete(wishesService, logg))
		})

		r.Route("/chat/rooms", func(r chi.Router) {
			r.Post("/", controllers.ChatRoomOpen(chatService, logg))
			r.Get("/", controllers.ChatRoomsList(chatService, logg))
			r.Get("/{roomId}", controllers.ChatRoomGet(chatService, logg))
			r.Get("/{roomId}/messages", controllers.ChatMessagesList(chatService, logg))
			r.Post("/{roomId}/messages", controllers.ChatMessageSend(chatService, logg))
			r.Post("/{roomId}/approve", controllers.ChatApprove(chatService, logg))
			r.Post("/{roomId}/complete", controllers.ChatComplete(chatService, logg))
			r.Post("/{roomId}/cancel", controllers.ChatCancel(chatService, logg))
		})

		r.Route("/explore", func(r chi.Router) {
			r.Post("/", controllers.ExplorePostCreate(exploreService, logg))
			r.Post("/{postId}/like", controllers.ExplorePostLike(exploreService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationsList(notificationsService, logg))
			r.Post("/{notificationId}/read", controllers.NotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.NotificationsReadAll(notificationsService, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/autocomplete", controllers.AddressSuggest(addressService, logg))
			r.Get("/resolve", controllers.AddressResolve(addressService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Post("/seed/localhub", controllers.SeedLocalhub(seedService, logg))
		r.Post("/seed/hub", controllers.SeedHub(seedService, logg))
		r.Get("/orders", controllers.AdminOrdersList(ordersService, logg))
		r.Route("/hub", func(r chi.Router) {
			r.Post("/vendors", controllers.VendorCreate(vendorsService, logg))
			r.Put("/vendors/{vendorId}", controllers.VendorUpdate(vendorsService, logg))
			r.Post("/products", controllers.ProductCreate(productsService, logg))
			r.Put("/products/{productId}", controllers.ProductUpdate(productsService, logg))
			r.Delete("/products/{productId}", controllers.ProductDelete(productsService, logg))
		})
	})

	return r
}
