package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quickwishapp/quickwish-backend/api/routes"
	"github.com/quickwishapp/quickwish-backend/internal/address"
	"github.com/quickwishapp/quickwish-backend/internal/auth"
	"github.com/quickwishapp/quickwish-backend/internal/cart"
	"github.com/quickwishapp/quickwish-backend/internal/chat"
	"github.com/quickwishapp/quickwish-backend/internal/checkout"
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
	"github.com/quickwishapp/quickwish-backend/pkg/maps"
	"github.com/quickwishapp/quickwish-backend/pkg/migrate"
	"github.com/quickwishapp/quickwish-backend/pkg/outbox"
	"github.com/quickwishapp/quickwish-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	bootCtx := context.Background()

	dbClient, err := db.New(bootCtx, cfg.DB, logg)
	requireResource(bootCtx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(bootCtx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(bootCtx, cfg, logg, dbClient); err != nil {
		logg.Error(bootCtx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(bootCtx, cfg.Redis, logg)
	requireResource(bootCtx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(bootCtx, "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(bootCtx, logg, "session manager", err)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	vendorRepo := vendors.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	wishRepo := wishes.NewRepository(gormDB)
	chatRepo := chat.NewRepository(gormDB)
	businessRepo := localhub.NewRepository(gormDB)
	postRepo := explore.NewRepository(gormDB)
	notificationRepo := notifications.NewRepository(gormDB)
	outboxService := outbox.NewService(outbox.NewRepository(gormDB), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	requireResource(bootCtx, logg, "auth service", err)

	usersService, err := users.NewService(userRepo)
	requireResource(bootCtx, logg, "users service", err)

	cartService, err := cart.NewService(cartRepo, dbClient, productRepo)
	requireResource(bootCtx, logg, "cart service", err)

	checkoutService, err := checkout.NewService(dbClient, cartRepo, orderRepo, wishRepo, productRepo, vendorRepo, outboxService)
	requireResource(bootCtx, logg, "checkout service", err)

	ordersService, err := orders.NewService(orderRepo, dbClient, wishRepo, outboxService)
	requireResource(bootCtx, logg, "orders service", err)

	wishesService, err := wishes.NewService(wishRepo, dbClient, outboxService)
	requireResource(bootCtx, logg, "wishes service", err)

	chatService, err := chat.NewService(chatRepo, wishRepo, dbClient, outboxService)
	requireResource(bootCtx, logg, "chat service", err)

	vendorsService, err := vendors.NewService(vendorRepo)
	requireResource(bootCtx, logg, "vendors service", err)

	productsService, err := products.NewService(productRepo, dbClient, vendorRepo)
	requireResource(bootCtx, logg, "products service", err)

	localhubService, err := localhub.NewService(businessRepo)
	requireResource(bootCtx, logg, "localhub service", err)

	exploreService, err := explore.NewService(postRepo, userRepo)
	requireResource(bootCtx, logg, "explore service", err)

	notificationsService, err := notifications.NewService(notificationRepo)
	requireResource(bootCtx, logg, "notifications service", err)

	seedService, err := seed.NewService(businessRepo, postRepo, vendorRepo, productRepo, userRepo)
	requireResource(bootCtx, logg, "seed service", err)

	var mapsClient *maps.Client
	if key := strings.TrimSpace(cfg.GoogleMaps.APIKey); key != "" {
		mapsClient, err = maps.NewClient(key)
		requireResource(bootCtx, logg, "google maps client", err)
	} else {
		logg.Warn(bootCtx, "google maps api key not set, address lookups disabled")
	}
	addressService := address.NewService(mapsClient)

	router := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		sessionManager,
		authService,
		usersService,
		cartService,
		checkoutService,
		ordersService,
		wishesService,
		chatService,
		vendorsService,
		productsService,
		localhubService,
		exploreService,
		notificationsService,
		addressService,
		seedService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shutting down gracefully")
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
