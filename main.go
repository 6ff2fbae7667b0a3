package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vendorapp/internal/api"
	"vendorapp/internal/config"
	"vendorapp/internal/handlers"
	"vendorapp/internal/logger"
	"vendorapp/internal/middleware"
	"vendorapp/internal/models"
	"vendorapp/internal/push"
	"vendorapp/internal/repositories"
	"vendorapp/internal/services"
	"vendorapp/internal/session"
	"vendorapp/pkg/rabbitmq"
)

const shutdownTimeout = 5 * time.Second

// App is the wired vendor application.
type App struct {
	cfg           config.Config
	logger        *zap.Logger
	fiber         *fiber.App
	store         *session.Store
	orders        *services.OrderListController
	notifications *services.NotificationService
	closers       []func() error
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Error("app stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server gracefully stopped")
}

// NewApp wires storage, the remote API, services and routes from cfg.
func NewApp(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: log}

	// --- Session storage ---
	sessions, err := a.openSessions()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = session.NewStore(sessions, log.Named("session"))

	// --- Remote API ---
	client := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout}, a.store, log.Named("api"))
	orderRepo := repositories.NewAPIOrderRepository(client)
	vendorRepo := repositories.NewAPIVendorRepository(client)

	// --- Services ---
	a.notifications = services.NewNotificationService(a.pushProvider(), a.store, vendorRepo, log.Named("push"))
	authService := services.NewAuthService(vendorRepo, a.store, a.notifications, log.Named("auth"))
	orderService := services.NewOrderService(orderRepo, log.Named("orders"))
	a.orders = services.NewOrderListController(orderRepo, log.Named("orders"))
	a.notifications.OnOpened(a.refreshOnOpen)

	// Resume the stored session, if any.
	if sess, ok := a.store.Current(context.Background()); ok {
		a.orders.Reset(sess.VendorID)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, a.orders)
	orderHandler := handlers.NewOrderHandler(a.orders, orderService)

	a.fiber = fiber.New(fiber.Config{DisableStartupMessage: true})
	a.fiber.Use(fiberlogger.New()) // Request logger

	apiV1 := a.fiber.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	protectedRoutes := apiV1.Group("", middleware.SessionRequired(a.store))
	orderHandler.RegisterRoutes(protectedRoutes)

	a.fiber.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"session": cfg.SessionDriver,
			"push":    cfg.PushEnabled,
		})
	})
	a.fiber.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return a, nil
}

func (a *App) openSessions() (repositories.SessionRepository, error) {
	if a.cfg.SessionDriver == "redis" {
		client := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, client.Close)
		return repositories.NewRedisSessionRepository(client), nil
	}

	db, err := repositories.OpenDatabase(a.cfg.SessionDriver, a.cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	return repositories.NewGORMSessionRepository(db), nil
}

// pushProvider connects to RabbitMQ, falling back to a disabled provider.
func (a *App) pushProvider() services.PushProvider {
	if !a.cfg.PushEnabled {
		return push.DisabledProvider{}
	}
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: a.cfg.RabbitMQURL})
	if err != nil {
		a.logger.Warn("push messages disabled", zap.Error(err))
		return push.DisabledProvider{}
	}
	a.closers = append(a.closers, mqClient.Close)
	return push.NewAMQPProvider(mqClient, a.logger.Named("push"))
}

// refreshOnOpen reloads the order list when a notification opened the app.
func (a *App) refreshOnOpen(msg models.PushMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()
	if err := a.orders.Refresh(ctx); err != nil {
		a.logger.Warn("refresh after notification failed", zap.String("title", msg.Title), zap.Error(err))
	}
}

// Run serves HTTP and consumes push messages until ctx is done.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting server", zap.String("port", a.cfg.AppPort))
		if err := a.fiber.Listen(a.cfg.AppPort); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.notifications.Listen(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		return a.fiber.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the broker and storage connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("error during close", zap.Error(err))
		}
	}
	a.closers = nil
}
