package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/citizenloop/internal/api/http"
	"github.com/spec-kit/citizenloop/internal/api/http/handlers"
	"github.com/spec-kit/citizenloop/internal/auth"
	"github.com/spec-kit/citizenloop/internal/config"
	"github.com/spec-kit/citizenloop/internal/events"
	"github.com/spec-kit/citizenloop/internal/observability"
	"github.com/spec-kit/citizenloop/internal/persistence"
	"github.com/spec-kit/citizenloop/internal/repository"
	"github.com/spec-kit/citizenloop/internal/service"
	"github.com/spec-kit/citizenloop/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		redis      *persistence.Redis
		statsCache service.StatsCache
	)
	if ttl := cfg.Cache.StatsTTL(); ttl > 0 {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		if cache := persistence.NewStatsCache(redis.Client, ttl); cache != nil {
			statsCache = cache
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	userService := service.NewUserService(userRepo)
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ComplaintRepo: complaintRepo,
		Cache:         statsCache,
		Logger:        logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService, dashboardService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Citizen:        handlers.NewCitizenHandler(complaintService, userService),
		Admin:          handlers.NewAdminHandler(complaintService, dashboardService, userService),
		Public:         handlers.NewPublicHandler(complaintService, dashboardService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
