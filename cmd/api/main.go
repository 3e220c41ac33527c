package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lead-capture-service/internal/api/http"
	"github.com/spec-kit/lead-capture-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-capture-service/internal/auth"
	"github.com/spec-kit/lead-capture-service/internal/config"
	"github.com/spec-kit/lead-capture-service/internal/events"
	"github.com/spec-kit/lead-capture-service/internal/observability"
	"github.com/spec-kit/lead-capture-service/internal/persistence"
	"github.com/spec-kit/lead-capture-service/internal/ratelimit"
	"github.com/spec-kit/lead-capture-service/internal/repository"
	"github.com/spec-kit/lead-capture-service/internal/service"
	"github.com/spec-kit/lead-capture-service/internal/validation"
	"github.com/spec-kit/lead-capture-service/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)

	if err := persistence.SeedBootstrapAdmin(ctx, userRepo, *cfg, logger); err != nil {
		logger.Fatal("failed to seed bootstrap admin", zap.Error(err))
	}
	if err := persistence.SeedCourseCatalog(ctx, courseRepo, logger); err != nil {
		logger.Fatal("failed to seed course catalog", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	webhookService := service.NewWebhookService(dispatcher, logger, cfg.Webhook)
	worker.StartWebhookRelay(webhookService)

	authService := service.NewAuthService(*cfg, userRepo)
	leadService := service.NewLeadService(leadRepo, dispatcher, logger)
	courseService := service.NewCourseService(courseRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	validator := validation.New()
	metrics := observability.NewMetrics()

	var counterStore ratelimit.CounterStore = ratelimit.NewMemoryStore()
	if redis.Available(ctx) {
		counterStore = ratelimit.NewRedisStore(redis.Client)
	}
	loginLimiter := ratelimit.New(counterStore, "login", cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow)
	leadLimiter := ratelimit.New(counterStore, "leads", cfg.RateLimit.LeadsMax, cfg.RateLimit.LeadsWindow)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.CORS.Origins,
		Production:  cfg.App.IsProduction(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Webhook.Enabled(), pg, redis),
		Courses:        handlers.NewCoursesHandler(courseService),
		Leads:          handlers.NewLeadsHandler(leadService, validator),
		Auth:           handlers.NewAuthHandler(authService, validator, cfg.Auth.TokenTTL(), cfg.App.IsProduction()),
		AdminLeads:     handlers.NewAdminLeadsHandler(leadService),
		AuthMiddleware: authMiddleware,
		CSRF:           httptransport.NewCSRF(cfg.App.IsProduction()),
		LoginLimiter:   loginLimiter,
		LeadLimiter:    leadLimiter,
		Logger:         logger,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
