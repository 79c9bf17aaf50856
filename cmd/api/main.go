package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/metroworks/issue-service/internal/api/http"
	"github.com/metroworks/issue-service/internal/api/http/handlers"
	"github.com/metroworks/issue-service/internal/config"
	"github.com/metroworks/issue-service/internal/events"
	"github.com/metroworks/issue-service/internal/identity"
	"github.com/metroworks/issue-service/internal/observability"
	"github.com/metroworks/issue-service/internal/persistence"
	"github.com/metroworks/issue-service/internal/repository"
	"github.com/metroworks/issue-service/internal/service"
	"github.com/metroworks/issue-service/internal/storage"
	"github.com/metroworks/issue-service/internal/worker"
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
	issueRepo := repository.NewIssueRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	updateRepo := repository.NewUpdateRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	issueService := service.NewIssueService(service.IssueDependencies{
		IssueRepo:    issueRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		UpdateRepo:   updateRepo,
		PhotoRepo:    photoRepo,
		Dispatcher:   dispatcher,
	})
	photoService := service.NewPhotoService(service.PhotoDependencies{
		IssueRepo:  issueRepo,
		PhotoRepo:  photoRepo,
		Store:      storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix),
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	resolver := identity.NewResolver(cfg.Identity, userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static(cfg.Uploads.PublicPrefix, cfg.Uploads.Dir)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Issues:         handlers.NewIssuesHandler(issueService, resolver),
		Photos:         handlers.NewPhotosHandler(photoService),
		Users:          handlers.NewUsersHandler(issueService),
		Categories:     handlers.NewCategoriesHandler(issueService),
		IssueRateLimit: httptransport.IssueRateLimit(redis.ClientHandle(), cfg.RateLimit.IssuesPerDay, logger),
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
