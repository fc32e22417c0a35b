package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/answer"
	httptransport "github.com/spec-kit/docubuddy/internal/api/http"
	"github.com/spec-kit/docubuddy/internal/api/http/handlers"
	"github.com/spec-kit/docubuddy/internal/auth"
	"github.com/spec-kit/docubuddy/internal/config"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/identity"
	"github.com/spec-kit/docubuddy/internal/observability"
	"github.com/spec-kit/docubuddy/internal/persistence"
	"github.com/spec-kit/docubuddy/internal/repository"
	"github.com/spec-kit/docubuddy/internal/service"
	"github.com/spec-kit/docubuddy/internal/storage"
	"github.com/spec-kit/docubuddy/internal/worker"
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

	blobs, err := storage.NewGCSStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}
	defer blobs.Close() //nolint:errcheck
	if err := blobs.EnsureBucket(ctx); err != nil {
		logger.Fatal("failed to ensure storage bucket", zap.Error(err))
	}

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	workflowStore := repository.NewWorkflowStore(redis.Client)
	roleCache := repository.NewRoleCache(redis.Client,
		time.Duration(cfg.Auth.RoleCacheTTLMinutes)*time.Minute)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, profileRepo)
	resolver := identity.NewResolver(profileRepo, roleCache, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), resolver)

	teamService := service.NewTeamService(teamRepo, dispatcher, logger)
	membershipService := service.NewMembershipService(service.MembershipDependencies{
		MembershipRepo: membershipRepo,
		ProfileRepo:    profileRepo,
		TeamRepo:       teamRepo,
		Dispatcher:     dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		DocumentRepo: documentRepo,
		Blobs:        blobs,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	uploadService := service.NewUploadService(service.UploadDependencies{
		DocumentRepo: documentRepo,
		TeamRepo:     teamRepo,
		Blobs:        blobs,
		Dispatcher:   dispatcher,
		Logger:       logger,
		Config:       cfg.Storage,
	})
	workflowService := service.NewWorkflowService(workflowStore, logger)
	uploadProgress := service.NewMemoryProgress(cfg.Storage.ProgressClearDelay())
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	answerClient := answer.NewClient(cfg.Answerer, logger)

	processingWorker := worker.NewProcessingWorker(documentRepo, dispatcher, logger, cfg.Storage.ProcessingDelay())
	processingWorker.Start()
	defer processingWorker.Stop()
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Storage.FileSizeLimitBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, resolver),
		Teams:          handlers.NewTeamsHandler(teamService, membershipService),
		Documents:      handlers.NewDocumentsHandler(catalogService, uploadService, teamService, uploadProgress),
		Workflow:       handlers.NewWorkflowHandler(workflowService, teamService),
		Chat:           handlers.NewChatHandler(answerClient),
		AuthMiddleware: authMiddleware,
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
