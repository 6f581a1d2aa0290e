package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/retail-kit/backoffice-console/internal/api/http"
	"github.com/retail-kit/backoffice-console/internal/api/http/handlers"
	"github.com/retail-kit/backoffice-console/internal/auth"
	"github.com/retail-kit/backoffice-console/internal/config"
	"github.com/retail-kit/backoffice-console/internal/observability"
	"github.com/retail-kit/backoffice-console/internal/session"
	"github.com/retail-kit/backoffice-console/internal/staff"
	"github.com/retail-kit/backoffice-console/internal/storage"
	"github.com/retail-kit/backoffice-console/internal/upstream"
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

	metrics := observability.NewMetrics()

	var store storage.Store
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redisStore := storage.NewRedisStore(cfg.Redis, logger)
		defer redisStore.Close()
		store = redisStore
	default:
		fileStore, err := storage.NewFileStore(cfg.Storage.FilePath, cfg.Storage.EncryptionSecret)
		if err != nil {
			logger.Fatal("failed to init session storage", zap.Error(err))
		}
		store = fileStore
	}

	platform := upstream.NewClient(cfg.Upstream, logger)
	sessions := session.NewStore(platform, store, logger, metrics)

	// reconcile any persisted session before serving
	if sessions.CheckAuth(context.Background()) {
		logger.Info("restored persisted session")
	}

	staffService := staff.NewService(sessions, platform, logger, metrics)
	guard := auth.NewGuard(sessions, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, platform),
		Session: handlers.NewSessionHandler(sessions),
		Staff:   handlers.NewStaffHandler(staffService),
		App:     handlers.NewAppHandler(sessions),
		Guard:   guard,
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
