package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/techstock/inventory/internal/api"
	"github.com/techstock/inventory/internal/api/handlers"
	"github.com/techstock/inventory/internal/repository"
	"github.com/techstock/inventory/internal/services"
	"github.com/techstock/inventory/pkg/config"
	"github.com/techstock/inventory/pkg/database"
	"github.com/techstock/inventory/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting inventory API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("version", version),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	resourceRepo := repository.NewResourceRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	rgRepo := repository.NewResourceGroupRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	tagRepo := repository.NewTagRepository(db)

	resourceSvc := services.NewResourceService(resourceRepo, subRepo, rgRepo, appRepo)
	subSvc := services.NewSubscriptionService(subRepo)
	rgSvc := services.NewResourceGroupService(rgRepo, subRepo)
	appSvc := services.NewApplicationService(appRepo)
	tagSvc := services.NewTagService(tagRepo)
	dashSvc := services.NewDashboardService(resourceRepo, subRepo, rgRepo, appRepo)

	var hmacSecret []byte
	if cfg.AuthJWTSecret != "" {
		hmacSecret = []byte(cfg.AuthJWTSecret)
	} else {
		log.Warn("AUTH_JWT_SECRET not set, mutating routes are unauthenticated")
	}

	router := api.NewRouter(api.Dependencies{
		HMACSecret:            hmacSecret,
		RateLimitRPS:          cfg.RateLimitRPS,
		RateLimitBurst:        cfg.RateLimitBurst,
		DashboardHandler:      handlers.NewDashboardHandler(dashSvc, db, version),
		ResourcesHandler:      handlers.NewResourcesHandler(resourceSvc),
		SubscriptionsHandler:  handlers.NewSubscriptionsHandler(subSvc, resourceSvc, rgSvc),
		ResourceGroupsHandler: handlers.NewResourceGroupsHandler(rgSvc, resourceSvc),
		ApplicationsHandler:   handlers.NewApplicationsHandler(appSvc, resourceSvc),
		TagsHandler:           handlers.NewTagsHandler(tagSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
