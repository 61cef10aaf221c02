package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"roomledger/internal/caching"
	"roomledger/internal/handlers"
	"roomledger/internal/jobs"
	"roomledger/internal/middleware"
	"roomledger/internal/repositories"
	"roomledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, logger, pool, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := repositories.NewStore(pool)

	var cache caching.CacheService
	if cfg.Redis.Enabled {
		cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		defer cache.Close()
	}

	var storage services.StorageService
	if cfg.Storage.Enabled {
		storage, err = services.NewMinioStorage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
		if err != nil {
			return err
		}
	}

	roomService := services.NewRoomService(store.Rooms, store.Tenants, logger)
	tenantService := services.NewTenantService(store.Tenants, store.Rooms, store, logger)
	registrationService := services.NewRegistrationService(store, logger)
	reportService := services.NewReportService(store.Rooms, store.Tenants, roomService, storage, cache, services.ReportConfig{
		Bucket:          cfg.Storage.Bucket,
		LinkExpiry:      cfg.Storage.LinkExpiry,
		LeaseWindowDays: cfg.Jobs.LeaseWindowDays,
		SummaryTTL:      cfg.Jobs.SummaryTTL,
	}, logger)

	var rateLimit echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		if cache == nil {
			logger.Warn("rate limiting needs redis; requests will not be limited")
		} else {
			rateLimit = middleware.RateLimit(cache, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
		}
	}

	e := handlers.NewRouter(handlers.RouterConfig{
		Rooms:       handlers.NewRoomHandlers(roomService, tenantService, registrationService, logger),
		Tenants:     handlers.NewTenantHandlers(tenantService, logger),
		Reports:     handlers.NewReportHandlers(reportService, logger),
		Health:      handlers.NewHealthHandlers(pool, cache, storage, cfg.Storage.Bucket, version),
		Logger:      logger,
		RateLimit:   rateLimit,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	if cfg.Jobs.Enabled {
		scheduler, err := jobs.NewScheduler(reportService, cfg.Jobs.LeaseScanInterval, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.WithError(err).Warn("scheduler did not stop cleanly")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr()).Info("server starting")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
