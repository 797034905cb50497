package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"OrgSettings/internal/cache"
	"OrgSettings/internal/config"
	"OrgSettings/internal/logger"
	"OrgSettings/internal/models"

	"github.com/benbjohnson/clock"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger, err := initializeLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServiceStart, "Starting settings cache", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"cache_default_ttl_ms":    cfg.CacheDefaultTTL.Milliseconds(),
			"cache_sweep_interval_ms": cfg.CacheSweepInterval.Milliseconds(),
			"database_logging":        cfg.DatabaseURL != "",
		},
	})

	// One cache per process, handed explicitly to every consumer
	settingsCache := cache.NewMemoryCache(cache.WithDefaultTTL(cfg.CacheDefaultTTL))
	appLogger.LogSuccess(startupCtx, logger.OpCacheInit, "", "Cache initialized", map[string]interface{}{
		"default_ttl_ms": settingsCache.DefaultTTL().Milliseconds(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := cache.NewSweeper(settingsCache, appLogger, cfg.CacheSweepInterval, clock.New())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		sweeper.Start(ctx)
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(
		logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent()),
		cfg.ShutdownTimeout,
	)
	defer cancel()

	select {
	case <-sweepDone:
	case <-shutdownCtx.Done():
		appLogger.LogError(shutdownCtx, logger.OpServiceShutdown, "", "Sweeper did not stop in time", shutdownCtx.Err(), models.LogSeverityMedium, map[string]interface{}{
			"shutdown_timeout_ms": cfg.ShutdownTimeout.Milliseconds(),
		})
	}

	clearCache(shutdownCtx, settingsCache, appLogger)

	appLogger.LogInfo(shutdownCtx, logger.OpServiceShutdown, "Settings cache shut down", nil)
}

func initializeLogger(cfg *config.Config) (logger.Service, error) {
	if cfg.DatabaseURL == "" {
		return logger.NewConsoleLogger(cfg.LogLevel), nil
	}

	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return logger.NewDatabaseLogger(db), nil
}

// clearCache drops every entry and logs how many were held
func clearCache(ctx context.Context, c cache.Service, appLogger logger.Service) int {
	size := c.Size()
	c.Clear()
	appLogger.LogInfo(ctx, logger.OpCacheClear, "Cache cleared", map[string]interface{}{
		"entries_dropped": size,
	})
	return size
}
