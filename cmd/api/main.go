// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Comiking catalog HTTP server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the catalog store (PostgreSQL pool or in-memory engine).
//  4. Run database migrations and the optional seed.
//  5. Connect to Redis when a shared rate limiter is configured.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/comiking/internal/api"
	"github.com/taibuivan/comiking/internal/core/catalog"
	"github.com/taibuivan/comiking/internal/core/catalog/memstore"
	"github.com/taibuivan/comiking/internal/platform/config"
	"github.com/taibuivan/comiking/internal/platform/constants"
	"github.com/taibuivan/comiking/internal/platform/migration"
	pgstore "github.com/taibuivan/comiking/internal/platform/postgres"
	"github.com/taibuivan/comiking/internal/platform/ratelimit"
	redisstore "github.com/taibuivan/comiking/internal/platform/redis"
	requestutil "github.com/taibuivan/comiking/internal/platform/request"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "comiking"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "comiking"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
	)

	// Misconfiguration fails within 30s instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; stops background limiter eviction.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Catalog Store ──────────────────────────────────────────────────
	var store catalog.Store
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.MigrateOnStart {
			must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")
		}

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("postgres_pool_closing")
			pool.Close()
		}()
		store = catalog.NewPostgresStore(pool)

	case config.StorageMemory:
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
		store = memstore.New().Store()
	}

	service := catalog.NewService(store, log)

	// ── 4. Seed ───────────────────────────────────────────────────────────
	if cfg.SeedOnStart {
		_, err := service.Seed(startupCtx)
		must(log, err, "seed catalog")
	}

	// ── 5. Rate Limiter ───────────────────────────────────────────────────
	health := api.HealthDependencies{
		StorageName:  cfg.StorageDriver,
		CheckStorage: service.Ping,
	}

	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("redis_client_closing")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		limiter = ratelimit.NewRedis(rdb, cfg.RateLimitBurst, constants.RateLimitWindow)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	} else {
		limiter = ratelimit.NewMemory(appCtx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// ── 6. Handlers ───────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(service, requestutil.NewBinder()),
	}

	server := api.NewServer(cfg, log, limiter, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. Errors after startup are returned and handled.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
