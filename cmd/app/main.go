package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduflow/eduflow-server/internal/bootstrap"
	"github.com/eduflow/eduflow-server/internal/http/routes"
	"github.com/eduflow/eduflow-server/pkg/config"
	"github.com/eduflow/eduflow-server/pkg/database"
	"github.com/eduflow/eduflow-server/pkg/logger"
	"github.com/eduflow/eduflow-server/pkg/metrics"
	"github.com/eduflow/eduflow-server/pkg/middleware"
	"github.com/eduflow/eduflow-server/pkg/session"
	"github.com/eduflow/eduflow-server/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(ctx, cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("database close failed", slog.String("error", err.Error()))
		}
	}()

	if err := bootstrap.SeedCategories(db, appLogger); err != nil {
		appLogger.Error("category seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sessions = redisStore
		appLogger.Info("session store backed by redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemoryStore()
		appLogger.Warn("no redis configured, sessions held in process memory")
	}
	defer sessions.Close()

	storageClient, err := storage.New(cfg.Storage, appLogger)
	if err != nil {
		appLogger.Error("storage client initialization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := bootstrap.ProvisionBuckets(storageClient, appLogger); err != nil {
		appLogger.Error("bucket provisioning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := gin.New()

	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(50 * 1024 * 1024)) // uploads go through here
	router.Use(metrics.Middleware())

	// 100 requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(rateLimiter.Middleware())

	routes.Register(router, cfg, db, appLogger, sessions, storageClient)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
