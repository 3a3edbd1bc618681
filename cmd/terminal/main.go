package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/pdv/terminal/internal/application/catalog"
	checkoutapp "github.com/pdv/terminal/internal/application/checkout"
	tenantapp "github.com/pdv/terminal/internal/application/tenant"
	"github.com/pdv/terminal/internal/infrastructure/api"
	"github.com/pdv/terminal/internal/infrastructure/cache"
	"github.com/pdv/terminal/internal/infrastructure/config"
	"github.com/pdv/terminal/internal/infrastructure/event"
	"github.com/pdv/terminal/internal/infrastructure/logger"
	"github.com/pdv/terminal/internal/infrastructure/session"
	"github.com/pdv/terminal/internal/interfaces/http/handler"
	"github.com/pdv/terminal/internal/interfaces/http/middleware"
	"github.com/pdv/terminal/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PDV terminal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// Durable session state (active tenant, token)
	sessions, err := session.NewSQLiteStore(cfg.Session.DBPath)
	if err != nil {
		log.Fatal("Failed to open session store", zap.Error(err))
	}

	// Event bus
	bus := event.NewInMemoryEventBus(log)

	// Request gateway to the remote backend
	gateway := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, sessions, log)

	// Snapshot cache: Redis when configured, otherwise a no-op
	var snapshotCache cache.SnapshotCache = cache.NewNoopSnapshotCache()
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		snapshotCache = cache.NewRedisSnapshotCache(redisClient, cfg.Catalog.CacheTTL, log)
		log.Info("Snapshot cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Application services
	loader := catalogapp.NewLoader(gateway, snapshotCache, sessions, cfg.Catalog.PollInterval, log)
	bus.Subscribe(loader)

	engine := checkoutapp.NewService(gateway, sessions, bus, loader, log)
	tenants := tenantapp.NewService(gateway, sessions, bus, log)

	// Background snapshot refresh
	loaderCtx, stopLoader := context.WithCancel(context.Background())
	go loader.Start(loaderCtx)

	// HTTP facade
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginEngine := gin.New()
	ginEngine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	r := router.NewRouter(ginEngine)
	r.Register(handler.NewCheckoutHandler(engine, loader))
	r.Register(handler.NewCatalogHandler(loader, gateway))
	r.Register(handler.NewTenantHandler(tenants))
	r.Register(handler.NewAuthHandler(gateway, sessions))
	r.Setup()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      ginEngine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Facade listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	stopLoader()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Terminal exited gracefully")
}
