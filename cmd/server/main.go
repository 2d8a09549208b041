package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"basegraph.app/tenancy/common/id"
	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/common/otel"
	"basegraph.app/tenancy/core/config"
	"basegraph.app/tenancy/core/db"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/http/middleware"
	httprouter "basegraph.app/tenancy/internal/http/router"
	"basegraph.app/tenancy/internal/lock"
	"basegraph.app/tenancy/internal/service"
	"basegraph.app/tenancy/internal/store"
	"basegraph.app/tenancy/internal/store/memory"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const eventsMaxLen = 100_000

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "tenancy starting", "env", cfg.Env, "store", cfg.Store.Backend, "lock", cfg.Lock.Backend)
	if err := id.Init(cfg.SnowflakeNode); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var (
		stores   service.StoreProvider
		txRunner service.TxRunner
	)
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		mem := memory.New()
		stores, txRunner = mem, mem
		slog.WarnContext(ctx, "using in-memory store, data is lost on restart")
	default:
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		slog.InfoContext(ctx, "database connected")

		stores = store.NewStores(database.Queries())
		txRunner = service.NewTxRunner(database)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(redisOpts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.EventsStream)
	}

	var locker lock.Locker
	if cfg.Lock.Backend == config.LockBackendRedis {
		locker, err = lock.NewRedis(redisClient, cfg.Lock.TTL, cfg.Lock.Wait, slog.Default())
		if err != nil {
			slog.ErrorContext(ctx, "failed to create redis locker", "error", err)
			os.Exit(1)
		}
	} else {
		locker = lock.NewLocal(cfg.Lock.Wait)
	}

	publisher := events.NewNoopPublisher()
	if redisClient != nil {
		publisher = events.NewRedisPublisher(redisClient, cfg.Redis.EventsStream, eventsMaxLen, slog.Default())
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create token service", "error", err)
		os.Exit(1)
	}
	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create password hasher", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(stores, txRunner, locker, publisher, hasher, tokens, service.Options{
		StoreTimeout:      cfg.Store.Timeout,
		RosterConcurrency: cfg.RosterConcurrency,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, auth.NewResolver(tokens))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, resolver *auth.Resolver) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{Resolver: resolver})

	return router
}

const banner = `
 _                                   
| |_ ___ _ __   __ _ _ __   ___ _   _ 
| __/ _ \ '_ \ / _' | '_ \ / __| | | |
| ||  __/ | | | (_| | | | | (__| |_| |
 \__\___|_| |_|\__,_|_| |_|\___|\__, |
                                |___/ 
`
