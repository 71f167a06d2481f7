// Package main Pley Content API
// @title Pley Content API
// @version 1.0
// @description Article lifecycle API with search index and static build propagation
// @contact.name API Support
// @contact.email support@pley.gg
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	_ "github.com/pleygg/content-api/docs"
	"github.com/pleygg/content-api/internal/article"
	"github.com/pleygg/content-api/internal/auth"
	"github.com/pleygg/content-api/internal/buildqueue"
	"github.com/pleygg/content-api/internal/propagation"
	"github.com/pleygg/content-api/internal/router"
	"github.com/pleygg/content-api/internal/search/es"
	"github.com/pleygg/content-api/internal/server"
	"github.com/pleygg/content-api/internal/storage/pg"
	pkgserver "github.com/pleygg/content-api/pkg/server"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	health := pkgserver.NewPingHealthChecker()

	s := server.New(sCfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	ctx := s.Context()

	pool, err := pg.NewConnectionPool(ctx, cfg.Pool)
	if err != nil {
		slog.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	index, err := es.NewIndex(ctx, cfg.Search)
	if err != nil {
		slog.Error("Failed to create search index", "error", err)
		os.Exit(1)
	}

	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		redisOpt = &redis.Options{Addr: cfg.RedisURL}
	}
	redisClient := redis.NewClient(redisOpt)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to ping redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	queue := buildqueue.NewRedisQueueFromClient(redisClient, cfg.BuildQueueKey)
	recorder := propagation.NewRedisRecorder(redisClient, cfg.ReconcileKey)

	oracle, err := auth.LoadPolicyFile(cfg.PolicyPath)
	if err != nil {
		slog.Error("Failed to load access policy", "error", err)
		os.Exit(1)
	}

	engine := article.NewEngine(
		store,
		auth.NewGate(oracle),
		propagation.NewExecutor(index, queue, recorder),
	)

	health.
		Register("postgres", pool.Ping).
		Register("redis", func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })

	router.NewAdminRouter(s.Echo, engine, oracle).Bind()
	router.NewPublicRouter(s.Echo, engine).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
