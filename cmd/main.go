package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ainexus/translation-service/config"
	"github.com/ainexus/translation-service/internal/core/ai"
	"github.com/ainexus/translation-service/internal/infra/postgres"
	"github.com/ainexus/translation-service/internal/infra/redis"
	"github.com/ainexus/translation-service/internal/infra/server"
	"github.com/ainexus/translation-service/pkg/logger"
)

func main() {
	mainContext := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defaultLogger, loggerProvider, err := logger.NewObservableLogger(&cfg)
	if err != nil {
		slog.Warn("OTLP logging unavailable, using local logger", slog.String("error", err.Error()))
		defaultLogger = logger.NewLogger(&cfg)
	}
	slog.SetDefault(defaultLogger)

	conn, err := postgres.Init(cfg)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := redis.Init(mainContext, cfg)
	if err != nil {
		slog.Error("failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		slog.Info("Redis hot cache enabled", slog.String("addr", cfg.RedisAddr()))
	}

	modelClient := ai.NewOpenAIClient(cfg.GetModelConfig(), slog.Default())

	srv := server.New(mainContext, &cfg, conn, redisClient, modelClient)
	if srv == nil {
		slog.Error("failed to initialize server")
		os.Exit(1)
	}
	if loggerProvider != nil {
		srv.SetLoggerProvider(loggerProvider)
	}

	srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	srv.Shutdown()
}
