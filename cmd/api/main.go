package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neonclouds/neonclouds-backend/api/routes"
	"github.com/neonclouds/neonclouds-backend/internal/assistant"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/internal/studio"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
	"github.com/neonclouds/neonclouds-backend/pkg/env"
	"github.com/neonclouds/neonclouds-backend/pkg/gemini"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
	"github.com/neonclouds/neonclouds-backend/pkg/metrics"
	"github.com/neonclouds/neonclouds-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	collabMetrics := metrics.NewCollaboratorMetrics(registry)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis not configured, AI rate limiting disabled")
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini, logg, collabMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create gemini client", err)
		os.Exit(1)
	}

	assistantService, err := assistant.NewService(geminiClient, logg)
	if err != nil {
		logg.Error(ctx, "failed to create assistant service", err)
		os.Exit(1)
	}

	studioService, err := studio.NewService(geminiClient, cfg.Studio, logg)
	if err != nil {
		logg.Error(ctx, "failed to create studio service", err)
		os.Exit(1)
	}

	sessions := session.NewStore(cfg.Session, logg)
	go sessions.RunSweeper(ctx)

	router := routes.NewRouter(routes.Params{
		Config:           cfg,
		Logger:           logg,
		Catalog:          catalog.New(),
		Sessions:         sessions,
		AssistantService: assistantService,
		StudioService:    studioService,
		RedisClient:      redisClient,
		HTTPMetrics:      httpMetrics,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
