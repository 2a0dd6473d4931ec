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

	"github.com/joho/godotenv"

	"github.com/hoopsight/hoopsight/internal/agent"
	"github.com/hoopsight/hoopsight/internal/anthropic"
	"github.com/hoopsight/hoopsight/internal/api"
	"github.com/hoopsight/hoopsight/internal/api/uistatic"
	"github.com/hoopsight/hoopsight/internal/auth"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/observability"
	"github.com/hoopsight/hoopsight/internal/screenshot"
	"github.com/hoopsight/hoopsight/internal/semantic"

	sqlitestore "github.com/hoopsight/hoopsight/internal/boxscore/sqlite"
)

func main() {
	// A .env beside the binary mirrors how the demo is usually launched;
	// absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("hoopsight-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	store, err := sqlitestore.Open(cfg.Database.Path, cfg.Query.RowLimit)
	if err != nil {
		logger.Error("failed to open boxscore database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	source, err := buildScreenshotSource(cfg)
	if err != nil {
		logger.Error("failed to initialize screenshot source", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := anthropic.NewClient(anthropic.Config{
		BaseURL:   cfg.Anthropic.BaseURL,
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		Timeout:   cfg.Anthropic.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize anthropic client", slog.Any("error", err))
		os.Exit(1)
	}

	layer := semantic.NewLayer(store)
	vision, err := agent.NewVision(client, source, logger)
	if err != nil {
		logger.Error("failed to initialize vision agent", slog.Any("error", err))
		os.Exit(1)
	}
	analyst, err := agent.NewAnalyst(client, store, layer, logger)
	if err != nil {
		logger.Error("failed to initialize analyst agent", slog.Any("error", err))
		os.Exit(1)
	}

	deps := api.Dependencies{
		Logger:       logger,
		Store:        store,
		VisionAgent:  vision,
		AnalystAgent: analyst,
		Semantic:     layer,
		Screenshots:  source,
		UI:           uistatic.Handler(),
		Readiness: api.CombineReadinessChecks(
			api.CheckStore(store),
			api.CheckScreenshots(source),
		),
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server",
			slog.String("addr", cfg.HTTP.Address),
			slog.String("db", cfg.Database.Path),
			slog.String("screenshot_source", cfg.Screenshots.Source),
			slog.String("model", cfg.Anthropic.Model))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

func buildScreenshotSource(cfg config.Config) (screenshot.Source, error) {
	if cfg.Screenshots.Source == config.ScreenshotSourceS3 {
		return screenshot.NewS3Source(screenshot.Config{
			Endpoint:        cfg.Screenshots.S3.Endpoint,
			Region:          cfg.Screenshots.S3.Region,
			Bucket:          cfg.Screenshots.S3.Bucket,
			AccessKeyID:     cfg.Screenshots.S3.AccessKeyID,
			SecretAccessKey: cfg.Screenshots.S3.SecretAccessKey,
			UseSSL:          cfg.Screenshots.S3.UseSSL,
			Prefix:          cfg.Screenshots.S3.Prefix,
		})
	}
	return screenshot.NewDirSource(cfg.Screenshots.Dir)
}
