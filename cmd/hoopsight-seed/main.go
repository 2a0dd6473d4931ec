package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hoopsight/hoopsight/internal/demo/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := seed.LoadConfigFromEnv(os.LookupEnv)
	if err != nil {
		slog.Error("failed to load seed config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("seeding demo fixture",
		slog.String("db", cfg.DBPath),
		slog.String("screenshot_dir", cfg.ScreenshotDir),
		slog.Int("games", cfg.Games),
		slog.Int64("seed", cfg.Seed),
		slog.Bool("force", cfg.Force))

	summary, err := seed.NewSeeder(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	if summary.Skipped {
		logger.Info("fixture already present, nothing to do", slog.Int("games", summary.Games))
		return
	}
	logger.Info("fixture ready",
		slog.Int("games", summary.Games),
		slog.Int("players", summary.Players),
		slog.Int("screenshots", summary.Screenshots))
}
