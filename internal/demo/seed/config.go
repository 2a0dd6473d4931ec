package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Config struct {
	DBPath        string
	ScreenshotDir string
	Games         int
	Seed          int64
	Force         bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:        "ncaa_basketball.db",
		ScreenshotDir: "screenshots",
		Games:         8,
		Seed:          time.Now().UTC().UnixNano(),
		Force:         false,
	}
}

func LoadConfigFromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	cfg := DefaultConfig()
	if err := applyString(lookup, "HOOPSIGHT_SEED_DB_PATH", &cfg.DBPath); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_SEED_SCREENSHOT_DIR", &cfg.ScreenshotDir); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "HOOPSIGHT_SEED_GAMES", &cfg.Games); err != nil {
		return Config{}, err
	}
	if err := applyInt64(lookup, "HOOPSIGHT_SEED_SEED", &cfg.Seed); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "HOOPSIGHT_SEED_FORCE", &cfg.Force); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, fmt.Errorf("HOOPSIGHT_SEED_DB_PATH is required")
	}
	if strings.TrimSpace(cfg.ScreenshotDir) == "" {
		return Config{}, fmt.Errorf("HOOPSIGHT_SEED_SCREENSHOT_DIR is required")
	}
	if cfg.Games <= 0 {
		return Config{}, fmt.Errorf("HOOPSIGHT_SEED_GAMES must be > 0")
	}
	if cfg.Games > maxGames {
		return Config{}, fmt.Errorf("HOOPSIGHT_SEED_GAMES must be <= %d", maxGames)
	}

	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.ScreenshotDir = strings.TrimSpace(cfg.ScreenshotDir)
	return cfg, nil
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func applyInt64(lookup LookupFunc, key string, dst *int64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}
