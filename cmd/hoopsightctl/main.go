package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hoopsight/hoopsight/internal/cli/hoopsightctl"
)

func main() {
	// Demo setups keep keys in a local .env; a missing file is fine.
	_ = godotenv.Load()

	timeout := parseDurationWithDefault(strings.TrimSpace(os.Getenv("HOOPSIGHT_CLI_TIMEOUT")), 10*time.Second)
	options := hoopsightctl.Options{
		BaseURL:      envOr("HOOPSIGHT_API_URL", "http://localhost:8080"),
		APIKey:       strings.TrimSpace(os.Getenv("HOOPSIGHT_API_KEY")),
		AnthropicKey: envOr("HOOPSIGHT_ANTHROPIC_API_KEY", strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))),
		Timeout:      timeout,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}

	code := hoopsightctl.Run(context.Background(), os.Args[1:], options)
	os.Exit(code)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseDurationWithDefault(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid HOOPSIGHT_CLI_TIMEOUT %q; using %s\n", raw, fallback)
		return fallback
	}
	return parsed
}
