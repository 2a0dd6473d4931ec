package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

const (
	ScreenshotSourceLocal = "local"
	ScreenshotSourceS3    = "s3"
)

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	HTTP          HTTPConfig
	Database      DatabaseConfig
	Screenshots   ScreenshotConfig
	Anthropic     AnthropicConfig
	Query         QueryConfig
	UI            UIConfig
	Observability ObservabilityConfig
	Auth          AuthConfig
}

type ServiceConfig struct {
	Name string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Path string
}

type ScreenshotConfig struct {
	Source string
	Dir    string
	S3     S3Config
}

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Prefix          string
}

type AnthropicConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type QueryConfig struct {
	RowLimit int
}

type UIConfig struct {
	SchemaSampleRows int
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

type AuthConfig struct {
	Required   bool
	StaticKeys string
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("HOOPSIGHT_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid HOOPSIGHT_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "HOOPSIGHT_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_HTTP_ADDR", &cfg.HTTP.Address); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "HOOPSIGHT_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "HOOPSIGHT_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "HOOPSIGHT_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_DB_PATH", &cfg.Database.Path); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_SCREENSHOT_SOURCE", &cfg.Screenshots.Source); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_SCREENSHOT_DIR", &cfg.Screenshots.Dir); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_ENDPOINT", &cfg.Screenshots.S3.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_REGION", &cfg.Screenshots.S3.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_BUCKET", &cfg.Screenshots.S3.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_ACCESS_KEY", &cfg.Screenshots.S3.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_SECRET_KEY", &cfg.Screenshots.S3.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "HOOPSIGHT_S3_USE_SSL", &cfg.Screenshots.S3.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_S3_PREFIX", &cfg.Screenshots.S3.Prefix); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_ANTHROPIC_BASE_URL", &cfg.Anthropic.BaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey); err != nil {
		return Config{}, err
	}
	if cfg.Anthropic.APIKey == "" {
		// Unprefixed fallback so a plain `export ANTHROPIC_API_KEY=...` works.
		if err := applyString(lookup, "ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey); err != nil {
			return Config{}, err
		}
	}
	if err := applyString(lookup, "HOOPSIGHT_ANTHROPIC_MODEL", &cfg.Anthropic.Model); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "HOOPSIGHT_ANTHROPIC_MAX_TOKENS", &cfg.Anthropic.MaxTokens); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "HOOPSIGHT_ANTHROPIC_TIMEOUT", &cfg.Anthropic.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "HOOPSIGHT_QUERY_ROW_LIMIT", &cfg.Query.RowLimit); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "HOOPSIGHT_UI_SCHEMA_SAMPLE_ROWS", &cfg.UI.SchemaSampleRows); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "HOOPSIGHT_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "HOOPSIGHT_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "HOOPSIGHT_AUTH_REQUIRED", &cfg.Auth.Required); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "HOOPSIGHT_AUTH_STATIC_KEYS", &cfg.Auth.StaticKeys); err != nil {
		return Config{}, err
	}

	if cfg.Service.Name == "" {
		return Config{}, fmt.Errorf("service name is required")
	}
	if cfg.HTTP.Address == "" {
		return Config{}, fmt.Errorf("http address is required")
	}
	if cfg.Database.Path == "" {
		return Config{}, fmt.Errorf("database path is required")
	}
	switch cfg.Screenshots.Source {
	case ScreenshotSourceLocal:
		if cfg.Screenshots.Dir == "" {
			return Config{}, fmt.Errorf("screenshot dir is required for the local source")
		}
	case ScreenshotSourceS3:
		if cfg.Screenshots.S3.Endpoint == "" {
			return Config{}, fmt.Errorf("s3 endpoint is required for the s3 source")
		}
		if cfg.Screenshots.S3.Bucket == "" {
			return Config{}, fmt.Errorf("s3 bucket is required for the s3 source")
		}
	default:
		return Config{}, fmt.Errorf("invalid HOOPSIGHT_SCREENSHOT_SOURCE: %q", cfg.Screenshots.Source)
	}
	if cfg.Anthropic.BaseURL == "" {
		return Config{}, fmt.Errorf("anthropic base url is required")
	}
	if cfg.Anthropic.Model == "" {
		return Config{}, fmt.Errorf("anthropic model is required")
	}
	if cfg.Anthropic.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("anthropic max tokens must be > 0")
	}
	if cfg.Anthropic.Timeout <= 0 {
		return Config{}, fmt.Errorf("anthropic timeout must be > 0")
	}
	if cfg.Query.RowLimit <= 0 {
		return Config{}, fmt.Errorf("query row limit must be > 0")
	}
	if cfg.UI.SchemaSampleRows <= 0 {
		return Config{}, fmt.Errorf("schema sample rows must be > 0")
	}

	cfg.Anthropic.BaseURL = strings.TrimRight(cfg.Anthropic.BaseURL, "/")
	return cfg, nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "hoopsight"},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "ncaa_basketball.db",
		},
		Screenshots: ScreenshotConfig{
			Source: ScreenshotSourceLocal,
			Dir:    "screenshots",
			S3: S3Config{
				Endpoint:        "localhost:9000",
				Region:          "us-east-1",
				Bucket:          "hoopsight",
				AccessKeyID:     "minio",
				SecretAccessKey: "miniostorage",
				UseSSL:          false,
				Prefix:          "screenshots",
			},
		},
		Anthropic: AnthropicConfig{
			BaseURL:   "https://api.anthropic.com",
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 1024,
			Timeout:   60 * time.Second,
		},
		Query: QueryConfig{
			RowLimit: 50,
		},
		UI: UIConfig{
			SchemaSampleRows: 5,
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  false,
		},
		Auth: AuthConfig{
			Required:   false,
			StaticKeys: "",
		},
	}

	switch profile {
	case ProfileTest:
		cfg.HTTP.Address = ":18080"
		cfg.Observability.LogLevel = slog.LevelWarn
		cfg.Auth.Required = false
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.Observability.LogJSON = true
		cfg.Auth.Required = true
		cfg.Screenshots.S3.UseSSL = true
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
