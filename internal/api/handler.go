package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoopsight/hoopsight/internal/agent"
	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/observability"
	"github.com/hoopsight/hoopsight/internal/screenshot"
	"github.com/hoopsight/hoopsight/internal/semantic"
)

type ReadinessCheck func(ctx context.Context) error

// Asker is one agent's answer entry point. Both agents satisfy it, which
// keeps the ask handler symmetric and lets tests swap in fakes.
type Asker interface {
	Ask(ctx context.Context, apiKey, question string, game boxscore.Game) agent.Result
}

// SemanticAnswerer is the offline pattern path.
type SemanticAnswerer interface {
	Ask(ctx context.Context, gameID, question string) (semantic.Answer, bool)
}

type Dependencies struct {
	Logger            *slog.Logger
	Readiness         ReadinessCheck
	AuthMiddleware    func(http.Handler) http.Handler
	DependencyTimeout time.Duration
	Store             boxscore.Store
	VisionAgent       Asker
	AnalystAgent      Asker
	Semantic          SemanticAnswerer
	Screenshots       screenshot.Source
	UI                http.Handler
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": cfg.Service.Name})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := deps.DependencyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeError(r.Context(), w, http.StatusServiceUnavailable, "NOT_READY", err.Error(), true, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	protected := http.NewServeMux()
	protected.HandleFunc("GET /v1/games", func(w http.ResponseWriter, r *http.Request) {
		handleListGames(deps, w, r)
	})
	protected.HandleFunc("GET /v1/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetGame(deps, w, r)
	})
	protected.HandleFunc("GET /v1/games/{id}/screenshot", func(w http.ResponseWriter, r *http.Request) {
		handleGameScreenshot(deps, w, r)
	})
	protected.HandleFunc("GET /v1/schema", func(w http.ResponseWriter, r *http.Request) {
		handleSchema(cfg, deps, w, r)
	})
	protected.HandleFunc("GET /v1/questions", func(w http.ResponseWriter, r *http.Request) {
		handleQuestions(w, r)
	})
	protected.HandleFunc("POST /v1/ask", func(w http.ResponseWriter, r *http.Request) {
		handleAsk(cfg, deps, w, r)
	})
	protected.HandleFunc("POST /v1/semantic", func(w http.ResponseWriter, r *http.Request) {
		handleSemantic(deps, w, r)
	})

	var protectedHandler http.Handler = protected
	if cfg.Auth.Required {
		if deps.AuthMiddleware == nil {
			if deps.Logger != nil {
				deps.Logger.Error("auth required but auth middleware missing")
			}
			protectedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(r.Context(), w, http.StatusInternalServerError, "AUTH_MIDDLEWARE_MISSING", "auth middleware is required by configuration", false, nil)
			})
		} else {
			protectedHandler = deps.AuthMiddleware(protectedHandler)
		}
	}
	mux.Handle("GET /v1/games", protectedHandler)
	mux.Handle("GET /v1/games/{id}", protectedHandler)
	mux.Handle("GET /v1/games/{id}/screenshot", protectedHandler)
	mux.Handle("GET /v1/schema", protectedHandler)
	mux.Handle("GET /v1/questions", protectedHandler)
	mux.Handle("POST /v1/ask", protectedHandler)
	mux.Handle("POST /v1/semantic", protectedHandler)
	if deps.UI != nil {
		mux.Handle("GET /{path...}", deps.UI)
	}

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

// CheckStore pings the fixture database.
func CheckStore(store boxscore.Store) ReadinessCheck {
	return func(ctx context.Context) error {
		if store == nil {
			return errors.New("store is not configured")
		}
		return store.Ping(ctx)
	}
}

// CheckScreenshots verifies the screenshot source is reachable.
func CheckScreenshots(source screenshot.Source) ReadinessCheck {
	return func(ctx context.Context) error {
		if source == nil {
			return errors.New("screenshot source is not configured")
		}
		return source.Check(ctx)
	}
}

func CombineReadinessChecks(checks ...ReadinessCheck) ReadinessCheck {
	filtered := make([]ReadinessCheck, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return func(ctx context.Context) error {
		for _, check := range filtered {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, retryable bool, extra map[string]any) {
	writeJSON(w, status, map[string]any{
		"error_code": code,
		"message":    message,
		"retryable":  retryable,
		"context":    extra,
		"trace_id":   observability.TraceIDFromContext(ctx),
	})
}
