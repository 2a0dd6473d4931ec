package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hoopsight/hoopsight/internal/agent"
	"github.com/hoopsight/hoopsight/internal/auth"
	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/observability"
)

// anthropicKeyHeader carries the user's key from the UI sidebar. It is used
// for the one request and never stored server-side.
const anthropicKeyHeader = "X-Anthropic-Api-Key"

const maxRequestBody = 1 << 20

type askRequest struct {
	GameID   string `json:"game_id"`
	Question string `json:"question"`
}

type askResponse struct {
	Question string       `json:"question"`
	GameID   string       `json:"game_id"`
	Model    string       `json:"model"`
	Vision   agent.Result `json:"vision"`
	Analyst  agent.Result `json:"analyst"`
	TraceID  string       `json:"trace_id"`
}

func handleAsk(cfg config.Config, deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil || deps.VisionAgent == nil || deps.AnalystAgent == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "ASK_NOT_CONFIGURED", "ask dependencies are not configured", false, nil)
		return
	}
	if err := requireRole(r, "asker"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	var request askRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(request.GameID) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "GAME_ID_REQUIRED", "game_id is required", false, nil)
		return
	}
	if strings.TrimSpace(request.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	apiKey := anthropicKeyFromRequest(r, cfg)
	if apiKey == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "MISSING_API_KEY", "anthropic api key is required", false, map[string]any{"header": anthropicKeyHeader})
		return
	}

	game, err := deps.Store.GetGame(r.Context(), strings.TrimSpace(request.GameID))
	if err != nil {
		if errors.Is(err, boxscore.ErrGameNotFound) {
			writeError(r.Context(), w, http.StatusNotFound, "GAME_NOT_FOUND", "game was not found", false, map[string]any{"game_id": request.GameID})
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to load game", true, map[string]any{"details": err.Error()})
		return
	}

	question := strings.TrimSpace(request.Question)

	// Both agents run for every ask so the UI can compare them. Failures
	// ride inside each Result; the request itself still succeeds.
	var wg sync.WaitGroup
	var visionResult, analystResult agent.Result
	wg.Add(2)
	go func() {
		defer wg.Done()
		visionResult = deps.VisionAgent.Ask(r.Context(), apiKey, question, game)
	}()
	go func() {
		defer wg.Done()
		analystResult = deps.AnalystAgent.Ask(r.Context(), apiKey, question, game)
	}()
	wg.Wait()

	writeJSON(w, http.StatusOK, askResponse{
		Question: question,
		GameID:   game.ID,
		Model:    cfg.Anthropic.Model,
		Vision:   visionResult,
		Analyst:  analystResult,
		TraceID:  observability.TraceIDFromContext(r.Context()),
	})
}

func anthropicKeyFromRequest(r *http.Request, cfg config.Config) string {
	if key := strings.TrimSpace(r.Header.Get(anthropicKeyHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(cfg.Anthropic.APIKey)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func requireRole(r *http.Request, role string) error {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return nil
	}
	if identity.HasRole(role) {
		return nil
	}
	return fmt.Errorf("missing required role %q", role)
}
