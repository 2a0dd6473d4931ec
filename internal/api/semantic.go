package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/observability"
	"github.com/hoopsight/hoopsight/internal/semantic"
)

type semanticRequest struct {
	GameID   string `json:"game_id"`
	Question string `json:"question"`
}

type semanticResponse struct {
	GameID   string `json:"game_id"`
	Question string `json:"question"`
	semantic.Answer
	TraceID string `json:"trace_id"`
}

func handleSemantic(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil || deps.Semantic == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "SEMANTIC_NOT_CONFIGURED", "semantic dependencies are not configured", false, nil)
		return
	}
	if err := requireRole(r, "asker"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	var request semanticRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid semantic request body", false, map[string]any{"details": err.Error()})
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

	gameID := strings.TrimSpace(request.GameID)
	if _, err := deps.Store.GetGame(r.Context(), gameID); err != nil {
		if errors.Is(err, boxscore.ErrGameNotFound) {
			writeError(r.Context(), w, http.StatusNotFound, "GAME_NOT_FOUND", "game was not found", false, map[string]any{"game_id": gameID})
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to load game", true, map[string]any{"details": err.Error()})
		return
	}

	question := strings.TrimSpace(request.Question)
	answer, ok := deps.Semantic.Ask(r.Context(), gameID, question)
	if !ok {
		writeError(r.Context(), w, http.StatusNotFound, "NO_PATTERN_MATCH", "no semantic pattern matched the question", false, map[string]any{"question": question})
		return
	}

	writeJSON(w, http.StatusOK, semanticResponse{
		GameID:   gameID,
		Question: question,
		Answer:   answer,
		TraceID:  observability.TraceIDFromContext(r.Context()),
	})
}
