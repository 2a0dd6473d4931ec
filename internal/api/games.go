package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/screenshot"
)

func handleListGames(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STORE_NOT_CONFIGURED", "store dependency is not configured", false, nil)
		return
	}
	if err := requireRole(r, "viewer"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	games, err := deps.Store.ListGames(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to list games", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"games": games,
		"count": len(games),
	})
}

func handleGetGame(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STORE_NOT_CONFIGURED", "store dependency is not configured", false, nil)
		return
	}
	if err := requireRole(r, "viewer"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("id"))
	if gameID == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "GAME_ID_REQUIRED", "game id path parameter is required", false, nil)
		return
	}

	game, err := deps.Store.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, boxscore.ErrGameNotFound) {
			writeError(r.Context(), w, http.StatusNotFound, "GAME_NOT_FOUND", "game was not found", false, map[string]any{"game_id": gameID})
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to load game", true, map[string]any{"details": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func handleGameScreenshot(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil || deps.Screenshots == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "SCREENSHOTS_NOT_CONFIGURED", "screenshot dependencies are not configured", false, nil)
		return
	}
	if err := requireRole(r, "viewer"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("id"))
	if gameID == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "GAME_ID_REQUIRED", "game id path parameter is required", false, nil)
		return
	}

	game, err := deps.Store.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, boxscore.ErrGameNotFound) {
			writeError(r.Context(), w, http.StatusNotFound, "GAME_NOT_FOUND", "game was not found", false, map[string]any{"game_id": gameID})
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "STORE_ERROR", "failed to load game", true, map[string]any{"details": err.Error()})
		return
	}
	if game.ScreenshotPath == "" {
		writeError(r.Context(), w, http.StatusNotFound, "SCREENSHOT_NOT_FOUND", "game has no screenshot", false, map[string]any{"game_id": gameID})
		return
	}

	data, mediaType, err := deps.Screenshots.Fetch(r.Context(), game.ScreenshotPath)
	if err != nil {
		if errors.Is(err, screenshot.ErrScreenshotNotFound) {
			writeError(r.Context(), w, http.StatusNotFound, "SCREENSHOT_NOT_FOUND", "screenshot file was not found", false, map[string]any{"game_id": gameID, "path": game.ScreenshotPath})
			return
		}
		writeError(r.Context(), w, http.StatusInternalServerError, "SCREENSHOT_FETCH_FAILED", "failed to fetch screenshot", true, map[string]any{"details": err.Error()})
		return
	}

	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
