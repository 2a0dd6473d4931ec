package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hoopsight/hoopsight/internal/agent"
	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/config"
)

func TestAskRunsBothAgents(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{
		"HOOPSIGHT_ANTHROPIC_MODEL": "claude-sonnet-4-20250514",
	}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	vision := &fakeAsker{result: agent.Result{Agent: agent.AgentVision, Answer: "ALA won 82-78", Confidence: 0.92}}
	analyst := &fakeAsker{result: agent.Result{Agent: agent.AgentAnalyst, Answer: "A. Barnes - 22 points", Confidence: 0.9, SQL: "SELECT 1"}}

	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  vision,
		AnalystAgent: analyst,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, map[string]any{
		"game_id":  "g1",
		"question": "What was the final score?",
	}))
	req.Header.Set("X-Anthropic-Api-Key", "sk-ant-user")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}

	if vision.calls != 1 || analyst.calls != 1 {
		t.Fatalf("agent calls = %d vision, %d analyst", vision.calls, analyst.calls)
	}
	if vision.lastKey != "sk-ant-user" || analyst.lastKey != "sk-ant-user" {
		t.Fatalf("agent keys = %q, %q", vision.lastKey, analyst.lastKey)
	}
	if vision.lastGame.ID != "g1" {
		t.Fatalf("vision game = %q", vision.lastGame.ID)
	}

	var body struct {
		Question string       `json:"question"`
		GameID   string       `json:"game_id"`
		Model    string       `json:"model"`
		Vision   agent.Result `json:"vision"`
		Analyst  agent.Result `json:"analyst"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body.Model != "claude-sonnet-4-20250514" {
		t.Fatalf("model = %q", body.Model)
	}
	if body.Vision.Answer != "ALA won 82-78" {
		t.Fatalf("vision answer = %q", body.Vision.Answer)
	}
	if body.Analyst.SQL != "SELECT 1" {
		t.Fatalf("analyst sql = %q", body.Analyst.SQL)
	}
}

func TestAskFallsBackToConfiguredKey(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{
		"HOOPSIGHT_ANTHROPIC_API_KEY": "sk-ant-server",
	}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	vision := &fakeAsker{}
	analyst := &fakeAsker{}
	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  vision,
		AnalystAgent: analyst,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, map[string]any{
		"game_id":  "g1",
		"question": "Who was the top scorer?",
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if vision.lastKey != "sk-ant-server" {
		t.Fatalf("vision key = %q", vision.lastKey)
	}
}

func TestAskMissingAPIKey(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	vision := &fakeAsker{}
	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  vision,
		AnalystAgent: &fakeAsker{},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, map[string]any{
		"game_id":  "g1",
		"question": "Who was the top scorer?",
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["error_code"] != "MISSING_API_KEY" {
		t.Fatalf("error_code = %v", body["error_code"])
	}
	if vision.calls != 0 {
		t.Fatalf("vision calls = %d", vision.calls)
	}
}

func TestAskUnknownGame(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  &fakeAsker{},
		AnalystAgent: &fakeAsker{},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, map[string]any{
		"game_id":  "missing",
		"question": "Who was the top scorer?",
	}))
	req.Header.Set("X-Anthropic-Api-Key", "sk-ant-user")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestAskRejectsUnknownFields(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  &fakeAsker{},
		AnalystAgent: &fakeAsker{},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, map[string]any{
		"game_id":  "g1",
		"question": "Who was the top scorer?",
		"bogus":    true,
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["error_code"] != "INVALID_JSON" {
		t.Fatalf("error_code = %v", body["error_code"])
	}
}

func TestAskValidatesFields(t *testing.T) {
	cfg, err := config.Load("hoopsight-api", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	h := NewHandler(cfg, Dependencies{
		Store:        newFakeStore(),
		VisionAgent:  &fakeAsker{},
		AnalystAgent: &fakeAsker{},
	})

	cases := []struct {
		name     string
		payload  map[string]any
		wantCode string
	}{
		{"missing game id", map[string]any{"question": "Who won?"}, "GAME_ID_REQUIRED"},
		{"missing question", map[string]any{"game_id": "g1"}, "QUESTION_REQUIRED"},
		{"blank question", map[string]any{"game_id": "g1", "question": "   "}, "QUESTION_REQUIRED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/ask", jsonBody(t, tc.payload)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rr.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("json decode failed: %v", err)
			}
			if body["error_code"] != tc.wantCode {
				t.Fatalf("error_code = %v, want %s", body["error_code"], tc.wantCode)
			}
		})
	}
}

// fakeAsker records the arguments of the last Ask call.
type fakeAsker struct {
	result       agent.Result
	calls        int
	lastKey      string
	lastQuestion string
	lastGame     boxscore.Game
}

func (f *fakeAsker) Ask(_ context.Context, apiKey, question string, game boxscore.Game) agent.Result {
	f.calls++
	f.lastKey = apiKey
	f.lastQuestion = question
	f.lastGame = game
	return f.result
}

func jsonBody(t *testing.T, payload map[string]any) io.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return bytes.NewReader(data)
}
