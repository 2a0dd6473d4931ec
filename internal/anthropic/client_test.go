package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMessageSendsWirePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if key := r.Header.Get("X-Api-Key"); key != "test-key" {
			t.Fatalf("X-Api-Key = %q", key)
		}
		if version := r.Header.Get("Anthropic-Version"); version != "2023-06-01" {
			t.Fatalf("Anthropic-Version = %q", version)
		}

		var payload struct {
			Model     string    `json:"model"`
			MaxTokens int       `json:"max_tokens"`
			System    string    `json:"system"`
			Messages  []Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Model != "claude-sonnet-4-20250514" {
			t.Fatalf("model = %q", payload.Model)
		}
		if payload.MaxTokens != 1024 {
			t.Fatalf("max_tokens = %d", payload.MaxTokens)
		}
		if payload.System != "answer about basketball" {
			t.Fatalf("system = %q", payload.System)
		}
		if len(payload.Messages) != 1 || len(payload.Messages[0].Content) != 2 {
			t.Fatalf("messages = %+v", payload.Messages)
		}
		if payload.Messages[0].Content[0].Type != "image" {
			t.Fatalf("first block type = %q", payload.Messages[0].Content[0].Type)
		}
		if payload.Messages[0].Content[0].Source.MediaType != "image/png" {
			t.Fatalf("media type = %q", payload.Messages[0].Content[0].Source.MediaType)
		}
		if payload.Messages[0].Content[1].Text != "Who scored the most?" {
			t.Fatalf("text block = %q", payload.Messages[0].Content[1].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"model": "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": "A. Barnes with 22 points\nCONFIDENCE: 0.92"}],
			"usage": {"input_tokens": 100, "output_tokens": 20}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, Model: "claude-sonnet-4-20250514"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	resp, err := client.Message(context.Background(), "test-key", Request{
		System: "answer about basketball",
		Messages: []Message{UserMessage(
			ImageBlock("image/png", EncodeImage([]byte("fake-png"))),
			TextBlock("Who scored the most?"),
		)},
	})
	if err != nil {
		t.Fatalf("Message() error = %v", err)
	}

	answer, confidence := ParseConfidence(FirstText(resp))
	if answer != "A. Barnes with 22 points" {
		t.Fatalf("answer = %q", answer)
	}
	if confidence != 0.92 {
		t.Fatalf("confidence = %v", confidence)
	}
	if resp.Usage.OutputTokens != 20 {
		t.Fatalf("output tokens = %d", resp.Usage.OutputTokens)
	}
}

func TestMessageSurfacesAPIErrorVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, Model: "claude-sonnet-4-20250514"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Message(context.Background(), "bad-key", Request{
		Messages: []Message{UserMessage(TextBlock("hi"))},
	})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Type != "authentication_error" {
		t.Fatalf("Type = %q", apiErr.Type)
	}
	if !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Fatalf("error message = %q, want verbatim api message", err.Error())
	}
}

func TestMessageRequiresAPIKey(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:9", Model: "m"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Message(context.Background(), "  ", Request{}); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	if _, err := NewClient(Config{Model: "m"}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestParseConfidence(t *testing.T) {
	cases := []struct {
		name           string
		input          string
		wantText       string
		wantConfidence float64
	}{
		{
			name:           "trailing line",
			input:          "Duke won 71-69\nCONFIDENCE: 0.95",
			wantText:       "Duke won 71-69",
			wantConfidence: 0.95,
		},
		{
			name:           "missing line uses default",
			input:          "Duke won 71-69",
			wantText:       "Duke won 71-69",
			wantConfidence: DefaultConfidence,
		},
		{
			name:           "unparseable value keeps default but strips line",
			input:          "Duke won\nconfidence: very high",
			wantText:       "Duke won",
			wantConfidence: DefaultConfidence,
		},
		{
			name:           "clamped above one",
			input:          "Duke won\nCONFIDENCE: 3.5",
			wantText:       "Duke won",
			wantConfidence: 1,
		},
		{
			name:           "clamped below zero",
			input:          "Duke won\nCONFIDENCE: -2",
			wantText:       "Duke won",
			wantConfidence: 0,
		},
		{
			name:           "multiline answer preserved",
			input:          "line one\nline two\nCONFIDENCE: 0.5",
			wantText:       "line one\nline two",
			wantConfidence: 0.5,
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			text, confidence := ParseConfidence(testCase.input)
			if text != testCase.wantText {
				t.Fatalf("text = %q, want %q", text, testCase.wantText)
			}
			if confidence != testCase.wantConfidence {
				t.Fatalf("confidence = %v, want %v", confidence, testCase.wantConfidence)
			}
		})
	}
}

func TestFirstTextSkipsNonTextBlocks(t *testing.T) {
	resp := Response{Content: []ContentBlock{
		{Type: "tool_use"},
		{Type: "text", Text: "hello"},
	}}
	if got := FirstText(resp); got != "hello" {
		t.Fatalf("FirstText() = %q", got)
	}
}
