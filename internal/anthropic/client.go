// Package anthropic is a minimal client for the Anthropic Messages API,
// covering the text and base64-image content blocks the agents send.
package anthropic

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hoopsight/hoopsight/internal/observability"
)

const (
	apiVersion = "2023-06-01"

	// DefaultConfidence is assumed when a model reply carries no
	// CONFIDENCE line.
	DefaultConfidence = 0.85
)

type Config struct {
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type Client struct {
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:     strings.TrimSpace(cfg.Model),
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *ImageSource `json:"source,omitempty"`
}

type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type Request struct {
	System   string
	Messages []Message
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Response struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
	Usage      Usage          `json:"usage"`
}

// APIError is a non-2xx reply from the Messages endpoint. The message is kept
// verbatim so the UI can show exactly what the API said.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("anthropic api error status=%d type=%s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("anthropic api error status=%d: %s", e.StatusCode, e.Message)
}

// Message sends one Messages API call. The key is per-call because it arrives
// with each request from the UI sidebar and is never stored.
func (c *Client) Message(ctx context.Context, apiKey string, req Request) (Response, error) {
	if strings.TrimSpace(apiKey) == "" {
		return Response{}, fmt.Errorf("api key is required")
	}

	payload := map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages":   req.Messages,
	}
	if strings.TrimSpace(req.System) != "" {
		payload["system"] = req.System
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal messages payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build messages request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		observability.ObserveModelRequest(c.model, 0, time.Since(start))
		return Response{}, fmt.Errorf("request messages completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	observability.ObserveModelRequest(c.model, resp.StatusCode, time.Since(start))

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read messages response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Response{}, decodeAPIError(resp.StatusCode, rawRespBody)
	}

	var parsed Response
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Response{}, fmt.Errorf("decode messages response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return Response{}, fmt.Errorf("model returned no content")
	}
	return parsed, nil
}

func decodeAPIError(status int, body []byte) error {
	var envelope struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{StatusCode: status, Type: envelope.Error.Type, Message: envelope.Error.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ImageBlock builds a base64 image content block.
func ImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{
		Type:   "image",
		Source: &ImageSource{Type: "base64", MediaType: mediaType, Data: data},
	}
}

// UserMessage wraps content blocks into a single user-role message.
func UserMessage(blocks ...ContentBlock) Message {
	return Message{Role: "user", Content: blocks}
}

// FirstText returns the first text block of a response, or "".
func FirstText(resp Response) string {
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

// EncodeImage encodes raw image bytes for a base64 image source.
func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ParseConfidence extracts the trailing "CONFIDENCE: 0.XX" line a prompt asks
// the model to append. The line is removed from the returned answer, the
// value is clamped to [0, 1], and DefaultConfidence applies when the line is
// missing or unparseable.
func ParseConfidence(text string) (string, float64) {
	confidence := DefaultConfidence
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(line)), "CONFIDENCE:") {
			_, raw, _ := strings.Cut(line, ":")
			if value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				confidence = value
			}
			continue
		}
		kept = append(kept, line)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), confidence
}
