// Package agent implements the two model-backed answer paths that the demo
// compares: the Vision agent reads the boxscore screenshot, the Analyst agent
// generates SQL and runs it against the fixture. Failures are carried inside
// the Result as displayable text, never swallowed, so the UI can show both
// outcomes side by side.
package agent

import (
	"context"

	"github.com/hoopsight/hoopsight/internal/anthropic"
	"github.com/hoopsight/hoopsight/internal/semantic"
)

const (
	AgentVision  = "vision"
	AgentAnalyst = "analyst"
)

// Result is one agent's outcome for a single ask.
type Result struct {
	Agent      string  `json:"agent"`
	Answer     string  `json:"answer,omitempty"`
	Confidence float64 `json:"confidence"`
	DurationMS int64   `json:"time_ms"`
	SQL        string  `json:"sql_query,omitempty"`
	Pattern    string  `json:"pattern_name,omitempty"`
	Screenshot string  `json:"screenshot_path,omitempty"`
	Err        string  `json:"error,omitempty"`
}

// Failed reports whether the run ended in an error instead of an answer.
func (r Result) Failed() bool {
	return r.Err != ""
}

// Messenger sends one Messages API call. The API key travels per call
// because it arrives with each request and is never stored.
type Messenger interface {
	Message(ctx context.Context, apiKey string, req anthropic.Request) (anthropic.Response, error)
}

// Matcher finds a verified query pattern for a question. The Analyst uses it
// to prime its prompt with a known good example.
type Matcher interface {
	Match(question string) (semantic.Match, bool)
}

var _ Messenger = (*anthropic.Client)(nil)
var _ Matcher = (*semantic.Layer)(nil)
