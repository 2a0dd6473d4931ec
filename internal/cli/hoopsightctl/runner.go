package hoopsightctl

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Options struct {
	BaseURL      string
	APIKey       string
	AnthropicKey string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Stdout       io.Writer
	Stderr       io.Writer
}

// request is a fully resolved API call: the ask and semantic commands carry a
// JSON body, and only ask forwards the Anthropic key header.
type request struct {
	method       string
	path         string
	body         []byte
	anthropicKey string
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("hoopsightctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	baseURL := fs.String("base-url", firstNonEmpty(defaults.BaseURL, "http://localhost:8080"), "HoopSight API base URL")
	apiKey := fs.String("api-key", defaults.APIKey, "API key for authenticated requests")
	anthropicKey := fs.String("anthropic-key", defaults.AnthropicKey, "Anthropic API key forwarded on ask requests")
	timeout := fs.Duration("timeout", durationOr(defaults.Timeout, 10*time.Second), "HTTP timeout (e.g. 10s)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		writeUsage(stderr)
		return 2
	}

	client := defaults.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: *timeout}
	}

	command := strings.TrimSpace(fs.Arg(0))
	req, exitCode := buildRequest(command, fs.Args()[1:], *anthropicKey, stderr)
	if req == nil {
		return exitCode
	}

	endpoint := strings.TrimRight(*baseURL, "/") + req.path
	status, responseBody, err := doRequest(ctx, client, req, endpoint, *apiKey)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "request failed: %v\n", err)
		return 1
	}

	if status >= 400 {
		_, _ = fmt.Fprintf(stderr, "http %d: %s\n", status, strings.TrimSpace(string(responseBody)))
		return 1
	}

	if pretty, ok := prettyJSON(responseBody); ok {
		_, _ = fmt.Fprintln(stdout, pretty)
		return 0
	}
	if len(responseBody) > 0 {
		_, _ = fmt.Fprintln(stdout, string(responseBody))
	}
	return 0
}

func buildRequest(command string, rest []string, anthropicKey string, stderr io.Writer) (*request, int) {
	switch command {
	case "health":
		return &request{method: http.MethodGet, path: "/healthz"}, 0
	case "games":
		return &request{method: http.MethodGet, path: "/v1/games"}, 0
	case "game":
		if len(rest) != 1 || strings.TrimSpace(rest[0]) == "" {
			_, _ = fmt.Fprintln(stderr, "usage: hoopsightctl game <id>")
			return nil, 2
		}
		return &request{method: http.MethodGet, path: "/v1/games/" + url.PathEscape(strings.TrimSpace(rest[0]))}, 0
	case "schema":
		fs := flag.NewFlagSet("schema", flag.ContinueOnError)
		fs.SetOutput(stderr)
		samples := fs.Int("samples", -1, "sample rows to include per table")
		if err := fs.Parse(rest); err != nil {
			return nil, 2
		}
		path := "/v1/schema"
		if *samples >= 0 {
			path += "?sample_rows=" + strconv.Itoa(*samples)
		}
		return &request{method: http.MethodGet, path: path}, 0
	case "questions":
		return &request{method: http.MethodGet, path: "/v1/questions"}, 0
	case "ask", "semantic":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		fs.SetOutput(stderr)
		gameID := fs.String("game", "", "game ID")
		question := fs.String("question", "", "question to ask")
		key := anthropicKey
		if command == "ask" {
			fs.StringVar(&key, "anthropic-key", anthropicKey, "Anthropic API key for this request")
		}
		if err := fs.Parse(rest); err != nil {
			return nil, 2
		}
		if strings.TrimSpace(*gameID) == "" || strings.TrimSpace(*question) == "" {
			_, _ = fmt.Fprintf(stderr, "usage: hoopsightctl %s -game <id> -question <text>\n", command)
			return nil, 2
		}
		body, err := json.Marshal(map[string]string{
			"game_id":  strings.TrimSpace(*gameID),
			"question": strings.TrimSpace(*question),
		})
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "encode request: %v\n", err)
			return nil, 1
		}
		req := &request{method: http.MethodPost, path: "/v1/" + command, body: body}
		if command == "ask" {
			req.anthropicKey = strings.TrimSpace(key)
		}
		return req, 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return nil, 2
	}
}

func doRequest(ctx context.Context, client *http.Client, r *request, endpoint, apiKey string) (int, []byte, error) {
	var body io.Reader
	if len(r.body) > 0 {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if len(r.body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(apiKey) != "" {
		req.Header.Set("X-API-Key", strings.TrimSpace(apiKey))
	}
	if r.anthropicKey != "" {
		req.Header.Set("X-Anthropic-Api-Key", r.anthropicKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func prettyJSON(raw []byte) (string, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", false
	}
	var anyValue any
	if err := json.Unmarshal(raw, &anyValue); err != nil {
		return "", false
	}
	formatted, err := json.MarshalIndent(anyValue, "", "  ")
	if err != nil {
		return "", false
	}
	return string(formatted), true
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: hoopsightctl [flags] <command>")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "commands:")
	_, _ = fmt.Fprintln(w, "  games                                 GET /v1/games")
	_, _ = fmt.Fprintln(w, "  game <id>                             GET /v1/games/{id}")
	_, _ = fmt.Fprintln(w, "  schema [-samples n]                   GET /v1/schema")
	_, _ = fmt.Fprintln(w, "  questions                             GET /v1/questions")
	_, _ = fmt.Fprintln(w, "  ask -game <id> -question <text>       POST /v1/ask")
	_, _ = fmt.Fprintln(w, "  semantic -game <id> -question <text>  POST /v1/semantic")
	_, _ = fmt.Fprintln(w, "  health                                GET /healthz")
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
