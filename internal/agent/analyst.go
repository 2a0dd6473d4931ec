package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hoopsight/hoopsight/internal/anthropic"
	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/observability"
)

// Analyst answers questions by asking the model for a SQL query, executing
// it read-only against the fixture, and formatting the rows.
type Analyst struct {
	client  Messenger
	store   boxscore.Store
	matcher Matcher
	log     *slog.Logger
}

// NewAnalyst builds the Analyst agent. The matcher is optional; when present
// a matched pattern's verified query is embedded in the prompt.
func NewAnalyst(client Messenger, store boxscore.Store, matcher Matcher, logger *slog.Logger) (*Analyst, error) {
	if client == nil {
		return nil, fmt.Errorf("messenger is required")
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyst{client: client, store: store, matcher: matcher, log: logger}, nil
}

// Ask runs one text-to-SQL round trip for a game. The returned Result always
// has the agent name and elapsed time filled in, with any failure as error
// text and the generated SQL attached when one existed.
func (a *Analyst) Ask(ctx context.Context, apiKey, question string, game boxscore.Game) Result {
	start := time.Now()
	result := a.ask(ctx, apiKey, question, game)
	result.Agent = AgentAnalyst
	result.DurationMS = time.Since(start).Milliseconds()

	observability.ObserveAgentRun(AgentAnalyst, result.Failed(), time.Since(start))
	a.log.Info("analyst agent finished",
		slog.String("game_id", game.ID),
		slog.Int64("duration_ms", result.DurationMS),
		slog.Bool("failed", result.Failed()),
	)
	return result
}

func (a *Analyst) ask(ctx context.Context, apiKey, question string, game boxscore.Game) Result {
	// The schema is read per ask so a transient database error never sticks.
	tables, err := a.store.Schema(ctx)
	if err != nil {
		return Result{Err: "Analyst agent error: " + err.Error()}
	}
	gameCtx, err := a.store.GameContext(ctx, game.ID)
	if err != nil {
		return Result{Err: "Analyst agent error: " + err.Error()}
	}

	var exampleSQL, patternName string
	if a.matcher != nil {
		if match, ok := a.matcher.Match(question); ok {
			exampleSQL = match.ExampleSQL(game.ID)
			patternName = match.Pattern.Name
		}
	}

	prompt := buildAnalystPrompt(boxscore.RenderSchema(tables), gameCtx.Render(), game.ID, question, exampleSQL)

	resp, err := a.client.Message(ctx, apiKey, anthropic.Request{
		Messages: []anthropic.Message{anthropic.UserMessage(anthropic.TextBlock(prompt))},
	})
	if err != nil {
		return Result{Err: "Analyst agent error: " + err.Error(), Pattern: patternName}
	}

	sqlQuery := ExtractSQL(anthropic.FirstText(resp))
	if sqlQuery == "" {
		return Result{Err: "Could not generate SQL query", Pattern: patternName}
	}

	result, err := a.store.ExecuteSelect(ctx, sqlQuery)
	observability.ObserveSQLExecution("analyst", err != nil)
	if err != nil {
		return Result{SQL: sqlQuery, Err: "SQL execution error: " + err.Error(), Pattern: patternName}
	}
	if len(result.Rows) == 0 {
		return Result{Answer: "No data found for this query", Confidence: 0.5, SQL: sqlQuery, Pattern: patternName}
	}

	return Result{
		Answer:     FormatAnswer(result),
		Confidence: 0.9,
		SQL:        sqlQuery,
		Pattern:    patternName,
	}
}

func buildAnalystPrompt(schemaText, contextText, gameID, question, exampleSQL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a SQL expert analyzing NCAA basketball game data.

DATABASE SCHEMA:
%s

CURRENT GAME CONTEXT:
%s
Game ID: %s

USER QUESTION: %s

Generate a SQL query to answer this question. Important rules:
1. Always filter by game_id = '%s'
2. Team names may be partial matches - use LIKE '%%team%%' for flexibility
3. For "2nd most" or ordinal queries, use LIMIT with OFFSET or ROW_NUMBER
4. Common abbreviations: ALA=Alabama, TEX=Texas, DUKE=Duke, UNC=North Carolina, etc.`,
		schemaText, contextText, gameID, question, gameID)
	if exampleSQL != "" {
		fmt.Fprintf(&b, "\n\nA verified query for a similar question:\n%s", exampleSQL)
	}
	b.WriteString(`

Respond in this exact format:
SQL: <your sql query here>
EXPLANATION: <brief explanation of what the query does>`)
	return b.String()
}

// ExtractSQL pulls the query out of a model reply, reading lines after
// "SQL:" until "EXPLANATION:" and stripping markdown fences. Returns "" when
// the reply carried no query.
func ExtractSQL(response string) string {
	var sqlLines []string
	inSQL := false

scan:
	for _, line := range strings.Split(response, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "SQL:"):
			inSQL = true
			if _, content, ok := strings.Cut(line, ":"); ok {
				if content = strings.TrimSpace(content); content != "" {
					sqlLines = append(sqlLines, content)
				}
			}
		case inSQL && strings.HasPrefix(upper, "EXPLANATION:"):
			break scan
		case inSQL:
			sqlLines = append(sqlLines, line)
		}
	}

	sqlText := strings.Join(sqlLines, " ")
	sqlText = strings.ReplaceAll(sqlText, "```sql", "")
	sqlText = strings.ReplaceAll(sqlText, "```", "")
	return strings.TrimSpace(sqlText)
}

// FormatAnswer turns result rows into a short display string: a single row
// becomes "name - v col - v col", multiple rows become up to five
// "first: second" entries.
func FormatAnswer(result boxscore.Result) string {
	if len(result.Rows) == 0 {
		return "No results found"
	}

	if len(result.Rows) == 1 && len(result.Columns) >= 2 {
		row := result.Rows[0]
		parts := make([]string, 0, len(result.Columns))
		for i, column := range result.Columns {
			if i == 0 {
				parts = append(parts, boxscore.FormatValue(row[i]))
			} else {
				parts = append(parts, fmt.Sprintf("%s %s", boxscore.FormatValue(row[i]), column))
			}
		}
		return strings.Join(parts, " - ")
	}

	entries := make([]string, 0, 5)
	for _, row := range result.Rows {
		if len(entries) == 5 {
			break
		}
		second := ""
		if len(row) > 1 {
			second = boxscore.FormatValue(row[1])
		}
		entries = append(entries, fmt.Sprintf("%s: %s", boxscore.FormatValue(row[0]), second))
	}
	return strings.Join(entries, "; ")
}
