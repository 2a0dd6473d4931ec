// Package semantic answers common boxscore questions offline by matching
// them against pre-verified SQL patterns. It needs no model call, which makes
// it the deterministic baseline next to the two agents.
package semantic

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hoopsight/hoopsight/internal/boxscore"
	"github.com/hoopsight/hoopsight/internal/observability"
)

const noDataAnswer = "No data found matching your question"

type Layer struct {
	store    boxscore.Store
	patterns []*Pattern
}

func NewLayer(store boxscore.Store) *Layer {
	return &Layer{store: store, patterns: patterns}
}

// Match is a recognized question: the winning pattern, the extracted
// parameters, and the match confidence.
type Match struct {
	Pattern    *Pattern
	Team       string
	Player     string
	Confidence float64
}

// Answer mirrors the agent result shape so the UI can render all three
// sources side by side.
type Answer struct {
	Answer      string  `json:"answer"`
	SQL         string  `json:"sql_query"`
	Confidence  float64 `json:"confidence"`
	PatternName string  `json:"pattern_name"`
}

// Patterns exposes the pattern table for documentation endpoints.
func (l *Layer) Patterns() []*Pattern {
	return l.patterns
}

// Match scans every pattern expression against the lowercased question and
// keeps the highest-scoring hit. Confidence grows with how much of the
// question the expression covered, capped at 0.95. Patterns whose SQL needs a
// {team} are skipped when no team alias is present, so a more general pattern
// can still win.
func (l *Layer) Match(question string) (Match, bool) {
	normalized := strings.TrimSpace(strings.ToLower(question))
	if normalized == "" {
		return Match{}, false
	}

	team := ExtractTeam(question)
	player := ExtractPlayer(question)

	var (
		best      *Pattern
		bestScore float64
	)
	for _, pattern := range l.patterns {
		if team == "" && strings.Contains(pattern.SQL, "{team}") {
			continue
		}
		for _, expr := range pattern.expressions {
			loc := expr.FindStringIndex(normalized)
			if loc == nil {
				continue
			}
			coverage := float64(loc[1]-loc[0]) / float64(len(normalized))
			score := 0.7 + coverage*0.25
			if score > 0.95 {
				score = 0.95
			}
			if score > bestScore {
				bestScore = score
				best = pattern
			}
		}
	}

	if best == nil {
		return Match{}, false
	}
	return Match{Pattern: best, Team: team, Player: player, Confidence: bestScore}, true
}

// Ask matches the question and executes the pattern SQL against the fixture
// database. The second return value is false when no pattern recognized the
// question.
func (l *Layer) Ask(ctx context.Context, gameID, question string) (Answer, bool) {
	match, ok := l.Match(question)
	if !ok {
		return Answer{}, false
	}
	observability.ObserveSemanticMatch(match.Pattern.Name)

	sqlText := match.ExampleSQL(gameID)
	result, err := l.store.ExecuteSelect(ctx, sqlText)
	observability.ObserveSQLExecution("semantic", err != nil)
	if err != nil {
		return Answer{
			Answer:      "Query error: " + err.Error(),
			SQL:         sqlText,
			Confidence:  0,
			PatternName: match.Pattern.Name,
		}, true
	}
	if len(result.Rows) == 0 {
		return Answer{
			Answer:      noDataAnswer,
			SQL:         sqlText,
			Confidence:  0.3,
			PatternName: match.Pattern.Name,
		}, true
	}

	return Answer{
		Answer:      formatRows(match.Pattern.Format, result),
		SQL:         sqlText,
		Confidence:  match.Confidence,
		PatternName: match.Pattern.Name,
	}, true
}

// ExtractTeam resolves the first team alias mentioned in the question to its
// canonical name fragment.
func ExtractTeam(question string) string {
	lowered := strings.ToLower(question)
	for _, candidate := range aliasExpressions {
		if candidate.expr.MatchString(lowered) {
			return candidate.team
		}
	}
	return ""
}

// ExtractPlayer pulls a capitalized player name out of phrasings like
// "how many points did Mark Sears score".
func ExtractPlayer(question string) string {
	for _, expr := range playerExpressions {
		if matches := expr.FindStringSubmatch(question); len(matches) > 1 {
			return matches[1]
		}
	}
	return ""
}

// ExampleSQL renders the matched pattern's verified query for one game, with
// the extracted team substituted in. The Analyst prompt embeds it as a known
// good example when the question matches a pattern.
func (m Match) ExampleSQL(gameID string) string {
	return m.Pattern.buildSQL(gameID, m.Team)
}

func (p *Pattern) buildSQL(gameID, team string) string {
	replacer := strings.NewReplacer(
		"{game_id}", escapeLiteral(gameID),
		"{team}", escapeLiteral(team),
	)
	return strings.TrimSpace(replacer.Replace(p.SQL))
}

func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

var placeholderPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)

func formatRows(template string, result boxscore.Result) string {
	rows := result.Rows
	if len(rows) == 1 {
		return formatRow(template, result.Columns, rows[0])
	}

	limit := len(rows)
	if limit > 5 {
		limit = 5
	}
	parts := make([]string, 0, limit)
	for _, row := range rows[:limit] {
		parts = append(parts, formatRow(template, result.Columns, row))
	}
	answer := strings.Join(parts, "; ")
	if len(rows) > 5 {
		answer += fmt.Sprintf(" (and %d more)", len(rows)-5)
	}
	return answer
}

func formatRow(template string, columns []string, row []any) string {
	filled := template
	for i, column := range columns {
		filled = strings.ReplaceAll(filled, "{"+column+"}", boxscore.FormatValue(row[i]))
	}
	if placeholderPattern.MatchString(filled) {
		parts := make([]string, 0, len(columns))
		for i, column := range columns {
			parts = append(parts, column+"="+boxscore.FormatValue(row[i]))
		}
		return "Result: " + strings.Join(parts, " ")
	}
	return filled
}
