// Package boxscore defines the game statistics domain: the fixture database
// entities, the read-only store contract, and the prompt rendering helpers
// shared by the agents.
package boxscore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotReadOnly  = errors.New("only read-only SELECT/WITH queries are allowed")
)

type Game struct {
	ID             string `json:"game_id"`
	GameDate       string `json:"game_date"`
	Status         string `json:"status"`
	AwayTeamName   string `json:"away_team_name"`
	AwayTeamAbbrev string `json:"away_team_abbrev"`
	AwayTeamScore  int    `json:"away_team_score"`
	HomeTeamName   string `json:"home_team_name"`
	HomeTeamAbbrev string `json:"home_team_abbrev"`
	HomeTeamScore  int    `json:"home_team_score"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`
}

type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

type SamplePlayer struct {
	Name     string
	Team     string
	Points   int
	Rebounds int
	Assists  int
}

// GameContext carries the per-game grounding data injected into the Analyst
// prompt: the scoreline, the team names as stored, and a few player lines.
type GameContext struct {
	Game          Game
	Teams         []string
	SamplePlayers []SamplePlayer
}

type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type Store interface {
	ListGames(ctx context.Context) ([]Game, error)
	GetGame(ctx context.Context, gameID string) (Game, error)
	Schema(ctx context.Context) ([]TableInfo, error)
	SampleRows(ctx context.Context, table string, limit int) (Result, error)
	GameContext(ctx context.Context, gameID string) (GameContext, error)
	ExecuteSelect(ctx context.Context, sqlText string) (Result, error)
	Ping(ctx context.Context) error
	Close() error
}

// ValidateReadOnly accepts only statements whose leading keyword is SELECT or
// WITH. Everything else (writes, PRAGMA, ATTACH, ...) is rejected before it
// reaches the database.
func ValidateReadOnly(sqlText string) error {
	normalized := strings.ToLower(strings.TrimSpace(sqlText))
	if normalized == "" {
		return fmt.Errorf("sql is required")
	}
	if strings.HasPrefix(normalized, "select") || strings.HasPrefix(normalized, "with") {
		return nil
	}
	return ErrNotReadOnly
}

// RenderSchema formats table definitions the way the Analyst prompt expects:
// one block per table, indented "name type" column lines.
func RenderSchema(tables []TableInfo) string {
	blocks := make([]string, 0, len(tables))
	for _, table := range tables {
		lines := make([]string, 0, len(table.Columns)+1)
		lines = append(lines, table.Name+":")
		for _, column := range table.Columns {
			lines = append(lines, "  "+column.Name+" "+column.Type)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Render produces the game context block for the Analyst prompt.
func (c GameContext) Render() string {
	game := c.Game
	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s (%s) %d vs %s (%s) %d\n",
		game.AwayTeamName, game.AwayTeamAbbrev, game.AwayTeamScore,
		game.HomeTeamName, game.HomeTeamAbbrev, game.HomeTeamScore,
	)
	fmt.Fprintf(&b, "Teams in data: %s\n", strings.Join(c.Teams, ", "))

	samples := c.SamplePlayers
	if len(samples) > 3 {
		samples = samples[:3]
	}
	parts := make([]string, 0, len(samples))
	for _, player := range samples {
		parts = append(parts, fmt.Sprintf("%s (%s) %d pts, %d reb, %d ast",
			player.Name, player.Team, player.Points, player.Rebounds, player.Assists))
	}
	fmt.Fprintf(&b, "Sample players: %s", strings.Join(parts, "; "))
	return b.String()
}

// FormatValue renders one SQL result cell for an answer string. The sqlite
// driver hands back int64/float64/string/[]byte/nil for the fixture schema.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
