package boxscore

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateReadOnly(t *testing.T) {
	allowed := []string{
		"SELECT 1",
		"select player_name from players",
		"  WITH top AS (SELECT 1) SELECT * FROM top",
		"\nselect * from games;",
	}
	for _, sqlText := range allowed {
		if err := ValidateReadOnly(sqlText); err != nil {
			t.Fatalf("ValidateReadOnly(%q) error = %v", sqlText, err)
		}
	}

	rejected := []string{
		"DELETE FROM games",
		"drop table players",
		"INSERT INTO games VALUES (1)",
		"PRAGMA table_info(games)",
		"ATTACH DATABASE 'x' AS other",
	}
	for _, sqlText := range rejected {
		err := ValidateReadOnly(sqlText)
		if !errors.Is(err, ErrNotReadOnly) {
			t.Fatalf("ValidateReadOnly(%q) error = %v, want ErrNotReadOnly", sqlText, err)
		}
	}

	if err := ValidateReadOnly("   "); err == nil {
		t.Fatal("expected error for empty sql")
	} else if errors.Is(err, ErrNotReadOnly) {
		t.Fatalf("empty sql should not map to ErrNotReadOnly, got %v", err)
	}
}

func TestRenderSchema(t *testing.T) {
	tables := []TableInfo{
		{
			Name: "games",
			Columns: []ColumnInfo{
				{Name: "game_id", Type: "TEXT"},
				{Name: "home_team_score", Type: "INTEGER"},
			},
		},
		{
			Name: "players",
			Columns: []ColumnInfo{
				{Name: "player_name", Type: "TEXT"},
			},
		},
	}

	rendered := RenderSchema(tables)
	want := "games:\n  game_id TEXT\n  home_team_score INTEGER\n\nplayers:\n  player_name TEXT"
	if rendered != want {
		t.Fatalf("RenderSchema() = %q, want %q", rendered, want)
	}
}

func TestGameContextRender(t *testing.T) {
	gameContext := GameContext{
		Game: Game{
			AwayTeamName:   "Texas",
			AwayTeamAbbrev: "TEX",
			AwayTeamScore:  78,
			HomeTeamName:   "Alabama",
			HomeTeamAbbrev: "ALA",
			HomeTeamScore:  82,
		},
		Teams: []string{"Alabama", "Texas"},
		SamplePlayers: []SamplePlayer{
			{Name: "A. Barnes", Team: "Alabama", Points: 22, Rebounds: 5, Assists: 3},
			{Name: "B. Cole", Team: "Texas", Points: 18, Rebounds: 7, Assists: 2},
			{Name: "C. Dunn", Team: "Alabama", Points: 15, Rebounds: 4, Assists: 6},
			{Name: "D. Evans", Team: "Texas", Points: 11, Rebounds: 2, Assists: 1},
		},
	}

	rendered := gameContext.Render()
	if !strings.Contains(rendered, "Game: Texas (TEX) 78 vs Alabama (ALA) 82") {
		t.Fatalf("missing scoreline in %q", rendered)
	}
	if !strings.Contains(rendered, "Teams in data: Alabama, Texas") {
		t.Fatalf("missing team list in %q", rendered)
	}
	if !strings.Contains(rendered, "A. Barnes (Alabama) 22 pts, 5 reb, 3 ast") {
		t.Fatalf("missing sample player in %q", rendered)
	}
	if strings.Contains(rendered, "D. Evans") {
		t.Fatalf("sample players should be capped at three, got %q", rendered)
	}
}
