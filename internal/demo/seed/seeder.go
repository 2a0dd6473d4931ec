// Package seed builds the demo fixture: a SQLite boxscore database plus one
// rendered PNG screenshot per game. The generator is deterministic, so the
// same seed always produces the same fixture.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/hoopsight/hoopsight/internal/migrations"
)

type Seeder struct {
	cfg Config
	log *slog.Logger
}

// Summary reports what one run produced.
type Summary struct {
	Games       int
	Players     int
	Screenshots int
	Skipped     bool
}

func NewSeeder(cfg Config, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Seeder{cfg: cfg, log: logger}
}

// Run migrates the database, generates the games, inserts them, and renders
// the screenshots. An already-populated database is left alone unless Force
// is set, so the tool is safe to run on every start.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	if dir := filepath.Dir(s.cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create database directory: %w", err)
		}
	}
	if err := os.MkdirAll(s.cfg.ScreenshotDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create screenshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+s.cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return Summary{}, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	applied, err := migrations.NewRunner().Up(ctx, db, 0)
	if err != nil {
		return Summary{}, fmt.Errorf("apply migrations: %w", err)
	}
	if applied > 0 {
		s.log.Info("applied migrations", slog.Int("count", applied))
	}

	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&existing); err != nil {
		return Summary{}, fmt.Errorf("count existing games: %w", err)
	}
	if existing > 0 && !s.cfg.Force {
		s.log.Info("database already seeded", slog.Int("games", existing))
		return Summary{Skipped: true, Games: existing}, nil
	}
	if existing > 0 {
		if err := s.wipe(ctx, db); err != nil {
			return Summary{}, err
		}
	}

	fixtures, err := NewGenerator(s.cfg.Seed).Games(s.cfg.Games)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{}
	for _, fixture := range fixtures {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if err := s.insertGame(ctx, db, fixture); err != nil {
			return Summary{}, err
		}
		if err := s.renderScreenshot(fixture); err != nil {
			return Summary{}, err
		}
		summary.Games++
		summary.Players += len(fixture.Players)
		summary.Screenshots++
		s.log.Info("seeded game",
			slog.String("game_id", fixture.Game.ID),
			slog.String("matchup", fixture.Game.AwayTeamAbbrev+" at "+fixture.Game.HomeTeamAbbrev),
			slog.Int("away_score", fixture.Game.AwayTeamScore),
			slog.Int("home_score", fixture.Game.HomeTeamScore))
	}
	return summary, nil
}

func (s *Seeder) wipe(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"screenshots", "players", "games"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	s.log.Info("cleared existing fixture")
	return nil
}

func (s *Seeder) insertGame(ctx context.Context, db *sql.DB, fixture GameFixture) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixture transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	game := fixture.Game
	if _, err := tx.ExecContext(ctx, `
INSERT INTO games (game_id, game_date, status, away_team_name, away_team_abbrev, away_team_score, home_team_name, home_team_abbrev, home_team_score)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, game.GameDate, game.Status,
		game.AwayTeamName, game.AwayTeamAbbrev, game.AwayTeamScore,
		game.HomeTeamName, game.HomeTeamAbbrev, game.HomeTeamScore); err != nil {
		return fmt.Errorf("insert game %s: %w", game.ID, err)
	}

	for _, p := range fixture.Players {
		starter := 0
		if p.Starter {
			starter = 1
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO players (game_id, player_name, team_name, team_abbrev, position, starter, minutes,
                     points, rebounds, offensive_rebounds, defensive_rebounds, assists, steals,
                     blocks, turnovers, fouls, fg_made, fg_attempted, fg3_made, fg3_attempted,
                     ft_made, ft_attempted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			game.ID, p.Name, p.TeamName, p.TeamAbbrev, p.Position, starter, p.Minutes,
			p.Points, p.Rebounds, p.OffRebounds, p.DefRebounds, p.Assists, p.Steals,
			p.Blocks, p.Turnovers, p.Fouls, p.FGMade, p.FGAttempted, p.FG3Made, p.FG3Attempted,
			p.FTMade, p.FTAttempted); err != nil {
			return fmt.Errorf("insert player %s in game %s: %w", p.Name, game.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO screenshots (game_id, file_path, captured_at)
VALUES (?, ?, ?)`,
		game.ID, game.ScreenshotPath, game.GameDate+"T22:00:00Z"); err != nil {
		return fmt.Errorf("insert screenshot row for game %s: %w", game.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture transaction: %w", err)
	}
	return nil
}

func (s *Seeder) renderScreenshot(fixture GameFixture) error {
	path := filepath.Join(s.cfg.ScreenshotDir, fixture.Game.ScreenshotPath)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot file: %w", err)
	}
	if err := WriteBoxscorePNG(file, fixture); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close screenshot file: %w", err)
	}
	return nil
}
