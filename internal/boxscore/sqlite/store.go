// Package sqlite implements the boxscore store on a local SQLite fixture
// database opened read-only.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hoopsight/hoopsight/internal/boxscore"
)

const (
	defaultRowLimit   = 50
	defaultSampleRows = 5
)

type Store struct {
	db       *sql.DB
	rowLimit int
}

// Open opens the fixture database in read-only mode. Pass rowLimit <= 0 to
// use the default cap applied to generated queries.
func Open(path string, rowLimit int) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := "file:" + path + "?mode=ro&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStore(db, rowLimit), nil
}

// NewStore wraps an existing handle. Used by Open and by tests that inject a
// mock database.
func NewStore(db *sql.DB, rowLimit int) *Store {
	if rowLimit <= 0 {
		rowLimit = defaultRowLimit
	}
	return &Store{db: db, rowLimit: rowLimit}
}

const listGamesQuery = `
SELECT DISTINCT
    g.game_id, g.game_date, g.status,
    g.away_team_name, g.away_team_abbrev, g.away_team_score,
    g.home_team_name, g.home_team_abbrev, g.home_team_score,
    s.file_path
FROM games g
INNER JOIN screenshots s ON g.game_id = s.game_id
WHERE g.status LIKE '%FINAL%'
ORDER BY g.game_date DESC`

// ListGames returns finished games that have a captured screenshot, newest
// first. Games without a screenshot cannot drive the comparison and are
// skipped.
func (s *Store) ListGames(ctx context.Context) ([]boxscore.Game, error) {
	rows, err := s.db.QueryContext(ctx, listGamesQuery)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []boxscore.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

const getGameQuery = `
SELECT
    g.game_id, g.game_date, g.status,
    g.away_team_name, g.away_team_abbrev, g.away_team_score,
    g.home_team_name, g.home_team_abbrev, g.home_team_score,
    s.file_path
FROM games g
LEFT JOIN screenshots s ON g.game_id = s.game_id
WHERE g.game_id = ?
LIMIT 1`

func (s *Store) GetGame(ctx context.Context, gameID string) (boxscore.Game, error) {
	row := s.db.QueryRowContext(ctx, getGameQuery, gameID)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return boxscore.Game{}, boxscore.ErrGameNotFound
	}
	if err != nil {
		return boxscore.Game{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (boxscore.Game, error) {
	var (
		game       boxscore.Game
		gameDate   sql.NullString
		status     sql.NullString
		awayName   sql.NullString
		awayAbbrev sql.NullString
		awayScore  sql.NullInt64
		homeName   sql.NullString
		homeAbbrev sql.NullString
		homeScore  sql.NullInt64
		screenshot sql.NullString
	)
	err := row.Scan(
		&game.ID, &gameDate, &status,
		&awayName, &awayAbbrev, &awayScore,
		&homeName, &homeAbbrev, &homeScore,
		&screenshot,
	)
	if err != nil {
		return boxscore.Game{}, err
	}
	game.GameDate = gameDate.String
	game.Status = orDefault(status, "Final")
	game.AwayTeamName = orDefault(awayName, "Away")
	game.AwayTeamAbbrev = orDefault(awayAbbrev, "AWY")
	game.AwayTeamScore = int(awayScore.Int64)
	game.HomeTeamName = orDefault(homeName, "Home")
	game.HomeTeamAbbrev = orDefault(homeAbbrev, "HME")
	game.HomeTeamScore = int(homeScore.Int64)
	game.ScreenshotPath = screenshot.String
	return game, nil
}

func orDefault(value sql.NullString, fallback string) string {
	if value.Valid && value.String != "" {
		return value.String
	}
	return fallback
}

// Schema describes the fixture tables. Tables prefixed sqlite_ or hoopsight_
// are bookkeeping and stay out of the prompts.
func (s *Store) Schema(ctx context.Context) ([]boxscore.TableInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name NOT LIKE 'hoopsight_%'
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	tables := make([]boxscore.TableInfo, 0, len(names))
	for _, name := range names {
		columns, err := s.tableColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, boxscore.TableInfo{Name: name, Columns: columns})
	}
	return tables, nil
}

func (s *Store) tableColumns(ctx context.Context, table string) ([]boxscore.ColumnInfo, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("describe table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []boxscore.ColumnInfo
	for rows.Next() {
		var (
			cid          int
			name         string
			columnType   sql.NullString
			notNull      int
			defaultValue sql.NullString
			primaryKey   int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &defaultValue, &primaryKey); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, boxscore.ColumnInfo{Name: name, Type: columnType.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns of %s: %w", table, err)
	}
	return columns, nil
}

// SampleRows returns the first rows of a table, used for the schema sidebar
// and to ground the Analyst prompt with real values.
func (s *Store) SampleRows(ctx context.Context, table string, limit int) (boxscore.Result, error) {
	if limit <= 0 {
		limit = defaultSampleRows
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return boxscore.Result{}, fmt.Errorf("sample table %s: %w", table, err)
	}
	defer rows.Close()
	return scanResult(rows)
}

func (s *Store) GameContext(ctx context.Context, gameID string) (boxscore.GameContext, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return boxscore.GameContext{}, err
	}

	teams, err := s.gameTeams(ctx, gameID)
	if err != nil {
		return boxscore.GameContext{}, err
	}
	players, err := s.samplePlayers(ctx, gameID)
	if err != nil {
		return boxscore.GameContext{}, err
	}
	return boxscore.GameContext{Game: game, Teams: teams, SamplePlayers: players}, nil
}

func (s *Store) gameTeams(ctx context.Context, gameID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT team_name FROM players WHERE game_id = ? ORDER BY team_name`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

func (s *Store) samplePlayers(ctx context.Context, gameID string) ([]boxscore.SamplePlayer, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
SELECT player_name, team_name, points, rebounds, assists
FROM players WHERE game_id = ? LIMIT %d`, defaultSampleRows), gameID)
	if err != nil {
		return nil, fmt.Errorf("sample players: %w", err)
	}
	defer rows.Close()

	var players []boxscore.SamplePlayer
	for rows.Next() {
		var player boxscore.SamplePlayer
		if err := rows.Scan(&player.Name, &player.Team, &player.Points, &player.Rebounds, &player.Assists); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}

// ExecuteSelect runs a generated statement after the read-only guard and
// wraps it in a subquery so the row cap applies regardless of what the model
// produced.
func (s *Store) ExecuteSelect(ctx context.Context, sqlText string) (boxscore.Result, error) {
	if err := boxscore.ValidateReadOnly(sqlText); err != nil {
		return boxscore.Result{}, err
	}
	wrapped := fmt.Sprintf("SELECT * FROM (%s) AS q LIMIT %d", stripTrailingSemicolons(sqlText), s.rowLimit)
	rows, err := s.db.QueryContext(ctx, wrapped)
	if err != nil {
		return boxscore.Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()
	return scanResult(rows)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scanResult(rows *sql.Rows) (boxscore.Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return boxscore.Result{}, fmt.Errorf("read columns: %w", err)
	}

	result := boxscore.Result{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return boxscore.Result{}, fmt.Errorf("scan row: %w", err)
		}
		result.Rows = append(result.Rows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return boxscore.Result{}, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = value
		}
	}
	return normalized
}

func quoteIdent(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}
