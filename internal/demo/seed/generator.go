package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hoopsight/hoopsight/internal/boxscore"
)

// maxGames is bounded by the team pool: every matchup uses two distinct
// teams and no team plays twice.
const maxGames = 10

type Team struct {
	Name   string
	Abbrev string
	Color  string
}

// teams is the curated pool the fixtures draw from. The colors match the
// accents the UI shows next to each abbreviation.
var teams = []Team{
	{"Duke Blue Devils", "DUKE", "#003087"},
	{"North Carolina Tar Heels", "UNC", "#7BAFD4"},
	{"Wake Forest Demon Deacons", "WAKE", "#9E7E38"},
	{"Virginia Cavaliers", "UVA", "#232D4B"},
	{"Arizona Wildcats", "ARIZ", "#CC0033"},
	{"TCU Horned Frogs", "TCU", "#4D1979"},
	{"Texas Longhorns", "TEX", "#BF5700"},
	{"Alabama Crimson Tide", "ALA", "#9E1B32"},
	{"Auburn Tigers", "AUB", "#0C2340"},
	{"Arkansas Razorbacks", "ARK", "#9D2235"},
	{"BYU Cougars", "BYU", "#002E5D"},
	{"Utah Utes", "UTAH", "#CC0000"},
	{"Texas Tech Red Raiders", "TTU", "#CC0000"},
	{"Colorado Buffaloes", "COLO", "#CFB87C"},
	{"Iowa State Cyclones", "ISU", "#C8102E"},
	{"Oklahoma State Cowboys", "OKST", "#FF7300"},
	{"SMU Mustangs", "SMU", "#C8102E"},
	{"Stanford Cardinal", "STAN", "#8C1515"},
	{"Georgia Bulldogs", "UGA", "#BA0C2F"},
	{"South Carolina Gamecocks", "SC", "#73000A"},
}

var lastNames = []string{
	"Barnes", "Carter", "Young", "Hayes", "Brooks", "Reed", "Walker", "Bennett",
	"Foster", "Coleman", "Griffin", "Hughes", "Jenkins", "Murray", "Powell",
	"Sanders", "Watts", "Dixon", "Franklin", "Holloway", "Maxwell", "Norwood",
	"Pruitt", "Rhodes", "Sheppard", "Tillman", "Vaughn", "Whitfield",
}

var initials = "ABCDEJKLMRTZ"

var positions = []string{"G", "G", "F", "F", "C", "G", "F", "G", "C"}

// PlayerLine is one generated boxscore row. Points derive from the shooting
// split so the rendered screenshot and the database always agree.
type PlayerLine struct {
	Name         string
	TeamName     string
	TeamAbbrev   string
	Position     string
	Starter      bool
	Minutes      int
	Points       int
	Rebounds     int
	OffRebounds  int
	DefRebounds  int
	Assists      int
	Steals       int
	Blocks       int
	Turnovers    int
	Fouls        int
	FGMade       int
	FGAttempted  int
	FG3Made      int
	FG3Attempted int
	FTMade       int
	FTAttempted  int
}

// GameFixture is one generated game: the header row, both rosters, and the
// accent colors the renderer paints with.
type GameFixture struct {
	Game      boxscore.Game
	Players   []PlayerLine
	AwayColor string
	HomeColor string
}

type Generator struct {
	rnd      *rand.Rand
	baseDate time.Time
}

// NewGenerator returns a deterministic fixture generator. The same seed
// always yields the same games.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		baseDate: time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC),
	}
}

// Games generates n games on consecutive dates, newest first. No team
// appears twice.
func (g *Generator) Games(n int) ([]GameFixture, error) {
	if n <= 0 {
		return nil, fmt.Errorf("game count must be > 0")
	}
	if n > maxGames {
		return nil, fmt.Errorf("game count must be <= %d", maxGames)
	}

	pool := make([]Team, len(teams))
	copy(pool, teams)
	g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	fixtures := make([]GameFixture, 0, n)
	for i := 0; i < n; i++ {
		away := pool[i*2]
		home := pool[i*2+1]
		date := g.baseDate.AddDate(0, 0, -i)
		fixtures = append(fixtures, g.buildGame(away, home, date))
	}
	return fixtures, nil
}

func (g *Generator) buildGame(away, home Team, date time.Time) GameFixture {
	awayPlayers := g.roster(away)
	homePlayers := g.roster(home)

	awayScore := totalPoints(awayPlayers)
	homeScore := totalPoints(homePlayers)
	if awayScore == homeScore {
		// Ties do not happen in finished games; give the home side one
		// more made free throw.
		homePlayers[0].FTMade++
		homePlayers[0].FTAttempted++
		homePlayers[0].Points++
		homeScore++
	}

	dateText := date.Format("2006-01-02")
	gameID := fmt.Sprintf("%s_%s_%s",
		strings.ToLower(away.Abbrev),
		strings.ToLower(home.Abbrev),
		date.Format("2006_01_02"))

	players := make([]PlayerLine, 0, len(awayPlayers)+len(homePlayers))
	players = append(players, awayPlayers...)
	players = append(players, homePlayers...)

	return GameFixture{
		Game: boxscore.Game{
			ID:             gameID,
			GameDate:       dateText,
			Status:         "FINAL",
			AwayTeamName:   away.Name,
			AwayTeamAbbrev: away.Abbrev,
			AwayTeamScore:  awayScore,
			HomeTeamName:   home.Name,
			HomeTeamAbbrev: home.Abbrev,
			HomeTeamScore:  homeScore,
			ScreenshotPath: gameID + ".png",
		},
		Players:   players,
		AwayColor: away.Color,
		HomeColor: home.Color,
	}
}

func (g *Generator) roster(team Team) []PlayerLine {
	used := map[string]bool{}
	players := make([]PlayerLine, 0, len(positions))
	for i, position := range positions {
		name := g.playerName(used)
		starter := i < 5
		players = append(players, g.statLine(name, team, position, starter))
	}
	return players
}

func (g *Generator) playerName(used map[string]bool) string {
	for {
		initial := initials[g.rnd.Intn(len(initials))]
		last := lastNames[g.rnd.Intn(len(lastNames))]
		name := fmt.Sprintf("%c. %s", initial, last)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func (g *Generator) statLine(name string, team Team, position string, starter bool) PlayerLine {
	minutes := 8 + g.rnd.Intn(17)
	if starter {
		minutes = 24 + g.rnd.Intn(15)
	}

	fgAttempted := minutes/4 + g.rnd.Intn(7)
	fgMade := 0
	if fgAttempted > 0 {
		fgMade = g.rnd.Intn(fgAttempted + 1)
		if fgMade > fgAttempted*3/5 {
			fgMade = fgAttempted * 3 / 5
		}
	}

	fg3Attempted := 0
	if position != "C" {
		fg3Attempted = g.rnd.Intn(fgAttempted + 1)
		if fg3Attempted > fgAttempted/2 {
			fg3Attempted = fgAttempted / 2
		}
	}
	fg3Made := 0
	if fg3Attempted > 0 {
		fg3Made = g.rnd.Intn(fg3Attempted + 1)
		if fg3Made > fgMade {
			fg3Made = fgMade
		}
	}

	ftAttempted := g.rnd.Intn(7)
	ftMade := 0
	if ftAttempted > 0 {
		ftMade = ftAttempted - g.rnd.Intn(ftAttempted/2+1)
	}

	offRebounds := g.rnd.Intn(4)
	defRebounds := g.rnd.Intn(7)
	if position == "C" || position == "F" {
		defRebounds += g.rnd.Intn(4)
	}

	assists := g.rnd.Intn(5)
	if position == "G" {
		assists += g.rnd.Intn(5)
	}

	blocks := g.rnd.Intn(2)
	if position == "C" {
		blocks += g.rnd.Intn(3)
	}

	return PlayerLine{
		Name:         name,
		TeamName:     team.Name,
		TeamAbbrev:   team.Abbrev,
		Position:     position,
		Starter:      starter,
		Minutes:      minutes,
		Points:       2*fgMade + fg3Made + ftMade,
		Rebounds:     offRebounds + defRebounds,
		OffRebounds:  offRebounds,
		DefRebounds:  defRebounds,
		Assists:      assists,
		Steals:       g.rnd.Intn(4),
		Blocks:       blocks,
		Turnovers:    g.rnd.Intn(5),
		Fouls:        g.rnd.Intn(5),
		FGMade:       fgMade,
		FGAttempted:  fgAttempted,
		FG3Made:      fg3Made,
		FG3Attempted: fg3Attempted,
		FTMade:       ftMade,
		FTAttempted:  ftAttempted,
	}
}

func totalPoints(players []PlayerLine) int {
	total := 0
	for _, p := range players {
		total += p.Points
	}
	return total
}
