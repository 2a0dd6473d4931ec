package semantic

import (
	"regexp"
	"sort"
)

// teamAliases maps spoken team references to the canonical fragment matched
// against team_name columns. Longer aliases are tried first, so "texas a&m"
// wins over "texas". Among equal lengths table order decides, so shared
// nicknames (wildcats, tigers, cougars) resolve to the earliest entry.
type teamAlias struct {
	team    string
	aliases []string
}

var teamAliases = []teamAlias{
	// ACC
	{"duke", []string{"duke", "blue devils"}},
	{"wake forest", []string{"wake", "wake forest", "demon deacons"}},
	{"north carolina", []string{"unc", "carolina", "tar heels", "north carolina"}},
	{"virginia", []string{"uva", "virginia", "cavaliers", "wahoos"}},
	{"nc state", []string{"nc state", "wolfpack", "north carolina state"}},
	{"clemson", []string{"clemson", "tigers"}},
	{"louisville", []string{"louisville", "cardinals"}},
	{"syracuse", []string{"syracuse", "orange"}},
	{"pittsburgh", []string{"pitt", "pittsburgh", "panthers"}},
	{"boston college", []string{"bc", "boston college", "eagles"}},
	{"miami", []string{"miami", "hurricanes"}},
	{"georgia tech", []string{"georgia tech", "gt", "yellow jackets"}},
	{"notre dame", []string{"notre dame", "irish", "fighting irish"}},
	{"florida state", []string{"florida state", "fsu", "seminoles"}},

	// Big 12
	{"texas", []string{"texas", "longhorns", "ut"}},
	{"byu", []string{"byu", "cougars", "brigham young"}},
	{"utah", []string{"utah", "utes"}},
	{"colorado", []string{"colorado", "buffaloes", "buffs", "cu"}},
	{"arizona", []string{"arizona", "wildcats", "zona"}},
	{"arizona state", []string{"arizona state", "asu", "sun devils"}},
	{"tcu", []string{"tcu", "horned frogs"}},
	{"baylor", []string{"baylor", "bears"}},
	{"kansas", []string{"kansas", "jayhawks", "ku"}},
	{"kansas state", []string{"kansas state", "k-state", "wildcats"}},
	{"oklahoma state", []string{"oklahoma state", "okst", "cowboys"}},
	{"iowa state", []string{"iowa state", "isu", "cyclones"}},
	{"west virginia", []string{"west virginia", "wvu", "mountaineers"}},
	{"texas tech", []string{"texas tech", "ttu", "red raiders"}},
	{"cincinnati", []string{"cincinnati", "bearcats"}},
	{"houston", []string{"houston", "cougars", "uh"}},
	{"ucf", []string{"ucf", "knights", "central florida"}},

	// SEC
	{"alabama", []string{"alabama", "bama", "crimson tide"}},
	{"auburn", []string{"auburn", "tigers"}},
	{"arkansas", []string{"arkansas", "razorbacks", "hogs"}},
	{"tennessee", []string{"tennessee", "vols", "volunteers"}},
	{"kentucky", []string{"kentucky", "uk", "wildcats"}},
	{"florida", []string{"florida", "gators", "uf"}},
	{"georgia", []string{"georgia", "uga", "bulldogs"}},
	{"south carolina", []string{"south carolina", "gamecocks", "sc"}},
	{"lsu", []string{"lsu", "tigers", "louisiana state"}},
	{"mississippi state", []string{"mississippi state", "miss state", "bulldogs"}},
	{"ole miss", []string{"ole miss", "rebels", "mississippi"}},
	{"missouri", []string{"missouri", "mizzou", "tigers"}},
	{"vanderbilt", []string{"vanderbilt", "vandy", "commodores"}},
	{"texas a&m", []string{"texas a&m", "tamu", "aggies"}},

	// Big Ten
	{"purdue", []string{"purdue", "boilermakers"}},
	{"indiana", []string{"indiana", "hoosiers", "iu"}},
	{"michigan", []string{"michigan", "wolverines"}},
	{"michigan state", []string{"michigan state", "msu", "spartans"}},
	{"ohio state", []string{"ohio state", "osu", "buckeyes"}},
	{"illinois", []string{"illinois", "illini"}},
	{"iowa", []string{"iowa", "hawkeyes"}},
	{"wisconsin", []string{"wisconsin", "badgers"}},
	{"minnesota", []string{"minnesota", "gophers", "golden gophers"}},
	{"northwestern", []string{"northwestern", "wildcats"}},
	{"penn state", []string{"penn state", "psu", "nittany lions"}},
	{"maryland", []string{"maryland", "terrapins", "terps"}},
	{"nebraska", []string{"nebraska", "cornhuskers", "huskers"}},
	{"rutgers", []string{"rutgers", "scarlet knights"}},

	// Other notable
	{"gonzaga", []string{"gonzaga", "zags", "bulldogs"}},
	{"uconn", []string{"uconn", "connecticut", "huskies"}},
	{"villanova", []string{"villanova", "nova", "wildcats"}},
	{"creighton", []string{"creighton", "bluejays"}},
	{"marquette", []string{"marquette", "golden eagles"}},
	{"stanford", []string{"stanford", "cardinal"}},
	{"ucla", []string{"ucla", "bruins"}},
	{"usc", []string{"usc", "trojans", "southern cal"}},
	{"oregon", []string{"oregon", "ducks"}},
	{"smu", []string{"smu", "mustangs"}},
}

type aliasExpression struct {
	team string
	expr *regexp.Regexp
}

var aliasExpressions []aliasExpression

var playerExpressions = []*regexp.Regexp{
	regexp.MustCompile(`(?:did|how many|what did)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:score|get|have)`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)'s\s+(?:stats|points|rebounds|assists)`),
	regexp.MustCompile(`(?:stats|points|rebounds)\s+(?:for|of)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

func init() {
	type entry struct {
		team  string
		alias string
	}
	var entries []entry
	for _, team := range teamAliases {
		for _, alias := range team.aliases {
			entries = append(entries, entry{team: team.team, alias: alias})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].alias) > len(entries[j].alias)
	})
	for _, e := range entries {
		aliasExpressions = append(aliasExpressions, aliasExpression{
			team: e.team,
			expr: regexp.MustCompile(`\b` + regexp.QuoteMeta(e.alias) + `\b`),
		})
	}
	for _, pattern := range patterns {
		for _, question := range pattern.Questions {
			pattern.expressions = append(pattern.expressions, regexp.MustCompile(question))
		}
	}
}

// Pattern is a pre-verified question shape: regexes that recognize it, a SQL
// template with {game_id} and {team} placeholders, and an answer template
// filled from the result columns.
type Pattern struct {
	Name        string
	Description string
	Category    string
	Questions   []string
	SQL         string
	Format      string

	expressions []*regexp.Regexp
}

var patterns = []*Pattern{
	// Individual player stats.
	{
		Name:        "top_scorer_game",
		Description: "Find the top scorer in a game",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:top|leading|lead|most|highest).*scor`,
			`(?:top|leading|lead|highest).*scor`,
			`who scored (?:the )?most`,
			`leading scorer`,
			`lead scorer`,
			`most points`,
			`who (?:was|is) the (?:top|lead|best) scorer`,
		},
		SQL: `
SELECT player_name, points, team_name, rebounds, assists
FROM players
WHERE game_id = '{game_id}'
ORDER BY points DESC
LIMIT 1`,
		Format: "{player_name} led all scorers with {points} points ({team_name})",
	},
	{
		Name:        "top_scorer_team",
		Description: "Find the top scorer for a specific team",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:top|leading|lead|most).*scor.*(?:for|on)\s+\w+`,
			`(?:\w+)(?:'s)?\s+(?:top|leading|lead|best)\s+scorer`,
			`who led (\w+) in (?:points|scoring)`,
			`lead scorer (?:for|on) (\w+)`,
			`(?:top|lead|best) scorer (?:for|on) (\w+)`,
			`who (?:was|is) the lead scorer for (\w+)`,
		},
		SQL: `
SELECT player_name, points, team_name, rebounds, assists
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
ORDER BY points DESC
LIMIT 1`,
		Format: "{player_name} led {team_name} with {points} points",
	},
	{
		Name:        "most_rebounds_game",
		Description: "Find player with most rebounds in game",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading|highest).*rebounds?`,
			`(?:most|leading).*rebounds?`,
			`rebound.*leader`,
			`who led.*rebounds`,
		},
		SQL: `
SELECT player_name, rebounds, team_name, offensive_rebounds, defensive_rebounds
FROM players
WHERE game_id = '{game_id}'
ORDER BY rebounds DESC
LIMIT 1`,
		Format: "{player_name} grabbed {rebounds} rebounds ({team_name})",
	},
	{
		Name:        "most_rebounds_team",
		Description: "Find player with most rebounds for a team",
		Category:    "individual",
		Questions: []string{
			`who led (\w+) in rebounds`,
			`(\w+)(?:'s)? (?:top|leading) rebounder`,
			`most rebounds (?:for|on) (\w+)`,
		},
		SQL: `
SELECT player_name, rebounds, team_name, offensive_rebounds, defensive_rebounds
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
ORDER BY rebounds DESC
LIMIT 1`,
		Format: "{player_name} led {team_name} with {rebounds} rebounds",
	},
	{
		Name:        "most_assists_game",
		Description: "Find player with most assists in game",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading|highest).*assists?`,
			`(?:most|leading).*assists?`,
			`assist.*leader`,
			`who (?:led|had).*assists`,
		},
		SQL: `
SELECT player_name, assists, team_name, points
FROM players
WHERE game_id = '{game_id}'
ORDER BY assists DESC
LIMIT 1`,
		Format: "{player_name} dished out {assists} assists ({team_name})",
	},
	{
		Name:        "most_assists_team",
		Description: "Find player with most assists for a team",
		Category:    "individual",
		Questions: []string{
			`who led (\w+) in assists`,
			`(\w+)(?:'s)? assist leader`,
			`most assists (?:for|on) (\w+)`,
		},
		SQL: `
SELECT player_name, assists, team_name, points
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
ORDER BY assists DESC
LIMIT 1`,
		Format: "{player_name} led {team_name} with {assists} assists",
	},
	{
		Name:        "most_steals",
		Description: "Find player with most steals",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading).*steals?`,
			`(?:most|leading).*steals?`,
			`steal.*leader`,
		},
		SQL: `
SELECT player_name, steals, team_name
FROM players
WHERE game_id = '{game_id}'
ORDER BY steals DESC
LIMIT 1`,
		Format: "{player_name} had {steals} steals ({team_name})",
	},
	{
		Name:        "most_blocks",
		Description: "Find player with most blocks",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading).*blocks?`,
			`(?:most|leading).*blocks?`,
			`block.*leader`,
			`who blocked.*most`,
		},
		SQL: `
SELECT player_name, blocks, team_name
FROM players
WHERE game_id = '{game_id}'
ORDER BY blocks DESC
LIMIT 1`,
		Format: "{player_name} had {blocks} blocks ({team_name})",
	},
	{
		Name:        "most_turnovers",
		Description: "Find player with most turnovers",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading).*turnovers?`,
			`(?:most|leading).*turnovers?`,
			`who turned.*over.*most`,
		},
		SQL: `
SELECT player_name, turnovers, team_name
FROM players
WHERE game_id = '{game_id}'
ORDER BY turnovers DESC
LIMIT 1`,
		Format: "{player_name} had {turnovers} turnovers ({team_name})",
	},
	{
		Name:        "most_3pt_made",
		Description: "Find player with most 3-pointers made",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading).*(?:3|three).*(?:pointer|pt|point)`,
			`(?:most|leading).*(?:3|three).*(?:pointer|pt|made)`,
			`(?:3|three).*point.*leader`,
			`who made.*most.*(?:3|three)`,
			`most (?:3|three)s`,
		},
		SQL: `
SELECT player_name, fg3_made, fg3_attempted, team_name
FROM players
WHERE game_id = '{game_id}'
ORDER BY fg3_made DESC
LIMIT 1`,
		Format: "{player_name} made {fg3_made} three-pointers ({team_name})",
	},
	{
		Name:        "most_3pt_team",
		Description: "Find player with most 3-pointers for a team",
		Category:    "individual",
		Questions: []string{
			`who (?:made|hit|shot).*most.*(?:3|three).*(?:for|on) (\w+)`,
			`(\w+)(?:'s)? (?:3|three).*point.*leader`,
			`most (?:3|three).*(?:for|on) (\w+)`,
		},
		SQL: `
SELECT player_name, fg3_made, fg3_attempted, team_name
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
ORDER BY fg3_made DESC
LIMIT 1`,
		Format: "{player_name} led {team_name} with {fg3_made} three-pointers",
	},
	{
		Name:        "best_fg_pct",
		Description: "Find player with best FG% (min 5 attempts)",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*best.*(?:fg|field goal|shooting).*(?:pct|percent|%)`,
			`best.*shooter`,
			`highest.*(?:fg|field goal).*(?:pct|percent)`,
			`most efficient.*shooter`,
		},
		SQL: `
SELECT player_name, fg_made, fg_attempted,
       ROUND(CAST(fg_made AS FLOAT) / fg_attempted * 100, 1) AS fg_pct,
       team_name
FROM players
WHERE game_id = '{game_id}'
  AND fg_attempted >= 5
ORDER BY fg_pct DESC
LIMIT 1`,
		Format: "{player_name} shot {fg_pct}% ({fg_made}-{fg_attempted}) from the field ({team_name})",
	},
	{
		Name:        "most_minutes",
		Description: "Find player with most minutes played",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|longest).*minutes`,
			`(?:most|longest).*minutes`,
			`who played.*(?:most|longest)`,
			`most playing time`,
		},
		SQL: `
SELECT player_name, minutes, team_name, points
FROM players
WHERE game_id = '{game_id}'
ORDER BY minutes DESC
LIMIT 1`,
		Format: "{player_name} played {minutes} minutes ({team_name})",
	},
	{
		Name:        "double_double",
		Description: "Find players with double-doubles",
		Category:    "individual",
		Questions: []string{
			`(?:did anyone|who).*(?:get|have|record).*double.*double`,
			`double.*double`,
			`any double.*double`,
		},
		SQL: `
SELECT player_name, points, rebounds, assists, team_name
FROM players
WHERE game_id = '{game_id}'
  AND (
    (points >= 10 AND rebounds >= 10) OR
    (points >= 10 AND assists >= 10) OR
    (rebounds >= 10 AND assists >= 10)
  )`,
		Format: "{player_name} had a double-double with {points} points and {rebounds} rebounds ({team_name})",
	},
	{
		Name:        "most_fouls",
		Description: "Find player with most fouls",
		Category:    "individual",
		Questions: []string{
			`(?:who|which player).*(?:most|leading).*fouls?`,
			`(?:most|leading).*fouls?`,
			`foul.*trouble`,
		},
		SQL: `
SELECT player_name, fouls, team_name, minutes
FROM players
WHERE game_id = '{game_id}'
ORDER BY fouls DESC
LIMIT 1`,
		Format: "{player_name} had {fouls} fouls ({team_name})",
	},

	// Team stats.
	{
		Name:        "final_score",
		Description: "Get the final score of the game",
		Category:    "team",
		Questions: []string{
			`(?:what|final).*score`,
			`(?:score|result).*(?:game|match)`,
			`how (?:did|does).*(?:end|finish)`,
			`final.*(?:score|result)`,
		},
		SQL: `
SELECT away_team_name, away_team_score, home_team_name, home_team_score
FROM games
WHERE game_id = '{game_id}'`,
		Format: "{away_team_name} {away_team_score} - {home_team_name} {home_team_score}",
	},
	{
		Name:        "winning_team",
		Description: "Find which team won",
		Category:    "team",
		Questions: []string{
			`who won`,
			`which team won`,
			`winner`,
			`(?:did|does) (\w+) win`,
		},
		SQL: `
SELECT
    CASE WHEN home_team_score > away_team_score
         THEN home_team_name ELSE away_team_name END AS winner,
    CASE WHEN home_team_score > away_team_score
         THEN home_team_score ELSE away_team_score END AS winner_score,
    CASE WHEN home_team_score > away_team_score
         THEN away_team_name ELSE home_team_name END AS loser,
    CASE WHEN home_team_score > away_team_score
         THEN away_team_score ELSE home_team_score END AS loser_score
FROM games
WHERE game_id = '{game_id}'`,
		Format: "{winner} defeated {loser} {winner_score}-{loser_score}",
	},
	{
		Name:        "point_margin",
		Description: "Find the margin of victory",
		Category:    "team",
		Questions: []string{
			`(?:margin|difference).*(?:victory|points|score)`,
			`(?:by how (?:many|much)|win by)`,
			`(?:how (?:close|big)).*(?:game|win|loss)`,
			`point.*(?:margin|difference|spread)`,
		},
		SQL: `
SELECT
    ABS(home_team_score - away_team_score) AS margin,
    CASE WHEN home_team_score > away_team_score
         THEN home_team_name ELSE away_team_name END AS winner,
    CASE WHEN home_team_score > away_team_score
         THEN away_team_name ELSE home_team_name END AS loser,
    home_team_score, away_team_score
FROM games
WHERE game_id = '{game_id}'`,
		Format: "{winner} won by {margin} points",
	},
	{
		Name:        "team_total_points",
		Description: "Get total points for a specific team",
		Category:    "team",
		Questions: []string{
			`how many points (?:did|does) (\w+) (?:score|have)`,
			`(\w+)(?:'s)? (?:total )?points`,
			`(?:total|final) points (?:for|of) (\w+)`,
		},
		SQL: `
SELECT
    CASE WHEN LOWER(home_team_name) LIKE '%{team}%'
         THEN home_team_name ELSE away_team_name END AS team_name,
    CASE WHEN LOWER(home_team_name) LIKE '%{team}%'
         THEN home_team_score ELSE away_team_score END AS points
FROM games
WHERE game_id = '{game_id}'`,
		Format: "{team_name} scored {points} points",
	},
	{
		Name:        "team_rebounds",
		Description: "Get total rebounds for a team",
		Category:    "team",
		Questions: []string{
			`how many rebounds (?:did|does) (\w+) (?:have|get)`,
			`(\w+)(?:'s)? (?:total )?rebounds`,
			`team rebounds (?:for|of) (\w+)`,
		},
		SQL: `
SELECT team_name, SUM(rebounds) AS total_rebounds,
       SUM(offensive_rebounds) AS offensive_reb,
       SUM(defensive_rebounds) AS defensive_reb
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
GROUP BY team_name`,
		Format: "{team_name} had {total_rebounds} total rebounds ({offensive_reb} offensive, {defensive_reb} defensive)",
	},
	{
		Name:        "team_assists",
		Description: "Get total assists for a team",
		Category:    "team",
		Questions: []string{
			`how many assists (?:did|does) (\w+) (?:have|get)`,
			`(\w+)(?:'s)? (?:total )?assists`,
			`team assists (?:for|of) (\w+)`,
		},
		SQL: `
SELECT team_name, SUM(assists) AS total_assists
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
GROUP BY team_name`,
		Format: "{team_name} had {total_assists} assists",
	},
	{
		Name:        "team_fg_pct",
		Description: "Get field goal percentage for a team",
		Category:    "team",
		Questions: []string{
			`(?:what|how).*(\w+)(?:'s)?.*(?:field goal|fg|shooting).*(?:pct|percent|%)`,
			`(\w+).*shot.*(?:field|from the field)`,
			`team.*(?:fg|shooting).*(?:pct|percent)`,
		},
		SQL: `
SELECT team_name,
       SUM(fg_made) AS fg_made,
       SUM(fg_attempted) AS fg_attempted,
       ROUND(CAST(SUM(fg_made) AS FLOAT) / SUM(fg_attempted) * 100, 1) AS fg_pct
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
GROUP BY team_name`,
		Format: "{team_name} shot {fg_pct}% from the field ({fg_made}-{fg_attempted})",
	},
	{
		Name:        "team_3pt_pct",
		Description: "Get 3-point percentage for a team",
		Category:    "team",
		Questions: []string{
			`(?:what|how).*(\w+)(?:'s)?.*(?:3|three).*(?:point|pt).*(?:pct|percent|%)`,
			`(\w+).*shot.*(?:3|three)`,
			`team.*(?:3|three).*(?:pct|percent)`,
		},
		SQL: `
SELECT team_name,
       SUM(fg3_made) AS fg3_made,
       SUM(fg3_attempted) AS fg3_attempted,
       ROUND(CAST(SUM(fg3_made) AS FLOAT) / SUM(fg3_attempted) * 100, 1) AS fg3_pct
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
GROUP BY team_name`,
		Format: "{team_name} shot {fg3_pct}% from three ({fg3_made}-{fg3_attempted})",
	},
	{
		Name:        "team_turnovers",
		Description: "Get total turnovers for a team",
		Category:    "team",
		Questions: []string{
			`how many turnovers (?:did|does) (\w+) (?:have|commit)`,
			`(\w+)(?:'s)? (?:total )?turnovers`,
			`team turnovers (?:for|of) (\w+)`,
		},
		SQL: `
SELECT team_name, SUM(turnovers) AS total_turnovers
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
GROUP BY team_name`,
		Format: "{team_name} committed {total_turnovers} turnovers",
	},
	{
		Name:        "bench_points",
		Description: "Get bench scoring for a team",
		Category:    "team",
		Questions: []string{
			`bench (?:points|scoring)`,
			`(?:non-starters?|reserves?).*(?:points|score)`,
			`how many points.*bench`,
		},
		SQL: `
SELECT team_name, SUM(points) AS bench_points
FROM players
WHERE game_id = '{game_id}'
  AND starter = 0
GROUP BY team_name
ORDER BY bench_points DESC`,
		Format: "{team_name} bench scored {bench_points} points",
	},

	// Comparative.
	{
		Name:        "better_shooting",
		Description: "Compare field goal percentages",
		Category:    "comparative",
		Questions: []string{
			`(?:which|who).*(?:team)?.*(?:shot|shoot).*better`,
			`(?:better|best).*(?:shooting|shooter)`,
			`(?:compare|comparison).*shooting`,
			`(?:who|which).*(?:more|higher).*(?:fg|field goal).*(?:pct|percent)`,
		},
		SQL: `
SELECT team_name,
       SUM(fg_made) AS fg_made,
       SUM(fg_attempted) AS fg_attempted,
       ROUND(CAST(SUM(fg_made) AS FLOAT) / SUM(fg_attempted) * 100, 1) AS fg_pct
FROM players
WHERE game_id = '{game_id}'
GROUP BY team_name
ORDER BY fg_pct DESC`,
		Format: "{team_name} shot better at {fg_pct}% ({fg_made}-{fg_attempted})",
	},
	{
		Name:        "more_rebounds_compare",
		Description: "Compare rebounds between teams",
		Category:    "comparative",
		Questions: []string{
			`(?:which|who).*(?:team)?.*(?:more|most).*rebounds?`,
			`(?:out)?rebound`,
			`(?:compare|comparison).*rebounds?`,
			`(?:rebounding).*(?:edge|advantage)`,
		},
		SQL: `
SELECT team_name, SUM(rebounds) AS total_rebounds
FROM players
WHERE game_id = '{game_id}'
GROUP BY team_name
ORDER BY total_rebounds DESC`,
		Format: "{team_name} won the rebounding battle with {total_rebounds} boards",
	},
	{
		Name:        "more_turnovers_compare",
		Description: "Compare turnovers between teams",
		Category:    "comparative",
		Questions: []string{
			`(?:which|who).*(?:team)?.*(?:more|most|fewer|less).*turnovers?`,
			`turnover.*(?:battle|comparison|diff)`,
			`(?:better|worse).*(?:at )?(?:taking care|protecting)`,
		},
		SQL: `
SELECT team_name, SUM(turnovers) AS total_turnovers
FROM players
WHERE game_id = '{game_id}'
GROUP BY team_name
ORDER BY total_turnovers ASC`,
		Format: "{team_name} was cleaner with the ball ({total_turnovers} turnovers)",
	},
	{
		Name:        "close_game",
		Description: "Determine if game was close",
		Category:    "comparative",
		Questions: []string{
			`(?:was|is).*(?:this|the|it).*(?:close|tight).*game`,
			`(?:close|tight).*(?:game|contest)`,
			`(?:how close|margin)`,
		},
		SQL: `
SELECT
    away_team_name, away_team_score,
    home_team_name, home_team_score,
    ABS(home_team_score - away_team_score) AS margin
FROM games
WHERE game_id = '{game_id}'`,
		Format: "The game was decided by {margin} points ({away_team_name} {away_team_score} - {home_team_name} {home_team_score})",
	},
	{
		Name:        "starters_for_team",
		Description: "Get starters for a team",
		Category:    "roster",
		Questions: []string{
			`who started (?:for|on) (\w+)`,
			`(\w+)(?:'s)? (?:starting )?(?:lineup|five|starters)`,
			`starters (?:for|on) (\w+)`,
		},
		SQL: `
SELECT player_name, position, points, rebounds, assists
FROM players
WHERE game_id = '{game_id}'
  AND LOWER(team_name) LIKE '%{team}%'
  AND starter = 1
ORDER BY points DESC`,
		Format: "{player_name} ({position}) started with {points} pts, {rebounds} reb, {assists} ast",
	},
}
