package domain

import "time"

// League represents one competition season from the statistics API.
// Corresponds to the leagues table in PostgreSQL.
type League struct {
	LeagueID     int64 // PRIMARY KEY, provider id
	Name         string
	Country      string
	CountryCode  string
	Season       int  // season start year
	PlayersStats bool // provider covers player-level statistics
	CreatedAt    int64
}

// Fixture is one flattened fixture row. Corresponds to the fixtures table in
// PostgreSQL. Score strings are nil when the corresponding period was not
// played.
type Fixture struct {
	FixtureID      int64 // PRIMARY KEY, provider id
	LeagueID       int64
	LeagueName     string
	LeagueCountry  string
	Date           time.Time // from the provider's epoch timestamp
	Elapsed        int
	GoalsHome      *int
	GoalsAway      *int
	HomeTeamID     int64
	HomeTeamName   string
	AwayTeamID     int64
	AwayTeamName   string
	ScoreHalftime  *string
	ScoreFulltime  *string
	ScoreExtratime *string
	ScorePenalty   *string
	CreatedAt      int64
}
