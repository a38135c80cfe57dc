package domain

// PlayerMatchStat is one flattened player-per-fixture row. Corresponds to the
// player_stats table in PostgreSQL. Rating and MinutesPlayed are nil when the
// provider value could not be parsed as a number; Stats carries the unpacked
// structured features under dotted keys ("shots.total", "passes.accuracy"),
// with nil values for unparseable entries.
type PlayerMatchStat struct {
	RowID         string // PRIMARY KEY: eventID_playerID_teamID
	EventID       int64
	PlayerID      int64
	TeamID        int64
	PlayerName    string
	TeamName      string
	Position      string
	Rating        *float64
	MinutesPlayed *float64
	Captain       bool
	Substitute    bool
	Stats         map[string]*float64
	CreatedAt     int64
}

// FixtureStatLine is one flattened team-statistics row for a fixture, with
// home and away values keyed by the provider's statistic name (spaces
// replaced by underscores, "Ball_Possession"). Values are nil when
// unparseable.
type FixtureStatLine struct {
	FixtureID int64 // PRIMARY KEY
	Home      map[string]*float64
	Away      map[string]*float64
}
