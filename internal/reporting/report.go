package reporting

import "time"

// Report summarizes a derivation run over the stored data.
type Report struct {
	// Metadata
	GeneratedAt time.Time

	// Data Summary
	DataSummary DataSummary

	// Per-fixture feature breakdown (sorted by fixture_id)
	FixtureBreakdown []FixtureFeatureRow

	// Per-player aggregates (sorted by player_id)
	PlayerRows []PlayerRow
}

// DataSummary describes the dataset the report covers.
type DataSummary struct {
	TotalFixtures        int
	TotalFeatureRows     int
	TotalPlayers         int
	ShotsWithFreezeFrame int
	ShotsWithKeyPass     int
}

// FixtureFeatureRow summarizes derived features for one fixture.
type FixtureFeatureRow struct {
	FixtureID       int64
	Shots           int
	WithFreezeFrame int
	MeanDistance    float64
	MeanAngle       float64
}

// PlayerRow is one row in the player aggregates table.
type PlayerRow struct {
	PlayerID         int64
	PlayerName       string
	TeamName         string
	Appearances      int
	RatedAppearances int
	MinutesTotal     float64
	RatingMean       *float64 // nil when no appearance carried a rating
	ShotsTotal       float64
	GoalsTotal       float64
	PassesTotal      float64
}
