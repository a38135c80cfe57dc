package domain

// PlayerAggregate summarizes one player across all stored fixtures.
// RatingMean averages only the appearances that carry a parseable rating;
// it is nil when no appearance does. Totals sum the corresponding dotted
// Stats keys, skipping nil markers.
type PlayerAggregate struct {
	PlayerID   int64
	PlayerName string
	TeamName   string
	Position   string

	Appearances      int
	RatedAppearances int
	MinutesTotal     float64
	RatingMean       *float64

	ShotsTotal  float64
	GoalsTotal  float64
	PassesTotal float64
}
