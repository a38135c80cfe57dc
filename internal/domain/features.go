package domain

// ShotFeatures holds the geometric features derived from one ShotEvent.
// Corresponds to the shot_features table in ClickHouse. Pointer fields are
// explicit missing-value markers: they are nil when the input lacked the data
// needed to compute them (no freeze frame, no in-cone opponent, no pass
// reception coordinates).
type ShotFeatures struct {
	ShotID    string // FK to shots
	FixtureID int64

	XShot    float64 // normalized x, meters
	YShot    float64 // normalized y, meters
	YCenter  float64 // distance from the pitch centerline
	Distance float64 // distance to the goal-line center
	Angle    float64 // shot angle, always in (0, pi]

	HasKeyPass         int      // 0/1
	DistanceBeforeShot *float64 // shot location to pass-reception point
	IsHighPass         int      // 0/1

	PlayersBetween    *int     // players inside the goal cone, nil without freeze frame
	OpponentsBetween  *int     // non-teammates inside the goal cone
	IsThereGoalkeeper int      // 0/1
	NearestOpponent   *float64 // distance to closest in-cone opponent
}
