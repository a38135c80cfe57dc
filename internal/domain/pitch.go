package domain

// Pitch and goal dimensions in meters. Event providers deliver coordinates in
// a 120x80 frame; all derived features are computed after rescaling to these
// real dimensions.
const (
	PitchLength = 105.0
	PitchWidth  = 65.0
	GoalWidth   = 7.32

	SourceFrameLength = 120.0
	SourceFrameWidth  = 80.0
)
