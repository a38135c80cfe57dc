// Package features derives geometric shot-quality features from raw shot
// events: normalized coordinates, distance and angle to goal, pass context,
// and goal-cone occlusion counts from freeze-frame player positions.
package features

import (
	"math"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/pitch"
)

// GoalkeeperDefaultNoFrame is the is_there_goalkeeper value for shots without
// a freeze frame. The historical datasets this pipeline feeds were built
// assuming a keeper was present when positional data was missing; changing
// the default would shift the feature distribution under any model trained on
// them.
const GoalkeeperDefaultNoFrame = 1

// Derive computes all shot features for a single event. It is a pure function
// of the event: no batch state, no side effects. Freeze-frame dependent
// fields are nil when the event carries no freeze frame.
func Derive(e *domain.ShotEvent) *domain.ShotFeatures {
	xs := pitch.NormalizeX(e.XShot)
	ys := pitch.NormalizeY(e.YShot)
	yCenter := math.Abs(ys - domain.PitchWidth/2)

	f := &domain.ShotFeatures{
		ShotID:    e.ShotID,
		FixtureID: e.FixtureID,
		XShot:     xs,
		YShot:     ys,
		YCenter:   yCenter,
		Distance:  pitch.Distance(domain.PitchLength, 0, xs, yCenter),
		Angle:     pitch.ShotAngle(xs, yCenter),

		IsThereGoalkeeper: GoalkeeperDefaultNoFrame,
	}

	if e.KeyPass != nil {
		f.HasKeyPass = 1
	}

	if e.PassHeight != nil && *e.PassHeight == domain.PassHeightHigh {
		f.IsHighPass = 1
	}

	if e.XPassReceived != nil && e.YPassReceived != nil {
		d := pitch.Distance(xs, ys,
			pitch.NormalizeX(*e.XPassReceived), pitch.NormalizeY(*e.YPassReceived))
		f.DistanceBeforeShot = &d
	}

	if e.FreezeFrame == nil {
		return f
	}

	inCone := playersInGoalCone(e.FreezeFrame, xs, ys)

	players := len(inCone)
	f.PlayersBetween = &players

	opponents := 0
	keeper := false
	nearest := math.Inf(1)
	for _, p := range inCone {
		if p.Teammate {
			continue
		}
		opponents++
		if p.Position == domain.PositionGoalkeeper {
			keeper = true
		}
		d := pitch.Distance(xs, ys,
			pitch.NormalizeX(p.Location[0]), pitch.NormalizeY(p.Location[1]))
		if d < nearest {
			nearest = d
		}
	}
	f.OpponentsBetween = &opponents

	if keeper {
		f.IsThereGoalkeeper = 1
	} else {
		f.IsThereGoalkeeper = 0
	}

	if opponents > 0 {
		f.NearestOpponent = &nearest
	}

	return f
}

// DeriveBatch derives features for every shot in order. Output row count and
// order match the input; the transform is stateless and idempotent.
func DeriveBatch(shots []*domain.ShotEvent) []*domain.ShotFeatures {
	if len(shots) == 0 {
		return nil
	}

	result := make([]*domain.ShotFeatures, len(shots))
	for i, s := range shots {
		result[i] = Derive(s)
	}
	return result
}

// playersInGoalCone returns the snapshots whose position lies inside the
// triangle between the shot location and the two goalposts. Shot coordinates
// are already normalized; snapshot locations are normalized here.
func playersInGoalCone(frame []domain.PlayerSnapshot, xShot, yShot float64) []domain.PlayerSnapshot {
	leftPostY := domain.PitchWidth/2 - domain.GoalWidth/2
	rightPostY := domain.PitchWidth/2 + domain.GoalWidth/2

	var inCone []domain.PlayerSnapshot
	for _, p := range frame {
		if pitch.PointInTriangle(
			xShot, yShot,
			domain.PitchLength, leftPostY,
			domain.PitchLength, rightPostY,
			pitch.NormalizeX(p.Location[0]), pitch.NormalizeY(p.Location[1]),
		) {
			inCone = append(inCone, p)
		}
	}
	return inCone
}
