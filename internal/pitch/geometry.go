// Package pitch implements the shot geometry behind expected-goals features:
// coordinate normalization from the provider's 120x80 frame to pitch meters,
// Euclidean distance, the shot angle formula, and the barycentric
// point-in-triangle test used for goal-cone occlusion.
package pitch

import (
	"math"

	"football-xg-lab/internal/domain"
)

// NormalizeX rescales a source-frame x coordinate to pitch meters.
func NormalizeX(x float64) float64 {
	return x * domain.PitchLength / domain.SourceFrameLength
}

// NormalizeY rescales a source-frame y coordinate to pitch meters.
func NormalizeY(y float64) float64 {
	return y * domain.PitchWidth / domain.SourceFrameWidth
}

// Distance returns the Euclidean distance between (x1,y1) and (x2,y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInTriangle reports whether (x,y) lies inside or on the boundary of the
// triangle (x1,y1),(x2,y2),(x3,y3), testing barycentric coordinates. A
// degenerate triangle with zero area contains no points at all; this covers a
// shot taken exactly on the goal line, where the cone collapses.
func PointInTriangle(x1, y1, x2, y2, x3, y3, x, y float64) bool {
	det := (y2-y3)*(x1-x3) + (x3-x2)*(y1-y3)
	if det == 0 {
		return false
	}

	a := ((y2-y3)*(x-x3) + (x3-x2)*(y-y3)) / det
	b := ((y3-y1)*(x-x3) + (x1-x3)*(y-y3)) / det
	c := 1 - a - b

	return a >= 0 && a <= 1 && b >= 0 && b <= 1 && c >= 0 && c <= 1
}

// ShotAngle returns the shot angle for a point x meters along the pitch and
// yCenter meters off the centerline, both normalized. A negative arctangent is
// shifted by pi so the result stays in (0, pi]. Two singular inputs get an
// explicit value instead of the formula's undefined result:
//   - a point on the circle of radius GoalWidth/2 around the goal-line center
//     (zero denominator) returns pi/2
//   - a point on the goal line between the posts returns pi/2
func ShotAngle(x, yCenter float64) float64 {
	dx := domain.PitchLength - x
	halfGoal := domain.GoalWidth / 2

	if dx == 0 && math.Abs(yCenter) < halfGoal {
		return math.Pi / 2
	}

	denom := dx*dx + yCenter*yCenter - halfGoal*halfGoal
	if denom == 0 {
		return math.Pi / 2
	}

	angle := math.Atan(domain.GoalWidth * dx / denom)
	if angle < 0 {
		angle += math.Pi
	}
	return angle
}
