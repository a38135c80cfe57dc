package reporting

import (
	"fmt"
	"strings"

	"football-xg-lab/internal/domain"
)

// RenderShotFeaturesCSV renders derived shot features as a CSV string.
// Missing-value markers render as empty cells, never as zeros.
func RenderShotFeaturesCSV(features []*domain.ShotFeatures) string {
	var sb strings.Builder

	// Header
	sb.WriteString("shot_id,fixture_id,x_shot,y_shot,y_center,distance,angle,")
	sb.WriteString("has_key_pass,distance_before_shot,is_high_pass,")
	sb.WriteString("players_between,opponents_between,is_there_goalkeeper,nearest_opponent\n")

	// Rows
	for _, f := range features {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%d,%s,%d,%s,%s,%d,%s\n",
			f.ShotID,
			f.FixtureID,
			f.XShot,
			f.YShot,
			f.YCenter,
			f.Distance,
			f.Angle,
			f.HasKeyPass,
			csvFloat(f.DistanceBeforeShot),
			f.IsHighPass,
			csvInt(f.PlayersBetween),
			csvInt(f.OpponentsBetween),
			f.IsThereGoalkeeper,
			csvFloat(f.NearestOpponent),
		))
	}

	return sb.String()
}

// RenderPlayerAggregatesCSV renders player aggregates as a CSV string.
func RenderPlayerAggregatesCSV(rows []PlayerRow) string {
	var sb strings.Builder

	sb.WriteString("player_id,player_name,team_name,appearances,rated_appearances,")
	sb.WriteString("minutes_total,rating_mean,shots_total,goals_total,passes_total\n")

	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%d,%d,%.2f,%s,%.2f,%.2f,%.2f\n",
			r.PlayerID,
			csvString(r.PlayerName),
			csvString(r.TeamName),
			r.Appearances,
			r.RatedAppearances,
			r.MinutesTotal,
			csvFloat(r.RatingMean),
			r.ShotsTotal,
			r.GoalsTotal,
			r.PassesTotal,
		))
	}

	return sb.String()
}

// csvFloat renders an optional float, empty when nil.
func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.6f", *v)
}

// csvInt renders an optional int, empty when nil.
func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

// csvString quotes values containing commas.
func csvString(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
