package metrics

import (
	"sort"

	"football-xg-lab/internal/domain"
)

// Dotted stat keys summed into aggregate totals.
const (
	statShotsTotal  = "shots.total"
	statGoalsTotal  = "goals.total"
	statPassesTotal = "passes.total"
)

// computeFromRows calculates one player's aggregate from their match rows.
// Rows are sorted by EventID ASC, RowID ASC first so that identity fields
// come from the most recent appearance deterministically. Nil ratings and
// nil stat values are excluded, never treated as zero.
func computeFromRows(playerID int64, rows []*domain.PlayerMatchStat) *domain.PlayerAggregate {
	sorted := make([]*domain.PlayerMatchStat, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].EventID != sorted[j].EventID {
			return sorted[i].EventID < sorted[j].EventID
		}
		return sorted[i].RowID < sorted[j].RowID
	})

	agg := &domain.PlayerAggregate{
		PlayerID:    playerID,
		Appearances: len(sorted),
	}

	ratingSum := 0.0
	for _, row := range sorted {
		if row.MinutesPlayed != nil {
			agg.MinutesTotal += *row.MinutesPlayed
		}
		if row.Rating != nil {
			ratingSum += *row.Rating
			agg.RatedAppearances++
		}
		agg.ShotsTotal += statValue(row, statShotsTotal)
		agg.GoalsTotal += statValue(row, statGoalsTotal)
		agg.PassesTotal += statValue(row, statPassesTotal)
	}

	if agg.RatedAppearances > 0 {
		mean := ratingSum / float64(agg.RatedAppearances)
		agg.RatingMean = &mean
	}

	// Identity from the latest appearance
	last := sorted[len(sorted)-1]
	agg.PlayerName = last.PlayerName
	agg.TeamName = last.TeamName
	agg.Position = last.Position

	return agg
}

// statValue returns one dotted stat or 0 when absent or unparseable.
func statValue(row *domain.PlayerMatchStat, key string) float64 {
	if row.Stats == nil {
		return 0
	}
	v, ok := row.Stats[key]
	if !ok || v == nil {
		return 0
	}
	return *v
}
