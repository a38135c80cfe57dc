package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Shot Feature Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Fixtures With Shots | %d |\n", r.DataSummary.TotalFixtures))
	sb.WriteString(fmt.Sprintf("| Feature Rows | %d |\n", r.DataSummary.TotalFeatureRows))
	sb.WriteString(fmt.Sprintf("| Players | %d |\n", r.DataSummary.TotalPlayers))
	sb.WriteString(fmt.Sprintf("| Shots With Freeze Frame | %d |\n", r.DataSummary.ShotsWithFreezeFrame))
	sb.WriteString(fmt.Sprintf("| Shots With Key Pass | %d |\n", r.DataSummary.ShotsWithKeyPass))
	sb.WriteString("\n")

	// Fixture Breakdown
	sb.WriteString("## Fixture Breakdown\n\n")
	if len(r.FixtureBreakdown) > 0 {
		sb.WriteString("| Fixture | Shots | With Frame | Mean Distance | Mean Angle |\n")
		sb.WriteString("|---------|-------|------------|---------------|------------|\n")
		for _, row := range r.FixtureBreakdown {
			sb.WriteString(fmt.Sprintf("| %d | %d | %d | %.2f | %.4f |\n",
				row.FixtureID, row.Shots, row.WithFreezeFrame,
				row.MeanDistance, row.MeanAngle))
		}
	} else {
		sb.WriteString("No derived features available.\n")
	}
	sb.WriteString("\n")

	// Player Aggregates
	sb.WriteString("## Player Aggregates\n\n")
	if len(r.PlayerRows) > 0 {
		sb.WriteString("| Player | Team | Apps | Minutes | Rating | Shots | Goals | Passes |\n")
		sb.WriteString("|--------|------|------|---------|--------|-------|-------|--------|\n")
		for _, p := range r.PlayerRows {
			rating := "-"
			if p.RatingMean != nil {
				rating = fmt.Sprintf("%.2f", *p.RatingMean)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.0f | %s | %.0f | %.0f | %.0f |\n",
				p.PlayerName, p.TeamName, p.Appearances, p.MinutesTotal,
				rating, p.ShotsTotal, p.GoalsTotal, p.PassesTotal))
		}
	} else {
		sb.WriteString("No player aggregates available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
