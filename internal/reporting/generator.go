package reporting

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/metrics"
	"football-xg-lab/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	featureStore    storage.ShotFeatureStore
	playerStatStore storage.PlayerStatStore
	now             func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(featureStore storage.ShotFeatureStore, playerStatStore storage.PlayerStatStore) *Generator {
	return &Generator{
		featureStore:    featureStore,
		playerStatStore: playerStatStore,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete report from stored features and player rows.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	features, err := g.featureStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	playerRows, err := g.generatePlayerRows(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt:      g.now(),
		DataSummary:      generateDataSummary(features, playerRows),
		FixtureBreakdown: generateFixtureBreakdown(features),
		PlayerRows:       playerRows,
	}, nil
}

// WriteFiles generates the report and writes the markdown summary plus the
// shot feature and player aggregate CSVs into outputDir.
func (g *Generator) WriteFiles(ctx context.Context, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	report, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	reportMD := RenderMarkdown(report)
	reportPath := filepath.Join(outputDir, "REPORT.md")
	if err := os.WriteFile(reportPath, []byte(reportMD), 0644); err != nil {
		return err
	}

	features, err := g.featureStore.GetAll(ctx)
	if err != nil {
		return err
	}
	featuresCSV := RenderShotFeaturesCSV(features)
	featuresPath := filepath.Join(outputDir, "shot_features.csv")
	if err := os.WriteFile(featuresPath, []byte(featuresCSV), 0644); err != nil {
		return err
	}

	playersCSV := RenderPlayerAggregatesCSV(report.PlayerRows)
	playersPath := filepath.Join(outputDir, "player_aggregates.csv")
	return os.WriteFile(playersPath, []byte(playersCSV), 0644)
}

// generatePlayerRows computes player aggregates; an empty store yields an
// empty table, not an error.
func (g *Generator) generatePlayerRows(ctx context.Context) ([]PlayerRow, error) {
	aggs, err := metrics.NewAggregator(g.playerStatStore).ComputeAll(ctx)
	if err != nil {
		if errors.Is(err, metrics.ErrNoStats) {
			return nil, nil
		}
		return nil, err
	}

	rows := make([]PlayerRow, len(aggs))
	for i, a := range aggs {
		rows[i] = PlayerRow{
			PlayerID:         a.PlayerID,
			PlayerName:       a.PlayerName,
			TeamName:         a.TeamName,
			Appearances:      a.Appearances,
			RatedAppearances: a.RatedAppearances,
			MinutesTotal:     a.MinutesTotal,
			RatingMean:       a.RatingMean,
			ShotsTotal:       a.ShotsTotal,
			GoalsTotal:       a.GoalsTotal,
			PassesTotal:      a.PassesTotal,
		}
	}
	return rows, nil
}

// generateDataSummary computes the dataset description.
func generateDataSummary(features []*domain.ShotFeatures, playerRows []PlayerRow) DataSummary {
	fixtures := make(map[int64]struct{})
	withFrame := 0
	withKeyPass := 0
	for _, f := range features {
		fixtures[f.FixtureID] = struct{}{}
		// PlayersBetween is nil exactly when no freeze frame was attached
		if f.PlayersBetween != nil {
			withFrame++
		}
		if f.HasKeyPass == 1 {
			withKeyPass++
		}
	}

	return DataSummary{
		TotalFixtures:        len(fixtures),
		TotalFeatureRows:     len(features),
		TotalPlayers:         len(playerRows),
		ShotsWithFreezeFrame: withFrame,
		ShotsWithKeyPass:     withKeyPass,
	}
}

// generateFixtureBreakdown builds per-fixture rows sorted by fixture_id.
func generateFixtureBreakdown(features []*domain.ShotFeatures) []FixtureFeatureRow {
	type acc struct {
		shots       int
		withFrame   int
		distanceSum float64
		angleSum    float64
	}
	byFixture := make(map[int64]*acc)
	for _, f := range features {
		a, ok := byFixture[f.FixtureID]
		if !ok {
			a = &acc{}
			byFixture[f.FixtureID] = a
		}
		a.shots++
		if f.PlayersBetween != nil {
			a.withFrame++
		}
		a.distanceSum += f.Distance
		a.angleSum += f.Angle
	}

	ids := make([]int64, 0, len(byFixture))
	for id := range byFixture {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]FixtureFeatureRow, len(ids))
	for i, id := range ids {
		a := byFixture[id]
		rows[i] = FixtureFeatureRow{
			FixtureID:       id,
			Shots:           a.shots,
			WithFreezeFrame: a.withFrame,
			MeanDistance:    a.distanceSum / float64(a.shots),
			MeanAngle:       a.angleSum / float64(a.shots),
		}
	}
	return rows
}
