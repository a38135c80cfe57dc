package flatten

import (
	"testing"
	"time"
)

func sampleFixture() map[string]any {
	return map[string]any{
		"fixture_id":      float64(157201),
		"league_id":       float64(524),
		"event_timestamp": float64(1565370000),
		"elapsed":         float64(90),
		"goalsHomeTeam":   float64(4),
		"goalsAwayTeam":   float64(0),
		"league": map[string]any{
			"name":    "Premier League",
			"country": "England",
		},
		"homeTeam": map[string]any{
			"team_id":   float64(40),
			"team_name": "Liverpool",
		},
		"awayTeam": map[string]any{
			"team_id":   float64(71),
			"team_name": "Norwich",
		},
		"score": map[string]any{
			"halftime":  "4-0",
			"fulltime":  "4-0",
			"extratime": nil,
			"penalty":   nil,
		},
	}
}

func TestFlattenFixture(t *testing.T) {
	f, err := FlattenFixture(sampleFixture())
	if err != nil {
		t.Fatalf("FlattenFixture failed: %v", err)
	}

	if f.FixtureID != 157201 || f.LeagueID != 524 {
		t.Errorf("ids = %d, %d", f.FixtureID, f.LeagueID)
	}

	want := time.Unix(1565370000, 0).UTC()
	if !f.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", f.Date, want)
	}

	if f.LeagueName != "Premier League" || f.LeagueCountry != "England" {
		t.Errorf("league = %s / %s", f.LeagueName, f.LeagueCountry)
	}
	if f.HomeTeamID != 40 || f.HomeTeamName != "Liverpool" {
		t.Errorf("home = %d / %s", f.HomeTeamID, f.HomeTeamName)
	}

	if f.GoalsHome == nil || *f.GoalsHome != 4 {
		t.Errorf("GoalsHome = %v", f.GoalsHome)
	}
	if f.ScoreFulltime == nil || *f.ScoreFulltime != "4-0" {
		t.Errorf("ScoreFulltime = %v", f.ScoreFulltime)
	}

	// Periods that were not played stay nil
	if f.ScoreExtratime != nil || f.ScorePenalty != nil {
		t.Errorf("extratime/penalty should be nil: %v, %v", f.ScoreExtratime, f.ScorePenalty)
	}
}

func TestFlattenFixture_MissingID(t *testing.T) {
	raw := sampleFixture()
	delete(raw, "fixture_id")

	if _, err := FlattenFixture(raw); err == nil {
		t.Error("expected error for missing fixture_id")
	}
}

func TestFlattenFixtureStats(t *testing.T) {
	raw := map[string]any{
		"Shots on Goal": map[string]any{
			"home": float64(13),
			"away": float64(2),
		},
		"Ball Possession": map[string]any{
			"home": "61%",
			"away": "39%",
		},
		"Passes %": map[string]any{
			"home": "82%",
			"away": nil,
		},
	}

	line, err := FlattenFixtureStats(raw, 157201)
	if err != nil {
		t.Fatalf("FlattenFixtureStats failed: %v", err)
	}

	if v := line.Home["Shots_on_Goal"]; v == nil || *v != 13 {
		t.Errorf("home Shots_on_Goal = %v, want 13", v)
	}
	if v := line.Home["Ball_Possession"]; v == nil || *v != 61 {
		t.Errorf("home Ball_Possession = %v, want 61", v)
	}
	if v := line.Away["Passes_%"]; v != nil {
		t.Errorf("away Passes_%% = %v, want nil", v)
	}
}
