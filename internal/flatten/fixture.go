package flatten

import (
	"fmt"
	"strings"
	"time"

	"football-xg-lab/internal/domain"
)

// FlattenFixture converts one raw fixture object into a domain.Fixture row.
// The provider's epoch timestamp becomes the fixture date; score strings for
// periods that were not played stay nil.
func FlattenFixture(raw map[string]any) (*domain.Fixture, error) {
	fixtureID, err := requiredInt64(raw, "fixture_id")
	if err != nil {
		return nil, err
	}
	leagueID, err := requiredInt64(raw, "league_id")
	if err != nil {
		return nil, err
	}

	f := &domain.Fixture{
		FixtureID: fixtureID,
		LeagueID:  leagueID,
		GoalsHome: asIntPtr(raw["goalsHomeTeam"]),
		GoalsAway: asIntPtr(raw["goalsAwayTeam"]),
	}

	if v := SafeNumCast(raw["elapsed"]); v != nil {
		f.Elapsed = int(*v)
	}

	if ts, err := asInt64(raw["event_timestamp"]); err == nil {
		f.Date = time.Unix(ts, 0).UTC()
	} else {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, err)
	}

	if league, ok := raw["league"].(map[string]any); ok {
		f.LeagueName = asString(league["name"])
		f.LeagueCountry = asString(league["country"])
	}

	if home, ok := raw["homeTeam"].(map[string]any); ok {
		if id, err := asInt64(home["team_id"]); err == nil {
			f.HomeTeamID = id
		}
		f.HomeTeamName = asString(home["team_name"])
	}
	if away, ok := raw["awayTeam"].(map[string]any); ok {
		if id, err := asInt64(away["team_id"]); err == nil {
			f.AwayTeamID = id
		}
		f.AwayTeamName = asString(away["team_name"])
	}

	if score, ok := raw["score"].(map[string]any); ok {
		f.ScoreHalftime = asStringPtr(score["halftime"])
		f.ScoreFulltime = asStringPtr(score["fulltime"])
		f.ScoreExtratime = asStringPtr(score["extratime"])
		f.ScorePenalty = asStringPtr(score["penalty"])
	}

	return f, nil
}

// FlattenFixtureStats converts one raw team-statistics object. Each statistic
// maps its home and away values separately; statistic names keep the
// provider's wording with spaces replaced by underscores ("Ball_Possession").
func FlattenFixtureStats(raw map[string]any, fixtureID int64) (*domain.FixtureStatLine, error) {
	if fixtureID == 0 {
		return nil, fmt.Errorf("fixture stats need a fixture id")
	}

	line := &domain.FixtureStatLine{
		FixtureID: fixtureID,
		Home:      make(map[string]*float64, len(raw)),
		Away:      make(map[string]*float64, len(raw)),
	}

	for name, v := range raw {
		sides, ok := v.(map[string]any)
		if !ok {
			continue
		}
		key := strings.ReplaceAll(name, " ", "_")
		line.Home[key] = SafeNumCast(sides["home"])
		line.Away[key] = SafeNumCast(sides["away"])
	}

	return line, nil
}

func requiredInt64(raw map[string]any, key string) (int64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing %q", key)
	}
	id, err := asInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", key, err)
	}
	return id, nil
}

func asIntPtr(v any) *int {
	f := SafeNumCast(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func asStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
