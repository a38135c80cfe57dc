package statsapi

import (
	"encoding/json"
	"fmt"

	"football-xg-lab/internal/domain"
)

// leagueEntry mirrors one element of the provider's leagues section.
type leagueEntry struct {
	LeagueID    int64  `json:"league_id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Season      int    `json:"season"`
	Coverage    struct {
		Players bool `json:"players"`
	} `json:"coverage"`
}

// DecodeLeagues parses a raw leagues section into domain rows.
func DecodeLeagues(raw json.RawMessage) ([]*domain.League, error) {
	var entries []leagueEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode leagues: %w", err)
	}

	leagues := make([]*domain.League, 0, len(entries))
	for _, e := range entries {
		leagues = append(leagues, &domain.League{
			LeagueID:     e.LeagueID,
			Name:         e.Name,
			Country:      e.Country,
			CountryCode:  e.CountryCode,
			Season:       e.Season,
			PlayersStats: e.Coverage.Players,
		})
	}
	return leagues, nil
}

// FilterPlayersCovered keeps only leagues where the provider delivers
// player-level statistics.
func FilterPlayersCovered(leagues []*domain.League) []*domain.League {
	var out []*domain.League
	for _, l := range leagues {
		if l.PlayersStats {
			out = append(out, l)
		}
	}
	return out
}

// FilterCountries keeps only leagues whose country code is in the given set.
func FilterCountries(leagues []*domain.League, codes []string) []*domain.League {
	allowed := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		allowed[c] = struct{}{}
	}

	var out []*domain.League
	for _, l := range leagues {
		if _, ok := allowed[l.CountryCode]; ok {
			out = append(out, l)
		}
	}
	return out
}
