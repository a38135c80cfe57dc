package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"football-xg-lab/internal/domain"
)

// Config controls which provider fields the player flattener extracts.
// Zero-value lists fall back to the provider's standard field set.
type Config struct {
	IDFeatures     []string // concatenated into the row id, in order
	NumFeatures    []string
	CatFeatures    []string
	BoolFeatures   []string
	StructFeatures []string // nested objects unpacked under dotted keys
}

// DefaultConfig returns the standard field set of the player statistics
// endpoint.
func DefaultConfig() Config {
	return Config{
		IDFeatures:   []string{"event_id", "player_id", "team_id"},
		NumFeatures:  []string{"rating", "minutes_played"},
		CatFeatures:  []string{"player_name", "team_name", "position"},
		BoolFeatures: []string{"captain", "substitute"},
		StructFeatures: []string{
			"shots", "goals", "passes", "tackles", "duels",
			"dribbles", "fouls", "cards", "penalty",
		},
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.IDFeatures == nil {
		c.IDFeatures = def.IDFeatures
	}
	if c.NumFeatures == nil {
		c.NumFeatures = def.NumFeatures
	}
	if c.CatFeatures == nil {
		c.CatFeatures = def.CatFeatures
	}
	if c.BoolFeatures == nil {
		c.BoolFeatures = def.BoolFeatures
	}
	if c.StructFeatures == nil {
		c.StructFeatures = def.StructFeatures
	}
	return c
}

// PlayerFlattener turns one player statistics JSON object into a
// domain.PlayerMatchStat row.
type PlayerFlattener struct {
	cfg Config
}

// NewPlayerFlattener creates a flattener with the given config.
func NewPlayerFlattener(cfg Config) *PlayerFlattener {
	return &PlayerFlattener{cfg: cfg.withDefaults()}
}

// Flatten converts one raw player object. The row id concatenates the id
// features with underscores. Structured sub-objects land in Stats under
// dotted keys ("shots.total"); unparseable values stay nil.
func (f *PlayerFlattener) Flatten(raw map[string]any) (*domain.PlayerMatchStat, error) {
	row := &domain.PlayerMatchStat{
		Stats: make(map[string]*float64),
	}

	// Row id from the id features, all of which must be present.
	parts := make([]string, 0, len(f.cfg.IDFeatures))
	for _, feat := range f.cfg.IDFeatures {
		v, ok := raw[feat]
		if !ok || v == nil {
			return nil, fmt.Errorf("player row missing id feature %q", feat)
		}
		id, err := asInt64(v)
		if err != nil {
			return nil, fmt.Errorf("player row id feature %q: %w", feat, err)
		}
		parts = append(parts, strconv.FormatInt(id, 10))

		switch feat {
		case "event_id":
			row.EventID = id
		case "player_id":
			row.PlayerID = id
		case "team_id":
			row.TeamID = id
		}
	}
	row.RowID = strings.Join(parts, "_")

	for _, feat := range f.cfg.CatFeatures {
		s := asString(raw[feat])
		switch feat {
		case "player_name":
			row.PlayerName = s
		case "team_name":
			row.TeamName = s
		case "position":
			row.Position = s
		}
	}

	for _, feat := range f.cfg.NumFeatures {
		v := SafeNumCast(raw[feat])
		switch feat {
		case "rating":
			row.Rating = v
		case "minutes_played":
			row.MinutesPlayed = v
		}
	}

	// The provider delivers booleans as the strings "True"/"False".
	for _, feat := range f.cfg.BoolFeatures {
		b := asProviderBool(raw[feat])
		switch feat {
		case "captain":
			row.Captain = b
		case "substitute":
			row.Substitute = b
		}
	}

	for _, feat := range f.cfg.StructFeatures {
		sub, ok := raw[feat].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range sub {
			row.Stats[feat+"."+k] = SafeNumCast(v)
		}
	}

	return row, nil
}

// asInt64 coerces a decoded JSON id value.
func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case float64:
		return int64(x), nil
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("not an integer value: %v", v)
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asProviderBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "True"
	default:
		return false
	}
}
