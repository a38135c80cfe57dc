package storage

import (
	"context"

	"football-xg-lab/internal/domain"
)

// LeagueStore provides access to leagues storage.
type LeagueStore interface {
	// Insert adds a new league. Returns ErrDuplicateKey if league_id exists.
	Insert(ctx context.Context, l *domain.League) error

	// GetByID retrieves a league by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, leagueID int64) (*domain.League, error)

	// GetAll retrieves all leagues, ordered by league_id ASC.
	GetAll(ctx context.Context) ([]*domain.League, error)
}

// FixtureStore provides access to fixtures storage.
type FixtureStore interface {
	// Insert adds a new fixture. Returns ErrDuplicateKey if fixture_id exists.
	Insert(ctx context.Context, f *domain.Fixture) error

	// InsertBulk adds multiple fixtures atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, fixtures []*domain.Fixture) error

	// GetByID retrieves a fixture by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, fixtureID int64) (*domain.Fixture, error)

	// GetByLeagueID retrieves all fixtures for a league, ordered by date ASC.
	GetByLeagueID(ctx context.Context, leagueID int64) ([]*domain.Fixture, error)
}

// PlayerStatStore provides access to player_stats storage.
type PlayerStatStore interface {
	// InsertBulk adds multiple rows atomically. Fails entire batch on duplicate row_id.
	InsertBulk(ctx context.Context, stats []*domain.PlayerMatchStat) error

	// GetByFixtureID retrieves all rows for a fixture event id.
	GetByFixtureID(ctx context.Context, eventID int64) ([]*domain.PlayerMatchStat, error)

	// GetByPlayerID retrieves all rows for a player across fixtures,
	// ordered by event_id ASC.
	GetByPlayerID(ctx context.Context, playerID int64) ([]*domain.PlayerMatchStat, error)

	// GetAll retrieves all rows, ordered by row_id ASC.
	GetAll(ctx context.Context) ([]*domain.PlayerMatchStat, error)
}

// ShotStore provides access to shots storage.
type ShotStore interface {
	// Insert adds a new shot. Returns ErrDuplicateKey if shot_id exists.
	Insert(ctx context.Context, s *domain.ShotEvent) error

	// InsertBulk adds multiple shots atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, shots []*domain.ShotEvent) error

	// GetByID retrieves a shot by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, shotID string) (*domain.ShotEvent, error)

	// GetByFixtureID retrieves all shots for a fixture, ordered by
	// (minute, event_index) ASC.
	GetByFixtureID(ctx context.Context, fixtureID int64) ([]*domain.ShotEvent, error)

	// FixtureIDs retrieves the distinct fixture ids with stored shots, ASC.
	FixtureIDs(ctx context.Context) ([]int64, error)
}

// ShotFeatureStore provides access to shot_features storage.
type ShotFeatureStore interface {
	// InsertBulk adds multiple feature rows. Fails entire batch on duplicate shot_id.
	InsertBulk(ctx context.Context, features []*domain.ShotFeatures) error

	// GetByFixtureID retrieves all feature rows for a fixture, ordered by shot_id ASC.
	GetByFixtureID(ctx context.Context, fixtureID int64) ([]*domain.ShotFeatures, error)

	// GetAll retrieves all feature rows, ordered by (fixture_id, shot_id) ASC.
	GetAll(ctx context.Context) ([]*domain.ShotFeatures, error)
}
