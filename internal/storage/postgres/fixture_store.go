package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// FixtureStore implements storage.FixtureStore using PostgreSQL.
type FixtureStore struct {
	pool *Pool
}

// NewFixtureStore creates a new FixtureStore.
func NewFixtureStore(pool *Pool) *FixtureStore {
	return &FixtureStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FixtureStore = (*FixtureStore)(nil)

const fixtureColumns = `
	fixture_id, league_id, league_name, league_country, date, elapsed,
	goals_home, goals_away, home_team_id, home_team_name, away_team_id, away_team_name,
	score_halftime, score_fulltime, score_extratime, score_penalty, created_at
`

const insertFixtureQuery = `
	INSERT INTO fixtures (
		fixture_id, league_id, league_name, league_country, date, elapsed,
		goals_home, goals_away, home_team_id, home_team_name, away_team_id, away_team_name,
		score_halftime, score_fulltime, score_extratime, score_penalty, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`

func fixtureArgs(f *domain.Fixture) []any {
	return []any{
		f.FixtureID,
		f.LeagueID,
		f.LeagueName,
		f.LeagueCountry,
		f.Date,
		f.Elapsed,
		f.GoalsHome,
		f.GoalsAway,
		f.HomeTeamID,
		f.HomeTeamName,
		f.AwayTeamID,
		f.AwayTeamName,
		f.ScoreHalftime,
		f.ScoreFulltime,
		f.ScoreExtratime,
		f.ScorePenalty,
		f.CreatedAt,
	}
}

// Insert adds a new fixture. Returns ErrDuplicateKey if fixture_id exists.
func (s *FixtureStore) Insert(ctx context.Context, f *domain.Fixture) error {
	if f == nil || f.FixtureID == 0 {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertFixtureQuery, fixtureArgs(f)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

// InsertBulk adds multiple fixtures atomically. Fails entire batch on any duplicate.
func (s *FixtureStore) InsertBulk(ctx context.Context, fixtures []*domain.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, f := range fixtures {
		if f == nil || f.FixtureID == 0 {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, insertFixtureQuery, fixtureArgs(f)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert fixture in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a fixture by its ID. Returns ErrNotFound if not exists.
func (s *FixtureStore) GetByID(ctx context.Context, fixtureID int64) (*domain.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE fixture_id = $1`

	row := s.pool.QueryRow(ctx, query, fixtureID)
	f, err := scanFixture(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get fixture by id: %w", err)
	}
	return f, nil
}

// GetByLeagueID retrieves all fixtures for a league, ordered by date ASC.
func (s *FixtureStore) GetByLeagueID(ctx context.Context, leagueID int64) ([]*domain.Fixture, error) {
	query := `SELECT ` + fixtureColumns + `
		FROM fixtures
		WHERE league_id = $1
		ORDER BY date ASC, fixture_id ASC
	`

	rows, err := s.pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get fixtures by league id: %w", err)
	}
	defer rows.Close()

	var fixtures []*domain.Fixture
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fixture row: %w", err)
		}
		fixtures = append(fixtures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixture rows: %w", err)
	}
	return fixtures, nil
}

// scanFixture scans a single row into a Fixture.
func scanFixture(row pgx.Row) (*domain.Fixture, error) {
	var f domain.Fixture
	err := row.Scan(
		&f.FixtureID,
		&f.LeagueID,
		&f.LeagueName,
		&f.LeagueCountry,
		&f.Date,
		&f.Elapsed,
		&f.GoalsHome,
		&f.GoalsAway,
		&f.HomeTeamID,
		&f.HomeTeamName,
		&f.AwayTeamID,
		&f.AwayTeamName,
		&f.ScoreHalftime,
		&f.ScoreFulltime,
		&f.ScoreExtratime,
		&f.ScorePenalty,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
