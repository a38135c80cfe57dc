package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// LeagueStore implements storage.LeagueStore using PostgreSQL.
type LeagueStore struct {
	pool *Pool
}

// NewLeagueStore creates a new LeagueStore.
func NewLeagueStore(pool *Pool) *LeagueStore {
	return &LeagueStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LeagueStore = (*LeagueStore)(nil)

// Insert adds a new league. Returns ErrDuplicateKey if league_id exists.
func (s *LeagueStore) Insert(ctx context.Context, l *domain.League) error {
	if l == nil || l.LeagueID == 0 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO leagues (
			league_id, name, country, country_code, season, players_stats, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		l.LeagueID,
		l.Name,
		l.Country,
		l.CountryCode,
		l.Season,
		l.PlayersStats,
		l.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert league: %w", err)
	}
	return nil
}

// GetByID retrieves a league by its ID. Returns ErrNotFound if not exists.
func (s *LeagueStore) GetByID(ctx context.Context, leagueID int64) (*domain.League, error) {
	query := `
		SELECT league_id, name, country, country_code, season, players_stats, created_at
		FROM leagues
		WHERE league_id = $1
	`

	row := s.pool.QueryRow(ctx, query, leagueID)
	l, err := scanLeague(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get league by id: %w", err)
	}
	return l, nil
}

// GetAll retrieves all leagues, ordered by league_id ASC.
func (s *LeagueStore) GetAll(ctx context.Context) ([]*domain.League, error) {
	query := `
		SELECT league_id, name, country, country_code, season, players_stats, created_at
		FROM leagues
		ORDER BY league_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all leagues: %w", err)
	}
	defer rows.Close()

	var leagues []*domain.League
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("scan league row: %w", err)
		}
		leagues = append(leagues, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate league rows: %w", err)
	}
	return leagues, nil
}

// scanLeague scans a single row into a League.
func scanLeague(row pgx.Row) (*domain.League, error) {
	var l domain.League
	err := row.Scan(
		&l.LeagueID,
		&l.Name,
		&l.Country,
		&l.CountryCode,
		&l.Season,
		&l.PlayersStats,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
