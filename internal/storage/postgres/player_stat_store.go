package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// PlayerStatStore implements storage.PlayerStatStore using PostgreSQL.
// The structured statistics map is stored as JSONB under dotted keys.
type PlayerStatStore struct {
	pool *Pool
}

// NewPlayerStatStore creates a new PlayerStatStore.
func NewPlayerStatStore(pool *Pool) *PlayerStatStore {
	return &PlayerStatStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PlayerStatStore = (*PlayerStatStore)(nil)

const playerStatColumns = `
	row_id, event_id, player_id, team_id, player_name, team_name, position,
	rating, minutes_played, captain, substitute, stats, created_at
`

const insertPlayerStatQuery = `
	INSERT INTO player_stats (
		row_id, event_id, player_id, team_id, player_name, team_name, position,
		rating, minutes_played, captain, substitute, stats, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

func playerStatArgs(st *domain.PlayerMatchStat) ([]any, error) {
	var stats []byte
	if st.Stats != nil {
		data, err := json.Marshal(st.Stats)
		if err != nil {
			return nil, fmt.Errorf("marshal stats: %w", err)
		}
		stats = data
	}

	return []any{
		st.RowID,
		st.EventID,
		st.PlayerID,
		st.TeamID,
		st.PlayerName,
		st.TeamName,
		st.Position,
		st.Rating,
		st.MinutesPlayed,
		st.Captain,
		st.Substitute,
		stats,
		st.CreatedAt,
	}, nil
}

// InsertBulk adds multiple rows atomically. Fails entire batch on duplicate row_id.
func (s *PlayerStatStore) InsertBulk(ctx context.Context, stats []*domain.PlayerMatchStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, st := range stats {
		if st == nil || st.RowID == "" {
			return storage.ErrInvalidInput
		}
		args, err := playerStatArgs(st)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertPlayerStatQuery, args...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert player stat in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByFixtureID retrieves all rows for a fixture event id.
func (s *PlayerStatStore) GetByFixtureID(ctx context.Context, eventID int64) ([]*domain.PlayerMatchStat, error) {
	query := `SELECT ` + playerStatColumns + `
		FROM player_stats
		WHERE event_id = $1
		ORDER BY row_id ASC
	`

	rows, err := s.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("get player stats by fixture id: %w", err)
	}
	defer rows.Close()

	return scanPlayerStats(rows)
}

// GetByPlayerID retrieves all rows for a player across fixtures, ordered by event_id ASC.
func (s *PlayerStatStore) GetByPlayerID(ctx context.Context, playerID int64) ([]*domain.PlayerMatchStat, error) {
	query := `SELECT ` + playerStatColumns + `
		FROM player_stats
		WHERE player_id = $1
		ORDER BY event_id ASC, row_id ASC
	`

	rows, err := s.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player stats by player id: %w", err)
	}
	defer rows.Close()

	return scanPlayerStats(rows)
}

// GetAll retrieves all rows, ordered by row_id ASC.
func (s *PlayerStatStore) GetAll(ctx context.Context) ([]*domain.PlayerMatchStat, error) {
	query := `SELECT ` + playerStatColumns + ` FROM player_stats ORDER BY row_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all player stats: %w", err)
	}
	defer rows.Close()

	return scanPlayerStats(rows)
}

// scanPlayerStats scans multiple rows into a slice of PlayerMatchStat.
func scanPlayerStats(rows pgx.Rows) ([]*domain.PlayerMatchStat, error) {
	var result []*domain.PlayerMatchStat

	for rows.Next() {
		var st domain.PlayerMatchStat
		var stats []byte

		err := rows.Scan(
			&st.RowID,
			&st.EventID,
			&st.PlayerID,
			&st.TeamID,
			&st.PlayerName,
			&st.TeamName,
			&st.Position,
			&st.Rating,
			&st.MinutesPlayed,
			&st.Captain,
			&st.Substitute,
			&stats,
			&st.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan player stat row: %w", err)
		}

		if stats != nil {
			if err := json.Unmarshal(stats, &st.Stats); err != nil {
				return nil, fmt.Errorf("unmarshal stats: %w", err)
			}
		}

		result = append(result, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player stat rows: %w", err)
	}

	return result, nil
}
