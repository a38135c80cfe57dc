package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// ShotStore implements storage.ShotStore using PostgreSQL.
// The freeze frame is stored as JSONB; a NULL column means no frame was
// captured, which is distinct from an empty one.
type ShotStore struct {
	pool *Pool
}

// NewShotStore creates a new ShotStore.
func NewShotStore(pool *Pool) *ShotStore {
	return &ShotStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ShotStore = (*ShotStore)(nil)

const shotColumns = `
	shot_id, fixture_id, player_id, minute, event_index, x_shot, y_shot,
	key_pass, pass_height, x_pass_received, y_pass_received, freeze_frame, created_at
`

const insertShotQuery = `
	INSERT INTO shots (
		shot_id, fixture_id, player_id, minute, event_index, x_shot, y_shot,
		key_pass, pass_height, x_pass_received, y_pass_received, freeze_frame, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

func shotArgs(shot *domain.ShotEvent) ([]any, error) {
	var frame []byte
	if shot.FreezeFrame != nil {
		data, err := json.Marshal(shot.FreezeFrame)
		if err != nil {
			return nil, fmt.Errorf("marshal freeze frame: %w", err)
		}
		frame = data
	}

	return []any{
		shot.ShotID,
		shot.FixtureID,
		shot.PlayerID,
		shot.Minute,
		shot.EventIndex,
		shot.XShot,
		shot.YShot,
		shot.KeyPass,
		shot.PassHeight,
		shot.XPassReceived,
		shot.YPassReceived,
		frame,
		shot.CreatedAt,
	}, nil
}

// Insert adds a new shot. Returns ErrDuplicateKey if shot_id exists.
func (s *ShotStore) Insert(ctx context.Context, shot *domain.ShotEvent) error {
	if shot == nil || shot.ShotID == "" {
		return storage.ErrInvalidInput
	}

	args, err := shotArgs(shot)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, insertShotQuery, args...); err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert shot: %w", err)
	}
	return nil
}

// InsertBulk adds multiple shots atomically. Fails entire batch on any duplicate.
func (s *ShotStore) InsertBulk(ctx context.Context, shots []*domain.ShotEvent) error {
	if len(shots) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, shot := range shots {
		if shot == nil || shot.ShotID == "" {
			return storage.ErrInvalidInput
		}
		args, err := shotArgs(shot)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertShotQuery, args...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert shot in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a shot by its ID. Returns ErrNotFound if not exists.
func (s *ShotStore) GetByID(ctx context.Context, shotID string) (*domain.ShotEvent, error) {
	query := `SELECT ` + shotColumns + ` FROM shots WHERE shot_id = $1`

	row := s.pool.QueryRow(ctx, query, shotID)
	shot, err := scanShot(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get shot by id: %w", err)
	}
	return shot, nil
}

// GetByFixtureID retrieves all shots for a fixture, ordered by (minute, event_index) ASC.
func (s *ShotStore) GetByFixtureID(ctx context.Context, fixtureID int64) ([]*domain.ShotEvent, error) {
	query := `SELECT ` + shotColumns + `
		FROM shots
		WHERE fixture_id = $1
		ORDER BY minute ASC, event_index ASC
	`

	rows, err := s.pool.Query(ctx, query, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("get shots by fixture id: %w", err)
	}
	defer rows.Close()

	var shots []*domain.ShotEvent
	for rows.Next() {
		shot, err := scanShot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shot row: %w", err)
		}
		shots = append(shots, shot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shot rows: %w", err)
	}
	return shots, nil
}

// FixtureIDs retrieves the distinct fixture ids with stored shots, ASC.
func (s *ShotStore) FixtureIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT DISTINCT fixture_id FROM shots ORDER BY fixture_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get fixture ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan fixture id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixture ids: %w", err)
	}
	return ids, nil
}

// scanShot scans a single row into a ShotEvent.
func scanShot(row pgx.Row) (*domain.ShotEvent, error) {
	var shot domain.ShotEvent
	var frame []byte

	err := row.Scan(
		&shot.ShotID,
		&shot.FixtureID,
		&shot.PlayerID,
		&shot.Minute,
		&shot.EventIndex,
		&shot.XShot,
		&shot.YShot,
		&shot.KeyPass,
		&shot.PassHeight,
		&shot.XPassReceived,
		&shot.YPassReceived,
		&frame,
		&shot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if frame != nil {
		if err := json.Unmarshal(frame, &shot.FreezeFrame); err != nil {
			return nil, fmt.Errorf("unmarshal freeze frame: %w", err)
		}
		if shot.FreezeFrame == nil {
			shot.FreezeFrame = []domain.PlayerSnapshot{}
		}
	}

	return &shot, nil
}
