package clickhouse

import (
	"context"
	"fmt"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// ShotFeatureStore implements storage.ShotFeatureStore using ClickHouse.
// MergeTree does not enforce uniqueness, so duplicates are detected with an
// explicit existence check before insert.
type ShotFeatureStore struct {
	conn *Conn
}

// NewShotFeatureStore creates a new ShotFeatureStore.
func NewShotFeatureStore(conn *Conn) *ShotFeatureStore {
	return &ShotFeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ShotFeatureStore = (*ShotFeatureStore)(nil)

const featureColumns = `
	shot_id, fixture_id, x_shot, y_shot, y_center, distance, angle,
	has_key_pass, distance_before_shot, is_high_pass,
	players_between, opponents_between, is_there_goalkeeper, nearest_opponent
`

// InsertBulk adds multiple feature rows. Fails entire batch on duplicate shot_id.
func (s *ShotFeatureStore) InsertBulk(ctx context.Context, features []*domain.ShotFeatures) error {
	if len(features) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == nil || f.ShotID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[f.ShotID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[f.ShotID] = struct{}{}
	}

	// Check for duplicates against existing rows
	for _, f := range features {
		exists, err := s.exists(ctx, f.ShotID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO shot_features (`+featureColumns+`)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, f := range features {
		// Pass nil values directly for Nullable columns
		err = batch.Append(
			f.ShotID, f.FixtureID, f.XShot, f.YShot, f.YCenter, f.Distance, f.Angle,
			int32(f.HasKeyPass), f.DistanceBeforeShot, int32(f.IsHighPass),
			toNullableInt32(f.PlayersBetween), toNullableInt32(f.OpponentsBetween),
			int32(f.IsThereGoalkeeper), f.NearestOpponent,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByFixtureID retrieves all feature rows for a fixture, ordered by shot_id ASC.
func (s *ShotFeatureStore) GetByFixtureID(ctx context.Context, fixtureID int64) ([]*domain.ShotFeatures, error) {
	query := `
		SELECT ` + featureColumns + `
		FROM shot_features
		WHERE fixture_id = ?
		ORDER BY shot_id ASC
	`

	rows, err := s.conn.Query(ctx, query, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("query by fixture id: %w", err)
	}
	defer rows.Close()

	return scanShotFeatures(rows)
}

// GetAll retrieves all feature rows, ordered by (fixture_id, shot_id) ASC.
func (s *ShotFeatureStore) GetAll(ctx context.Context) ([]*domain.ShotFeatures, error) {
	query := `
		SELECT ` + featureColumns + `
		FROM shot_features
		ORDER BY fixture_id ASC, shot_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all features: %w", err)
	}
	defer rows.Close()

	return scanShotFeatures(rows)
}

// exists checks if a feature row with the given shot id exists.
func (s *ShotFeatureStore) exists(ctx context.Context, shotID string) (bool, error) {
	query := `SELECT count(*) FROM shot_features WHERE shot_id = ?`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, shotID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// toNullableInt32 converts *int to *int32 for ClickHouse Nullable(Int32).
func toNullableInt32(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanShotFeatures scans multiple rows into a slice of ShotFeatures.
func scanShotFeatures(rows chRows) ([]*domain.ShotFeatures, error) {
	var features []*domain.ShotFeatures

	for rows.Next() {
		var f domain.ShotFeatures
		var hasKeyPass, isHighPass, isThereGoalkeeper int32
		var playersBetween, opponentsBetween *int32

		err := rows.Scan(
			&f.ShotID, &f.FixtureID, &f.XShot, &f.YShot, &f.YCenter, &f.Distance, &f.Angle,
			&hasKeyPass, &f.DistanceBeforeShot, &isHighPass,
			&playersBetween, &opponentsBetween,
			&isThereGoalkeeper, &f.NearestOpponent,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shot features row: %w", err)
		}

		f.HasKeyPass = int(hasKeyPass)
		f.IsHighPass = int(isHighPass)
		f.IsThereGoalkeeper = int(isThereGoalkeeper)

		// Convert Nullable(Int32) to *int
		if playersBetween != nil {
			v := int(*playersBetween)
			f.PlayersBetween = &v
		}
		if opponentsBetween != nil {
			v := int(*opponentsBetween)
			f.OpponentsBetween = &v
		}

		features = append(features, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shot features rows: %w", err)
	}

	return features, nil
}
