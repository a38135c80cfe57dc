package memory

import (
	"context"
	"sort"
	"sync"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// ShotFeatureStore is an in-memory implementation of storage.ShotFeatureStore.
type ShotFeatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ShotFeatures // keyed by shot_id
}

// NewShotFeatureStore creates a new in-memory shot feature store.
func NewShotFeatureStore() *ShotFeatureStore {
	return &ShotFeatureStore{
		data: make(map[string]*domain.ShotFeatures),
	}
}

// InsertBulk adds multiple feature rows. Fails entire batch on duplicate shot_id.
func (s *ShotFeatureStore) InsertBulk(_ context.Context, features []*domain.ShotFeatures) error {
	if len(features) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(features))
	for _, f := range features {
		if f == nil || f.ShotID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[f.ShotID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[f.ShotID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[f.ShotID] = struct{}{}
	}

	for _, f := range features {
		featureCopy := *f
		s.data[f.ShotID] = &featureCopy
	}
	return nil
}

// GetByFixtureID retrieves all feature rows for a fixture, ordered by shot_id ASC.
func (s *ShotFeatureStore) GetByFixtureID(_ context.Context, fixtureID int64) ([]*domain.ShotFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ShotFeatures
	for _, f := range s.data {
		if f.FixtureID == fixtureID {
			featureCopy := *f
			result = append(result, &featureCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ShotID < result[j].ShotID
	})

	return result, nil
}

// GetAll retrieves all feature rows, ordered by (fixture_id, shot_id) ASC.
func (s *ShotFeatureStore) GetAll(_ context.Context) ([]*domain.ShotFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ShotFeatures, 0, len(s.data))
	for _, f := range s.data {
		featureCopy := *f
		result = append(result, &featureCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].FixtureID != result[j].FixtureID {
			return result[i].FixtureID < result[j].FixtureID
		}
		return result[i].ShotID < result[j].ShotID
	})

	return result, nil
}

var _ storage.ShotFeatureStore = (*ShotFeatureStore)(nil)
