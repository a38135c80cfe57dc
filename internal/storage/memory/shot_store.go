// Package memory provides in-memory store implementations used by the batch
// pipeline and by tests. Stores copy records on the way in and out.
package memory

import (
	"context"
	"sort"
	"sync"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// ShotStore is an in-memory implementation of storage.ShotStore.
type ShotStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ShotEvent // keyed by shot_id
}

// NewShotStore creates a new in-memory shot store.
func NewShotStore() *ShotStore {
	return &ShotStore{
		data: make(map[string]*domain.ShotEvent),
	}
}

// Insert adds a new shot. Returns ErrDuplicateKey if shot_id exists.
func (s *ShotStore) Insert(_ context.Context, shot *domain.ShotEvent) error {
	if shot == nil || shot.ShotID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[shot.ShotID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[shot.ShotID] = copyShot(shot)
	return nil
}

// InsertBulk adds multiple shots atomically. Fails entire batch on any duplicate.
func (s *ShotStore) InsertBulk(_ context.Context, shots []*domain.ShotEvent) error {
	if len(shots) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(shots))
	for _, shot := range shots {
		if shot == nil || shot.ShotID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[shot.ShotID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[shot.ShotID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[shot.ShotID] = struct{}{}
	}

	for _, shot := range shots {
		s.data[shot.ShotID] = copyShot(shot)
	}
	return nil
}

// GetByID retrieves a shot by its ID. Returns ErrNotFound if not exists.
func (s *ShotStore) GetByID(_ context.Context, shotID string) (*domain.ShotEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shot, ok := s.data[shotID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyShot(shot), nil
}

// GetByFixtureID retrieves all shots for a fixture, ordered by (minute, event_index) ASC.
func (s *ShotStore) GetByFixtureID(_ context.Context, fixtureID int64) ([]*domain.ShotEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ShotEvent
	for _, shot := range s.data {
		if shot.FixtureID == fixtureID {
			result = append(result, copyShot(shot))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Minute != result[j].Minute {
			return result[i].Minute < result[j].Minute
		}
		return result[i].EventIndex < result[j].EventIndex
	})

	return result, nil
}

// FixtureIDs retrieves the distinct fixture ids with stored shots, ASC.
func (s *ShotStore) FixtureIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[int64]struct{})
	for _, shot := range s.data {
		seen[shot.FixtureID] = struct{}{}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

// copyShot deep-copies a shot, including the freeze frame slice.
func copyShot(shot *domain.ShotEvent) *domain.ShotEvent {
	c := *shot
	if shot.FreezeFrame != nil {
		c.FreezeFrame = append([]domain.PlayerSnapshot{}, shot.FreezeFrame...)
	}
	return &c
}

var _ storage.ShotStore = (*ShotStore)(nil)
