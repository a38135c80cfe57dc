package memory

import (
	"context"
	"sort"
	"sync"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// FixtureStore is an in-memory implementation of storage.FixtureStore.
type FixtureStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.Fixture
}

// NewFixtureStore creates a new in-memory fixture store.
func NewFixtureStore() *FixtureStore {
	return &FixtureStore{
		data: make(map[int64]*domain.Fixture),
	}
}

// Insert adds a new fixture. Returns ErrDuplicateKey if fixture_id exists.
func (s *FixtureStore) Insert(_ context.Context, f *domain.Fixture) error {
	if f == nil || f.FixtureID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[f.FixtureID]; exists {
		return storage.ErrDuplicateKey
	}
	fixtureCopy := *f
	s.data[f.FixtureID] = &fixtureCopy
	return nil
}

// InsertBulk adds multiple fixtures atomically. Fails entire batch on any duplicate.
func (s *FixtureStore) InsertBulk(_ context.Context, fixtures []*domain.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(fixtures))
	for _, f := range fixtures {
		if f == nil || f.FixtureID == 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[f.FixtureID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[f.FixtureID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[f.FixtureID] = struct{}{}
	}

	for _, f := range fixtures {
		fixtureCopy := *f
		s.data[f.FixtureID] = &fixtureCopy
	}
	return nil
}

// GetByID retrieves a fixture by its ID. Returns ErrNotFound if not exists.
func (s *FixtureStore) GetByID(_ context.Context, fixtureID int64) (*domain.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.data[fixtureID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	fixtureCopy := *f
	return &fixtureCopy, nil
}

// GetByLeagueID retrieves all fixtures for a league, ordered by date ASC.
func (s *FixtureStore) GetByLeagueID(_ context.Context, leagueID int64) ([]*domain.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Fixture
	for _, f := range s.data {
		if f.LeagueID == leagueID {
			fixtureCopy := *f
			result = append(result, &fixtureCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].FixtureID < result[j].FixtureID
	})

	return result, nil
}

var _ storage.FixtureStore = (*FixtureStore)(nil)
