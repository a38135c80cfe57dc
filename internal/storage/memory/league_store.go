package memory

import (
	"context"
	"sort"
	"sync"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// LeagueStore is an in-memory implementation of storage.LeagueStore.
type LeagueStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.League
}

// NewLeagueStore creates a new in-memory league store.
func NewLeagueStore() *LeagueStore {
	return &LeagueStore{
		data: make(map[int64]*domain.League),
	}
}

// Insert adds a new league. Returns ErrDuplicateKey if league_id exists.
func (s *LeagueStore) Insert(_ context.Context, l *domain.League) error {
	if l == nil || l.LeagueID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[l.LeagueID]; exists {
		return storage.ErrDuplicateKey
	}
	leagueCopy := *l
	s.data[l.LeagueID] = &leagueCopy
	return nil
}

// GetByID retrieves a league by its ID. Returns ErrNotFound if not exists.
func (s *LeagueStore) GetByID(_ context.Context, leagueID int64) (*domain.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.data[leagueID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	leagueCopy := *l
	return &leagueCopy, nil
}

// GetAll retrieves all leagues, ordered by league_id ASC.
func (s *LeagueStore) GetAll(_ context.Context) ([]*domain.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.League, 0, len(s.data))
	for _, l := range s.data {
		leagueCopy := *l
		result = append(result, &leagueCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LeagueID < result[j].LeagueID
	})
	return result, nil
}

var _ storage.LeagueStore = (*LeagueStore)(nil)
