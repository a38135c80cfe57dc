package memory

import (
	"context"
	"sort"
	"sync"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// PlayerStatStore is an in-memory implementation of storage.PlayerStatStore.
type PlayerStatStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PlayerMatchStat // keyed by row_id
}

// NewPlayerStatStore creates a new in-memory player stat store.
func NewPlayerStatStore() *PlayerStatStore {
	return &PlayerStatStore{
		data: make(map[string]*domain.PlayerMatchStat),
	}
}

// InsertBulk adds multiple rows atomically. Fails entire batch on duplicate row_id.
func (s *PlayerStatStore) InsertBulk(_ context.Context, stats []*domain.PlayerMatchStat) error {
	if len(stats) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(stats))
	for _, st := range stats {
		if st == nil || st.RowID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[st.RowID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[st.RowID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[st.RowID] = struct{}{}
	}

	for _, st := range stats {
		s.data[st.RowID] = copyPlayerStat(st)
	}
	return nil
}

// GetByFixtureID retrieves all rows for a fixture event id.
func (s *PlayerStatStore) GetByFixtureID(_ context.Context, eventID int64) ([]*domain.PlayerMatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PlayerMatchStat
	for _, st := range s.data {
		if st.EventID == eventID {
			result = append(result, copyPlayerStat(st))
		}
	}
	sortPlayerStats(result)
	return result, nil
}

// GetByPlayerID retrieves all rows for a player across fixtures, ordered by event_id ASC.
func (s *PlayerStatStore) GetByPlayerID(_ context.Context, playerID int64) ([]*domain.PlayerMatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PlayerMatchStat
	for _, st := range s.data {
		if st.PlayerID == playerID {
			result = append(result, copyPlayerStat(st))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EventID != result[j].EventID {
			return result[i].EventID < result[j].EventID
		}
		return result[i].RowID < result[j].RowID
	})
	return result, nil
}

// GetAll retrieves all rows, ordered by row_id ASC.
func (s *PlayerStatStore) GetAll(_ context.Context) ([]*domain.PlayerMatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.PlayerMatchStat, 0, len(s.data))
	for _, st := range s.data {
		result = append(result, copyPlayerStat(st))
	}
	sortPlayerStats(result)
	return result, nil
}

func sortPlayerStats(stats []*domain.PlayerMatchStat) {
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].RowID < stats[j].RowID
	})
}

// copyPlayerStat deep-copies a row, including the stats map.
func copyPlayerStat(st *domain.PlayerMatchStat) *domain.PlayerMatchStat {
	c := *st
	if st.Stats != nil {
		c.Stats = make(map[string]*float64, len(st.Stats))
		for k, v := range st.Stats {
			if v != nil {
				val := *v
				c.Stats[k] = &val
			} else {
				c.Stats[k] = nil
			}
		}
	}
	return &c
}

var _ storage.PlayerStatStore = (*PlayerStatStore)(nil)
