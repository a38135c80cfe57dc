// Package metrics computes per-player aggregates from flattened match rows.
package metrics

import (
	"context"
	"errors"
	"sort"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

// ErrNoStats is returned when no player rows are available for aggregation.
var ErrNoStats = errors.New("no player statistics available for aggregation")

// Aggregator computes player aggregates from player match statistics.
type Aggregator struct {
	playerStatStore storage.PlayerStatStore
}

// NewAggregator creates a new player aggregator.
func NewAggregator(playerStatStore storage.PlayerStatStore) *Aggregator {
	return &Aggregator{playerStatStore: playerStatStore}
}

// ComputePlayer aggregates all stored rows for one player.
// Returns ErrNoStats if the player has no rows.
func (a *Aggregator) ComputePlayer(ctx context.Context, playerID int64) (*domain.PlayerAggregate, error) {
	rows, err := a.playerStatStore.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoStats
	}
	return computeFromRows(playerID, rows), nil
}

// ComputeAll aggregates every stored player, ordered by player_id ASC.
// Returns ErrNoStats if the store is empty.
func (a *Aggregator) ComputeAll(ctx context.Context) ([]*domain.PlayerAggregate, error) {
	rows, err := a.playerStatStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoStats
	}

	byPlayer := make(map[int64][]*domain.PlayerMatchStat)
	for _, row := range rows {
		byPlayer[row.PlayerID] = append(byPlayer[row.PlayerID], row)
	}

	ids := make([]int64, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	aggregates := make([]*domain.PlayerAggregate, 0, len(ids))
	for _, id := range ids {
		aggregates = append(aggregates, computeFromRows(id, byPlayer[id]))
	}
	return aggregates, nil
}
