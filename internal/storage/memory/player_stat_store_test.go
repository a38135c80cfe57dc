package memory

import (
	"context"
	"errors"
	"testing"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

func TestPlayerStatStore_InsertBulkAndGet(t *testing.T) {
	store := NewPlayerStatStore()
	ctx := context.Background()

	rating := 7.4
	stats := []*domain.PlayerMatchStat{
		{RowID: "1000_9_33", EventID: 1000, PlayerID: 9, TeamID: 33, Rating: &rating},
		{RowID: "1000_10_33", EventID: 1000, PlayerID: 10, TeamID: 33},
		{RowID: "2000_9_33", EventID: 2000, PlayerID: 9, TeamID: 33},
	}

	if err := store.InsertBulk(ctx, stats); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByFixtureID(ctx, 1000)
	if err != nil {
		t.Fatalf("GetByFixtureID failed: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(result))
	}
}

func TestPlayerStatStore_DuplicateRowID(t *testing.T) {
	store := NewPlayerStatStore()
	ctx := context.Background()

	first := []*domain.PlayerMatchStat{
		{RowID: "1000_9_33", EventID: 1000, PlayerID: 9, TeamID: 33},
	}
	if err := store.InsertBulk(ctx, first); err != nil {
		t.Fatalf("First InsertBulk failed: %v", err)
	}

	second := []*domain.PlayerMatchStat{
		{RowID: "1000_10_33", EventID: 1000, PlayerID: 10, TeamID: 33}, // new
		{RowID: "1000_9_33", EventID: 1000, PlayerID: 9, TeamID: 33},   // duplicate
	}

	err := store.InsertBulk(ctx, second)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Verify no partial insert
	all, _ := store.GetAll(ctx)
	if len(all) != 1 {
		t.Errorf("Expected 1 row (rollback), got %d", len(all))
	}
}

func TestPlayerStatStore_GetByPlayerIDOrdering(t *testing.T) {
	store := NewPlayerStatStore()
	ctx := context.Background()

	stats := []*domain.PlayerMatchStat{
		{RowID: "3000_9_33", EventID: 3000, PlayerID: 9, TeamID: 33},
		{RowID: "1000_9_33", EventID: 1000, PlayerID: 9, TeamID: 33},
		{RowID: "2000_9_33", EventID: 2000, PlayerID: 9, TeamID: 33},
		{RowID: "1000_10_33", EventID: 1000, PlayerID: 10, TeamID: 33}, // different player
	}

	if err := store.InsertBulk(ctx, stats); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByPlayerID(ctx, 9)
	if err != nil {
		t.Fatalf("GetByPlayerID failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(result))
	}

	for i := 1; i < len(result); i++ {
		if result[i].EventID < result[i-1].EventID {
			t.Errorf("Results not ordered: %d < %d", result[i].EventID, result[i-1].EventID)
		}
	}
}

func TestPlayerStatStore_StatsMapIsolation(t *testing.T) {
	store := NewPlayerStatStore()
	ctx := context.Background()

	goals := 2.0
	st := &domain.PlayerMatchStat{
		RowID:    "1000_9_33",
		EventID:  1000,
		PlayerID: 9,
		TeamID:   33,
		Stats:    map[string]*float64{"goals.total": &goals, "passes.key": nil},
	}

	if err := store.InsertBulk(ctx, []*domain.PlayerMatchStat{st}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	// Mutating the caller's map must not affect stored data
	goals = 99

	result, _ := store.GetByFixtureID(ctx, 1000)
	if got := result[0].Stats["goals.total"]; got == nil || *got != 2.0 {
		t.Errorf("Stored stats mutated: %v", got)
	}
	if v, ok := result[0].Stats["passes.key"]; !ok || v != nil {
		t.Errorf("Missing stat not preserved as nil: %v, %v", v, ok)
	}
}
