package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

func TestLeagueStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLeagueStore(pool)

	league := &domain.League{
		LeagueID:     39,
		Name:         "Premier League",
		Country:      "England",
		CountryCode:  "GB",
		Season:       2023,
		PlayersStats: true,
		CreatedAt:    1700000000000,
	}

	err := store.Insert(ctx, league)
	require.NoError(t, err)

	got, err := store.GetByID(ctx, 39)
	require.NoError(t, err)

	assert.Equal(t, league.Name, got.Name)
	assert.Equal(t, league.Country, got.Country)
	assert.Equal(t, league.CountryCode, got.CountryCode)
	assert.Equal(t, league.Season, got.Season)
	assert.True(t, got.PlayersStats)
}

func TestLeagueStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewLeagueStore(pool)

	_, err := store.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLeagueStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLeagueStore(pool)

	league := &domain.League{LeagueID: 39, Name: "Premier League"}
	require.NoError(t, store.Insert(ctx, league))

	err := store.Insert(ctx, league)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestLeagueStore_GetAllOrdering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLeagueStore(pool)

	for _, id := range []int64{140, 39, 78} {
		require.NoError(t, store.Insert(ctx, &domain.League{LeagueID: id}))
	}

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, int64(39), all[0].LeagueID)
	assert.Equal(t, int64(78), all[1].LeagueID)
	assert.Equal(t, int64(140), all[2].LeagueID)
}
