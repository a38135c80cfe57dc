package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

func TestShotFeatureStore_InsertBulkAndGetByFixtureID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShotFeatureStore(conn)

	features := []*domain.ShotFeatures{
		{
			ShotID:             "s1",
			FixtureID:          1000,
			XShot:              98.0,
			YShot:              30.0,
			YCenter:            2.5,
			Distance:           7.43,
			Angle:              0.83,
			HasKeyPass:         1,
			DistanceBeforeShot: ptr(6.5),
			IsHighPass:         0,
			PlayersBetween:     ptr(2),
			OpponentsBetween:   ptr(1),
			IsThereGoalkeeper:  1,
			NearestOpponent:    ptr(3.2),
		},
		{
			ShotID:            "s2",
			FixtureID:         1000,
			XShot:             87.5,
			YShot:             32.5,
			YCenter:           0.0,
			Distance:          17.5,
			Angle:             0.41,
			IsThereGoalkeeper: 1,
		},
	}

	require.NoError(t, store.InsertBulk(ctx, features))

	got, err := store.GetByFixtureID(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "s1", got[0].ShotID)
	assert.InDelta(t, 7.43, got[0].Distance, 0.0001)
	require.NotNil(t, got[0].DistanceBeforeShot)
	assert.InDelta(t, 6.5, *got[0].DistanceBeforeShot, 0.0001)
	require.NotNil(t, got[0].PlayersBetween)
	assert.Equal(t, 2, *got[0].PlayersBetween)
	require.NotNil(t, got[0].OpponentsBetween)
	assert.Equal(t, 1, *got[0].OpponentsBetween)

	// Rows without freeze frame context keep nil feature columns
	assert.Nil(t, got[1].DistanceBeforeShot)
	assert.Nil(t, got[1].PlayersBetween)
	assert.Nil(t, got[1].NearestOpponent)
	assert.Equal(t, 1, got[1].IsThereGoalkeeper)
}

func TestShotFeatureStore_DuplicateAgainstExistingRows(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShotFeatureStore(conn)

	require.NoError(t, store.InsertBulk(ctx, []*domain.ShotFeatures{
		{ShotID: "s1", FixtureID: 1000},
	}))

	err := store.InsertBulk(ctx, []*domain.ShotFeatures{
		{ShotID: "s1", FixtureID: 1000},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestShotFeatureStore_DuplicateWithinBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShotFeatureStore(conn)

	err := store.InsertBulk(ctx, []*domain.ShotFeatures{
		{ShotID: "s1", FixtureID: 1000},
		{ShotID: "s1", FixtureID: 1000},
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestShotFeatureStore_GetAllOrdering(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShotFeatureStore(conn)

	require.NoError(t, store.InsertBulk(ctx, []*domain.ShotFeatures{
		{ShotID: "b", FixtureID: 2000},
		{ShotID: "a", FixtureID: 2000},
		{ShotID: "z", FixtureID: 1000},
	}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "z", all[0].ShotID)
	assert.Equal(t, "a", all[1].ShotID)
	assert.Equal(t, "b", all[2].ShotID)
}
