package memory

import (
	"context"
	"errors"
	"testing"

	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/storage"
)

func TestShotFeatureStore_InsertBulkAndGet(t *testing.T) {
	store := NewShotFeatureStore()
	ctx := context.Background()

	features := []*domain.ShotFeatures{
		{ShotID: "s2", FixtureID: 100, Distance: 12.5},
		{ShotID: "s1", FixtureID: 100, Distance: 8.0},
		{ShotID: "s3", FixtureID: 200, Distance: 20.0},
	}

	if err := store.InsertBulk(ctx, features); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByFixtureID(ctx, 100)
	if err != nil {
		t.Fatalf("GetByFixtureID failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(result))
	}

	// Ordered by shot_id ASC
	if result[0].ShotID != "s1" || result[1].ShotID != "s2" {
		t.Errorf("Unexpected ordering: %s, %s", result[0].ShotID, result[1].ShotID)
	}
}

func TestShotFeatureStore_DuplicateInBatch(t *testing.T) {
	store := NewShotFeatureStore()
	ctx := context.Background()

	features := []*domain.ShotFeatures{
		{ShotID: "s1", FixtureID: 100},
		{ShotID: "s1", FixtureID: 100},
	}

	err := store.InsertBulk(ctx, features)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	all, _ := store.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("Expected empty store after failed batch, got %d rows", len(all))
	}
}

func TestShotFeatureStore_GetAllOrdering(t *testing.T) {
	store := NewShotFeatureStore()
	ctx := context.Background()

	features := []*domain.ShotFeatures{
		{ShotID: "b", FixtureID: 200},
		{ShotID: "a", FixtureID: 200},
		{ShotID: "z", FixtureID: 100},
	}

	if err := store.InsertBulk(ctx, features); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	want := []string{"z", "a", "b"}
	for i, id := range want {
		if all[i].ShotID != id {
			t.Errorf("Position %d: got %s, want %s", i, all[i].ShotID, id)
		}
	}
}

func TestShotFeatureStore_NullableFieldsRoundTrip(t *testing.T) {
	store := NewShotFeatureStore()
	ctx := context.Background()

	dist := 6.5
	between := 2

	features := []*domain.ShotFeatures{
		{ShotID: "with", FixtureID: 100, DistanceBeforeShot: &dist, PlayersBetween: &between},
		{ShotID: "without", FixtureID: 100},
	}

	if err := store.InsertBulk(ctx, features); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, _ := store.GetByFixtureID(ctx, 100)

	for _, f := range result {
		switch f.ShotID {
		case "with":
			if f.DistanceBeforeShot == nil || *f.DistanceBeforeShot != 6.5 {
				t.Errorf("DistanceBeforeShot lost: %v", f.DistanceBeforeShot)
			}
			if f.PlayersBetween == nil || *f.PlayersBetween != 2 {
				t.Errorf("PlayersBetween lost: %v", f.PlayersBetween)
			}
		case "without":
			if f.DistanceBeforeShot != nil || f.PlayersBetween != nil {
				t.Errorf("Expected nil optional fields, got %v, %v", f.DistanceBeforeShot, f.PlayersBetween)
			}
		}
	}
}
