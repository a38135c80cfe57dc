package features

import (
	"context"

	"football-xg-lab/internal/storage"
)

// Engine defines the feature derivation interface over stored shots.
type Engine interface {
	// DeriveFixture derives and stores features for every shot of a fixture.
	DeriveFixture(ctx context.Context, fixtureID int64) error
}

// Runner implements Engine on top of shot and feature stores.
type Runner struct {
	shotStore    storage.ShotStore
	featureStore storage.ShotFeatureStore
}

// NewRunner creates a new feature derivation runner.
func NewRunner(shotStore storage.ShotStore, featureStore storage.ShotFeatureStore) *Runner {
	return &Runner{
		shotStore:    shotStore,
		featureStore: featureStore,
	}
}

// DeriveFixture loads the fixture's shots, derives features and stores them.
// Steps:
//  1. Load shots ordered by (minute, event_index)
//  2. Derive features per shot, order preserved
//  3. Bulk insert into the feature store
func (r *Runner) DeriveFixture(ctx context.Context, fixtureID int64) error {
	shots, err := r.shotStore.GetByFixtureID(ctx, fixtureID)
	if err != nil {
		return err
	}

	derived := DeriveBatch(shots)
	if len(derived) == 0 {
		return nil
	}

	return r.featureStore.InsertBulk(ctx, derived)
}

// DeriveFixtures processes multiple fixtures.
func (r *Runner) DeriveFixtures(ctx context.Context, fixtureIDs []int64) error {
	for _, id := range fixtureIDs {
		if err := r.DeriveFixture(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

var _ Engine = (*Runner)(nil)
