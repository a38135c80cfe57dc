// Package idhash derives deterministic record identifiers, so re-ingesting
// the same source data produces the same keys and duplicate detection works
// across runs.
package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// ComputeShotID computes a deterministic shot_id.
// Formula: base58(SHA256(fixture_id|player_id|minute|x|y|event_index))
// Coordinates enter the hash with fixed precision so that equal shots hash
// equally regardless of how the value was decoded.
func ComputeShotID(
	fixtureID int64,
	playerID int64,
	minute int,
	x float64,
	y float64,
	eventIndex int,
) string {
	data := fmt.Sprintf("%d|%d|%d|%.4f|%.4f|%d",
		fixtureID,
		playerID,
		minute,
		x,
		y,
		eventIndex,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
