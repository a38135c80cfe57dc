// Package feed subscribes to a live match-event stream over WebSocket and
// turns shot frames into domain shot events.
package feed

import (
	"football-xg-lab/internal/domain"
	"football-xg-lab/internal/idhash"
)

// ShotMessage is one shot frame as pushed by the feed. Optional values are
// pointers; a missing freeze_frame key stays nil, distinct from an empty
// list.
type ShotMessage struct {
	Type          string                  `json:"type"`
	FixtureID     int64                   `json:"fixture_id"`
	PlayerID      int64                   `json:"player_id"`
	Minute        int                     `json:"minute"`
	EventIndex    int                     `json:"event_index"`
	X             float64                 `json:"x"`
	Y             float64                 `json:"y"`
	KeyPass       *string                 `json:"key_pass"`
	PassHeight    *string                 `json:"pass_height"`
	XPassReceived *float64                `json:"x_pass_received"`
	YPassReceived *float64                `json:"y_pass_received"`
	FreezeFrame   []domain.PlayerSnapshot `json:"freeze_frame"`
}

// MessageTypeShot marks shot frames; other frame types are skipped.
const MessageTypeShot = "shot"

// ToShotEvent converts a shot frame into a domain row with a deterministic id.
func (m *ShotMessage) ToShotEvent(createdAt int64) *domain.ShotEvent {
	return &domain.ShotEvent{
		ShotID:        idhash.ComputeShotID(m.FixtureID, m.PlayerID, m.Minute, m.X, m.Y, m.EventIndex),
		FixtureID:     m.FixtureID,
		PlayerID:      m.PlayerID,
		Minute:        m.Minute,
		EventIndex:    m.EventIndex,
		XShot:         m.X,
		YShot:         m.Y,
		KeyPass:       m.KeyPass,
		PassHeight:    m.PassHeight,
		XPassReceived: m.XPassReceived,
		YPassReceived: m.YPassReceived,
		FreezeFrame:   m.FreezeFrame,
		CreatedAt:     createdAt,
	}
}
