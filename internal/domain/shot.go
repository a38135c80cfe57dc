package domain

import "encoding/json"

// PlayerSnapshot is one player's position at the instant of a shot, as carried
// in the freeze frame. Location is in the 120x80 source frame. Position holds
// the position name only; the provider wraps it in an object.
type PlayerSnapshot struct {
	Location [2]float64 `json:"location"`
	Teammate bool       `json:"teammate"`
	Position string     `json:"position"`
}

// UnmarshalJSON accepts the provider's freeze-frame element, where position
// is an object: {"location": [x, y], "teammate": bool,
// "position": {"name": "Goalkeeper"}}. Rows written by this repo carry the
// bare name string instead; both shapes decode.
func (p *PlayerSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Location [2]float64      `json:"location"`
		Teammate bool            `json:"teammate"`
		Position json.RawMessage `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Location = raw.Location
	p.Teammate = raw.Teammate
	p.Position = ""

	if len(raw.Position) == 0 || string(raw.Position) == "null" {
		return nil
	}
	if raw.Position[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw.Position, &obj); err != nil {
			return err
		}
		p.Position = obj.Name
		return nil
	}
	return json.Unmarshal(raw.Position, &p.Position)
}

// Position names as delivered by the event provider.
const PositionGoalkeeper = "Goalkeeper"

// Pass height values as delivered by the event provider.
const PassHeightHigh = "High Pass"

// ShotEvent is one raw shot record. Corresponds to the shots table in
// PostgreSQL. Coordinates are in the 120x80 source frame; nil pointer fields
// mean the provider did not deliver the value. A nil FreezeFrame means no
// freeze frame was captured, which is distinct from an empty one.
type ShotEvent struct {
	ShotID        string           // PRIMARY KEY, deterministic hash
	FixtureID     int64            // FK to fixtures
	PlayerID      int64            // shooting player
	Minute        int              // match minute of the shot
	EventIndex    int              // index of the shot within the fixture event stream
	XShot         float64          // source-frame x
	YShot         float64          // source-frame y
	KeyPass       *string          // id of the assisting key pass, nil if none
	PassHeight    *string          // height of the received pass, nil if none
	XPassReceived *float64         // source-frame x where the pass was controlled
	YPassReceived *float64         // source-frame y where the pass was controlled
	FreezeFrame   []PlayerSnapshot // nil when no freeze frame exists
	CreatedAt     int64            // record creation timestamp (ms)
}
