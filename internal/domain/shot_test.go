package domain

import (
	"encoding/json"
	"testing"
)

func TestPlayerSnapshot_UnmarshalPositionObject(t *testing.T) {
	data := []byte(`{"location":[110.5,38.0],"teammate":false,"position":{"name":"Goalkeeper"}}`)

	var p PlayerSnapshot
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal provider shape: %v", err)
	}
	if p.Position != PositionGoalkeeper {
		t.Errorf("position = %q, want %q", p.Position, PositionGoalkeeper)
	}
	if p.Location != [2]float64{110.5, 38.0} {
		t.Errorf("location = %v", p.Location)
	}
	if p.Teammate {
		t.Error("teammate should be false")
	}
}

func TestPlayerSnapshot_UnmarshalPositionString(t *testing.T) {
	data := []byte(`{"location":[60.0,40.0],"teammate":true,"position":"Center Back"}`)

	var p PlayerSnapshot
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal stored shape: %v", err)
	}
	if p.Position != "Center Back" {
		t.Errorf("position = %q, want %q", p.Position, "Center Back")
	}
	if !p.Teammate {
		t.Error("teammate should be true")
	}
}

func TestPlayerSnapshot_UnmarshalPositionMissing(t *testing.T) {
	for _, data := range []string{
		`{"location":[60.0,40.0],"teammate":true}`,
		`{"location":[60.0,40.0],"teammate":true,"position":null}`,
	} {
		var p PlayerSnapshot
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if p.Position != "" {
			t.Errorf("position for %s = %q, want empty", data, p.Position)
		}
	}
}

func TestPlayerSnapshot_RoundTrip(t *testing.T) {
	in := PlayerSnapshot{Location: [2]float64{110, 40}, Position: PositionGoalkeeper}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out PlayerSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip drifted: %+v != %+v", out, in)
	}
}
