package idhash

import "testing"

func TestComputeShotID_Deterministic(t *testing.T) {
	a := ComputeShotID(157201, 2935, 23, 112.3, 38.5, 4)
	b := ComputeShotID(157201, 2935, 23, 112.3, 38.5, 4)

	if a != b {
		t.Errorf("same inputs produced different ids: %s vs %s", a, b)
	}
	if a == "" {
		t.Error("empty id")
	}
}

func TestComputeShotID_DistinctInputs(t *testing.T) {
	base := ComputeShotID(157201, 2935, 23, 112.3, 38.5, 4)

	variants := []string{
		ComputeShotID(157202, 2935, 23, 112.3, 38.5, 4), // fixture
		ComputeShotID(157201, 2936, 23, 112.3, 38.5, 4), // player
		ComputeShotID(157201, 2935, 24, 112.3, 38.5, 4), // minute
		ComputeShotID(157201, 2935, 23, 112.4, 38.5, 4), // x
		ComputeShotID(157201, 2935, 23, 112.3, 38.6, 4), // y
		ComputeShotID(157201, 2935, 23, 112.3, 38.5, 5), // event index
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base id", i)
		}
	}
}
