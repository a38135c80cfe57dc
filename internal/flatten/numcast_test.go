package flatten

import "testing"

func TestSafeNumCast(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float", 7.5, fptr(7.5)},
		{"int", 3, fptr(3.0)},
		{"numeric string", "42.5", fptr(42.5)},
		{"percent string", "57%", fptr(57.0)},
		{"percent with space", " 57% ", fptr(57.0)},
		{"unparseable string", "N/A", nil},
		{"empty string", "", nil},
		{"bare percent", "%", nil},
		{"bool", true, nil},
		{"object", map[string]any{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeNumCast(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("SafeNumCast(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("SafeNumCast(%v) = %f, want %f", tt.in, *got, *tt.want)
			}
		})
	}
}

func fptr(f float64) *float64 {
	return &f
}
