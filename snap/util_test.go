package snap

import (
	"math"
	"testing"
)

func TestRoundAwayFromEven(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"even integer", 1556.0, 1556.1},
		{"odd integer untouched", 1557.0, 1557.0},
		{"just above even", 1558.05, 1558.1},
		{"just below even", 1559.95, 1559.9},
		{"zero", 0.0, 0.1},
		{"two", 2.0, 2.1},
		{"below two", 1.95, 1.9},
		{"negative near zero", -0.05, -0.1},
		{"mid cell untouched", 6.5, 6.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoundAwayFromEven(tc.in); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("RoundAwayFromEven(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoundAwayFromEvenSweep(t *testing.T) {
	const eps = 1e-6
	x := 1497.0
	for i := 0; i < 160; i++ {
		rx := RoundAwayFromEven(x)
		if math.Abs(rx-x) > 0.1+eps {
			t.Fatalf("RoundAwayFromEven(%v) = %v, moved more than 0.1", x, rx)
		}
		r := math.Mod(rx, 2.0)
		if r < 0.1-eps || r > 1.9+eps {
			t.Fatalf("RoundAwayFromEven(%v) = %v, still within 0.1 of even", x, rx)
		}
		x += 0.05
	}
}

func TestDistances(t *testing.T) {
	if d := planarDistance(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Errorf("planarDistance = %v, want 5", d)
	}
	if d := distance3(1, 2, 3, 1, 2, 3); d != 0 {
		t.Errorf("distance3 of identical points = %v, want 0", d)
	}
	if d := distance3(0, 0, 0, 1, 2, 2); math.Abs(d-3) > 1e-9 {
		t.Errorf("distance3 = %v, want 3", d)
	}
}
