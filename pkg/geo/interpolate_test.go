package geo

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tc := range tests {
		if got := Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLerp(t *testing.T) {
	from := Location{Latitude: -6.20001, Longitude: 106.81234}
	to := Location{Latitude: -6.19377, Longitude: 106.82019}

	if got := Lerp(from, to, 0); got != from {
		t.Errorf("Lerp at 0 = %v, want %v", got, from)
	}
	if got := Lerp(from, to, 1); got != to {
		t.Errorf("Lerp at 1 = %v, want exactly %v", got, to)
	}
	if got := Lerp(from, to, 3.5); got != to {
		t.Errorf("Lerp past 1 = %v, want exactly %v", got, to)
	}
	if got := Lerp(from, to, -2); got != from {
		t.Errorf("Lerp below 0 = %v, want %v", got, from)
	}

	mid := Lerp(from, to, 0.5)
	if math.Abs(mid.Latitude-(from.Latitude+to.Latitude)/2) > 1e-12 ||
		math.Abs(mid.Longitude-(from.Longitude+to.Longitude)/2) > 1e-12 {
		t.Errorf("Lerp at 0.5 = %v, want midpoint", mid)
	}

	prev := from
	for i := 1; i <= 100; i++ {
		cur := Lerp(from, to, float64(i)/100)
		if cur.Latitude < prev.Latitude || cur.Longitude < prev.Longitude {
			t.Fatalf("Lerp not monotonic at step %d: %v after %v", i, cur, prev)
		}
		prev = cur
	}
}
