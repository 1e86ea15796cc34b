package snn

import "testing"

func TestDistanceToStimulationMonotone(t *testing.T) {
	prev := DistanceToStimulation(5, DefaultMaxDistance)
	for d := 6.0; d <= 400; d++ {
		cur := DistanceToStimulation(d, DefaultMaxDistance)
		if cur > prev {
			t.Fatalf("stimulation rose from %v to %v at distance %v", prev, cur, d)
		}
		prev = cur
	}
}

func TestDistanceToStimulationBounds(t *testing.T) {
	for d := 5.0; d <= 1000; d += 0.5 {
		s := DistanceToStimulation(d, DefaultMaxDistance)
		if s < 0 || s > 1.5 {
			t.Fatalf("stimulation(%v) = %v outside [0, 1.5]", d, s)
		}
	}
}

func TestDistanceToStimulationFloor(t *testing.T) {
	atFloor := DistanceToStimulation(5, DefaultMaxDistance)
	for _, d := range []float64{4.9, 1, 0, -10} {
		if got := DistanceToStimulation(d, DefaultMaxDistance); got != atFloor {
			t.Errorf("stimulation(%v) = %v, want floor value %v", d, got, atFloor)
		}
	}
}

func TestDistanceToStimulationKnownValues(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{200, 0.1},  // full range: 200/200/10
		{100, 0.2},  // mid range
		{20, 1.0},   // near: 200/20/10
		{10, 1.5},   // clamped: raw 2.0
		{5, 1.5},    // floor, clamped: raw 4.0
		{400, 0.05}, // beyond nominal range
	}
	for _, tc := range cases {
		if got := DistanceToStimulation(tc.distance, DefaultMaxDistance); got != tc.want {
			t.Errorf("stimulation(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}
