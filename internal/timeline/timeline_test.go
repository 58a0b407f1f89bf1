package timeline

import (
	"math"
	"testing"
)

func TestRescaleLastStrokeEndsAtTarget(t *testing.T) {
	tests := []struct {
		name   string
		delays []float64
	}{
		{"three strokes", []float64{0.5, 1.3, 2.1}},
		{"unordered", []float64{2.1, 0.5, 1.3}},
		{"large offset", []float64{10.0, 10.9, 12.4, 13.0}},
		{"single stroke", []float64{3.2}},
	}

	const strokeDur = 0.8
	const target = 2.5

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Rescale(tt.delays, strokeDur, target)

			last := tt.delays[0]
			for _, d := range tt.delays {
				if d > last {
					last = d
				}
			}
			_, end := s.Window(last)
			if math.Abs(end-target) > 1e-6 {
				t.Errorf("last stroke ends at %f, want %f", end, target)
			}

			first := tt.delays[0]
			for _, d := range tt.delays {
				if d < first {
					first = d
				}
			}
			start, _ := s.Window(first)
			if math.Abs(start) > 1e-6 {
				t.Errorf("first stroke starts at %f, want 0", start)
			}
		})
	}
}

func TestRescaleSingleStroke(t *testing.T) {
	s := Rescale([]float64{1.0}, 0.8, 2.5)
	// Span collapses to the stroke duration itself.
	want := 2.5 / 0.8
	if math.Abs(s.ScaleFactor-want) > 1e-9 {
		t.Errorf("ScaleFactor = %f, want %f", s.ScaleFactor, want)
	}
}

func TestProgressMonotonicAndBounded(t *testing.T) {
	delays := []float64{0.0, 0.9, 1.7}
	s := Rescale(delays, 0.8, 2.5)

	for _, d := range delays {
		prev := -1.0
		_, end := s.Window(d)
		for i := 0; i <= 300; i++ {
			tm := float64(i) * 2.5 / 300
			p := s.Progress(d, tm)
			if p < 0 || p > 1 {
				t.Fatalf("progress %f out of [0,1] at t=%f", p, tm)
			}
			if p < prev {
				t.Fatalf("progress decreased from %f to %f at t=%f", prev, p, tm)
			}
			if tm >= end && p != 1 {
				t.Fatalf("progress = %f at t=%f (past end %f), want exactly 1", p, tm, end)
			}
			prev = p
		}
	}
}

func TestProgressClamps(t *testing.T) {
	s := Rescale([]float64{1.0, 2.0}, 0.8, 2.5)
	if p := s.Progress(2.0, -1); p != 0 {
		t.Errorf("progress before window = %f, want 0", p)
	}
	if p := s.Progress(1.0, 100); p != 1 {
		t.Errorf("progress after window = %f, want 1", p)
	}
}
