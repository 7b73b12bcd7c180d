package motion

import (
	"image/color"
	"math"
	"testing"
)

func uniform(rows, cols int, v float64) [][]float64 {
	s := make([][]float64, rows)
	for r := range s {
		s[r] = make([]float64, cols)
		for c := range s[r] {
			s[r][c] = v
		}
	}
	return s
}

func TestSamplerFirstFrameHasNoPrevious(t *testing.T) {
	s := NewSampler(3, 4)

	deltas, ok := s.Diff(uniform(3, 4, 200))
	if !ok {
		t.Fatal("expected complete frame to be accepted")
	}
	for i, d := range deltas {
		if d.HasPrevious {
			t.Errorf("cell %d: expected HasPrevious=false on first frame", i)
		}
	}

	if v, seen := s.Previous(1, 2); !seen || v != 200 {
		t.Errorf("expected snapshot primed with 200, got %v (seen=%v)", v, seen)
	}
}

func TestSamplerAbsoluteDelta(t *testing.T) {
	s := NewSampler(2, 2)
	s.Diff([][]float64{{10, 50}, {100, 255}})

	deltas, ok := s.Diff([][]float64{{30, 20}, {100, 0}})
	if !ok {
		t.Fatal("expected frame accepted")
	}

	want := []float64{20, 30, 0, 255}
	for i, d := range deltas {
		if !d.HasPrevious {
			t.Errorf("cell %d: expected HasPrevious", i)
		}
		if math.Abs(d.Value-want[i]) > 1e-9 {
			t.Errorf("cell %d: delta %v, want %v", i, d.Value, want[i])
		}
	}
}

func TestSamplerOverwritesUnconditionally(t *testing.T) {
	s := NewSampler(1, 1)
	s.Diff([][]float64{{0}})
	s.Diff([][]float64{{5}}) // small change, still stored

	deltas, _ := s.Diff([][]float64{{10}})
	if deltas[0].Value != 5 {
		t.Errorf("expected delta against last frame (5), got %v", deltas[0].Value)
	}
}

func TestSamplerMissingFrame(t *testing.T) {
	tests := []struct {
		name   string
		sample [][]float64
	}{
		{"nil", nil},
		{"empty", [][]float64{}},
		{"short", [][]float64{{1, 2}}},
		{"empty row", [][]float64{{1, 2}, {}}},
		{"narrow row", [][]float64{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(2, 2)
			s.Diff(uniform(2, 2, 40))

			deltas, ok := s.Diff(tt.sample)
			if ok {
				t.Error("expected incomplete frame to be rejected")
			}
			for i, d := range deltas {
				if d.HasPrevious {
					t.Errorf("cell %d: expected HasPrevious=false for missing frame", i)
				}
			}

			// Snapshot untouched: next real frame diffs against 40
			deltas, _ = s.Diff(uniform(2, 2, 100))
			for i, d := range deltas {
				if !d.HasPrevious || d.Value != 60 {
					t.Errorf("cell %d: expected delta 60 against preserved snapshot, got %+v", i, d)
				}
			}
		})
	}
}

func TestSamplerReset(t *testing.T) {
	s := NewSampler(2, 2)
	s.Diff(uniform(2, 2, 10))
	s.Reset()

	deltas, _ := s.Diff(uniform(2, 2, 200))
	for i, d := range deltas {
		if d.HasPrevious {
			t.Errorf("cell %d: expected reset sampler to re-prime", i)
		}
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		c    color.Color
		want float64
	}{
		{color.RGBA{0, 0, 0, 255}, 0},
		{color.RGBA{255, 255, 255, 255}, 255},
		{color.RGBA{30, 60, 90, 255}, 60},
		{color.Gray{Y: 128}, 128},
	}

	for _, tt := range tests {
		if got := Brightness(tt.c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Brightness(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}
