package telemetry

import (
	"math"
	"testing"
)

func TestComputeIntensityStats(t *testing.T) {
	values := []float64{1.0, 0.3, 0.5, 0.1, 0.9, 0.2, 0.7, 0.4, 0.8, 0.6}
	mean, std, p10, p50, p90 := ComputeIntensityStats(values)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", mean, 0.55},
		{"std", std, math.Sqrt(0.0825)},
		{"p10", p10, 0.1},
		{"p50", p50, 0.5},
		{"p90", p90, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.001 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if values[0] != 1.0 {
		t.Error("input slice was reordered")
	}
}

func TestComputeIntensityStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeIntensityStats(nil)

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeIntensityStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeIntensityStats([]float64{0.42})

	if mean != 0.42 || std != 0 || p10 != 0.42 || p50 != 0.42 || p90 != 0.42 {
		t.Errorf("single value stats wrong: %v %v %v %v %v", mean, std, p10, p50, p90)
	}
}
