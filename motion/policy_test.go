package motion

import (
	"math"
	"math/rand"
	"testing"
)

func testParams() Params {
	return Params{
		Saturation:       100,
		AutoMarchChance:  0.005,
		AutoIntensityMin: 0.2,
		AutoIntensityMax: 0.8,
		SlowFrames:       30,
		FastFrames:       4,
	}
}

func TestPolicyNeverTriggersWithoutPrevious(t *testing.T) {
	p := NewPolicy(testParams(), rand.New(rand.NewSource(42)))
	s := Settings{Threshold: 20, AutoMarch: true}

	for i := 0; i < 10000; i++ {
		if tr := p.Evaluate(Delta{Value: 255}, s); tr.Fired() {
			t.Fatalf("trigger fired without previous frame: %+v", tr)
		}
	}
}

func TestPolicyAboveThreshold(t *testing.T) {
	tests := []struct {
		delta, threshold, want float64
	}{
		{21, 20, 1.0 / 80},
		{60, 20, 0.5},
		{100, 20, 1},
		{200, 20, 1},
		{50, 5, 45.0 / 95},
		{99, 98, 0.5},
	}

	p := NewPolicy(testParams(), rand.New(rand.NewSource(42)))
	for _, tt := range tests {
		tr := p.Evaluate(Delta{Value: tt.delta, HasPrevious: true}, Settings{Threshold: tt.threshold})
		if tr.Cause != CauseMotion {
			t.Errorf("delta %v threshold %v: expected motion trigger, got %v", tt.delta, tt.threshold, tr.Cause)
			continue
		}
		if math.Abs(tr.Intensity-tt.want) > 1e-9 {
			t.Errorf("delta %v threshold %v: intensity %v, want %v", tt.delta, tt.threshold, tr.Intensity, tt.want)
		}
	}
}

func TestPolicyAtOrBelowThreshold(t *testing.T) {
	p := NewPolicy(testParams(), rand.New(rand.NewSource(42)))
	s := Settings{Threshold: 20}

	for d := 0.0; d <= 20; d += 0.5 {
		if tr := p.Evaluate(Delta{Value: d, HasPrevious: true}, s); tr.Fired() {
			t.Errorf("delta %v at/below threshold fired: %+v", d, tr)
		}
	}
}

func TestPolicyThresholdAtSaturation(t *testing.T) {
	p := NewPolicy(testParams(), rand.New(rand.NewSource(42)))
	tr := p.Evaluate(Delta{Value: 150, HasPrevious: true}, Settings{Threshold: 100})

	if tr.Cause != CauseMotion {
		t.Fatalf("expected motion trigger, got %v", tr.Cause)
	}
	if tr.Intensity != 1 || math.IsNaN(tr.Intensity) {
		t.Errorf("expected saturated intensity 1, got %v", tr.Intensity)
	}
}

func TestPolicyAutoMarch(t *testing.T) {
	p := NewPolicy(testParams(), rand.New(rand.NewSource(7)))
	s := Settings{Threshold: 20, AutoMarch: true}

	const n = 200000
	fired := 0
	for i := 0; i < n; i++ {
		tr := p.Evaluate(Delta{Value: 3, HasPrevious: true}, s)
		if !tr.Fired() {
			continue
		}
		fired++
		if tr.Cause != CauseAuto {
			t.Fatalf("expected auto cause, got %v", tr.Cause)
		}
		if tr.Intensity < 0.2 || tr.Intensity > 0.8 {
			t.Fatalf("auto intensity %v outside [0.2,0.8]", tr.Intensity)
		}
	}

	rate := float64(fired) / n
	if rate < 0.004 || rate > 0.006 {
		t.Errorf("auto-march rate %v, want ~0.005", rate)
	}
}

func TestPolicyAutoMarchDeterministic(t *testing.T) {
	run := func() []Trigger {
		p := NewPolicy(testParams(), rand.New(rand.NewSource(99)))
		var out []Trigger
		for i := 0; i < 5000; i++ {
			tr := p.Evaluate(Delta{Value: 1, HasPrevious: true}, Settings{Threshold: 20, AutoMarch: true})
			if tr.Fired() {
				out = append(out, tr)
			}
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d triggers", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("trigger %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		intensity float64
		want      int
	}{
		{0, 30},
		{1, 4},
		{0.5, 17},
		{-3, 30},
		{7, 4},
		{math.NaN(), 30},
	}

	p := NewPolicy(testParams(), rand.New(rand.NewSource(1)))
	for _, tt := range tests {
		if got := p.Duration(tt.intensity); got != tt.want {
			t.Errorf("Duration(%v) = %d, want %d", tt.intensity, got, tt.want)
		}
	}

	if got := DurationFor(1, 0.2, 0.1); got != 1 {
		t.Errorf("expected duration floor of 1, got %d", got)
	}
}

func TestCauseString(t *testing.T) {
	if CauseMotion.String() != "motion" || CauseAuto.String() != "auto" || CauseNone.String() != "none" {
		t.Error("unexpected cause names")
	}
}
