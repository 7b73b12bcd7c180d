package motion

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/boxroll/config"
)

// Settings are the per-tick values read from the control surface.
type Settings struct {
	Threshold float64
	AutoMarch bool
}

// Params are the fixed calibration values of the policy.
type Params struct {
	Saturation       float64 // Delta at which intensity reaches 1
	AutoMarchChance  float64 // Per-cell per-frame idle trigger probability
	AutoIntensityMin float64
	AutoIntensityMax float64
	SlowFrames       float64 // Duration at intensity 0
	FastFrames       float64 // Duration at intensity 1
}

// ParamsFromConfig extracts policy calibration from the config.
func ParamsFromConfig(cfg *config.Config) Params {
	m := cfg.Motion
	return Params{
		Saturation:       m.Saturation,
		AutoMarchChance:  m.AutoMarchChance,
		AutoIntensityMin: m.AutoIntensityMin,
		AutoIntensityMax: m.AutoIntensityMax,
		SlowFrames:       m.SlowFrames,
		FastFrames:       m.FastFrames,
	}
}

// Cause identifies why a trigger fired.
type Cause uint8

const (
	CauseNone   Cause = iota
	CauseMotion       // Delta above threshold
	CauseAuto         // Idle auto-march draw
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseMotion:
		return "motion"
	case CauseAuto:
		return "auto"
	default:
		return "none"
	}
}

// Trigger is the policy decision for one cell on one frame.
type Trigger struct {
	Cause     Cause
	Intensity float64 // In [0,1]; zero when not fired
}

// Fired reports whether the trigger starts an animation.
func (t Trigger) Fired() bool {
	return t.Cause != CauseNone
}

// Policy decides which deltas start an animation.
type Policy struct {
	params Params
	rng    *rand.Rand
}

// NewPolicy creates a policy drawing auto-march randomness from rng.
func NewPolicy(params Params, rng *rand.Rand) *Policy {
	return &Policy{params: params, rng: rng}
}

// Params returns the policy calibration.
func (p *Policy) Params() Params {
	return p.params
}

// Evaluate decides whether a cell triggers this frame.
func (p *Policy) Evaluate(d Delta, s Settings) Trigger {
	if !d.HasPrevious {
		return Trigger{}
	}

	if d.Value > s.Threshold {
		return Trigger{
			Cause:     CauseMotion,
			Intensity: Intensity(d.Value, s.Threshold, p.params.Saturation),
		}
	}

	if s.AutoMarch && p.rng.Float64() < p.params.AutoMarchChance {
		lo, hi := p.params.AutoIntensityMin, p.params.AutoIntensityMax
		return Trigger{
			Cause:     CauseAuto,
			Intensity: Clamp01(lo + p.rng.Float64()*(hi-lo)),
		}
	}

	return Trigger{}
}

// Duration maps intensity to a roll duration in ticks: linear from
// SlowFrames at 0 to FastFrames at 1, rounded, never below one tick.
func (p *Policy) Duration(intensity float64) int {
	return DurationFor(intensity, p.params.SlowFrames, p.params.FastFrames)
}

// DurationFor is the stateless form of Policy.Duration.
func DurationFor(intensity, slow, fast float64) int {
	i := Clamp01(intensity)
	frames := int(math.Round(slow + (fast-slow)*i))
	if frames < 1 {
		frames = 1
	}
	return frames
}

// Intensity ramps linearly from 0 at threshold to 1 at saturation.
// A threshold at or above saturation saturates immediately.
func Intensity(delta, threshold, saturation float64) float64 {
	span := saturation - threshold
	if span <= 0 {
		if delta > threshold {
			return 1
		}
		return 0
	}
	return Clamp01((delta - threshold) / span)
}

// Clamp01 restricts x to [0,1]; NaN maps to 0.
func Clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x > 0 {
		return x
	}
	return 0
}
