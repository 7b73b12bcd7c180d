// Package controls holds the runtime-mutable parameters of the tile grid.
//
// Values are written by the control panel or keyboard and read once per tick.
// Each parameter is stored atomically on its own, so a reader always sees a
// complete value for that parameter; no cross-parameter consistency is kept.
package controls

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/motion"
)

// Parameter ranges exposed by the control surface.
const (
	MinThreshold       = 5.0
	MaxThreshold       = 100.0
	MinRotationFrames  = 30
	MaxRotationFrames  = 2400
	RotationFramesStep = 30
)

// atomicFloat provides atomic float64 storage using bit conversion.
// Zero value is ready to use (represents 0.0).
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *atomicFloat) get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Controls is the externally mutated parameter set.
type Controls struct {
	threshold            atomicFloat
	autoMarch            atomic.Bool
	lightsOn             atomic.Bool
	rotateMode           atomic.Bool
	globalRotationFrames atomic.Int64
}

// Snapshot is a plain copy of every parameter, taken once per tick.
type Snapshot struct {
	Threshold            float64
	AutoMarch            bool
	LightsOn             bool
	RotateMode           bool
	GlobalRotationFrames int
}

// New creates controls seeded from the loaded configuration.
func New(cfg *config.Config) *Controls {
	c := &Controls{}
	c.SetThreshold(cfg.Motion.Threshold)
	c.SetAutoMarch(cfg.Motion.AutoMarch)
	c.SetLightsOn(cfg.Render.LightsOn)
	c.SetRotateMode(cfg.Render.RotateMode)
	c.SetGlobalRotationFrames(cfg.Render.GlobalRotationFrames)
	return c
}

// SetThreshold stores the delta threshold, clamped to [MinThreshold, MaxThreshold].
func (c *Controls) SetThreshold(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.threshold.set(clamp(v, MinThreshold, MaxThreshold))
}

// Threshold returns the current delta threshold.
func (c *Controls) Threshold() float64 {
	return c.threshold.get()
}

// SetAutoMarch enables or disables idle self-triggering.
func (c *Controls) SetAutoMarch(on bool) {
	c.autoMarch.Store(on)
}

// AutoMarch reports whether idle self-triggering is enabled.
func (c *Controls) AutoMarch() bool {
	return c.autoMarch.Load()
}

// ToggleAutoMarch flips auto-march and returns the new value.
func (c *Controls) ToggleAutoMarch() bool {
	for {
		old := c.autoMarch.Load()
		if c.autoMarch.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetLightsOn switches scene lighting.
func (c *Controls) SetLightsOn(on bool) {
	c.lightsOn.Store(on)
}

// LightsOn reports whether scene lighting is enabled.
func (c *Controls) LightsOn() bool {
	return c.lightsOn.Load()
}

// ToggleLights flips lighting and returns the new value.
func (c *Controls) ToggleLights() bool {
	for {
		old := c.lightsOn.Load()
		if c.lightsOn.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetRotateMode switches the global scene spin.
func (c *Controls) SetRotateMode(on bool) {
	c.rotateMode.Store(on)
}

// RotateMode reports whether the global scene spin is enabled.
func (c *Controls) RotateMode() bool {
	return c.rotateMode.Load()
}

// ToggleRotateMode flips the global spin and returns the new value.
func (c *Controls) ToggleRotateMode() bool {
	for {
		old := c.rotateMode.Load()
		if c.rotateMode.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetGlobalRotationFrames stores the spin period, clamped to range and
// snapped to RotationFramesStep.
func (c *Controls) SetGlobalRotationFrames(frames int) {
	if frames < MinRotationFrames {
		frames = MinRotationFrames
	}
	if frames > MaxRotationFrames {
		frames = MaxRotationFrames
	}
	frames = (frames + RotationFramesStep/2) / RotationFramesStep * RotationFramesStep
	c.globalRotationFrames.Store(int64(frames))
}

// GlobalRotationFrames returns the number of frames per full scene turn.
func (c *Controls) GlobalRotationFrames() int {
	return int(c.globalRotationFrames.Load())
}

// Snapshot reads every parameter once.
func (c *Controls) Snapshot() Snapshot {
	return Snapshot{
		Threshold:            c.Threshold(),
		AutoMarch:            c.AutoMarch(),
		LightsOn:             c.LightsOn(),
		RotateMode:           c.RotateMode(),
		GlobalRotationFrames: c.GlobalRotationFrames(),
	}
}

// Motion returns the subset consumed by the trigger policy.
func (s Snapshot) Motion() motion.Settings {
	return motion.Settings{
		Threshold: s.Threshold,
		AutoMarch: s.AutoMarch,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
