package telemetry

import (
	"math"

	"github.com/pthm-cable/boxroll/motion"
	"github.com/pthm-cable/boxroll/sim"
)

// Collector accumulates tick reports within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Counters for the current window
	frames         int
	skippedFrames  int
	motionTriggers int
	autoTriggers   int
	ignored        int
	completed      int
	resets         int
	peakAnimating  int
	maxDelta       float64
	intensities    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds one tick report to the current window.
func (c *Collector) Record(r sim.Report) {
	c.frames++
	if !r.HadData {
		c.skippedFrames++
	}
	c.motionTriggers += r.Motion
	c.autoTriggers += r.Auto
	c.ignored += r.Ignored
	c.completed += r.Completed
	c.resets += r.Reset
	if r.Animating > c.peakAnimating {
		c.peakAnimating = r.Animating
	}
	if r.MaxDelta > c.maxDelta {
		c.maxDelta = r.MaxDelta
	}
	c.intensities = append(c.intensities, r.Intensities...)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// animating is the in-flight count at the window end; settings are the
// control values in effect.
func (c *Collector) Flush(currentTick int64, animating int, settings motion.Settings) WindowStats {
	mean, std, p10, p50, p90 := ComputeIntensityStats(c.intensities)

	var triggerRate float64
	if c.frames > 0 {
		triggerRate = float64(c.motionTriggers+c.autoTriggers) / float64(c.frames)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Frames:        c.frames,
		SkippedFrames: c.skippedFrames,

		MotionTriggers: c.motionTriggers,
		AutoTriggers:   c.autoTriggers,
		Ignored:        c.ignored,
		TriggerRate:    triggerRate,

		Completed:     c.completed,
		Resets:        c.resets,
		Animating:     animating,
		PeakAnimating: c.peakAnimating,

		MaxDelta:      c.maxDelta,
		IntensityMean: mean,
		IntensityStd:  std,
		IntensityP10:  p10,
		IntensityP50:  p50,
		IntensityP90:  p90,

		Threshold: settings.Threshold,
		AutoMarch: settings.AutoMarch,
	}

	c.windowStartTick = currentTick
	c.frames = 0
	c.skippedFrames = 0
	c.motionTriggers = 0
	c.autoTriggers = 0
	c.ignored = 0
	c.completed = 0
	c.resets = 0
	c.peakAnimating = 0
	c.maxDelta = 0
	c.intensities = c.intensities[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
