package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Capture
	Frames        int `csv:"frames"`
	SkippedFrames int `csv:"skipped_frames"`

	// Triggers during window
	MotionTriggers int     `csv:"motion_triggers"`
	AutoTriggers   int     `csv:"auto_triggers"`
	Ignored        int     `csv:"ignored"` // Fired on a tile already rolling
	TriggerRate    float64 `csv:"trigger_rate"`

	// Rolls
	Completed     int `csv:"completed"`
	Resets        int `csv:"resets"`
	Animating     int `csv:"animating"` // At window end
	PeakAnimating int `csv:"peak_animating"`

	// Motion signal
	MaxDelta      float64 `csv:"max_delta"`
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityP10  float64 `csv:"intensity_p10"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`

	// Controls in effect at window end
	Threshold float64 `csv:"threshold"`
	AutoMarch bool    `csv:"auto_march"`
}

// ComputeIntensityStats returns the mean, population standard deviation and
// empirical 10th/50th/90th percentiles of values.
func ComputeIntensityStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.PopMeanStdDev(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("skipped_frames", s.SkippedFrames),
		slog.Int("motion_triggers", s.MotionTriggers),
		slog.Int("auto_triggers", s.AutoTriggers),
		slog.Int("ignored", s.Ignored),
		slog.Float64("trigger_rate", s.TriggerRate),
		slog.Int("completed", s.Completed),
		slog.Int("resets", s.Resets),
		slog.Int("animating", s.Animating),
		slog.Int("peak_animating", s.PeakAnimating),
		slog.Float64("max_delta", s.MaxDelta),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("threshold", s.Threshold),
		slog.Bool("auto_march", s.AutoMarch),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
