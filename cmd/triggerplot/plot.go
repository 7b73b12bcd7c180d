package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pthm-cable/boxroll/telemetry"
)

// Output files
const (
	TriggersFile  = "triggers.png"
	IntensityFile = "intensity.png"
)

// ErrNoData is returned when there are no telemetry windows to plot.
var ErrNoData = errors.New("no telemetry windows")

// series is one line of a chart.
type series struct {
	label string
	hex   string
	get   func(w telemetry.WindowStats) float64
}

var triggerSeries = []series{
	{"motion", "#f72585", func(w telemetry.WindowStats) float64 { return float64(w.MotionTriggers) }},
	{"auto", "#7209b7", func(w telemetry.WindowStats) float64 { return float64(w.AutoTriggers) }},
	{"completed", "#4cc9f0", func(w telemetry.WindowStats) float64 { return float64(w.Completed) }},
	{"resets", "#00f5d4", func(w telemetry.WindowStats) float64 { return float64(w.Resets) }},
	{"peak rolling", "#4361ee", func(w telemetry.WindowStats) float64 { return float64(w.PeakAnimating) }},
}

var intensitySeries = []series{
	{"p10", "#3a0ca3", func(w telemetry.WindowStats) float64 { return w.IntensityP10 }},
	{"p50", "#4361ee", func(w telemetry.WindowStats) float64 { return w.IntensityP50 }},
	{"p90", "#f72585", func(w telemetry.WindowStats) float64 { return w.IntensityP90 }},
	{"mean", "#00f5d4", func(w telemetry.WindowStats) float64 { return w.IntensityMean }},
}

// Render writes the trigger and intensity charts to dir and returns their paths.
func Render(rows []telemetry.WindowStats, dir string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	charts := []struct {
		file   string
		title  string
		ylabel string
		series []series
	}{
		{TriggersFile, "Triggers and rolls per window", "Count", triggerSeries},
		{IntensityFile, "Trigger intensity", "Intensity", intensitySeries},
	}

	var files []string
	for _, c := range charts {
		p, err := newChart(rows, c.title, c.ylabel, c.series)
		if err != nil {
			return files, fmt.Errorf("building %s: %w", c.file, err)
		}
		path := filepath.Join(dir, c.file)
		if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
			return files, fmt.Errorf("saving %s: %w", c.file, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// newChart plots each series against simulated time.
func newChart(rows []telemetry.WindowStats, title, ylabel string, ss []series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sim time (s)"
	p.Y.Label.Text = ylabel

	for _, s := range ss {
		pts := make(plotter.XYs, 0, len(rows))
		for _, w := range rows {
			pts = append(pts, plotter.XY{X: w.SimTimeSec, Y: s.get(w)})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		c, err := colorful.Hex(s.hex)
		if err != nil {
			return nil, err
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.Add(plotter.NewGrid())

	return p, nil
}
