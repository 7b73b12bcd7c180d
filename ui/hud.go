package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxroll/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Frame     int64
	FPS       int32
	Tiles     int
	Animating int
	Paused    bool
	NoSignal  bool // Capture returned no frame this tick
	Threshold float64
	AutoMarch bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-right corner.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	t := h.renderer.Theme
	x := screenWidth - 260

	rl.DrawText(data.Title, x, 10, 20, t.Title)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d", data.Frame, data.FPS),
		x, 35, 14, t.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("Rolling: %d / %d", data.Animating, data.Tiles),
		x, 52, 14, t.LabelColor,
	)
	mode := "motion"
	if data.AutoMarch {
		mode = "motion + auto"
	}
	rl.DrawText(fmt.Sprintf("Threshold: %.0f (%s)", data.Threshold, mode), x, 69, 14, t.LabelColor)

	status, color := "Running", t.ActiveColor
	switch {
	case data.Paused:
		status, color = "PAUSED", rl.Yellow
	case data.NoSignal:
		status, color = "No signal", t.BarFill
	}
	rl.DrawText(status, x, 88, 14, color)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-22, 12, h.renderer.Theme.MutedColor)
}

// PerfPanel renders the tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	t := r.Theme
	width := int32(240)
	r.DrawPanel(p.x, p.y, width, t.LineHeight*8+t.Padding*2)

	x := p.x + t.Padding
	y := r.DrawTitle(x, p.y+t.Padding, "Performance")

	y = r.DrawLabelValue(x, y, "Tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max", stats.MaxTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", stats.FPS))

	for _, ph := range []telemetry.Phase{telemetry.PhaseCapture, telemetry.PhaseSim, telemetry.PhaseDraw, telemetry.PhaseTelemetry} {
		pct := stats.PhasePct[ph]
		color := t.LabelColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct), x, y, t.FontSize, color)
		y += t.LineHeight
	}
}

// StatsPanel renders the last telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: windowSections(),
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Height returns the panel height.
func (s *StatsPanel) Height() int32 {
	t := s.renderer.Theme
	return t.Padding*2 + t.LineHeight + 4 + s.renderer.SectionsHeight(s.sections)
}

// Draw renders the panel for the given window.
func (s *StatsPanel) Draw(w telemetry.WindowStats) {
	r := s.renderer
	t := r.Theme
	r.DrawPanel(s.x, s.y, s.width, s.Height())

	x := s.x + t.Padding
	y := r.DrawTitle(x, s.y+t.Padding, fmt.Sprintf("Window @ %.0fs", w.SimTimeSec))
	for _, sd := range s.sections {
		y = r.DrawSection(x, y, sd, w, s.width-t.Padding*2)
	}
}

func windowSections() []SectionDescriptor {
	ws := func(d any) telemetry.WindowStats { return d.(telemetry.WindowStats) }
	count := func(label string, get func(telemetry.WindowStats) int) FieldDescriptor {
		return FieldDescriptor{
			Label:  label,
			Widget: WidgetText,
			Format: "%.0f",
			Getter: func(d any) float32 { return float32(get(ws(d))) },
		}
	}

	return []SectionDescriptor{
		{
			Title: "Triggers",
			Fields: []FieldDescriptor{
				count("Motion", func(w telemetry.WindowStats) int { return w.MotionTriggers }),
				count("Auto", func(w telemetry.WindowStats) int { return w.AutoTriggers }),
				count("Ignored", func(w telemetry.WindowStats) int { return w.Ignored }),
				count("Skipped", func(w telemetry.WindowStats) int { return w.SkippedFrames }),
			},
		},
		{
			Title: "Rolls",
			Fields: []FieldDescriptor{
				count("Completed", func(w telemetry.WindowStats) int { return w.Completed }),
				count("Resets", func(w telemetry.WindowStats) int { return w.Resets }),
				count("Peak", func(w telemetry.WindowStats) int { return w.PeakAnimating }),
			},
		},
		{
			Title: "Intensity",
			Fields: []FieldDescriptor{
				{Label: "Mean", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d any) float32 { return float32(ws(d).IntensityMean) }},
				{Label: "P90", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d any) float32 { return float32(ws(d).IntensityP90) }},
				{Label: "Max delta", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 255}, Getter: func(d any) float32 { return float32(ws(d).MaxDelta) }},
			},
		},
	}
}
