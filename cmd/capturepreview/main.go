// Capture preview tool - tune the synthetic capture device with sliders and
// watch the per-cell brightness and frame deltas it produces.
//
// Usage: go run ./cmd/capturepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxroll/capture"
	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/motion"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 340
	panelX       = previewSize*2 + 40
	panelWidth   = windowWidth - panelX - 10
)

// slider describes one parameter slider.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(p *capture.NoiseParams) float32
	set      func(p *capture.NoiseParams, v float32)
}

var sliders = []slider{
	{"Scale (noise frequency per cell)", 0.01, 1, "%.2f",
		func(p *capture.NoiseParams) float32 { return float32(p.Scale) },
		func(p *capture.NoiseParams, v float32) { p.Scale = float64(v) }},
	{"Speed (noise drift per frame)", 0, 0.2, "%.3f",
		func(p *capture.NoiseParams) float32 { return float32(p.Speed) },
		func(p *capture.NoiseParams, v float32) { p.Speed = float64(v) }},
	{"Gain (noise brightness)", 0, 255, "%.0f",
		func(p *capture.NoiseParams) float32 { return float32(p.Gain) },
		func(p *capture.NoiseParams, v float32) { p.Gain = float64(v) }},
	{"Blob count", 0, 10, "%.0f",
		func(p *capture.NoiseParams) float32 { return float32(p.BlobCount) },
		func(p *capture.NoiseParams, v float32) { p.BlobCount = int(v) }},
	{"Blob radius (cells)", 0.5, 8, "%.1f",
		func(p *capture.NoiseParams) float32 { return float32(p.BlobRadius) },
		func(p *capture.NoiseParams, v float32) { p.BlobRadius = float64(v) }},
	{"Blob speed (cells per frame)", 0, 2, "%.2f",
		func(p *capture.NoiseParams) float32 { return float32(p.BlobSpeed) },
		func(p *capture.NoiseParams, v float32) { p.BlobSpeed = float64(v) }},
	{"Dropout rate", 0, 0.5, "%.2f",
		func(p *capture.NoiseParams) float32 { return float32(p.DropoutRate) },
		func(p *capture.NoiseParams, v float32) { p.DropoutRate = float64(v) }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 12345, "Noise seed")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	rows, cols := cfg.Grid.Rows, cfg.Grid.Cols

	rl.InitWindow(windowWidth, windowHeight, "Capture Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	defaults := capture.NoiseParamsFromConfig(cfg)
	params := defaults
	device := capture.NewNoise(rows, cols, params, *seed)
	sampler := motion.NewSampler(rows, cols)
	threshold := float32(cfg.Motion.Threshold)
	saturation := cfg.Motion.Saturation

	var sample [][]float64
	var deltas []motion.Delta
	var dropped int
	animating := true
	stepOnce := true

	for !rl.WindowShouldClose() {
		if animating || stepOnce {
			s, err := device.Read()
			if err != nil {
				dropped++
				sampler.Diff(nil)
			} else {
				sample = s
				if d, ok := sampler.Diff(s); ok {
					deltas = d
				}
			}
			stepOnce = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Brightness and delta previews
		drawBrightness(10, 10, sample, rows, cols)
		triggered := drawDeltas(previewSize+30, 10, deltas, rows, cols, float64(threshold), saturation)

		statsY := int32(previewSize + 25)
		rl.DrawText("Brightness", 15, statsY, 16, rl.DarkGray)
		rl.DrawText("Delta (red = above threshold)", previewSize+35, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Triggered cells: %d / %d   Dropped frames: %d", triggered, rows*cols, dropped), 15, statsY+25, 16, rl.DarkGray)

		// Control panel
		x := float32(panelX)
		y := float32(10)
		rl.DrawText("Capture Parameters", int32(x), int32(y), 20, rl.DarkGray)
		y += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(x), int32(y), 14, rl.Gray)
			y += 18
			cur := s.get(&params)
			nv := gui.SliderBar(
				rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
			if nv != cur {
				s.set(&params, nv)
				changed = true
			}
			y += 35
		}
		if changed {
			device.SetParams(params)
		}

		rl.DrawLine(int32(x), int32(y), int32(x)+panelWidth-20, int32(y), rl.LightGray)
		y += 15

		rl.DrawText("Motion threshold", int32(x), int32(y), 14, rl.Gray)
		y += 18
		threshold = gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			threshold, 5, 100,
		)
		rl.DrawText(fmt.Sprintf("%.0f", threshold), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
		y += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, toggleText(animating, "Pause", "Run")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Step") {
			stepOnce = true
		}
		y += 45

		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Random Seed") {
			device = capture.NewNoise(rows, cols, params, int64(rl.GetRandomValue(0, 99999)))
			sampler.Reset()
		}
		if gui.Button(rl.Rectangle{X: x + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			threshold = float32(cfg.Motion.Threshold)
			device = capture.NewNoise(rows, cols, params, *seed)
			sampler.Reset()
			dropped = 0
		}
		y += 50

		rl.DrawText("YAML Config:", int32(x), int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range yamlLines(params, threshold) {
			rl.DrawText(line, int32(x), int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(x), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params, threshold) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p capture.NoiseParams, threshold float32) []string {
	return []string{
		"motion:",
		fmt.Sprintf("  threshold: %.0f", threshold),
		"capture:",
		"  kind: noise",
		fmt.Sprintf("  noise_scale: %.2f", p.Scale),
		fmt.Sprintf("  noise_speed: %.3f", p.Speed),
		fmt.Sprintf("  noise_gain: %.0f", p.Gain),
		fmt.Sprintf("  blob_count: %d", p.BlobCount),
		fmt.Sprintf("  blob_radius: %.1f", p.BlobRadius),
		fmt.Sprintf("  blob_speed: %.2f", p.BlobSpeed),
		fmt.Sprintf("  dropout_rate: %.2f", p.DropoutRate),
	}
}

// drawBrightness draws the sample as a greyscale grid.
func drawBrightness(x, y int32, sample [][]float64, rows, cols int) {
	cw := int32(previewSize / cols)
	ch := int32(previewSize / rows)
	for r := 0; r < rows && r < len(sample); r++ {
		for c := 0; c < cols && c < len(sample[r]); c++ {
			v := uint8(clamp(sample[r][c], 0, 255))
			rl.DrawRectangle(x+int32(c)*cw, y+int32(r)*ch, cw, ch, rl.Color{R: v, G: v, B: v, A: 255})
		}
	}
	rl.DrawRectangleLines(x, y, previewSize, previewSize, rl.DarkGray)
}

// drawDeltas draws the row-major delta grid and returns the number of
// cells above threshold.
func drawDeltas(x, y int32, deltas []motion.Delta, rows, cols int, threshold, saturation float64) int {
	cw := int32(previewSize / cols)
	ch := int32(previewSize / rows)
	triggered := 0
	for i, d := range deltas {
		v := uint8(clamp(d.Value, 0, 255))
		color := rl.Color{R: v, G: v, B: v, A: 255}
		if d.HasPrevious && d.Value > threshold {
			triggered++
			in := motion.Intensity(d.Value, threshold, saturation)
			color = rl.Color{R: 255, G: uint8(200 * (1 - in)), B: uint8(200 * (1 - in)), A: 255}
		}
		rl.DrawRectangle(x+int32(i%cols)*cw, y+int32(i/cols)*ch, cw, ch, color)
	}
	rl.DrawRectangleLines(x, y, previewSize, previewSize, rl.DarkGray)
	return triggered
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
