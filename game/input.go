package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mouse tuning
const (
	orbitRadiansPerPixel = 0.005
	wheelZoomStep        = 0.1
	clickSlopPixels      = 4
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyA) {
		slog.Info("control_changed", "auto_march", g.controls.ToggleAutoMarch())
	}
	if rl.IsKeyPressed(rl.KeyL) {
		slog.Info("control_changed", "lights_on", g.controls.ToggleLights())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		slog.Info("control_changed", "rotate_mode", g.controls.ToggleRotateMode())
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controlsPanel.Toggle()
		g.layoutPanels()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.camera.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		if g.snapshotDir == "" {
			slog.Warn("snapshot_skipped", "reason", "no -snapshot-dir")
		}
		g.saveSnapshot(nil)
	}

	if changed := g.overlays.HandleKeys(); len(changed) > 0 {
		g.layoutPanels()
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and repositions panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layoutPanels()
}

// handleCameraInput orbits on left drag, zooms on wheel, and selects a tile
// on a left click that did not move.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	onPanel := g.controlsPanel.Contains(mouse)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !onPanel {
		g.camera.ZoomBy(1 - float64(wheel)*wheelZoomStep)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragDistance = 0
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !onPanel {
		d := rl.GetMouseDelta()
		g.dragDistance += abs32(d.X) + abs32(d.Y)
		g.camera.Drag(float64(d.X), float64(d.Y), orbitRadiansPerPixel)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && !onPanel && g.dragDistance < clickSlopPixels {
		g.selectAt(mouse)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.hasSelection = false
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
