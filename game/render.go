package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxroll/camera"
	"github.com/pthm-cable/boxroll/renderer"
	"github.com/pthm-cable/boxroll/telemetry"
	"github.com/pthm-cable/boxroll/ui"
)

const keyLegend = "Space pause | A auto-march | L lights | R rotate | Tab panel | C camera | F5 snapshot | drag orbit | click select"

// camera3D returns the raylib camera for the current orbit.
func (g *Game) camera3D() rl.Camera3D {
	return renderer.ToCamera3D(g.camera, g.cfg.Render.CameraFovy)
}

// spin returns the global rotation for the current frame.
func (g *Game) spin() float64 {
	snap := g.controls.Snapshot()
	if !snap.RotateMode {
		return 0
	}
	return camera.SpinAngle(g.sim.Frame(), snap.GlobalRotationFrames)
}

// Draw renders the frame and closes the perf tick opened by Update.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	g.sceneRenderer.Clear()

	snap := g.controls.Snapshot()
	spin := g.spin()
	grid := g.sim.Grid()

	rl.BeginMode3D(g.camera3D())
	if g.overlays.IsEnabled(ui.OverlayFloor) {
		g.sceneRenderer.DrawFloor(spin)
	}
	if g.overlays.IsEnabled(ui.OverlayOrigins) {
		g.sceneRenderer.DrawOrigins(grid, spin)
	}
	g.tileRenderer.Draw(grid, spin, snap.LightsOn, g.overlays.IsEnabled(ui.OverlayWireframe))
	g.sceneRenderer.DrawSelection(g.selectedTile(), spin)
	rl.EndMode3D()

	g.drawUI(snap.AutoMarch, snap.Threshold)

	rl.EndDrawing()

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
}

// drawUI renders the HUD and the enabled panels.
func (g *Game) drawUI(autoMarch bool, threshold float64) {
	g.hud.Draw(ui.HUDData{
		Title:     "boxroll",
		Frame:     g.sim.Frame(),
		FPS:       rl.GetFPS(),
		Tiles:     g.sim.Grid().Len(),
		Animating: g.lastReport.Animating,
		Paused:    g.paused,
		NoSignal:  g.noSignal,
		Threshold: threshold,
		AutoMarch: autoMarch,
	}, g.screenWidth)
	g.hud.DrawControls(g.screenHeight, keyLegend)

	if actions := g.controlsPanel.Draw(g.controls, g.overlays); actions.ResetCamera {
		g.camera.Reset()
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayStats) && g.hasWindow {
		g.statsPanel.Draw(g.lastWindow)
	}

	if t := g.selectedTile(); t != nil {
		g.inspector.Draw(ui.InspectorData{
			Row:  g.selRow,
			Col:  g.selCol,
			Tile: t,
			Now:  g.sim.Frame(),
		})
	}
}
