package game

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/boxroll/capture"
	"github.com/pthm-cable/boxroll/telemetry"
)

// Update handles input and advances one frame unless paused.
// Draw must follow, it closes the perf tick.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.handleInput()

	if g.paused {
		return
	}
	g.step()
}

// UpdateHeadless advances one frame without input or rendering.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.step()
	g.perfCollector.EndTick()
}

// step runs one frame: capture, simulation, telemetry.
func (g *Game) step() {
	g.perfCollector.StartPhase(telemetry.PhaseCapture)
	sample := g.readSample()

	g.perfCollector.StartPhase(telemetry.PhaseSim)
	settings := g.controls.Snapshot().Motion()
	rep := g.sim.Step(sample, settings)
	g.lastReport = rep

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(rep)
	g.flushTelemetry(rep.Animating, settings)
}

// readSample reads the capture device. A missing frame yields nil so the
// simulation skips triggering for this tick.
func (g *Game) readSample() [][]float64 {
	sample, err := g.device.Read()
	switch {
	case err == nil:
		g.noSignal = false
		if g.captureErr {
			slog.Info("capture_recovered", "tick", g.sim.Frame())
			g.captureErr = false
		}
		return sample
	case errors.Is(err, capture.ErrNoFrame):
		g.noSignal = true
		return nil
	default:
		g.noSignal = true
		if !g.captureErr {
			slog.Warn("capture_read_failed", "tick", g.sim.Frame(), "error", err)
			g.captureErr = true
		}
		return nil
	}
}
