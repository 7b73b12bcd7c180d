package game

import (
	"log/slog"

	"github.com/pthm-cable/boxroll/motion"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry(animating int, settings motion.Settings) {
	tick := g.sim.Frame()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, animating, settings)
	perfStats := g.perfCollector.Stats()
	g.lastWindow = stats
	g.hasWindow = true

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		bm.LogBookmark()
		g.saveSnapshot(&bm)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
