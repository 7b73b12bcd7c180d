package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/telemetry"
	"github.com/pthm-cable/boxroll/tile"
)

// Snapshot captures the current state of every tile.
func (g *Game) Snapshot(bm *telemetry.Bookmark) *telemetry.Snapshot {
	gr := g.sim.Grid()
	snap := g.controls.Snapshot()

	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    g.seed,
		Rows:       gr.Rows(),
		Cols:       gr.Cols(),
		SideLength: g.cfg.Derived.SideLength,
		Tick:       g.sim.Frame(),
		Threshold:  snap.Threshold,
		AutoMarch:  snap.AutoMarch,
		Tiles:      make([]telemetry.TileState, 0, gr.Len()),
		Bookmark:   bm,
	}

	gr.ForEachTile(func(row, col int, t *tile.Tile) {
		c := t.Color()
		ts := telemetry.TileState{
			Row:       row,
			Col:       col,
			State:     t.State().String(),
			Angle:     t.Angle(),
			Origin:    vec3(t.Origin()),
			Position:  vec3(t.Position()),
			Color:     c.RGB.Clamped().Hex(),
			Alpha:     c.Alpha,
			StartTick: t.StartTick(),
			Duration:  t.Duration(),
		}
		if t.Animating() {
			ts.Heading = t.Direction().Heading.String()
		}
		s.Tiles = append(s.Tiles, ts)
	})

	return s
}

// saveSnapshot writes a snapshot to the snapshot directory, if one is set.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	if g.snapshotDir == "" {
		return
	}
	path, err := telemetry.SaveSnapshot(g.Snapshot(bm), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot_saved", "path", path, "tick", g.sim.Frame())
}

func vec3(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
