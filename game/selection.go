package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxroll/renderer"
	"github.com/pthm-cable/boxroll/tile"
)

// selectAt picks the tile under the given screen point. A miss clears the
// selection.
func (g *Game) selectAt(mouse rl.Vector2) {
	ray := rl.GetScreenToWorldRay(mouse, g.camera3D())
	row, col, ok := renderer.Pick(ray, g.sim.Grid(), g.spin())
	g.hasSelection = ok
	if !ok {
		return
	}
	g.selRow, g.selCol = row, col
	slog.Debug("tile_selected", "row", row, "col", col)
}

// selectedTile returns the selected tile, or nil.
func (g *Game) selectedTile() *tile.Tile {
	if !g.hasSelection {
		return nil
	}
	return g.sim.Grid().TileAt(g.selRow, g.selCol)
}
