// Package renderer draws the tile grid in 3D with raylib.
//
// Every tile is drawn with the same transform: translate to the tile
// position, translate to the pivot edge, rotate by the roll angle about the
// roll axis, translate back, and draw a cube centred at the local origin.
// The whole grid may be spun about the world Y axis first.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/camera"
	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/grid"
	"github.com/pthm-cable/boxroll/tile"
)

// TileRenderer draws every tile of a grid.
type TileRenderer struct {
	Lighting Lighting
	wire     rl.Color
}

// NewTileRenderer creates a tile renderer from config.
func NewTileRenderer(cfg *config.Config) *TileRenderer {
	return &TileRenderer{
		Lighting: DefaultLighting(),
		wire:     Wire(cfg.Render.WireAlpha),
	}
}

// Draw renders the grid. Must be called between BeginMode3D and EndMode3D.
// spin is the global rotation about Y in radians.
func (r *TileRenderer) Draw(g *grid.Grid, spin float64, lightsOn, wires bool) {
	rl.PushMatrix()
	if spin != 0 {
		rl.Rotatef(float32(spin*180/math.Pi), 0, 1, 0)
	}

	g.ForEachTile(func(_, _ int, t *tile.Tile) {
		p := t.Pose()
		fill := r.Lighting.Shade(t.Color(), p, lightsOn)
		drawPose(p, fill, r.wire, wires)
	})

	rl.PopMatrix()
}

// drawPose draws one cube with the translate-rotate-translate transform.
func drawPose(p tile.Pose, fill, wire rl.Color, wires bool) {
	rl.PushMatrix()
	rl.Translatef(float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z))
	if p.Angle != 0 {
		axis := p.Axis.Vec()
		rl.Translatef(float32(p.Pivot.X), float32(p.Pivot.Y), float32(p.Pivot.Z))
		rl.Rotatef(float32(p.Angle*180/math.Pi), float32(axis.X), float32(axis.Y), float32(axis.Z))
		rl.Translatef(float32(-p.Pivot.X), float32(-p.Pivot.Y), float32(-p.Pivot.Z))
	}

	side := float32(p.Side)
	rl.DrawCube(rl.Vector3{}, side, side, side, fill)
	if wires {
		rl.DrawCubeWires(rl.Vector3{}, side, side, side, wire)
	}
	rl.PopMatrix()
}

// Pick returns the grid cell of the nearest tile hit by ray, accounting for
// the global spin. Hits use the axis-aligned box around each cube centre.
func Pick(ray rl.Ray, g *grid.Grid, spin float64) (row, col int, ok bool) {
	best := float32(math.MaxFloat32)
	g.ForEachTile(func(r, c int, t *tile.Tile) {
		p := t.Pose()
		center := camera.Spin(p.Center(), spin)
		half := p.Side / 2
		box := rl.BoundingBox{
			Min: vec3(r3.Sub(center, r3.Vec{X: half, Y: half, Z: half})),
			Max: vec3(r3.Add(center, r3.Vec{X: half, Y: half, Z: half})),
		}
		hit := rl.GetRayCollisionBox(ray, box)
		if hit.Hit && hit.Distance < best {
			best = hit.Distance
			row, col, ok = r, c, true
		}
	})
	return row, col, ok
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
