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

// SceneRenderer draws everything around the tiles: background, floor grid,
// home markers and the selection highlight.
type SceneRenderer struct {
	Background rl.Color
	floorColor rl.Color
	homeColor  rl.Color
	driftColor rl.Color
	selColor   rl.Color

	slices   int32
	cellSide float32
	floorY   float32
}

// NewSceneRenderer creates a scene renderer from config.
func NewSceneRenderer(cfg *config.Config) *SceneRenderer {
	bg := cfg.Render.Background
	return &SceneRenderer{
		Background: rl.Color{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255},
		floorColor: rl.Color{R: 67, G: 97, B: 238, A: 60},
		homeColor:  rl.Color{R: 76, G: 201, B: 240, A: 140},
		driftColor: rl.Color{R: 247, G: 37, B: 133, A: 160},
		selColor:   rl.Yellow,
		slices:     int32(max(cfg.Grid.Rows, cfg.Grid.Cols)),
		cellSide:   float32(cfg.Derived.CellSide),
		floorY:     float32(-cfg.Derived.SideLength / 2),
	}
}

// Clear fills the frame with the background colour.
func (s *SceneRenderer) Clear() {
	rl.ClearBackground(s.Background)
}

// ToCamera3D converts an orbit camera into a raylib perspective camera.
func ToCamera3D(o *camera.Orbit, fovy float64) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(o.Position()),
		Target:     vec3(o.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(fovy),
		Projection: rl.CameraPerspective,
	}
}

// DrawFloor draws the cell grid just below the cubes.
func (s *SceneRenderer) DrawFloor(spin float64) {
	rl.PushMatrix()
	rl.Rotatef(float32(spin*180/math.Pi), 0, 1, 0)
	rl.Translatef(0, s.floorY, 0)
	rl.DrawGrid(s.slices, s.cellSide)
	rl.PopMatrix()
}

// DrawOrigins marks each tile's home position and draws a line to tiles that
// have drifted away from it.
func (s *SceneRenderer) DrawOrigins(g *grid.Grid, spin float64) {
	g.ForEachTile(func(_, _ int, t *tile.Tile) {
		home := camera.Spin(t.Origin(), spin)
		home.Y = float64(s.floorY)
		rl.DrawCircle3D(vec3(home), s.cellSide*0.15, rl.Vector3{X: 1}, 90, s.homeColor)

		if t.Position() != t.Origin() {
			here := camera.Spin(t.Position(), spin)
			here.Y = float64(s.floorY)
			rl.DrawLine3D(vec3(home), vec3(here), s.driftColor)
		}
	})
}

// DrawSelection outlines the selected tile.
func (s *SceneRenderer) DrawSelection(t *tile.Tile, spin float64) {
	if t == nil {
		return
	}
	p := t.Pose()
	c := camera.Spin(p.Center(), spin)
	side := float32(p.Side * 1.1)
	rl.DrawCubeWires(vec3(c), side, side, side, s.selColor)

	top := r3.Add(c, r3.Vec{Y: p.Side})
	rl.DrawLine3D(vec3(c), vec3(top), s.selColor)
}
