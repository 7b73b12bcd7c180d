// Package grid lays out the tiles of the playfield and stores them in an ECS world.
package grid

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/tile"
)

// Cell is the grid coordinate of a tile entity.
type Cell struct {
	Row int
	Col int
}

// Layout describes the grid shape and the tile parameters shared by every cell.
type Layout struct {
	Rows          int
	Cols          int
	CellSide      float64
	Geometry      tile.Geometry
	InitialAlpha  float64
	InitialFrames int
}

// LayoutFromConfig builds a layout from the loaded configuration.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		Rows:          cfg.Grid.Rows,
		Cols:          cfg.Grid.Cols,
		CellSide:      cfg.Derived.CellSide,
		Geometry:      tile.GeometryFromConfig(cfg),
		InitialAlpha:  cfg.Tile.InitialAlpha,
		InitialFrames: cfg.Tile.InitialFrames,
	}
}

// Origin returns the home position of the tile at (row, col). The grid is
// centred on the world origin with tiles resting on y=0.
func (l Layout) Origin(row, col int) r3.Vec {
	width := l.CellSide * float64(l.Cols)
	depth := l.CellSide * float64(l.Rows)
	return r3.Vec{
		X: -width/2 + float64(col)*l.CellSide + l.CellSide/2,
		Z: -depth/2 + float64(row)*l.CellSide + l.CellSide/2,
	}
}

// Grid owns rows*cols tiles. Entities are created once and never removed,
// so component pointers stay valid for the grid's lifetime.
type Grid struct {
	layout Layout

	world    *ecs.World
	mapper   *ecs.Map2[Cell, tile.Tile]
	tileMap  *ecs.Map1[tile.Tile]
	filter   *ecs.Filter2[Cell, tile.Tile]
	entities []ecs.Entity // Row-major
}

// New creates a grid of idle tiles at their home positions.
func New(layout Layout, palette *tile.Palette, rng *rand.Rand) *Grid {
	world := ecs.NewWorld()

	g := &Grid{
		layout:   layout,
		world:    world,
		mapper:   ecs.NewMap2[Cell, tile.Tile](world),
		tileMap:  ecs.NewMap1[tile.Tile](world),
		filter:   ecs.NewFilter2[Cell, tile.Tile](world),
		entities: make([]ecs.Entity, 0, layout.Rows*layout.Cols),
	}

	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Cols; col++ {
			cell := Cell{Row: row, Col: col}
			t := tile.New(layout.Origin(row, col), layout.Geometry, palette, rng, layout.InitialAlpha, layout.InitialFrames)
			g.entities = append(g.entities, g.mapper.NewEntity(&cell, &t))
		}
	}

	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.layout.Rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.layout.Cols }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.entities) }

// Layout returns the grid layout.
func (g *Grid) Layout() Layout { return g.layout }

// TileAt returns the tile at (row, col), or nil when out of range.
func (g *Grid) TileAt(row, col int) *tile.Tile {
	if row < 0 || row >= g.layout.Rows || col < 0 || col >= g.layout.Cols {
		return nil
	}
	return g.tileMap.Get(g.entities[row*g.layout.Cols+col])
}

// ForEachTile calls fn for every tile in row-major order.
func (g *Grid) ForEachTile(fn func(row, col int, t *tile.Tile)) {
	cols := g.layout.Cols
	for i, e := range g.entities {
		fn(i/cols, i%cols, g.tileMap.Get(e))
	}
}

// UpdateCounts summarises one Update pass.
type UpdateCounts struct {
	Completed int // Rolls that finished in place
	Reset     int // Rolls that finished beyond the boundary and snapped home
}

// Update advances every animating tile to tick now.
func (g *Grid) Update(now int64) UpdateCounts {
	var counts UpdateCounts
	query := g.filter.Query()
	for query.Next() {
		_, t := query.Get()
		switch t.Update(now) {
		case tile.EventCompleted:
			counts.Completed++
		case tile.EventReset:
			counts.Reset++
		}
	}
	return counts
}

// Animating returns the number of tiles with a roll in flight.
func (g *Grid) Animating() int {
	n := 0
	query := g.filter.Query()
	for query.Next() {
		_, t := query.Get()
		if t.Animating() {
			n++
		}
	}
	return n
}

// Poses appends the draw-time pose of every tile in row-major order to dst.
func (g *Grid) Poses(dst []tile.Pose) []tile.Pose {
	dst = dst[:0]
	for _, e := range g.entities {
		dst = append(dst, g.tileMap.Get(e).Pose())
	}
	return dst
}
