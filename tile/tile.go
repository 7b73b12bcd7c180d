// Package tile implements the rolling-cube state machine of a single grid cell.
//
// A tile rests until a trigger starts a roll. The roll is a quarter turn
// about one bottom edge of the cube, spread over a number of ticks; when the
// turn completes the tile's resting position advances by one step in the roll
// direction. Tiles that wander too far from home are snapped back.
package tile

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/config"
)

// ErrInvalidDuration is returned when a roll is started with fewer than one tick.
var ErrInvalidDuration = errors.New("roll duration must be at least one tick")

// State is the animation state of a tile.
type State uint8

const (
	Idle State = iota
	Animating
)

// String returns the state name.
func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Event reports what an Update did.
type Event uint8

const (
	EventNone      Event = iota
	EventCompleted       // Roll finished, position advanced
	EventReset           // Roll finished and the tile was snapped home
)

// Geometry holds the sizes every tile of a grid shares.
type Geometry struct {
	SideLength       float64 // Cube side
	EdgeOffset       float64 // Pivot scale; a roll advances 2*EdgeOffset
	PlayfieldSize    float64 // Characteristic size for the boundary check
	BoundaryFraction float64 // Reset when drift exceeds this fraction of PlayfieldSize
}

// GeometryFromConfig builds the shared geometry from derived config values.
func GeometryFromConfig(cfg *config.Config) Geometry {
	return Geometry{
		SideLength:       cfg.Derived.SideLength,
		EdgeOffset:       cfg.Derived.EdgeOffset,
		PlayfieldSize:    cfg.Derived.PlayfieldSize,
		BoundaryFraction: cfg.Tile.BoundaryFraction,
	}
}

// Step returns the displacement of one completed roll.
func (g Geometry) Step(d Direction) r3.Vec {
	return r3.Scale(2*g.EdgeOffset, d.Vector)
}

// Tile is one grid cell's cube.
type Tile struct {
	origin r3.Vec
	pos    r3.Vec

	state     State
	dir       Direction
	angle     float64
	startTick int64
	duration  int
	color     Color

	geom    Geometry
	palette *Palette
	rng     *rand.Rand
}

// New creates an idle tile resting at origin with a random direction and an
// initial cool colour.
func New(origin r3.Vec, geom Geometry, palette *Palette, rng *rand.Rand, initialAlpha float64, initialFrames int) Tile {
	return Tile{
		origin:   origin,
		pos:      origin,
		state:    Idle,
		dir:      directions[rng.Intn(len(directions))],
		duration: initialFrames,
		color:    palette.Initial(initialAlpha, rng),
		geom:     geom,
		palette:  palette,
		rng:      rng,
	}
}

// Start begins a roll at tick now. It returns false without changing
// anything if the tile is already animating. A nil dir picks one of the four
// directions uniformly. Intensity is clamped to [0,1] before it chooses the
// colour.
func (t *Tile) Start(now int64, dir *Direction, duration int, intensity float64) (bool, error) {
	if t.state == Animating {
		return false, nil
	}
	if duration < 1 {
		return false, ErrInvalidDuration
	}

	if dir == nil {
		t.dir = directions[t.rng.Intn(len(directions))]
	} else {
		t.dir = *dir
	}

	t.state = Animating
	t.angle = 0
	t.startTick = now
	t.duration = duration
	t.color = t.palette.Pick(clamp01(intensity), t.rng)
	return true, nil
}

// Update advances the roll to tick now. The roll completes on the tick where
// the quarter turn would be reached: the angle returns to zero, the position
// steps forward and the boundary check runs.
func (t *Tile) Update(now int64) Event {
	if t.state != Animating {
		return EventNone
	}

	elapsed := now - t.startTick
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < int64(t.duration) {
		t.angle = math.Pi / 2 * float64(elapsed) / float64(t.duration)
		return EventNone
	}

	t.angle = 0
	t.state = Idle
	t.pos = r3.Add(t.pos, t.geom.Step(t.dir))

	if r3.Norm(r3.Sub(t.pos, t.origin)) > t.geom.BoundaryFraction*t.geom.PlayfieldSize {
		t.pos = t.origin
		return EventReset
	}
	return EventCompleted
}

// State returns the animation state.
func (t *Tile) State() State { return t.state }

// Animating reports whether a roll is in flight.
func (t *Tile) Animating() bool { return t.state == Animating }

// Angle returns the unsigned roll progress in [0, pi/2).
func (t *Tile) Angle() float64 { return t.angle }

// Origin returns the home position.
func (t *Tile) Origin() r3.Vec { return t.origin }

// Position returns the resting position; it only changes when a roll completes.
func (t *Tile) Position() r3.Vec { return t.pos }

// Direction returns the tile's copy of its current roll direction.
func (t *Tile) Direction() Direction { return t.dir }

// StartTick returns the tick the current or last roll began.
func (t *Tile) StartTick() int64 { return t.startTick }

// Duration returns the length in ticks of the current or last roll.
func (t *Tile) Duration() int { return t.duration }

// Color returns the colour chosen by the most recent trigger.
func (t *Tile) Color() Color { return t.color }

// Geometry returns the shared geometry.
func (t *Tile) Geometry() Geometry { return t.geom }

// Pose returns the draw-time transform of the tile.
func (t *Tile) Pose() Pose {
	return Pose{
		Position:  t.pos,
		Angle:     t.dir.Sign * t.angle,
		Axis:      t.dir.Axis,
		Pivot:     r3.Scale(t.geom.EdgeOffset, t.dir.Pivot),
		Side:      t.geom.SideLength,
		Heading:   t.dir.Heading,
		Animating: t.state == Animating,
	}
}

func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x > 0 {
		return x
	}
	return 0
}
