package tile

import "gonum.org/v1/gonum/spatial/r3"

// Heading names one of the four roll directions.
type Heading uint8

const (
	Left Heading = iota
	Right
	Backward
	Forward
)

// String returns the heading name.
func (h Heading) String() string {
	switch h {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Backward:
		return "BACKWARD"
	case Forward:
		return "FORWARD"
	default:
		return "UNKNOWN"
	}
}

// Axis is the rotation axis of a roll.
type Axis uint8

const (
	AxisX Axis = iota
	AxisZ
)

// Vec returns the unit vector of the axis.
func (a Axis) Vec() r3.Vec {
	if a == AxisX {
		return r3.Vec{X: 1}
	}
	return r3.Vec{Z: 1}
}

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Z"
}

// Direction describes one roll. Coordinates are Y-up; tiles rest on the
// y=0 plane and roll about their bottom edge.
//
// Vector is the unit step of the roll. Pivot, scaled by the tile's edge
// offset, is the rotation origin relative to the tile centre. Sign orients
// the rotation about Axis so that the tile lands Vector*2*edgeOffset away.
type Direction struct {
	Heading Heading
	Vector  r3.Vec
	Pivot   r3.Vec
	Axis    Axis
	Sign    float64
}

// directions is the table Directions copies from.
var directions = [4]Direction{
	{Heading: Left, Vector: r3.Vec{X: -1}, Pivot: r3.Vec{X: -1, Y: -1}, Axis: AxisZ, Sign: 1},
	{Heading: Right, Vector: r3.Vec{X: 1}, Pivot: r3.Vec{X: 1, Y: -1}, Axis: AxisZ, Sign: -1},
	{Heading: Backward, Vector: r3.Vec{Z: -1}, Pivot: r3.Vec{Y: -1, Z: -1}, Axis: AxisX, Sign: -1},
	{Heading: Forward, Vector: r3.Vec{Z: 1}, Pivot: r3.Vec{Y: -1, Z: 1}, Axis: AxisX, Sign: 1},
}

// Directions returns a fresh copy of the four roll directions.
func Directions() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions[:])
	return out
}

// DirectionOf returns the direction record for a heading.
func DirectionOf(h Heading) Direction {
	return directions[h%4]
}
