package tile

import "gonum.org/v1/gonum/spatial/r3"

// Pose is what a renderer needs to draw a tile: translate to Position, then
// to Pivot, rotate by Angle about Axis, translate back by -Pivot, and draw a
// cube of side Side centred at the origin.
type Pose struct {
	Position  r3.Vec
	Angle     float64 // Signed radians about Axis
	Axis      Axis
	Pivot     r3.Vec // Offset from Position
	Side      float64
	Heading   Heading
	Animating bool
}

// Apply maps a point in cube-local coordinates to world coordinates.
func (p Pose) Apply(local r3.Vec) r3.Vec {
	if p.Angle == 0 {
		return r3.Add(p.Position, local)
	}
	rot := r3.NewRotation(p.Angle, p.Axis.Vec())
	rel := r3.Sub(local, p.Pivot)
	return r3.Add(r3.Add(p.Position, p.Pivot), rot.Rotate(rel))
}

// Center returns the world position of the cube centre.
func (p Pose) Center() r3.Vec {
	return p.Apply(r3.Vec{})
}
