// Package camera provides an orbit camera around the tile grid.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Orbit is a camera circling Target. Yaw turns about the world Y axis,
// Pitch lifts the camera above the ground plane.
type Orbit struct {
	Target   r3.Vec
	Yaw      float64 // Radians, 0 looks down -Z from +Z
	Pitch    float64 // Radians above the XZ plane
	Distance float64

	// Constraints
	MinDistance, MaxDistance float64
	MinPitch, MaxPitch       float64

	home orbitPose
}

// orbitPose is the starting pose Reset returns to.
type orbitPose struct {
	Yaw, Pitch, Distance float64
}

// New creates an orbit camera at position looking at target.
func New(position, target r3.Vec) *Orbit {
	off := r3.Sub(position, target)
	dist := r3.Norm(off)
	var yaw, pitch float64
	if dist > 0 {
		yaw = math.Atan2(off.X, off.Z)
		pitch = math.Asin(off.Y / dist)
	}

	o := &Orbit{
		Target:      target,
		Yaw:         yaw,
		Pitch:       pitch,
		Distance:    dist,
		MinDistance: dist / 4,
		MaxDistance: dist * 4,
		MinPitch:    0.05,
		MaxPitch:    math.Pi/2 - 0.01,
	}
	o.home = orbitPose{Yaw: yaw, Pitch: pitch, Distance: dist}
	return o
}

// Position returns the camera position in world coordinates.
func (o *Orbit) Position() r3.Vec {
	cp := math.Cos(o.Pitch)
	return r3.Add(o.Target, r3.Vec{
		X: o.Distance * cp * math.Sin(o.Yaw),
		Y: o.Distance * math.Sin(o.Pitch),
		Z: o.Distance * cp * math.Cos(o.Yaw),
	})
}

// Rotate turns the camera by the given yaw and pitch deltas in radians.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.Yaw = math.Mod(o.Yaw+dYaw, 2*math.Pi)
	o.Pitch = clamp(o.Pitch+dPitch, o.MinPitch, o.MaxPitch)
}

// Drag rotates by a mouse drag of dx, dy pixels.
func (o *Orbit) Drag(dx, dy, radiansPerPixel float64) {
	o.Rotate(-dx*radiansPerPixel, dy*radiansPerPixel)
}

// ZoomBy scales the distance by factor, clamped to the distance range.
// Factors below 1 move closer.
func (o *Orbit) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	o.Distance = clamp(o.Distance*factor, o.MinDistance, o.MaxDistance)
}

// Reset returns the camera to its starting pose.
func (o *Orbit) Reset() {
	o.Yaw = o.home.Yaw
	o.Pitch = o.home.Pitch
	o.Distance = o.home.Distance
}

// SpinAngle returns the global spin in radians at frame for a full turn
// every period frames. A non-positive period yields no spin.
func SpinAngle(frame int64, period int) float64 {
	if period <= 0 {
		return 0
	}
	f := frame % int64(period)
	if f < 0 {
		f += int64(period)
	}
	return 2 * math.Pi * float64(f) / float64(period)
}

// Spin rotates p about the world Y axis by angle radians.
func Spin(p r3.Vec, angle float64) r3.Vec {
	if angle == 0 {
		return p
	}
	return r3.NewRotation(angle, r3.Vec{Y: 1}).Rotate(p)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
