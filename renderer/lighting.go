package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/tile"
)

// Light is a directional light. Dir points from the scene toward the light.
type Light struct {
	Dir      r3.Vec
	Tint     colorful.Color
	Strength float64
}

// Lighting shades tile colours from the orientation of their top face.
type Lighting struct {
	Ambient colorful.Color
	Lights  []Light
}

// DefaultLighting returns a dim violet ambient with a magenta key light from
// the left and a cyan fill from the right.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: colorful.Color{R: 40.0 / 255, G: 20.0 / 255, B: 60.0 / 255},
		Lights: []Light{
			{
				Dir:      r3.Unit(r3.Vec{X: -1, Y: 2, Z: 0.5}),
				Tint:     colorful.Color{R: 1, G: 0.3, B: 0.8},
				Strength: 0.9,
			},
			{
				Dir:      r3.Unit(r3.Vec{X: 1, Y: 1.5, Z: 0.8}),
				Tint:     colorful.Color{R: 0.3, G: 0.9, B: 1},
				Strength: 0.6,
			},
		},
	}
}

// Shade returns the draw colour for a tile. With lights off the tile colour
// is returned unchanged.
func (l Lighting) Shade(c tile.Color, p tile.Pose, lightsOn bool) rl.Color {
	if !lightsOn {
		return toRL(c.RGB, c.Alpha)
	}

	n := TopNormal(p)
	lit := colorful.Color{R: l.Ambient.R, G: l.Ambient.G, B: l.Ambient.B}
	for _, light := range l.Lights {
		d := math.Max(0, r3.Dot(n, light.Dir)) * light.Strength
		lit.R += light.Tint.R * d
		lit.G += light.Tint.G * d
		lit.B += light.Tint.B * d
	}

	shaded := colorful.Color{
		R: c.RGB.R * lit.R,
		G: c.RGB.G * lit.G,
		B: c.RGB.B * lit.B,
	}
	return toRL(shaded, c.Alpha)
}

// TopNormal returns the world-space normal of the face that is up at rest.
func TopNormal(p tile.Pose) r3.Vec {
	up := r3.Vec{Y: 1}
	if p.Angle == 0 {
		return up
	}
	return r3.NewRotation(p.Angle, p.Axis.Vec()).Rotate(up)
}

// Wire returns the wireframe colour at the given alpha.
func Wire(alpha int) rl.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 255 {
		alpha = 255
	}
	return rl.Color{R: 255, G: 255, B: 255, A: uint8(alpha)}
}

func toRL(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	_, _, _, a := tile.Color{Alpha: alpha}.RGBA8()
	return rl.Color{R: r, G: g, B: b, A: a}
}
