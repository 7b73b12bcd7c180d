package renderer

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/tile"
)

func TestShadeLightsOffIsFlat(t *testing.T) {
	c := tile.Color{RGB: colorful.Color{R: 1, G: 0.5, B: 0}, Alpha: 180}
	got := DefaultLighting().Shade(c, tile.Pose{}, false)

	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 180 {
		t.Errorf("Shade off = %+v, want (255,128,0,180)", got)
	}
}

func TestShadeKeepsAlpha(t *testing.T) {
	c := tile.Color{RGB: colorful.Color{R: 0.3, G: 0.3, B: 0.9}, Alpha: 120}
	got := DefaultLighting().Shade(c, tile.Pose{}, true)
	if got.A != 120 {
		t.Errorf("alpha = %d, want 120", got.A)
	}
}

func TestShadeDarkWithoutLights(t *testing.T) {
	l := Lighting{Ambient: colorful.Color{R: 40.0 / 255, G: 20.0 / 255, B: 60.0 / 255}}
	c := tile.Color{RGB: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 255}
	got := l.Shade(c, tile.Pose{}, true)

	if got.R != 40 || got.G != 20 || got.B != 60 {
		t.Errorf("ambient only = %+v, want (40,20,60)", got)
	}
}

func TestShadeFacingLightIsBrighter(t *testing.T) {
	l := Lighting{
		Lights: []Light{{Dir: r3.Vec{Y: 1}, Tint: colorful.Color{R: 1, G: 1, B: 1}, Strength: 1}},
	}
	c := tile.Color{RGB: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 255}

	flat := l.Shade(c, tile.Pose{}, true)
	tilted := l.Shade(c, tile.Pose{Angle: math.Pi / 3, Axis: tile.AxisZ}, true)

	if flat.R != 255 {
		t.Errorf("upright face R = %d, want 255", flat.R)
	}
	// cos(60°) = 0.5
	if tilted.R < 126 || tilted.R > 129 {
		t.Errorf("tilted face R = %d, want ~128", tilted.R)
	}
}

func TestTopNormal(t *testing.T) {
	testCases := []struct {
		name string
		pose tile.Pose
		want r3.Vec
	}{
		{"rest", tile.Pose{}, r3.Vec{Y: 1}},
		{"quarter about +Z", tile.Pose{Angle: math.Pi / 2, Axis: tile.AxisZ}, r3.Vec{X: -1}},
		{"quarter about -X", tile.Pose{Angle: -math.Pi / 2, Axis: tile.AxisX}, r3.Vec{Z: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopNormal(tc.pose)
			if r3.Norm(r3.Sub(got, tc.want)) > 1e-9 {
				t.Errorf("TopNormal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWireClamps(t *testing.T) {
	if got := Wire(100); got.A != 100 || got.R != 255 {
		t.Errorf("Wire(100) = %+v", got)
	}
	if got := Wire(400); got.A != 255 {
		t.Errorf("Wire(400).A = %d, want 255", got.A)
	}
}
