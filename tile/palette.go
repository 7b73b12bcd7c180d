package tile

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/boxroll/config"
)

// Color is a tile colour with an alpha on the 0-255 scale.
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

// RGBA8 returns the colour as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = c.RGB.Clamped().RGB255()
	alpha := math.Round(c.Alpha)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 255 {
		alpha = 255
	}
	return r, g, b, uint8(alpha)
}

// Palette holds the hot and cool colour sets and the intensity mapping.
type Palette struct {
	Hot  []colorful.Color
	Cool []colorful.Color

	HotIntensity float64 // Intensity above which hot colours are used
	CoolAlphaMin float64 // Cool alpha at intensity 0
	CoolAlphaMax float64 // Cool alpha at intensity 1
}

// NewPalette parses the configured hex colours.
func NewPalette(cfg *config.Config) (*Palette, error) {
	hot, err := parseHex(cfg.Palette.Hot)
	if err != nil {
		return nil, fmt.Errorf("hot palette: %w", err)
	}
	cool, err := parseHex(cfg.Palette.Cool)
	if err != nil {
		return nil, fmt.Errorf("cool palette: %w", err)
	}
	return &Palette{
		Hot:          hot,
		Cool:         cool,
		HotIntensity: cfg.Tile.HotIntensity,
		CoolAlphaMin: cfg.Tile.CoolAlphaMin,
		CoolAlphaMax: cfg.Tile.CoolAlphaMax,
	}, nil
}

func parseHex(values []string) ([]colorful.Color, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no colours")
	}
	out := make([]colorful.Color, 0, len(values))
	for _, v := range values {
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", v, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Pick chooses a colour for a trigger of the given intensity.
// Hot colours are fully opaque; cool alpha rises with intensity.
func (p *Palette) Pick(intensity float64, rng *rand.Rand) Color {
	if intensity > p.HotIntensity {
		return Color{RGB: p.Hot[rng.Intn(len(p.Hot))], Alpha: 255}
	}
	return Color{
		RGB:   p.Cool[rng.Intn(len(p.Cool))],
		Alpha: p.CoolAlphaMin + intensity*(p.CoolAlphaMax-p.CoolAlphaMin),
	}
}

// Initial chooses the colour a tile shows before its first trigger.
func (p *Palette) Initial(alpha float64, rng *rand.Rand) Color {
	return Color{RGB: p.Cool[rng.Intn(len(p.Cool))], Alpha: alpha}
}

// IsHot reports whether c is one of the hot colours.
func (p *Palette) IsHot(c colorful.Color) bool {
	return contains(p.Hot, c)
}

// IsCool reports whether c is one of the cool colours.
func (p *Palette) IsCool(c colorful.Color) bool {
	return contains(p.Cool, c)
}

func contains(set []colorful.Color, c colorful.Color) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
