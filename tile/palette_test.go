package tile

import (
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/boxroll/config"
)

func TestNewPaletteParsesHex(t *testing.T) {
	p := testPalette(t)

	pink, _ := colorful.Hex("#f72585")
	cyan, _ := colorful.Hex("#4cc9f0")
	if !p.IsHot(pink) || p.IsCool(pink) {
		t.Error("expected #f72585 in hot set only")
	}
	if !p.IsCool(cyan) || p.IsHot(cyan) {
		t.Error("expected #4cc9f0 in cool set only")
	}
}

func TestNewPaletteRejectsBadHex(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Palette.Hot = []string{"#f72585", "not-a-colour"}

	if _, err := NewPalette(cfg); err == nil {
		t.Error("expected error for malformed hex")
	}
}

func TestPickUsesEveryColour(t *testing.T) {
	p := testPalette(t)
	rng := rand.New(rand.NewSource(3))

	hot := make(map[colorful.Color]bool)
	cool := make(map[colorful.Color]bool)
	for i := 0; i < 500; i++ {
		hot[p.Pick(0.8, rng).RGB] = true
		cool[p.Pick(0.2, rng).RGB] = true
	}

	if len(hot) != len(p.Hot) {
		t.Errorf("picked %d distinct hot colours, want %d", len(hot), len(p.Hot))
	}
	if len(cool) != len(p.Cool) {
		t.Errorf("picked %d distinct cool colours, want %d", len(cool), len(p.Cool))
	}
}

func TestColorRGBA8(t *testing.T) {
	c := Color{RGB: colorful.Color{R: 1, G: 0, B: 0.5}, Alpha: 133.5}
	r, g, b, a := c.RGBA8()

	if r != 255 || g != 0 || b != 128 {
		t.Errorf("unexpected rgb (%d,%d,%d)", r, g, b)
	}
	if a != 134 {
		t.Errorf("alpha %d, want 134", a)
	}

	over := Color{RGB: colorful.Color{R: 2}, Alpha: 400}
	if r, _, _, a := over.RGBA8(); r != 255 || a != 255 {
		t.Errorf("expected clamped channels, got r=%d a=%d", r, a)
	}
}
