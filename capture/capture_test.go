package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/boxroll/config"
)

func init() {
	config.MustInit("")
}

func TestNoiseSampleShapeAndRange(t *testing.T) {
	n := NewNoise(6, 9, NoiseParamsFromConfig(config.Cfg()), 42)

	for i := 0; i < 50; i++ {
		s, err := n.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(s) != 6 || len(s[0]) != 9 {
			t.Fatalf("sample shape %dx%d, want 6x9", len(s), len(s[0]))
		}
		for r := range s {
			for c, v := range s[r] {
				if v < 0 || v > 255 || math.IsNaN(v) {
					t.Fatalf("cell (%d,%d) value %v outside [0,255]", r, c, v)
				}
			}
		}
	}
}

func TestNoiseBlobsMakeMotion(t *testing.T) {
	params := NoiseParamsFromConfig(config.Cfg())
	n := NewNoise(10, 10, params, 7)

	prev := make([][]float64, 10)
	s, _ := n.Read()
	for r := range s {
		prev[r] = append([]float64(nil), s[r]...)
	}

	var maxDelta float64
	for i := 0; i < 60; i++ {
		s, _ = n.Read()
		for r := range s {
			for c := range s[r] {
				maxDelta = math.Max(maxDelta, math.Abs(s[r][c]-prev[r][c]))
				prev[r][c] = s[r][c]
			}
		}
	}
	if maxDelta <= config.Cfg().Motion.Threshold {
		t.Errorf("expected blobs to exceed the default threshold, max delta %v", maxDelta)
	}
}

func TestNoiseWithoutBlobsIsCalm(t *testing.T) {
	params := NoiseParamsFromConfig(config.Cfg())
	params.BlobCount = 0
	n := NewNoise(8, 8, params, 3)

	a, _ := n.Read()
	first := make([]float64, 8)
	copy(first, a[4])
	b, _ := n.Read()

	for c := range first {
		if d := math.Abs(b[4][c] - first[c]); d > config.Cfg().Motion.Threshold {
			t.Errorf("col %d: noise alone moved %v in one frame", c, d)
		}
	}
}

func TestNoiseDeterministic(t *testing.T) {
	params := NoiseParamsFromConfig(config.Cfg())
	a := NewNoise(5, 5, params, 11)
	b := NewNoise(5, 5, params, 11)

	for i := 0; i < 20; i++ {
		sa, _ := a.Read()
		sb, _ := b.Read()
		for r := range sa {
			for c := range sa[r] {
				if sa[r][c] != sb[r][c] {
					t.Fatalf("frame %d cell (%d,%d) differs", i, r, c)
				}
			}
		}
	}
}

func TestNoiseDropout(t *testing.T) {
	params := NoiseParamsFromConfig(config.Cfg())
	params.DropoutRate = 1
	n := NewNoise(3, 3, params, 1)

	if _, err := n.Read(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}

func writePNG(t *testing.T, path string, w, h int, fill color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImagesReadsInOrderAndLoops(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "frame_001.png"), 32, 24, color.RGBA{90, 120, 150, 255})
	writePNG(t, filepath.Join(dir, "frame_002.png"), 32, 24, color.RGBA{0, 0, 0, 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := OpenImages(dir, 3, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", d.Len())
	}

	want := []float64{120, 0, 120}
	for i, w := range want {
		s, err := d.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(s) != 3 || len(s[0]) != 4 {
			t.Fatalf("sample shape %dx%d, want 3x4", len(s), len(s[0]))
		}
		if math.Abs(s[1][2]-w) > 1 {
			t.Errorf("read %d: brightness %v, want %v", i, s[1][2], w)
		}
	}
}

func TestImagesBadFrameIsDropped(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := OpenImages(dir, 2, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Read(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}

func TestOpenImagesEmptyDir(t *testing.T) {
	if _, err := OpenImages(t.TempDir(), 2, 2, false); err == nil {
		t.Error("expected error for a directory without frames")
	}
}

func TestLumaMirror(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{30, 60, 90, 255})
	img.SetRGBA(2, 0, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name   string
		mirror bool
		want   []float64
	}{
		{"plain", false, []float64{255, 60, 0}},
		{"mirrored", true, []float64{0, 60, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := [][]float64{make([]float64, 3)}
			Luma(out, img, tt.mirror)
			for c, w := range tt.want {
				if math.Abs(out[0][c]-w) > 1e-9 {
					t.Errorf("col %d: got %v, want %v", c, out[0][c], w)
				}
			}
		})
	}
}

func TestSequence(t *testing.T) {
	a := [][]float64{{1}}
	b := [][]float64{{2}}

	s := NewSequence([][][]float64{a, nil, b}, false)
	if got, err := s.Read(); err != nil || got[0][0] != 1 {
		t.Errorf("first read: %v %v", got, err)
	}
	if _, err := s.Read(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("nil entry: expected ErrNoFrame, got %v", err)
	}
	if got, err := s.Read(); err != nil || got[0][0] != 2 {
		t.Errorf("third read: %v %v", got, err)
	}
	if _, err := s.Read(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("past end: expected ErrNoFrame, got %v", err)
	}

	loop := NewSequence([][][]float64{a, b}, true)
	loop.Read()
	loop.Read()
	if got, _ := loop.Read(); got[0][0] != 1 {
		t.Error("expected looping sequence to restart")
	}
}

func TestOpenKinds(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	d, err := Open(cfg, 1)
	if err != nil {
		t.Fatalf("noise: %v", err)
	}
	if _, ok := d.(*Noise); !ok {
		t.Errorf("expected *Noise for default kind, got %T", d)
	}

	cfg.Capture.Kind = "images"
	cfg.Capture.Dir = t.TempDir()
	if _, err := Open(cfg, 1); err == nil {
		t.Error("expected error for empty image dir")
	}

	cfg.Capture.Kind = "webcam"
	if _, err := Open(cfg, 1); err == nil {
		t.Error("expected error for unknown kind")
	}
}
