package capture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/boxroll/motion"
)

// Images replays a directory of still frames in name order, looping at the end.
type Images struct {
	rows, cols int
	mirror     bool
	paths      []string
	next       int

	small *image.RGBA
	out   [][]float64
}

// OpenImages lists the PNG and JPEG files in dir.
func OpenImages(dir string, rows, cols int, mirror bool) (*Images, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	sort.Strings(paths)

	return &Images{
		rows:   rows,
		cols:   cols,
		mirror: mirror,
		paths:  paths,
		small:  image.NewRGBA(image.Rect(0, 0, cols, rows)),
		out:    newSample(rows, cols),
	}, nil
}

// Len returns the number of frames.
func (d *Images) Len() int { return len(d.paths) }

// Read decodes the next frame. An unreadable file yields ErrNoFrame and the
// sequence moves on.
func (d *Images) Read() ([][]float64, error) {
	path := d.paths[d.next]
	d.next = (d.next + 1) % len(d.paths)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrNoFrame, filepath.Base(path), err)
	}

	Downsample(d.small, img)
	Luma(d.out, d.small, d.mirror)
	return d.out, nil
}

// Close is a no-op; files are opened per frame.
func (d *Images) Close() error { return nil }

// Downsample scales src to fill dst.
func Downsample(dst *image.RGBA, src image.Image) {
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Luma writes the per-pixel brightness of img into out, which must be
// img-sized. Mirror flips columns so the grid moves like a mirror image.
func Luma(out [][]float64, img image.Image, mirror bool) {
	b := img.Bounds()
	for r := 0; r < len(out) && r < b.Dy(); r++ {
		row := out[r]
		for c := 0; c < len(row) && c < b.Dx(); c++ {
			x := b.Min.X + c
			if mirror {
				x = b.Max.X - 1 - c
			}
			row[c] = motion.Brightness(img.At(x, b.Min.Y+r))
		}
	}
}
