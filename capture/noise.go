package capture

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/boxroll/config"
)

// NoiseParams shape the simulated camera signal.
type NoiseParams struct {
	Scale       float64 // Spatial frequency per cell
	Speed       float64 // Time step per frame
	Gain        float64 // Peak brightness of the noise layer
	BlobCount   int
	BlobRadius  float64 // In cells
	BlobSpeed   float64 // Cells per frame
	DropoutRate float64 // Probability a Read returns ErrNoFrame
}

// NoiseParamsFromConfig extracts noise parameters from the config.
func NoiseParamsFromConfig(cfg *config.Config) NoiseParams {
	c := cfg.Capture
	return NoiseParams{
		Scale:       c.NoiseScale,
		Speed:       c.NoiseSpeed,
		Gain:        c.NoiseGain,
		BlobCount:   c.BlobCount,
		BlobRadius:  c.BlobRadius,
		BlobSpeed:   c.BlobSpeed,
		DropoutRate: c.DropoutRate,
	}
}

type blob struct {
	x, y   float64
	vx, vy float64
}

// Noise is a synthetic device: a slowly drifting simplex field with bright
// blobs bouncing across it. Blob edges crossing a cell produce the large
// deltas a person walking past the camera would.
type Noise struct {
	rows, cols int
	params     NoiseParams

	noise opensimplex.Noise
	rng   *rand.Rand
	blobs []blob
	t     float64
	out   [][]float64
}

// NewNoise creates a noise device.
func NewNoise(rows, cols int, params NoiseParams, seed int64) *Noise {
	n := &Noise{
		rows:  rows,
		cols:  cols,
		noise: opensimplex.NewNormalized(seed),
		rng:   rand.New(rand.NewSource(seed)),
		out:   newSample(rows, cols),
	}
	n.SetParams(params)
	return n
}

// Params returns the current parameters.
func (n *Noise) Params() NoiseParams { return n.params }

// SetParams replaces the parameters, respawning blobs if the count changed.
func (n *Noise) SetParams(p NoiseParams) {
	old := n.params.BlobCount
	n.params = p
	if len(n.blobs) == 0 || old != p.BlobCount {
		n.spawnBlobs()
	} else {
		for i := range n.blobs {
			n.blobs[i].vx, n.blobs[i].vy = n.velocity()
		}
	}
}

func (n *Noise) spawnBlobs() {
	n.blobs = n.blobs[:0]
	for i := 0; i < n.params.BlobCount; i++ {
		vx, vy := n.velocity()
		n.blobs = append(n.blobs, blob{
			x:  n.rng.Float64() * float64(n.cols),
			y:  n.rng.Float64() * float64(n.rows),
			vx: vx,
			vy: vy,
		})
	}
}

func (n *Noise) velocity() (float64, float64) {
	a := n.rng.Float64() * 2 * math.Pi
	return math.Cos(a) * n.params.BlobSpeed, math.Sin(a) * n.params.BlobSpeed
}

// Read advances the field by one frame and samples it.
func (n *Noise) Read() ([][]float64, error) {
	n.t += n.params.Speed
	n.moveBlobs()

	if n.params.DropoutRate > 0 && n.rng.Float64() < n.params.DropoutRate {
		return nil, ErrNoFrame
	}

	for r := 0; r < n.rows; r++ {
		for c := 0; c < n.cols; c++ {
			v := n.params.Gain * n.noise.Eval3(float64(c)*n.params.Scale, float64(r)*n.params.Scale, n.t)
			v += n.blobLight(float64(c)+0.5, float64(r)+0.5)
			n.out[r][c] = math.Min(255, math.Max(0, v))
		}
	}
	return n.out, nil
}

func (n *Noise) moveBlobs() {
	w, h := float64(n.cols), float64(n.rows)
	for i := range n.blobs {
		b := &n.blobs[i]
		b.x += b.vx
		b.y += b.vy
		if b.x < 0 || b.x > w {
			b.vx = -b.vx
			b.x = math.Max(0, math.Min(w, b.x))
		}
		if b.y < 0 || b.y > h {
			b.vy = -b.vy
			b.y = math.Max(0, math.Min(h, b.y))
		}
	}
}

func (n *Noise) blobLight(x, y float64) float64 {
	if n.params.BlobRadius <= 0 {
		return 0
	}
	var v float64
	for _, b := range n.blobs {
		d := math.Hypot(x-b.x, y-b.y)
		if d < n.params.BlobRadius {
			v += 255 * (1 - d/n.params.BlobRadius)
		}
	}
	return v
}

// Close is a no-op.
func (n *Noise) Close() error { return nil }
