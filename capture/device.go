// Package capture provides the frame sources that feed brightness samples
// to the simulation.
//
// A Device produces one rows x cols brightness sample per Read, values on the
// 0-255 scale. A Read that has no frame returns ErrNoFrame; callers skip
// triggering for that tick and carry on.
package capture

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/boxroll/config"
)

// ErrNoFrame reports that no frame is available this tick.
var ErrNoFrame = errors.New("no frame available")

// Device is a source of down-sampled brightness frames.
type Device interface {
	// Read returns the next sample. The returned slices may be reused by
	// the next call.
	Read() ([][]float64, error)
	Close() error
}

// Open creates the device named by cfg.Capture.Kind.
func Open(cfg *config.Config, seed int64) (Device, error) {
	rows, cols := cfg.Grid.Rows, cfg.Grid.Cols
	switch cfg.Capture.Kind {
	case "", "noise":
		return NewNoise(rows, cols, NoiseParamsFromConfig(cfg), seed), nil
	case "images":
		d, err := OpenImages(cfg.Capture.Dir, rows, cols, cfg.Capture.Mirror)
		if err != nil {
			return nil, fmt.Errorf("opening image capture: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown capture kind %q", cfg.Capture.Kind)
	}
}

func newSample(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
	}
	return out
}
