// Package motion turns per-cell brightness samples into animation triggers.
//
// A Sampler keeps the previous frame's brightness for every cell and reports
// the absolute change against it. A Policy decides which changes start a roll
// and how intense that roll is.
package motion

import "image/color"

// Delta is the brightness change of one cell since the previous frame.
// HasPrevious is false when there is no prior value to compare against.
type Delta struct {
	Value       float64
	HasPrevious bool
}

// Sampler computes per-cell brightness deltas between consecutive frames.
type Sampler struct {
	rows, cols int
	prev       []float64
	seen       []bool
	out        []Delta
}

// NewSampler creates a sampler for a rows x cols grid.
func NewSampler(rows, cols int) *Sampler {
	n := rows * cols
	return &Sampler{
		rows: rows,
		cols: cols,
		prev: make([]float64, n),
		seen: make([]bool, n),
		out:  make([]Delta, n),
	}
}

// Rows returns the number of sample rows.
func (s *Sampler) Rows() int { return s.rows }

// Cols returns the number of sample columns.
func (s *Sampler) Cols() int { return s.cols }

// Diff compares sample against the stored snapshot and returns one Delta per
// cell in row-major order. The snapshot is then replaced by sample.
//
// A nil sample, or one with a missing or short row, carries no data: every
// cell reports HasPrevious=false, the snapshot is left untouched and ok is
// false. The returned slice is reused by the next call.
func (s *Sampler) Diff(sample [][]float64) (deltas []Delta, ok bool) {
	if !s.complete(sample) {
		for i := range s.out {
			s.out[i] = Delta{}
		}
		return s.out, false
	}

	for r := 0; r < s.rows; r++ {
		row := sample[r]
		for c := 0; c < s.cols; c++ {
			i := r*s.cols + c
			v := row[c]
			if s.seen[i] {
				d := v - s.prev[i]
				if d < 0 {
					d = -d
				}
				s.out[i] = Delta{Value: d, HasPrevious: true}
			} else {
				s.out[i] = Delta{}
			}
			s.prev[i] = v
			s.seen[i] = true
		}
	}
	return s.out, true
}

// Previous returns the stored brightness for a cell and whether one exists.
func (s *Sampler) Previous(row, col int) (float64, bool) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0, false
	}
	i := row*s.cols + col
	return s.prev[i], s.seen[i]
}

// Reset forgets the stored snapshot; the next frame primes it again.
func (s *Sampler) Reset() {
	for i := range s.seen {
		s.seen[i] = false
		s.prev[i] = 0
	}
}

func (s *Sampler) complete(sample [][]float64) bool {
	if len(sample) < s.rows {
		return false
	}
	for r := 0; r < s.rows; r++ {
		if len(sample[r]) < s.cols {
			return false
		}
	}
	return true
}

// Brightness is the unweighted mean of the RGB channels on a 0-255 scale.
func Brightness(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit channels
	return float64(r>>8+g>>8+b>>8) / 3
}
