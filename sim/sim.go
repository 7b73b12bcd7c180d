// Package sim runs the per-tick pipeline from a brightness sample to tile
// updates without any rendering dependency.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/grid"
	"github.com/pthm-cable/boxroll/motion"
	"github.com/pthm-cable/boxroll/tile"
)

// Report summarises one tick.
type Report struct {
	Frame     int64
	HadData   bool // False when the sample was missing or incomplete
	Motion    int  // Tiles started by motion
	Auto      int  // Tiles started by auto-march
	Ignored   int  // Triggers that hit an already animating tile
	Completed int  // Rolls finished in place
	Reset     int  // Rolls finished beyond the boundary
	Animating int  // Tiles in flight after the update
	MaxDelta  float64

	// Intensities of the triggers that started a roll this tick.
	// The slice is reused by the next Step.
	Intensities []float64
}

// Started returns the number of rolls started this tick.
func (r Report) Started() int {
	return r.Motion + r.Auto
}

// Sim owns the sampler, policy and grid and a monotonically increasing frame counter.
type Sim struct {
	sampler *motion.Sampler
	policy  *motion.Policy
	grid    *grid.Grid
	frame   int64

	intensities []float64
}

// New builds a simulation from config. All randomness flows from seed.
func New(cfg *config.Config, seed int64) (*Sim, error) {
	palette, err := tile.NewPalette(cfg)
	if err != nil {
		return nil, fmt.Errorf("building palette: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	layout := grid.LayoutFromConfig(cfg)

	return &Sim{
		sampler: motion.NewSampler(layout.Rows, layout.Cols),
		policy:  motion.NewPolicy(motion.ParamsFromConfig(cfg), rng),
		grid:    grid.New(layout, palette, rng),
	}, nil
}

// Step processes one frame: the sample is differenced against the previous
// one, triggers are dispatched to idle tiles, then every tile advances. A nil
// or incomplete sample skips triggering but still advances animations.
func (s *Sim) Step(sample [][]float64, settings motion.Settings) Report {
	now := s.frame
	rep := Report{Frame: now}
	s.intensities = s.intensities[:0]

	deltas, ok := s.sampler.Diff(sample)
	rep.HadData = ok
	if ok {
		cols := s.grid.Cols()
		for i, d := range deltas {
			if d.Value > rep.MaxDelta {
				rep.MaxDelta = d.Value
			}
			tr := s.policy.Evaluate(d, settings)
			if !tr.Fired() {
				continue
			}

			t := s.grid.TileAt(i/cols, i%cols)
			started, err := t.Start(now, nil, s.policy.Duration(tr.Intensity), tr.Intensity)
			if err != nil {
				slog.Warn("start_failed", "row", i/cols, "col", i%cols, "error", err)
				continue
			}
			if !started {
				rep.Ignored++
				continue
			}

			s.intensities = append(s.intensities, tr.Intensity)
			if tr.Cause == motion.CauseAuto {
				rep.Auto++
			} else {
				rep.Motion++
			}
		}
	}

	counts := s.grid.Update(now)
	rep.Completed = counts.Completed
	rep.Reset = counts.Reset
	rep.Animating = s.grid.Animating()
	rep.Intensities = s.intensities

	s.frame++
	return rep
}

// Frame returns the tick the next Step will process.
func (s *Sim) Frame() int64 { return s.frame }

// Grid returns the tile grid.
func (s *Sim) Grid() *grid.Grid { return s.grid }

// Sampler returns the frame differencer.
func (s *Sim) Sampler() *motion.Sampler { return s.sampler }

// Policy returns the trigger policy.
func (s *Sim) Policy() *motion.Policy { return s.policy }
