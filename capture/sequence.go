package capture

// Sequence replays in-memory samples. A nil entry reads as a dropped frame.
type Sequence struct {
	frames [][][]float64
	loop   bool
	next   int
}

// NewSequence creates a sequence device. Without loop, reads past the end
// return ErrNoFrame.
func NewSequence(frames [][][]float64, loop bool) *Sequence {
	return &Sequence{frames: frames, loop: loop}
}

// Read returns the next stored sample.
func (s *Sequence) Read() ([][]float64, error) {
	if s.next >= len(s.frames) {
		if !s.loop || len(s.frames) == 0 {
			return nil, ErrNoFrame
		}
		s.next = 0
	}
	f := s.frames[s.next]
	s.next++
	if f == nil {
		return nil, ErrNoFrame
	}
	return f, nil
}

// Close is a no-op.
func (s *Sequence) Close() error { return nil }
