package controls

import (
	"sync"
	"testing"

	"github.com/pthm-cable/boxroll/config"
)

func init() {
	config.MustInit("")
}

func TestNewSeedsFromConfig(t *testing.T) {
	c := New(config.Cfg())
	s := c.Snapshot()

	if s.Threshold != 20 {
		t.Errorf("expected threshold 20, got %v", s.Threshold)
	}
	if s.AutoMarch {
		t.Error("expected auto-march off by default")
	}
	if !s.LightsOn {
		t.Error("expected lights on by default")
	}
	if s.GlobalRotationFrames != 1200 {
		t.Errorf("expected 1200 rotation frames, got %d", s.GlobalRotationFrames)
	}
}

func TestThresholdClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, MinThreshold},
		{5, 5},
		{37.5, 37.5},
		{100, 100},
		{250, MaxThreshold},
	}

	c := New(config.Cfg())
	for _, tt := range tests {
		c.SetThreshold(tt.in)
		if got := c.Threshold(); got != tt.want {
			t.Errorf("SetThreshold(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotationFramesSnap(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 30},
		{44, 30},
		{46, 60},
		{1200, 1200},
		{9999, 2400},
	}

	c := New(config.Cfg())
	for _, tt := range tests {
		c.SetGlobalRotationFrames(tt.in)
		if got := c.GlobalRotationFrames(); got != tt.want {
			t.Errorf("SetGlobalRotationFrames(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToggles(t *testing.T) {
	c := New(config.Cfg())

	if !c.ToggleAutoMarch() || !c.AutoMarch() {
		t.Error("expected auto-march on after toggle")
	}
	if c.ToggleLights() || c.LightsOn() {
		t.Error("expected lights off after toggle")
	}
	if !c.ToggleRotateMode() || !c.RotateMode() {
		t.Error("expected rotate mode on after toggle")
	}
}

func TestSnapshotMotion(t *testing.T) {
	c := New(config.Cfg())
	c.SetThreshold(42)
	c.SetAutoMarch(true)

	m := c.Snapshot().Motion()
	if m.Threshold != 42 || !m.AutoMarch {
		t.Errorf("unexpected motion settings %+v", m)
	}
}

func TestConcurrentWritesStayInRange(t *testing.T) {
	c := New(config.Cfg())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.SetThreshold(float64(i*20 + j%50))
				c.SetAutoMarch(j%2 == 0)
			}
		}(i)
	}

	for i := 0; i < 1000; i++ {
		s := c.Snapshot()
		if s.Threshold < MinThreshold || s.Threshold > MaxThreshold {
			t.Fatalf("threshold %v escaped range", s.Threshold)
		}
	}
	wg.Wait()
}
