package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/boxroll/capture"
	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/telemetry"
)

func init() {
	config.MustInit("")
}

func blank() [][]float64 {
	cfg := config.Cfg()
	out := make([][]float64, cfg.Grid.Rows)
	for r := range out {
		out[r] = make([]float64, cfg.Grid.Cols)
	}
	return out
}

func TestHeadlessRunWritesTelemetry(t *testing.T) {
	bright := blank()
	bright[3][4] = 200
	dev := capture.NewSequence([][][]float64{blank(), bright}, false)

	dir := t.TempDir()
	var windows []telemetry.WindowStats
	g, err := NewGame(Options{
		Seed:           42,
		Headless:       true,
		StatsWindowSec: 0.5, // 15 ticks at 30 FPS
		OutputDir:      dir,
		Device:         dev,
		StatsCallback:  func(w telemetry.WindowStats) { windows = append(windows, w) },
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if g.Tick() != 30 {
		t.Errorf("Tick = %d, want 30", g.Tick())
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}

	first := windows[0]
	if first.Frames != 15 || first.SkippedFrames != 13 {
		t.Errorf("first window frames=%d skipped=%d, want 15/13", first.Frames, first.SkippedFrames)
	}
	if first.MotionTriggers != 1 || first.Completed != 1 {
		t.Errorf("first window motion=%d completed=%d, want 1/1", first.MotionTriggers, first.Completed)
	}
	if windows[1].MotionTriggers != 0 || windows[1].SkippedFrames != 15 {
		t.Errorf("second window = %+v, want no triggers and all frames skipped", windows[1])
	}

	last, ok := g.LastWindow()
	if !ok || last.WindowEndTick != 30 {
		t.Errorf("LastWindow = %+v, %v", last, ok)
	}

	for _, name := range []string{telemetry.TelemetryFile, telemetry.PerfFile, telemetry.ConfigFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	rows, err := telemetry.ReadTelemetry(filepath.Join(dir, telemetry.TelemetryFile))
	if err != nil {
		t.Fatalf("ReadTelemetry: %v", err)
	}
	if len(rows) != 2 || rows[0].MotionTriggers != 1 {
		t.Errorf("telemetry rows = %+v", rows)
	}
}

type failingDevice struct{ reads int }

func (d *failingDevice) Read() ([][]float64, error) {
	d.reads++
	return nil, errors.New("camera unplugged")
}

func (d *failingDevice) Close() error { return nil }

func TestCaptureErrorsDoNotStopTheLoop(t *testing.T) {
	dev := &failingDevice{}
	g, err := NewGame(Options{Seed: 1, Headless: true, Device: dev})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if dev.reads != 5 || g.Tick() != 5 {
		t.Errorf("reads=%d tick=%d, want 5/5", dev.reads, g.Tick())
	}
	if !g.noSignal {
		t.Error("expected noSignal after failed reads")
	}
	if g.lastReport.HadData {
		t.Error("expected last report without data")
	}
}

func TestControlsDriveAutoMarch(t *testing.T) {
	dev := capture.NewSequence([][][]float64{blank()}, true)
	g, err := NewGame(Options{Seed: 7, Headless: true, Device: dev})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	g.Controls().SetAutoMarch(true)
	started := 0
	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
		started += g.lastReport.Auto
	}
	if started == 0 {
		t.Error("expected auto-march triggers on a static scene")
	}
	if g.lastReport.Motion != 0 {
		t.Errorf("static scene produced motion triggers: %+v", g.lastReport)
	}
}

func TestSignalLossSavesSnapshot(t *testing.T) {
	dev := capture.NewSequence([][][]float64{blank()}, false)
	dir := t.TempDir()
	g, err := NewGame(Options{
		Seed:           3,
		Headless:       true,
		StatsWindowSec: 0.5,
		SnapshotDir:    dir,
		Device:         dev,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	// Only the first window crosses from healthy to lost
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 snapshot, got %v", matches)
	}
	if want := filepath.Join(dir, "snapshot_15_signal_lost.json"); matches[0] != want {
		t.Errorf("snapshot = %s, want %s", matches[0], want)
	}

	snap, err := telemetry.LoadSnapshot(matches[0])
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	cfg := config.Cfg()
	if snap.Rows != cfg.Grid.Rows || snap.Cols != cfg.Grid.Cols || snap.RNGSeed != 3 {
		t.Errorf("snapshot header = %d x %d seed %d", snap.Rows, snap.Cols, snap.RNGSeed)
	}
	if snap.Bookmark == nil || snap.Bookmark.Type != telemetry.BookmarkSignalLost {
		t.Errorf("snapshot bookmark = %+v", snap.Bookmark)
	}
}

func TestSnapshotMatchesGrid(t *testing.T) {
	g, err := NewGame(Options{Seed: 9, Headless: true, Device: capture.NewSequence([][][]float64{blank()}, true)})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	s := g.Snapshot(nil)
	gr := g.Sim().Grid()
	if len(s.Tiles) != gr.Len() {
		t.Fatalf("tiles = %d, want %d", len(s.Tiles), gr.Len())
	}
	for _, ts := range s.Tiles {
		tl := gr.TileAt(ts.Row, ts.Col)
		if ts.State != tl.State().String() {
			t.Errorf("(%d,%d) state %s, want %s", ts.Row, ts.Col, ts.State, tl.State())
		}
		if ts.Color[0] != '#' || len(ts.Color) != 7 {
			t.Errorf("(%d,%d) colour %q", ts.Row, ts.Col, ts.Color)
		}
	}
}
