package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		Rows:       1,
		Cols:       2,
		SideLength: 36,
		Tick:       1000,
		Threshold:  25,
		Tiles: []TileState{
			{
				Row: 0, Col: 0,
				State:    "idle",
				Origin:   [3]float64{-20, 18, 0},
				Position: [3]float64{20, 18, 0},
				Color:    "#4cc9f0",
				Alpha:    180,
			},
			{
				Row: 0, Col: 1,
				State:     "animating",
				Heading:   "FORWARD",
				Angle:     45,
				Origin:    [3]float64{20, 18, 0},
				Position:  [3]float64{20, 18, 0},
				Color:     "#f72585",
				Alpha:     255,
				StartTick: 990,
				Duration:  20,
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkMotionBurst,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	snapshot := testSnapshot()

	path, err := SaveSnapshot(snapshot, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snapshot.RNGSeed {
		t.Errorf("RNGSeed mismatch: got %d, want %d", loaded.RNGSeed, snapshot.RNGSeed)
	}
	if loaded.Tick != snapshot.Tick {
		t.Errorf("Tick mismatch: got %d, want %d", loaded.Tick, snapshot.Tick)
	}
	if diff := cmp.Diff(snapshot.Tiles, loaded.Tiles); diff != "" {
		t.Errorf("Tiles mismatch (-want +got):\n%s", diff)
	}
	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark type mismatch: got %s, want %s", loaded.Bookmark.Type, snapshot.Bookmark.Type)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkSignalLost, Tick: 5000},
	}
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_5000_signal_lost.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_3000.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}
}

func TestLoadSnapshotRejectsBadShape(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"wrong version", func(s *Snapshot) { s.Version = SnapshotVersion + 1 }},
		{"missing tiles", func(s *Snapshot) { s.Tiles = s.Tiles[:1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			tt.mutate(s)
			path, err := SaveSnapshot(s, t.TempDir())
			if err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if _, err := LoadSnapshot(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
