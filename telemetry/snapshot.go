package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of every tile at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	SideLength float64 `json:"side_length"`

	Tick      int64   `json:"tick"`
	Threshold float64 `json:"threshold"`
	AutoMarch bool    `json:"auto_march"`

	Tiles []TileState `json:"tiles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// TileState holds one tile's state.
type TileState struct {
	Row int `json:"row"`
	Col int `json:"col"`

	State   string  `json:"state"`
	Heading string  `json:"heading,omitempty"` // Set while animating
	Angle   float64 `json:"angle"`             // Degrees

	Origin   [3]float64 `json:"origin"`
	Position [3]float64 `json:"position"`

	Color string  `json:"color"` // #rrggbb
	Alpha float64 `json:"alpha"`

	StartTick int64 `json:"start_tick"`
	Duration  int   `json:"duration"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	if len(snapshot.Tiles) != snapshot.Rows*snapshot.Cols {
		return nil, fmt.Errorf("snapshot has %d tiles for a %dx%d grid", len(snapshot.Tiles), snapshot.Rows, snapshot.Cols)
	}

	return &snapshot, nil
}
