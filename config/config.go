// Package config provides configuration loading and access for the tile grid.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Grid      GridConfig      `yaml:"grid"`
	Motion    MotionConfig    `yaml:"motion"`
	Tile      TileConfig      `yaml:"tile"`
	Palette   PaletteConfig   `yaml:"palette"`
	Render    RenderConfig    `yaml:"render"`
	Capture   CaptureConfig   `yaml:"capture"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds playfield dimensions in world units.
type WorldConfig struct {
	Size float64 `yaml:"size"` // Width of the tile grid in world units
}

// GridConfig holds the grid shape.
type GridConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	TileFill float64 `yaml:"tile_fill"` // Cube side as a fraction of the cell side
}

// MotionConfig holds frame differencing and trigger parameters.
type MotionConfig struct {
	Threshold        float64 `yaml:"threshold"`          // Initial brightness delta threshold [5,100]
	Saturation       float64 `yaml:"saturation"`         // Delta at which intensity reaches 1
	AutoMarch        bool    `yaml:"auto_march"`         // Initial auto-march flag
	AutoMarchChance  float64 `yaml:"auto_march_chance"`  // Per-cell per-frame idle trigger probability
	AutoIntensityMin float64 `yaml:"auto_intensity_min"` // Idle trigger intensity range
	AutoIntensityMax float64 `yaml:"auto_intensity_max"`
	SlowFrames       float64 `yaml:"slow_frames"` // Roll duration at intensity 0
	FastFrames       float64 `yaml:"fast_frames"` // Roll duration at intensity 1
}

// TileConfig holds per-tile animation and colour parameters.
type TileConfig struct {
	HotIntensity     float64 `yaml:"hot_intensity"`     // Intensity above which the hot palette is used
	CoolAlphaMin     float64 `yaml:"cool_alpha_min"`    // Cool alpha at intensity 0
	CoolAlphaMax     float64 `yaml:"cool_alpha_max"`    // Cool alpha at intensity 1
	InitialAlpha     float64 `yaml:"initial_alpha"`     // Alpha of the colour assigned at creation
	InitialFrames    int     `yaml:"initial_frames"`    // Duration used before any trigger
	BoundaryFraction float64 `yaml:"boundary_fraction"` // Reset when drift exceeds this fraction of the playfield
	PlayfieldSize    float64 `yaml:"playfield_size"`    // Characteristic size (0 = world size)
}

// PaletteConfig holds hex colour sets.
type PaletteConfig struct {
	Hot  []string `yaml:"hot"`
	Cool []string `yaml:"cool"`
}

// RenderConfig holds renderer defaults. Lights and rotation are seeded into
// the runtime controls and may be changed from the panel.
type RenderConfig struct {
	LightsOn             bool       `yaml:"lights_on"`
	RotateMode           bool       `yaml:"rotate_mode"`
	GlobalRotationFrames int        `yaml:"global_rotation_frames"`
	CameraPosition       [3]float64 `yaml:"camera_position"`
	CameraFovy           float64    `yaml:"camera_fovy"`
	Background           [3]int     `yaml:"background"`
	WireAlpha            int        `yaml:"wire_alpha"`
}

// CaptureConfig holds capture device parameters.
type CaptureConfig struct {
	Kind        string  `yaml:"kind"`         // "noise" or "images"
	Dir         string  `yaml:"dir"`          // Frame directory for "images"
	Mirror      bool    `yaml:"mirror"`       // Flip left-right before sampling
	NoiseScale  float64 `yaml:"noise_scale"`  // Spatial frequency of the noise device
	NoiseSpeed  float64 `yaml:"noise_speed"`  // Noise time step per frame
	NoiseGain   float64 `yaml:"noise_gain"`   // Brightness multiplier
	BlobCount   int     `yaml:"blob_count"`   // Moving bright blobs layered on the noise
	BlobRadius  float64 `yaml:"blob_radius"`  // Blob radius in cells
	BlobSpeed   float64 `yaml:"blob_speed"`   // Blob velocity in cells per frame
	DropoutRate float64 `yaml:"dropout_rate"` // Probability a frame is unavailable
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	BookmarkHistory     int     `yaml:"bookmark_history"` // Windows averaged by the bookmark detector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSide      float64 // World.Size / Grid.Cols
	SideLength    float64 // CellSide * Grid.TileFill
	EdgeOffset    float64 // sqrt(2) * SideLength / 2
	PlayfieldSize float64 // Tile.PlayfieldSize or World.Size
	DepthSize     float64 // CellSide * Grid.Rows
	ScreenW32     float32
	ScreenH32     float32
	TickSeconds   float64 // 1 / Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that the tick loop relies on.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Rows < 1 || c.Grid.Cols < 1:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.Rows, c.Grid.Cols)
	case c.World.Size <= 0:
		return fmt.Errorf("%w: world.size must be positive", ErrInvalid)
	case c.Grid.TileFill <= 0 || c.Grid.TileFill > 1:
		return fmt.Errorf("%w: grid.tile_fill must be in (0,1]", ErrInvalid)
	case c.Motion.Threshold < 5 || c.Motion.Threshold > 100:
		return fmt.Errorf("%w: motion.threshold %.1f outside [5,100]", ErrInvalid, c.Motion.Threshold)
	case c.Motion.Saturation <= 0:
		return fmt.Errorf("%w: motion.saturation must be positive", ErrInvalid)
	case c.Motion.AutoMarchChance < 0 || c.Motion.AutoMarchChance > 1:
		return fmt.Errorf("%w: motion.auto_march_chance must be a probability", ErrInvalid)
	case c.Motion.AutoIntensityMin > c.Motion.AutoIntensityMax:
		return fmt.Errorf("%w: motion.auto_intensity_min above max", ErrInvalid)
	case c.Motion.FastFrames < 1 || c.Motion.SlowFrames < 1:
		return fmt.Errorf("%w: roll durations must be at least one frame", ErrInvalid)
	case c.Tile.InitialFrames < 1:
		return fmt.Errorf("%w: tile.initial_frames must be at least 1", ErrInvalid)
	case c.Tile.BoundaryFraction <= 0:
		return fmt.Errorf("%w: tile.boundary_fraction must be positive", ErrInvalid)
	case len(c.Palette.Hot) == 0 || len(c.Palette.Cool) == 0:
		return fmt.Errorf("%w: palette needs at least one hot and one cool colour", ErrInvalid)
	case c.Render.GlobalRotationFrames < 30 || c.Render.GlobalRotationFrames > 2400:
		return fmt.Errorf("%w: render.global_rotation_frames outside [30,2400]", ErrInvalid)
	case c.Screen.TargetFPS < 1:
		return fmt.Errorf("%w: screen.target_fps must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellSide = c.World.Size / float64(c.Grid.Cols)
	c.Derived.SideLength = c.Derived.CellSide * c.Grid.TileFill
	c.Derived.EdgeOffset = math.Sqrt2 * c.Derived.SideLength * 0.5
	c.Derived.DepthSize = c.Derived.CellSide * float64(c.Grid.Rows)

	// Playfield size defaults to the world width
	c.Derived.PlayfieldSize = c.Tile.PlayfieldSize
	if c.Derived.PlayfieldSize <= 0 {
		c.Derived.PlayfieldSize = c.World.Size
	}

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.TickSeconds = 1.0 / float64(c.Screen.TargetFPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
