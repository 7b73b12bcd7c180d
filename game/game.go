// Package game hosts the tile grid: it owns the simulation, the capture
// device, the runtime controls and, in graphics mode, the camera, renderers
// and UI panels.
package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/camera"
	"github.com/pthm-cable/boxroll/capture"
	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/controls"
	"github.com/pthm-cable/boxroll/renderer"
	"github.com/pthm-cable/boxroll/sim"
	"github.com/pthm-cable/boxroll/telemetry"
	"github.com/pthm-cable/boxroll/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	SnapshotDir    string // Bookmarked windows save a grid snapshot here (empty = off)
	Headless       bool

	// Device overrides the capture device named in config. The game closes
	// it on Unload.
	Device capture.Device

	// StatsCallback is called with each flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete application state.
type Game struct {
	cfg      *config.Config
	sim      *sim.Sim
	device   capture.Device
	controls *controls.Controls
	seed     int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	snapshotDir   string
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastWindow    telemetry.WindowStats
	hasWindow     bool
	lastReport    sim.Report

	// State
	paused     bool
	noSignal   bool
	captureErr bool
	headless   bool

	// Selection
	selRow, selCol int
	hasSelection   bool
	dragDistance   float32

	// Graphics (nil when headless)
	camera        *camera.Orbit
	tileRenderer  *renderer.TileRenderer
	sceneRenderer *renderer.SceneRenderer
	hud           *ui.HUD
	controlsPanel *ui.ControlsPanel
	perfPanel     *ui.PerfPanel
	statsPanel    *ui.StatsPanel
	inspector     *ui.Inspector
	overlays      *ui.OverlayRegistry

	screenWidth, screenHeight int32
}

// NewGame creates a game from the global config. In graphics mode the raylib
// window must already be open.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	s, err := sim.New(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	device := opts.Device
	if device == nil {
		device, err = capture.Open(cfg, opts.Seed)
		if err != nil {
			return nil, err
		}
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		device.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		device.Close()
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		sim:           s,
		device:        device,
		controls:      controls.New(cfg),
		seed:          opts.Seed,
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.TickSeconds),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		snapshotDir:   opts.SnapshotDir,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("game_created",
		"seed", opts.Seed,
		"rows", cfg.Grid.Rows,
		"cols", cfg.Grid.Cols,
		"capture", cfg.Capture.Kind,
		"headless", opts.Headless,
		"output_dir", opts.OutputDir,
	)

	return g, nil
}

// initGraphics builds the camera, renderers and UI.
func (g *Game) initGraphics() {
	cfg := g.cfg
	g.screenWidth = int32(cfg.Screen.Width)
	g.screenHeight = int32(cfg.Screen.Height)

	cp := cfg.Render.CameraPosition
	g.camera = camera.New(r3.Vec{X: cp[0], Y: cp[1], Z: cp[2]}, r3.Vec{})

	g.tileRenderer = renderer.NewTileRenderer(cfg)
	g.sceneRenderer = renderer.NewSceneRenderer(cfg)

	g.hud = ui.NewHUD()
	g.controlsPanel = ui.NewControlsPanel(10, 10, 250)
	g.perfPanel = ui.NewPerfPanel(10, 10)
	g.statsPanel = ui.NewStatsPanel(10, 10, 250)
	g.inspector = ui.NewInspector(10, 10, 250)
	g.overlays = ui.NewOverlayRegistry()
	g.layoutPanels()
}

// Controls returns the runtime control surface.
func (g *Game) Controls() *controls.Controls {
	return g.controls
}

// Sim returns the simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}

// Tick returns the number of processed frames.
func (g *Game) Tick() int64 {
	return g.sim.Frame()
}

// LastWindow returns the most recent telemetry window, if any.
func (g *Game) LastWindow() (telemetry.WindowStats, bool) {
	return g.lastWindow, g.hasWindow
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.device != nil {
		if err := g.device.Close(); err != nil {
			slog.Error("failed to close capture device", "error", err)
		}
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
