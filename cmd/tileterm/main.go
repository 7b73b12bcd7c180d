// Tileterm runs the tile grid headless and draws it top-down in a terminal.
//
// Usage: go run ./cmd/tileterm [-config path] [-seed n]
//
// Keys: space pause, a auto-march, +/- threshold, q or Esc quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/boxroll/config"
	"github.com/pthm-cable/boxroll/game"
	"github.com/pthm-cable/boxroll/tile"
)

const thresholdStep = 5

// viewer draws the grid onto a tcell screen.
type viewer struct {
	screen tcell.Screen
	g      *game.Game
	cfg    *config.Config
	bg     colorful.Color

	paused bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	// Logs would corrupt the screen
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(game.Options{Seed: rngSeed, Headless: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	bg := cfg.Render.Background
	v := &viewer{
		screen: screen,
		g:      g,
		cfg:    cfg,
		bg:     colorful.Color{R: float64(bg[0]) / 255, G: float64(bg[1]) / 255, B: float64(bg[2]) / 255},
	}
	v.run()
}

// run steps the simulation at the target frame rate until quit.
func (v *viewer) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.Screen.TargetFPS))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused {
				v.g.UpdateHeadless()
			}
			v.draw()
		}
	}
}

// handle processes one terminal event. Returns false to quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		ctl := v.g.Controls()
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			v.paused = !v.paused
		case ev.Rune() == 'a':
			ctl.ToggleAutoMarch()
		case ev.Rune() == '+' || ev.Rune() == '=':
			ctl.SetThreshold(ctl.Threshold() + thresholdStep)
		case ev.Rune() == '-':
			ctl.SetThreshold(ctl.Threshold() - thresholdStep)
		}
	}
	return true
}

// draw renders every tile as a two-column block at its current position.
func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	cols, rows := v.cfg.Grid.Cols, v.cfg.Grid.Rows
	left := (w - cols*2) / 2
	top := (h - 1 - rows) / 2

	cell := v.cfg.Derived.CellSide
	halfW := v.cfg.World.Size / 2
	halfD := v.cfg.Derived.DepthSize / 2

	v.g.Sim().Grid().ForEachTile(func(_, _ int, t *tile.Tile) {
		c := t.Pose().Center()
		x := left + int(math.Floor((c.X+halfW)/cell))*2
		y := top + int(math.Floor((c.Z+halfD)/cell))
		if x < 0 || x+1 >= w || y < 0 || y >= h-1 {
			return
		}

		glyph := '█'
		if t.Animating() {
			glyph = '▓'
		}
		style := tcell.StyleDefault.Foreground(v.blend(t.Color())).Background(v.bgColor())
		v.screen.SetContent(x, y, glyph, nil, style)
		v.screen.SetContent(x+1, y, glyph, nil, style)
	})

	v.drawStatus(w, h)
	v.screen.Show()
}

// blend composites a tile colour over the background by its alpha.
func (v *viewer) blend(c tile.Color) tcell.Color {
	mixed := v.bg.BlendRgb(c.RGB, c.Alpha/255)
	r, g, b := mixed.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (v *viewer) bgColor() tcell.Color {
	r, g, b := v.bg.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (v *viewer) drawStatus(w, h int) {
	ctl := v.g.Controls()
	state := "running"
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" frame %d | %s | threshold %.0f | auto-march %t | q quit ",
		v.g.Tick(), state, ctl.Threshold(), ctl.AutoMarch())
	if win, ok := v.g.LastWindow(); ok {
		line += fmt.Sprintf("| last window: %d triggers, %d rolls ", win.MotionTriggers+win.AutoTriggers, win.Completed)
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, style)
	}
}
