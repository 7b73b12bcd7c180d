package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/boxroll/controls"
)

// PanelActions reports button presses from the controls panel.
type PanelActions struct {
	ResetCamera bool
}

// ControlsPanel renders the raygui control surface bound to the runtime controls.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the visible panel, so
// mouse drags there do not orbit the camera.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(p, rl.Rectangle{
		X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height(nil)),
	})
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	h := t.Padding*2 + t.LineHeight + 4 // Title
	h += 2 * (t.LineHeight + 26)        // Sliders
	h += 3 * 24                         // Checkboxes
	h += 36                             // Button
	if overlays != nil {
		for _, cat := range overlays.Categories() {
			h += t.LineHeight + int32(len(overlays.ByCategory(cat)))*t.LineHeight + 4
		}
	} else {
		h += 10 * t.LineHeight
	}
	return h
}

// Draw renders the panel and writes widget changes back to ctl.
func (c *ControlsPanel) Draw(ctl *controls.Controls, overlays *OverlayRegistry) PanelActions {
	var actions PanelActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	t := r.Theme
	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := c.x + t.Padding
	y := c.y + t.Padding
	inner := float32(c.width - t.Padding*2)

	y = r.DrawTitle(x, y, "Controls")

	// Threshold
	th := ctl.Threshold()
	rl.DrawText(fmt.Sprintf("Motion threshold: %.0f", th), x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	nth := gui.SliderBar(
		rl.Rectangle{X: float32(x + 24), Y: float32(y), Width: inner - 60, Height: 16},
		fmt.Sprintf("%.0f", controls.MinThreshold), fmt.Sprintf("%.0f", controls.MaxThreshold),
		float32(th), controls.MinThreshold, controls.MaxThreshold,
	)
	if nth != float32(th) {
		ctl.SetThreshold(float64(nth))
	}
	y += 26

	// Rotation period
	frames := ctl.GlobalRotationFrames()
	rl.DrawText(fmt.Sprintf("Rotation period: %d frames", frames), x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	nf := gui.SliderBar(
		rl.Rectangle{X: float32(x + 24), Y: float32(y), Width: inner - 60, Height: 16},
		"30", "2400",
		float32(frames), controls.MinRotationFrames, controls.MaxRotationFrames,
	)
	if int(nf) != frames {
		ctl.SetGlobalRotationFrames(int(nf))
	}
	y += 26

	// Toggles
	if v := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}, "Auto-march [A]", ctl.AutoMarch()); v != ctl.AutoMarch() {
		ctl.SetAutoMarch(v)
	}
	y += 24
	if v := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}, "Lights [L]", ctl.LightsOn()); v != ctl.LightsOn() {
		ctl.SetLightsOn(v)
	}
	y += 24
	if v := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 16, Height: 16}, "Rotate [R]", ctl.RotateMode()); v != ctl.RotateMode() {
		ctl.SetRotateMode(v)
	}
	y += 24

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 26}, "Reset Camera [C]") {
		actions.ResetCamera = true
	}
	y += 36

	// Overlays by category
	if overlays != nil {
		for _, cat := range overlays.Categories() {
			y = r.DrawSectionHeader(x, y, categoryLabel(cat))
			for _, desc := range overlays.ByCategory(cat) {
				c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), int32(inner))
				y += t.LineHeight
			}
			y += 4
		}
	}

	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer
	r.DrawStatus(x, y, desc.Name, enabled)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, r.Theme.MutedColor)
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "scene":
		return "Scene"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
