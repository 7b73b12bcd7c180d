package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/boxroll/tile"
)

// InspectorData is the selected tile and its grid coordinate.
type InspectorData struct {
	Row, Col int
	Tile     *tile.Tile
	Now      int64
}

// Inspector renders the tile inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: tileSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given tile.
func (ins *Inspector) Draw(data InspectorData) {
	if data.Tile == nil {
		return
	}
	r := ins.renderer
	t := r.Theme
	height := t.Padding*2 + t.LineHeight + 4 + r.SectionsHeight(ins.sections)
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + t.Padding
	y := r.DrawTitle(x, ins.y+t.Padding, fmt.Sprintf("Tile (%d, %d)", data.Row, data.Col))
	for _, sd := range ins.sections {
		y = r.DrawSection(x, y, sd, data, ins.width-t.Padding*2)
	}
}

// ColorRGBA converts a tile colour to a raylib colour.
func ColorRGBA(c tile.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.Color{R: r, G: g, B: b, A: a}
}

func tileSections() []SectionDescriptor {
	td := func(d any) InspectorData { return d.(InspectorData) }
	animating := func(d any) bool { return td(d).Tile.Animating() }

	return []SectionDescriptor{
		{
			Title: "State",
			Fields: []FieldDescriptor{
				{Label: "State", Widget: WidgetText, TextGetter: func(d any) string { return td(d).Tile.State().String() }},
				{Label: "Heading", Widget: WidgetText, TextGetter: func(d any) string { return td(d).Tile.Direction().Heading.String() }},
				{Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return ColorRGBA(td(d).Tile.Color()) }},
			},
		},
		{
			Title:   "Roll",
			Visible: animating,
			Fields: []FieldDescriptor{
				{Label: "Progress", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 90}, Getter: func(d any) float32 {
					return float32(td(d).Tile.Angle() * 180 / math.Pi)
				}},
				{Label: "Duration", Widget: WidgetText, TextGetter: func(d any) string {
					data := td(d)
					return fmt.Sprintf("%d / %d ticks", data.Now-data.Tile.StartTick(), data.Tile.Duration())
				}},
			},
		},
		{
			Title: "Position",
			Fields: []FieldDescriptor{
				{Label: "Drift", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 {
					tl := td(d).Tile
					return float32(r3.Norm(r3.Sub(tl.Position(), tl.Origin())))
				}},
				{Label: "Limit", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 {
					g := td(d).Tile.Geometry()
					return float32(g.BoundaryFraction * g.PlayfieldSize)
				}},
			},
		},
	}
}
