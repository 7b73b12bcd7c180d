package game

// Panel layout
const (
	panelMargin = 10
	panelWidth  = 250
	hudHeight   = 110
)

// layoutPanels positions the panels for the current screen size. The
// controls panel sits on the left, the inspector and the stats or perf panel
// stack down the right edge below the HUD.
func (g *Game) layoutPanels() {
	right := g.screenWidth - panelWidth - panelMargin
	y := int32(hudHeight)

	g.inspector.SetPosition(right, y)
	y += 260

	g.perfPanel.SetPosition(right, y)
	g.statsPanel.SetPosition(right, y)
}
