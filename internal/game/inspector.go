package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	inspW       = 220
	inspPad     = 6
	inspLineH   = 14
	clickRadius = 16.0 // screen pixels; the tank is drawn at 1:1
)

// Inspector holds the selected point mass, or -1 for none.
type Inspector struct {
	selected int
}

// handleInspectorClick selects the point mass under the cursor.
// Returns true if a point was hit; a miss clears the selection.
func (g *Game) handleInspectorClick(mx, my int) bool {
	wx := float64(mx - g.offX)
	wy := float64(my - g.offY)
	g.inspector.selected = g.creature.Nearest(wx, wy, clickRadius)
	return g.inspector.selected >= 0
}

// inspectorLines formats the selected point's state.
func (g *Game) inspectorLines() []string {
	i := g.inspector.selected
	if i < 0 || i >= g.creature.PointCount() {
		return nil
	}
	p := g.creature.Point(i)
	springs, chambers := g.creature.Degree(i)
	return []string{
		fmt.Sprintf("[ P%d ]", i),
		fmt.Sprintf("pos   %7.1f %7.1f", p.X, p.Y),
		fmt.Sprintf("vel   %7.2f %7.2f", p.VX, p.VY),
		fmt.Sprintf("force %7.2f %7.2f", p.FX, p.FY),
		fmt.Sprintf("amp   %.3f", p.Amplitude),
		fmt.Sprintf("freq  %.3f", p.Frequency),
		fmt.Sprintf("phase %.3f", p.Phase),
		fmt.Sprintf("springs %d  chambers %d", springs, chambers),
	}
}

// drawInspector renders the panel in the tank's top-right corner.
func (g *Game) drawInspector(screen *ebiten.Image) {
	lines := g.inspectorLines()
	if lines == nil {
		return
	}
	h := len(lines)*inspLineH + inspPad*2
	px := g.offX + g.tankWidth - inspW - 8
	py := g.offY + 8

	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(screen, float32(px), float32(py), inspW, float32(h), color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(screen, float32(px), float32(py), inspW, float32(h), 1.0, panelBorder, false)
	for n, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, px+inspPad, py+inspPad+n*inspLineH)
	}
}
