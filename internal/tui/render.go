package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polytrace/internal/geom"
	"polytrace/internal/gesture"
	"polytrace/internal/raster"
	"polytrace/internal/view"
)

// renderCanvas draws the image and the polygon overlay into a cols x rows
// block of half-block cells.
func (m Model) renderCanvas(cols, rows int) string {
	if !m.ed.HasImage() {
		msg := dimStyle.Render("no image  ─  tab to browse, or pass a path on the command line")
		return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, msg)
	}
	c := newPixelCanvas(cols, rows*2)
	t := m.ed.Transform()
	raster.Render(c.img, m.img, t)
	m.drawOverlay(c, t)
	return strings.Join(c.toLines(), "\n")
}

// drawOverlay paints the polygon: translucent fill when closed, edges,
// a rubber band from the last vertex to the cursor while drawing, and
// vertex markers on top.
func (m Model) drawOverlay(c *pixelCanvas, t view.Transform) {
	poly := m.ed.Polygon()
	if len(poly.Points) == 0 {
		return
	}
	sp := make([]geom.Point, len(poly.Points))
	for i, p := range poly.Points {
		sp[i] = t.ToScreen(p)
	}
	if poly.Closed && len(sp) >= 3 {
		c.fillPolygon(sp, fillColor)
	}
	for i := 0; i+1 < len(sp); i++ {
		c.drawSegment(sp[i], sp[i+1], edgeColor)
	}
	if poly.Closed && len(sp) >= 2 {
		c.drawSegment(sp[len(sp)-1], sp[0], edgeColor)
	}
	if cur, ok := m.ed.CursorScreen(); ok && m.hovering && !poly.Closed &&
		m.ed.Tool() == gesture.ToolDraw && m.ed.Mode() != gesture.Panning {
		c.drawSegment(sp[len(sp)-1], cur, bandColor)
	}
	for i, p := range sp {
		col := vertexColor
		if i == 0 {
			col = firstColor
		}
		c.marker(p, 1, col)
	}
}
