package tui

import "polytrace/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// layout is where the canvas sits on the terminal, in cells.
type layout struct {
	originX, originY int
	cols, rows       int
	contentW         int
	contentH         int
}

// layout must match what View draws.
func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	cols := max(10, contentW-sw-1)
	originX := 0
	if m.showSidebar {
		originX = sw + 1
	}
	return layout{
		originX:  originX,
		originY:  headerHeight,
		cols:     cols,
		rows:     contentH,
		contentW: contentW,
		contentH: contentH,
	}
}

// screenSize is the canvas size in screen pixels: one pixel per column,
// two per row.
func (l layout) screenSize() geom.Size {
	return geom.Size{Width: l.cols, Height: l.rows * 2}
}

// cellToScreen maps a terminal cell to the centre of its pixel pair and
// reports whether the cell is on the canvas.
func (l layout) cellToScreen(x, y int) (geom.Point, bool) {
	cx, cy := x-l.originX, y-l.originY
	p := geom.Point{X: float64(cx) + 0.5, Y: float64(cy)*2 + 1}
	return p, cx >= 0 && cx < l.cols && cy >= 0 && cy < l.rows
}
