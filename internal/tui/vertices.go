package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"polytrace/internal/geom"
)

var vertexColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "x", Width: 10},
	{Title: "y", Width: 10},
}

// refreshVertices rebuilds the table rows from the current polygon
func (m *Model) refreshVertices() {
	poly := m.ed.Polygon()
	rows := make([]table.Row, 0, len(poly.Points))
	for i, p := range poly.Points {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p.X, 'f', 1, 64),
			strconv.FormatFloat(p.Y, 'f', 1, 64),
		})
	}
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

func (m Model) vertexSummary() string {
	poly := m.ed.Polygon()
	state := "open"
	if poly.Closed {
		state = "closed"
	}
	bb, ok := geom.BoundsOf(poly.Points)
	if !ok {
		return "0 vertices, " + state
	}
	return fmt.Sprintf("%d vertices, %s, x %.1f..%.1f y %.1f..%.1f",
		len(poly.Points), state, bb.MinX, bb.MaxX, bb.MinY, bb.MaxY)
}
