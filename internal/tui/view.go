package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	title := " polytrace ─ image polygon tracer "
	if m.img != nil && m.img.Path != "" {
		title += "─ " + filepath.Base(m.img.Path) + " "
	}
	header := lipgloss.NewStyle().Width(lay.contentW).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	// Canvas
	var canvas string
	switch {
	case m.showVertices:
		m.tbl.SetHeight(min(lay.rows-4, 20))
		box := boxStyle.Render(m.tbl.View() + "\n" + dimStyle.Render(m.vertexSummary()+"  esc close"))
		canvas = lipgloss.Place(lay.cols, lay.rows, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.cols)
		m.ta.SetHeight(min(lay.rows, 12))
		canvas = m.ta.View()
	default:
		canvas = m.renderCanvas(lay.cols, lay.rows)
	}
	canvas = lipgloss.NewStyle().Width(lay.cols).Height(lay.rows).MaxHeight(lay.rows).Render(canvas)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvas)
	} else {
		body = canvas
	}

	// Footer: status and readouts, then the prompt or help line
	status := dimStyle.Render(" " + m.status + " ")
	readout := m.renderReadout()
	spacerW := max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(readout))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.NewStyle().Width(spacerW).Render(""), readout)
	line2 := m.renderHelp()
	if m.exportMode {
		line2 = m.ti.View()
	}
	footer := lipgloss.NewStyle().Width(lay.contentW).MaxHeight(footerHeight).Render(lipgloss.JoinVertical(lipgloss.Left, line1, line2))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).MaxHeight(m.height).Render(ui)
}

// renderReadout shows the cursor position in image pixels, zoom, tool,
// gesture mode and pointer shape.
func (m Model) renderReadout() string {
	if !m.ed.HasImage() {
		return ""
	}
	pos := ""
	if w, ok := m.ed.CursorWorld(); ok && m.hovering {
		pos = fmt.Sprintf("x=%.1f y=%.1f  ", w.X, w.Y)
	}
	return dimStyle.Render(pos+fmt.Sprintf("%.0f%%  ", m.ed.Scale()*100)) +
		modeStyle.Render(m.ed.Tool().String()+" "+m.ed.Mode().String()+" ") +
		dimStyle.Render("["+m.ed.Cursor().String()+"] ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return " " + m.help.View(m.keys)
}
