package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polytrace/internal/geom"
	"polytrace/internal/gesture"
)

func zoomStatus(k float64) string { return fmt.Sprintf("zoom: %.0f%%", k*100) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCanvas()
		return m, nil
	case tea.BlurMsg:
		m.leaveCanvas()
		return m, nil
	case zoomFrameMsg:
		return m.advanceZoom(msg)
	case exportedMsg:
		if msg.err != nil {
			m.status = "export error: " + msg.err.Error()
			m.logger.Error("export", "path", msg.path, "err", msg.err)
		} else {
			m.status = "exported: " + msg.path
			m.logger.Info("export", "path", msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resizeCanvas pushes the canvas size to the editor and sizes widgets.
func (m *Model) resizeCanvas() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	m.help.Width = lay.contentW
	if m.width > 0 && m.height > 0 {
		m.ed.Resize(lay.screenSize())
	}
}

func (m *Model) leaveCanvas() {
	m.ed.PointerLeave()
	m.hovering = false
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		return m.updatePaste(msg)
	}
	if m.exportMode {
		return m.updateExport(msg)
	}
	if m.showVertices {
		switch msg.String() {
		case "esc", "v":
			m.showVertices = false
			return m, nil
		case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tool):
		m.status = "tool: " + m.ed.ToggleTool().String()
	case key.Matches(msg, m.keys.Close):
		if m.ed.ClosePolygon() {
			m.status = "polygon closed  " + m.vertexSummary()
		} else {
			m.status = "need at least 3 vertices to close"
		}
	case key.Matches(msg, m.keys.Undo):
		if m.ed.UndoVertex() {
			m.status = "undo  " + m.vertexSummary()
		} else {
			m.status = "nothing to undo"
		}
		m.refreshVertices()
	case key.Matches(msg, m.keys.Reset):
		m.ed.ResetPolygon()
		m.refreshVertices()
		m.status = "polygon cleared"
	case key.Matches(msg, m.keys.Fit):
		m.stopZoom()
		m.ed.Fit()
		m.status = "fit  " + zoomStatus(m.ed.Scale())
	case key.Matches(msg, m.keys.ZoomIn):
		return m.stepZoom(true)
	case key.Matches(msg, m.keys.ZoomOut):
		return m.stepZoom(false)
	case key.Matches(msg, m.keys.Level):
		m.stopZoom()
		m.ed.SetZoomLevel(float64(msg.String()[0] - '0'))
		m.status = zoomStatus(m.ed.Scale())
	case key.Matches(msg, m.keys.Up):
		m.ed.Pan(0, float64(m.cfg.PanStep))
	case key.Matches(msg, m.keys.Down):
		m.ed.Pan(0, -float64(m.cfg.PanStep))
	case key.Matches(msg, m.keys.Left):
		m.ed.Pan(float64(m.cfg.PanStep), 0)
	case key.Matches(msg, m.keys.Right):
		m.ed.Pan(-float64(m.cfg.PanStep), 0)
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resizeCanvas()
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case key.Matches(msg, m.keys.Vertices):
		m.showVertices = true
		m.refreshVertices()
		m.status = m.vertexSummary()
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case key.Matches(msg, m.keys.Export):
		if len(m.ed.Polygon().Points) == 0 {
			m.status = "nothing to export"
			return m, nil
		}
		m.exportMode = true
		m.ti.SetValue(m.defaultExportPath())
		m.ti.CursorEnd()
		m.status = "export: svg, wkt, geojson or csv by extension"
		return m, m.ti.Focus()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		sh, err := geom.ParseShape(text)
		if err != nil {
			m.status = "parse error: " + err.Error()
			return m, nil
		}
		m.ed.ImportPolygon(sh)
		m.refreshVertices()
		m.status = "imported  " + m.vertexSummary()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exportMode = false
		m.ti.Blur()
		m.status = "export cancelled"
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.ti.Value())
		if _, err := exportFormat(path); err != nil {
			m.status = "export error: " + err.Error()
			return m, nil
		}
		m.exportMode = false
		m.ti.Blur()
		m.status = "exporting " + filepath.Base(path)
		return m, exportCmd(path, m.annotation())
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func buttonOf(b tea.MouseButton) gesture.Button {
	switch b {
	case tea.MouseButtonLeft:
		return gesture.ButtonLeft
	case tea.MouseButtonMiddle:
		return gesture.ButtonMiddle
	case tea.MouseButtonRight:
		return gesture.ButtonRight
	default:
		return gesture.ButtonOther
	}
}

func modifiersOf(ev tea.MouseEvent) gesture.Modifiers {
	var mods gesture.Modifiers
	if ev.Shift {
		mods |= gesture.ModShift
	}
	if ev.Alt {
		mods |= gesture.ModAlt
	}
	if ev.Ctrl {
		mods |= gesture.ModCtrl
	}
	return mods
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := tea.MouseEvent(msg)
	if m.pasteMode || m.exportMode || m.showVertices {
		return m, nil
	}
	lay := m.layout()
	p, inside := lay.cellToScreen(ev.X, ev.Y)

	if ev.IsWheel() && inside {
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.stopZoom()
			m.ed.Wheel(p, 1)
		case tea.MouseButtonWheelDown:
			m.stopZoom()
			m.ed.Wheel(p, -1)
		}
		m.hovering = true
		m.status = zoomStatus(m.ed.Scale())
		return m, nil
	}

	switch ev.Action {
	case tea.MouseActionPress:
		if inside {
			m.hovering = true
			m.ed.PointerDown(p, buttonOf(ev.Button), modifiersOf(ev))
			return m, nil
		}
	case tea.MouseActionMotion:
		if inside {
			m.hovering = true
			m.ed.PointerMove(p)
			return m, nil
		}
		m.leaveCanvas()
	case tea.MouseActionRelease:
		// a release off the canvas counts as leaving it
		if !inside {
			m.leaveCanvas()
			return m, nil
		}
		res := m.ed.PointerUp(p)
		if res.Outcome == gesture.VertexAdded {
			m.refreshVertices()
			m.status = fmt.Sprintf("vertex %d at (%.1f, %.1f)", len(m.ed.Polygon().Points), res.Vertex.X, res.Vertex.Y)
		}
		return m, nil
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}
