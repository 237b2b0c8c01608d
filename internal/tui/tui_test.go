package tui

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"polytrace/internal/config"
	"polytrace/internal/geom"
	"polytrace/internal/gesture"
	"polytrace/internal/raster"
)

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func near(p, q geom.Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func mouse(x, y int, a tea.MouseAction, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: a, Button: b}
}

// newTestModel returns an 80x24 model showing a 40x20 image at 1:1. The
// canvas is 79 cells by 21 rows, i.e. 79x42 screen pixels, so the image
// offset is (19.5, 11).
func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	m := New(cfg, nil)
	m, _ = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img, err := raster.FromImage("", "png", src)
	if err != nil {
		t.Fatal(err)
	}
	m.setImage(img)
	if m.ed.Scale() != 1 || !near(m.ed.Offset(), geom.Point{X: 19.5, Y: 11}, 1e-9) {
		t.Fatalf("fit = %v %v", m.ed.Scale(), m.ed.Offset())
	}
	return m
}

// clickCell presses and releases the left button on a terminal cell.
func clickCell(m Model, x, y int) Model {
	m, _ = send(m, mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = send(m, mouse(x, y, tea.MouseActionRelease, tea.MouseButtonLeft))
	return m
}

func TestCellToScreen(t *testing.T) {
	lay := layout{originX: 29, originY: 1, cols: 10, rows: 5}
	p, ok := lay.cellToScreen(30, 3)
	if !ok || p != (geom.Point{X: 1.5, Y: 5}) {
		t.Errorf("cellToScreen(30,3) = %v %v", p, ok)
	}
	for _, c := range [][2]int{{28, 3}, {39, 3}, {30, 0}, {30, 6}} {
		if _, ok := lay.cellToScreen(c[0], c[1]); ok {
			t.Errorf("cell %v reported inside the canvas", c)
		}
	}
}

func TestLayoutWithSidebar(t *testing.T) {
	m := New(nil, nil)
	m.width, m.height = 100, 30
	m.showSidebar = true
	lay := m.layout()
	if lay.originX != sidebarWidth+1 || lay.cols != 100-sidebarWidth-1 || lay.rows != 27 {
		t.Errorf("layout = %+v", lay)
	}
	if got := lay.screenSize(); got != (geom.Size{Width: lay.cols, Height: 54}) {
		t.Errorf("screenSize = %v", got)
	}
}

func TestClickPlacesVertex(t *testing.T) {
	m := newTestModel(t, nil)
	// cell (29, 11) is screen (29.5, 21), image (10, 10)
	m = clickCell(m, 29, 11)
	poly := m.ed.Polygon()
	if len(poly.Points) != 1 || !near(poly.Points[0], geom.Point{X: 10, Y: 10}, 1e-9) {
		t.Fatalf("polygon = %+v", poly)
	}
	if !strings.HasPrefix(m.status, "vertex 1") {
		t.Errorf("status = %q", m.status)
	}
	if rows := m.tbl.Rows(); len(rows) != 1 || rows[0][1] != "10.0" {
		t.Errorf("vertex table rows = %v", rows)
	}
}

func TestDragPansInsteadOfPlacing(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, mouse(29, 11, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = send(m, mouse(31, 11, tea.MouseActionMotion, tea.MouseButtonLeft))
	if m.ed.Mode() != gesture.PendingClick {
		t.Fatalf("2px move: mode = %v", m.ed.Mode())
	}
	m, _ = send(m, mouse(35, 11, tea.MouseActionMotion, tea.MouseButtonLeft))
	if m.ed.Mode() != gesture.Panning {
		t.Fatalf("6px move: mode = %v", m.ed.Mode())
	}
	if got := m.ed.Offset().X; got != 25.5 {
		t.Errorf("offset x = %v, want 25.5", got)
	}
	m, _ = send(m, mouse(35, 11, tea.MouseActionRelease, tea.MouseButtonLeft))
	if n := len(m.ed.Polygon().Points); n != 0 {
		t.Errorf("drag placed %d vertices", n)
	}
}

func TestShiftClickPans(t *testing.T) {
	m := newTestModel(t, nil)
	msg := mouse(29, 11, tea.MouseActionPress, tea.MouseButtonLeft)
	msg.Shift = true
	m, _ = send(m, msg)
	if m.ed.Mode() != gesture.Panning {
		t.Errorf("shift press mode = %v, want panning", m.ed.Mode())
	}
}

func TestLeavingCanvasAbandonsGesture(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, mouse(29, 11, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = send(m, mouse(29, 0, tea.MouseActionMotion, tea.MouseButtonLeft))
	if m.ed.Mode() != gesture.Idle || m.hovering {
		t.Errorf("after leaving: mode = %v hovering = %v", m.ed.Mode(), m.hovering)
	}
	m, _ = send(m, mouse(29, 11, tea.MouseActionRelease, tea.MouseButtonLeft))
	if n := len(m.ed.Polygon().Points); n != 0 {
		t.Errorf("release after leave placed %d vertices", n)
	}
}

func TestReleaseOffCanvasPlacesNothing(t *testing.T) {
	m := newTestModel(t, nil)
	// press on the top canvas row, release on the header two pixels above
	m, _ = send(m, mouse(30, 1, tea.MouseActionPress, tea.MouseButtonLeft))
	if m.ed.Mode() != gesture.PendingClick {
		t.Fatalf("press: mode = %v", m.ed.Mode())
	}
	m, _ = send(m, mouse(30, 0, tea.MouseActionRelease, tea.MouseButtonLeft))
	if n := len(m.ed.Polygon().Points); n != 0 {
		t.Errorf("release on the header placed %d vertices: %v", n, m.ed.Polygon().Points)
	}
	if m.ed.Mode() != gesture.Idle || m.hovering {
		t.Errorf("after release: mode = %v hovering = %v", m.ed.Mode(), m.hovering)
	}
}

func TestBlurAbandonsGesture(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, mouse(29, 11, tea.MouseActionPress, tea.MouseButtonMiddle))
	m, _ = send(m, tea.BlurMsg{})
	if m.ed.Mode() != gesture.Idle {
		t.Errorf("mode after blur = %v", m.ed.Mode())
	}
	if _, ok := m.ed.CursorWorld(); ok {
		t.Error("cursor still tracked after blur")
	}
}

func TestWheelZoomsAtPointer(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.ed.ToWorld(geom.Point{X: 29.5, Y: 21})
	m, _ = send(m, mouse(29, 11, tea.MouseActionPress, tea.MouseButtonWheelUp))
	if got := m.ed.Scale(); got < 1.0999 || got > 1.1001 {
		t.Fatalf("scale = %v, want 1.1", got)
	}
	if after := m.ed.ToWorld(geom.Point{X: 29.5, Y: 21}); !near(after, before, 1e-6) {
		t.Errorf("world under pointer moved %v -> %v", before, after)
	}
	if !m.ed.Manual() {
		t.Error("wheel zoom did not set the manual latch")
	}
	// outside the canvas the wheel does not zoom
	m, _ = send(m, mouse(29, 0, tea.MouseActionPress, tea.MouseButtonWheelUp))
	if got := m.ed.Scale(); got > 1.1001 {
		t.Errorf("wheel on header zoomed to %v", got)
	}
}

func TestPolygonKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m = clickCell(m, 29, 11)
	m = clickCell(m, 39, 11)
	m, _ = send(m, keyPress("c"))
	if m.ed.Polygon().Closed {
		t.Fatal("closed with two vertices")
	}
	m = clickCell(m, 39, 15)
	m, _ = send(m, keyPress("c"))
	if !m.ed.Polygon().Closed {
		t.Fatal("c did not close the polygon")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if p := m.ed.Polygon(); len(p.Points) != 2 || !p.Closed {
		t.Errorf("after undo: %+v", p)
	}
	m, _ = send(m, keyPress("x"))
	if p := m.ed.Polygon(); len(p.Points) != 0 || p.Closed {
		t.Errorf("after reset: %+v", p)
	}
}

func TestToolKeySwitchesToPan(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("t"))
	if m.ed.Tool() != gesture.ToolPan || m.status != "tool: pan" {
		t.Fatalf("tool = %v status = %q", m.ed.Tool(), m.status)
	}
	m = clickCell(m, 29, 11)
	if n := len(m.ed.Polygon().Points); n != 0 {
		t.Errorf("pan tool placed %d vertices", n)
	}
}

func TestKeyboardZoomWithoutAnimation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SmoothZoom = false
	m := newTestModel(t, cfg)
	m, cmd := send(m, keyPress("+"))
	if cmd != nil {
		t.Error("instant zoom returned a command")
	}
	if got := m.ed.Scale(); got < 1.1999 || got > 1.2001 {
		t.Errorf("scale = %v, want 1.2", got)
	}
	m, _ = send(m, keyPress("3"))
	if m.ed.Scale() != 3 {
		t.Errorf("level 3 gave %v", m.ed.Scale())
	}
	m, _ = send(m, keyPress("f"))
	if m.ed.Scale() != 1 || m.ed.Manual() {
		t.Errorf("fit gave %v manual=%v", m.ed.Scale(), m.ed.Manual())
	}
}

func TestSmoothZoomConverges(t *testing.T) {
	m := newTestModel(t, nil)
	centre := m.ed.ZoomAnchor()
	before := m.ed.ToWorld(centre)
	m, cmd := send(m, keyPress("+"))
	if cmd == nil || m.anim == nil {
		t.Fatal("smooth zoom did not start an animation")
	}
	seq := m.anim.seq
	for i := 0; i < 200 && m.anim != nil; i++ {
		m, _ = send(m, zoomFrameMsg{seq: seq})
		if got := m.ed.ToWorld(centre); !near(got, before, 1e-6) {
			t.Fatalf("frame %d moved the anchor: %v -> %v", i, before, got)
		}
	}
	if m.anim != nil {
		t.Fatal("animation did not finish")
	}
	if got := m.ed.Scale(); got < 1.1999 || got > 1.2001 {
		t.Errorf("final scale = %v, want 1.2", got)
	}
}

func TestStaleZoomFrameIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("+"))
	m, _ = send(m, keyPress("f"))
	if m.anim != nil {
		t.Fatal("fit did not stop the animation")
	}
	m, cmd := send(m, zoomFrameMsg{seq: 1})
	if cmd != nil || m.ed.Scale() != 1 {
		t.Errorf("stale frame changed scale to %v", m.ed.Scale())
	}
}

func TestResizeRefits(t *testing.T) {
	m := newTestModel(t, nil)
	// 19x5 canvas cells -> 19x10 pixels, so a 40x20 image fits at 0.475
	m, _ = send(m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if got := m.ed.Scale(); got < 0.4749 || got > 0.4751 {
		t.Errorf("scale after shrink = %v", got)
	}
}

func TestPasteImport(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("p"))
	if !m.pasteMode {
		t.Fatal("p did not enter paste mode")
	}
	m.ta.SetValue("POLYGON ((1 1, 30 1, 30 15, 1 1))")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pasteMode {
		t.Error("still in paste mode after import")
	}
	if p := m.ed.Polygon(); len(p.Points) != 3 || !p.Closed {
		t.Errorf("imported polygon = %+v", p)
	}
}

func TestPasteRejectsGarbage(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("p"))
	m.ta.SetValue("CIRCLE (1 2)")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.pasteMode || !strings.HasPrefix(m.status, "parse error") {
		t.Errorf("pasteMode = %v status = %q", m.pasteMode, m.status)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.pasteMode {
		t.Error("esc did not leave paste mode")
	}
}

func TestExportFlow(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("e"))
	if m.exportMode || m.status != "nothing to export" {
		t.Fatalf("export with empty polygon: mode = %v status = %q", m.exportMode, m.status)
	}
	m = clickCell(m, 29, 11)
	m, _ = send(m, keyPress("e"))
	if !m.exportMode || m.ti.Value() != "polygon.svg" {
		t.Fatalf("export prompt: mode = %v value = %q", m.exportMode, m.ti.Value())
	}
	path := filepath.Join(t.TempDir(), "out.wkt")
	m.ti.SetValue(path)
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.exportMode {
		t.Fatal("enter did not start the export")
	}
	m, _ = send(m, cmd())
	if m.status != "exported: "+path {
		t.Fatalf("status = %q", m.status)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "POINT (10 10)" {
		t.Errorf("exported %q", got)
	}
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	m := newTestModel(t, nil)
	m = clickCell(m, 29, 11)
	m, _ = send(m, keyPress("e"))
	m.ti.SetValue(filepath.Join(t.TempDir(), "out.dxf"))
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.exportMode || !strings.HasPrefix(m.status, "export error") {
		t.Errorf("cmd = %v mode = %v status = %q", cmd != nil, m.exportMode, m.status)
	}
}

func TestWriteAnnotationFormats(t *testing.T) {
	dir := t.TempDir()
	a := geom.Annotation{
		Image:  filepath.Join(dir, "img", "photo.png"),
		Size:   geom.Size{Width: 40, Height: 20},
		Points: []geom.Point{{X: 1, Y: 1}, {X: 30, Y: 1}, {X: 30, Y: 15}},
		Closed: true,
	}
	for name, want := range map[string]string{
		"a.svg":     `href="img/photo.png"`,
		"a.wkt":     "POLYGON ((1 1, 30 1, 30 15, 1 1))",
		"a.geojson": `"Polygon"`,
		"a.csv":     "x,y",
	} {
		path := filepath.Join(dir, name)
		if err := writeAnnotation(path, a); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s missing %q:\n%s", name, want, data)
		}
	}
}

func TestViewFillsTerminal(t *testing.T) {
	m := newTestModel(t, nil)
	m = clickCell(m, 29, 11)
	v := m.View()
	if n := strings.Count(v, "\n") + 1; n != 24 {
		t.Errorf("view has %d lines, want 24", n)
	}
	if !strings.Contains(v, "polytrace") {
		t.Error("header missing")
	}
	if New(nil, nil).View() != "" {
		t.Error("view before the first resize should be empty")
	}
}

func TestVertexTableToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m = clickCell(m, 29, 11)
	m, _ = send(m, keyPress("v"))
	if !m.showVertices {
		t.Fatal("v did not open the vertex table")
	}
	// canvas clicks are ignored while the table is open
	m = clickCell(m, 35, 11)
	if n := len(m.ed.Polygon().Points); n != 1 {
		t.Errorf("click through the table added a vertex (%d)", n)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showVertices {
		t.Error("esc did not close the vertex table")
	}
}

func TestHalfBlockRows(t *testing.T) {
	c := newPixelCanvas(4, 4)
	for x := 0; x < 4; x++ {
		c.setPixel(x, 0, color.RGBA{R: 0xFF, A: 0xFF})
		c.setPixel(x, 1, color.RGBA{B: 0xFF, A: 0xFF})
	}
	lines := c.toLines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, "▀"); n != 4 {
			t.Errorf("line %d has %d cells, want 4", i, n)
		}
	}
}

func TestFillPolygonClipsToCanvas(t *testing.T) {
	c := newPixelCanvas(10, 10)
	c.fillPolygon([]geom.Point{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}, fillColor)
	if c.img.RGBAAt(2, 2).A == 0 {
		t.Error("pixel inside the clipped square not filled")
	}
	if c.img.RGBAAt(7, 7).A != 0 {
		t.Error("pixel outside the square filled")
	}
}

func TestDrawLineSkipsOffCanvas(t *testing.T) {
	c := newPixelCanvas(10, 10)
	c.drawLine(-100, -5, 100, -5, edgeColor)
	for x := 0; x < 10; x++ {
		if c.img.RGBAAt(x, 0).A != 0 {
			t.Fatal("line above the canvas drew pixels")
		}
	}
	c.drawLine(-100, 3, 100, 3, edgeColor)
	if c.img.RGBAAt(0, 3) != edgeColor || c.img.RGBAAt(9, 3) != edgeColor {
		t.Error("crossing line not drawn")
	}
}

func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment(geom.Point{X: 5, Y: 5}, geom.Point{X: 1e12, Y: 5}, 0, 0, 10, 10)
	if !ok || a != (geom.Point{X: 5, Y: 5}) || b != (geom.Point{X: 9.5, Y: 5}) {
		t.Errorf("far segment clipped to %v %v %v", a, b, ok)
	}
	a, b, ok = clipSegment(geom.Point{X: -10, Y: -10}, geom.Point{X: 20, Y: 20}, 0, 0, 10, 10)
	if !ok || !near(a, geom.Point{X: 0, Y: 0}, 1e-9) || !near(b, geom.Point{X: 9.5, Y: 9.5}, 1e-9) {
		t.Errorf("diagonal clipped to %v %v %v", a, b, ok)
	}
	if _, _, ok := clipSegment(geom.Point{X: -10, Y: -10}, geom.Point{X: -5, Y: 20}, 0, 0, 10, 10); ok {
		t.Error("segment left of the canvas reported visible")
	}
	if _, _, ok := clipSegment(geom.Point{X: 5, Y: 5}, geom.Point{X: math.Inf(1), Y: 5}, 0, 0, 10, 10); ok {
		t.Error("infinite segment reported visible")
	}
}

func TestFarVertexRendersQuickly(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, keyPress("p"))
	m.ta.SetValue("LINESTRING (10 10, 1e12 10)")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if n := len(m.ed.Polygon().Points); n != 2 {
		t.Fatalf("imported %d vertices", n)
	}
	start := time.Now()
	m.View()
	if d := time.Since(start); d > 2*time.Second {
		t.Fatalf("View() with a 1e12 vertex took %v", d)
	}
	// the edge still reaches the right border of the canvas
	c := newPixelCanvas(79, 42)
	m.drawOverlay(c, m.ed.Transform())
	if got := c.img.RGBAAt(78, 21); got != edgeColor {
		t.Errorf("edge pixel at the border = %v", got)
	}
}

func TestVertexSummaryBounds(t *testing.T) {
	m := newTestModel(t, nil)
	if got := m.vertexSummary(); got != "0 vertices, open" {
		t.Errorf("empty summary = %q", got)
	}
	m = clickCell(m, 29, 11)
	m = clickCell(m, 39, 15)
	if got, want := m.vertexSummary(), "2 vertices, open, x 10.0..20.0 y 10.0..20.0"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}
