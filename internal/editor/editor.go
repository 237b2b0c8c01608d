// Package editor wires the viewport, zoom, gesture and polygon components
// together. It is the single entry point for input events and owns the
// manual-interaction latch that decides whether a resize re-fits the view.
package editor

import (
	"io"
	"log/slog"
	"math"

	"polytrace/internal/config"
	"polytrace/internal/geom"
	"polytrace/internal/gesture"
	"polytrace/internal/polygon"
	"polytrace/internal/view"
)

// Cursor is the pointer shape a renderer should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorCrosshair:
		return "crosshair"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// Editor owns all mutable annotation state.
type Editor struct {
	vp      *view.Viewport
	zoom    *view.Zoomer
	poly    *polygon.Builder
	gesture *gesture.Resolver
	logger  *slog.Logger

	zoomStep  float64
	wheelStep float64

	// manual is set by any user zoom or pan and cleared by loading an
	// image or an explicit fit. While set, resizing only re-clamps.
	manual bool
}

// New builds an editor. A nil logger discards; a nil cfg uses defaults.
func New(logger *slog.Logger, cfg *config.Config) *Editor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	vp := view.New()
	poly := polygon.NewBuilder()
	e := &Editor{
		vp:        vp,
		zoom:      view.NewZoomer(vp),
		poly:      poly,
		logger:    logger,
		zoomStep:  cfg.ZoomStep,
		wheelStep: cfg.WheelStep,
	}
	e.gesture = gesture.New(vp, poly,
		gesture.WithThreshold(cfg.DragThreshold),
		gesture.WithLogger(logger.With("component", "gesture")))
	return e
}

// LoadImage switches to a new image: the polygon is cleared, the latch is
// released and the view is fitted. Empty dimensions are ignored.
func (e *Editor) LoadImage(size geom.Size) {
	if size.Empty() {
		e.logger.Warn("ignoring image with empty dimensions", "width", size.Width, "height", size.Height)
		return
	}
	e.gesture.Leave()
	e.poly.Reset()
	e.vp.SetImage(size)
	e.manual = false
	t := e.vp.Fit()
	e.logger.Info("image loaded", "width", size.Width, "height", size.Height, "scale", t.Scale)
}

// Resize records a new visible area. Without manual interaction the view
// is re-fitted, otherwise the current offset is only re-clamped.
func (e *Editor) Resize(size geom.Size) {
	e.vp.SetSize(size)
	if !e.manual {
		e.vp.Fit()
	}
	e.logger.Debug("resize", "width", size.Width, "height", size.Height, "refit", !e.manual,
		"scale", e.vp.Scale(), "offset_x", e.vp.Offset().X, "offset_y", e.vp.Offset().Y)
}

// Fit re-fits the view and re-enables fitting on resize.
func (e *Editor) Fit() {
	e.manual = false
	e.vp.Fit()
	e.logger.Debug("fit", "scale", e.vp.Scale())
}

func (e *Editor) markManual() {
	if e.vp.HasImage() {
		e.manual = true
	}
}

// Wheel zooms by wheel_step per notch around the wheel position. Positive
// notches zoom in.
func (e *Editor) Wheel(at geom.Point, notches int) {
	if notches == 0 || !e.vp.HasImage() {
		return
	}
	e.zoom.Track(at)
	e.markManual()
	k := e.zoom.ZoomAt(at, math.Pow(e.wheelStep, float64(notches)))
	e.logger.Debug("wheel zoom", "notches", notches, "scale", k)
}

// ZoomIn zooms by zoom_step around the cursor, or the viewport centre when
// no cursor position is known.
func (e *Editor) ZoomIn() { e.zoomByStep(e.zoomStep) }

// ZoomOut is the inverse of ZoomIn.
func (e *Editor) ZoomOut() { e.zoomByStep(1 / e.zoomStep) }

func (e *Editor) zoomByStep(factor float64) {
	if !e.vp.HasImage() {
		return
	}
	e.markManual()
	e.zoom.ZoomAtAnchor(factor)
}

// StepTarget is the scale ZoomIn (in=true) or ZoomOut would commit.
func (e *Editor) StepTarget(in bool) float64 {
	if in {
		return view.ClampScale(e.vp.Scale() * e.zoomStep)
	}
	return view.ClampScale(e.vp.Scale() / e.zoomStep)
}

// SetZoomLevel is the programmatic zoom control, limited to
// [view.LevelMin, view.LevelMax] and anchored at the viewport centre.
func (e *Editor) SetZoomLevel(k float64) {
	if !e.vp.HasImage() {
		return
	}
	e.markManual()
	e.zoom.SetLevel(k)
}

// ZoomAnchor is where anchor-less zoom requests are centred.
func (e *Editor) ZoomAnchor() geom.Point { return e.zoom.Anchor() }

// ZoomTo commits an absolute scale around anchor. Used for animated zoom.
func (e *Editor) ZoomTo(anchor geom.Point, k float64) {
	if !e.vp.HasImage() {
		return
	}
	e.markManual()
	e.zoom.ZoomTo(anchor, k)
}

// Pan moves the view by a screen-space delta.
func (e *Editor) Pan(dx, dy float64) {
	if !e.vp.HasImage() {
		return
	}
	e.markManual()
	e.vp.Pan(geom.Point{X: dx, Y: dy})
}

// PointerDown starts a gesture at screen point p.
func (e *Editor) PointerDown(p geom.Point, b gesture.Button, m gesture.Modifiers) {
	e.zoom.Track(p)
	if !e.vp.HasImage() {
		return
	}
	e.apply(e.gesture.Down(p, b, m))
}

// PointerMove tracks the cursor and advances any active gesture.
func (e *Editor) PointerMove(p geom.Point) {
	e.zoom.Track(p)
	e.apply(e.gesture.Move(p))
}

// PointerUp ends the active gesture at p.
func (e *Editor) PointerUp(p geom.Point) gesture.Result {
	e.zoom.Track(p)
	res := e.gesture.Up(p)
	e.apply(res)
	return res
}

// PointerLeave abandons any active gesture and forgets the cursor.
func (e *Editor) PointerLeave() {
	e.zoom.Forget()
	e.apply(e.gesture.Leave())
}

func (e *Editor) apply(res gesture.Result) {
	if res.Outcome == gesture.Panned {
		e.markManual()
	}
}

func (e *Editor) Tool() gesture.Tool     { return e.gesture.Tool() }
func (e *Editor) SetTool(t gesture.Tool) { e.gesture.SetTool(t) }

// ToggleTool switches between drawing and panning and returns the new tool.
func (e *Editor) ToggleTool() gesture.Tool {
	next := gesture.ToolPan
	if e.gesture.Tool() == gesture.ToolPan {
		next = gesture.ToolDraw
	}
	e.gesture.SetTool(next)
	e.logger.Debug("tool", "tool", next.String())
	return next
}

// ClosePolygon closes the ring when it has at least three vertices.
func (e *Editor) ClosePolygon() bool {
	ok := e.poly.Close()
	e.logger.Debug("close polygon", "closed", ok, "vertices", e.poly.Len())
	return ok
}

// UndoVertex removes the last vertex; the closed flag is unchanged.
func (e *Editor) UndoVertex() bool {
	_, ok := e.poly.Undo()
	return ok
}

// ResetPolygon clears every vertex and reopens the polygon.
func (e *Editor) ResetPolygon() { e.poly.Reset() }

// ImportPolygon replaces the polygon with sh. A closed shape stays closed
// only when it has enough vertices.
func (e *Editor) ImportPolygon(sh geom.Shape) {
	e.poly.Reset()
	for _, p := range sh.Points {
		e.poly.Add(p)
	}
	if sh.Closed {
		e.poly.Close()
	}
	e.logger.Info("polygon imported", "vertices", e.poly.Len(), "closed", e.poly.Closed())
}

func (e *Editor) Scale() float64            { return e.vp.Scale() }
func (e *Editor) Offset() geom.Point        { return e.vp.Offset() }
func (e *Editor) Transform() view.Transform { return e.vp.Transform() }
func (e *Editor) Polygon() polygon.Polygon  { return e.poly.Snapshot() }
func (e *Editor) Mode() gesture.Mode        { return e.gesture.Mode() }
func (e *Editor) Manual() bool              { return e.manual }
func (e *Editor) Image() geom.Size          { return e.vp.Image() }
func (e *Editor) HasImage() bool            { return e.vp.HasImage() }

func (e *Editor) ToWorld(s geom.Point) geom.Point  { return e.vp.ToWorld(s) }
func (e *Editor) ToScreen(w geom.Point) geom.Point { return e.vp.ToScreen(w) }

// CursorWorld returns the image position under the last known pointer.
func (e *Editor) CursorWorld() (geom.Point, bool) {
	p, ok := e.zoom.Cursor()
	if !ok || !e.vp.HasImage() {
		return geom.Point{}, false
	}
	return e.vp.ToWorld(p), true
}

// CursorScreen returns the last known pointer position.
func (e *Editor) CursorScreen() (geom.Point, bool) { return e.zoom.Cursor() }

// Cursor picks the pointer shape: grabbing while a pan is in progress,
// crosshair while vertices can be placed, default otherwise.
func (e *Editor) Cursor() Cursor {
	switch {
	case e.gesture.Mode() == gesture.Panning:
		return CursorGrabbing
	case e.gesture.Tool() == gesture.ToolDraw && !e.poly.Closed() && e.vp.HasImage():
		return CursorCrosshair
	default:
		return CursorDefault
	}
}
