// Package gesture turns raw pointer events into either a vertex placement
// or a pan of the view.
//
// A press that can place a vertex starts out pending. If the pointer
// travels further than the drag threshold from where it went down, the
// gesture becomes a pan and the movement so far is applied; otherwise the
// release places a vertex at the release position. Every other press pans
// immediately. Pans are applied incrementally on each move.
package gesture

import (
	"io"
	"log/slog"

	"polytrace/internal/geom"
)

// DefaultThreshold is the drag distance, in screen pixels, beyond which a
// pending click becomes a pan.
const DefaultThreshold = 4.0

// Mode is the state of the gesture in progress.
type Mode int

const (
	Idle Mode = iota
	PendingClick
	Panning
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PendingClick:
		return "pending-click"
	case Panning:
		return "panning"
	default:
		return "unknown"
	}
}

// Tool is the active editing tool.
type Tool int

const (
	ToolDraw Tool = iota
	ToolPan
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolPan:
		return "pan"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button that started a gesture.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonOther
)

// Modifiers is a bitmask of keyboard modifiers held during a press.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// Outcome says what a single event resolved to.
type Outcome int

const (
	None Outcome = iota
	VertexAdded
	Panned
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case VertexAdded:
		return "vertex-added"
	case Panned:
		return "panned"
	default:
		return "unknown"
	}
}

// Result is the only thing that leaves the resolver: a placed vertex in
// world space or a pan delta in screen space.
type Result struct {
	Outcome Outcome
	Vertex  geom.Point
	Delta   geom.Point
}

// View is the part of the viewport the resolver drives.
type View interface {
	ToWorld(s geom.Point) geom.Point
	Pan(d geom.Point)
}

// Target receives placed vertices.
type Target interface {
	Closed() bool
	Add(p geom.Point) bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the click/drag distance. Non-positive values are ignored.
func WithThreshold(px float64) Option {
	return func(r *Resolver) {
		if px > 0 {
			r.threshold = px
		}
	}
}

// WithLogger sets the logger used for mode transitions.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver is the pointer gesture state machine. Its state never escapes;
// callers observe Mode and the Results of events.
type Resolver struct {
	view      View
	target    Target
	tool      Tool
	threshold float64
	logger    *slog.Logger

	mode   Mode
	origin geom.Point
	last   geom.Point
}

func New(view View, target Target, opts ...Option) *Resolver {
	r := &Resolver{
		view:      view,
		target:    target,
		threshold: DefaultThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Resolver) Mode() Mode         { return r.mode }
func (r *Resolver) Tool() Tool         { return r.tool }
func (r *Resolver) Threshold() float64 { return r.threshold }

// SetTool switches the active tool. A gesture in progress keeps its mode.
func (r *Resolver) SetTool(t Tool) { r.tool = t }

func (r *Resolver) canPlace(b Button, m Modifiers) bool {
	return r.tool == ToolDraw && b == ButtonLeft && m == 0 && !r.target.Closed()
}

// Down starts a gesture. A press while another gesture is active is ignored.
func (r *Resolver) Down(p geom.Point, b Button, m Modifiers) Result {
	if r.mode != Idle {
		return Result{}
	}
	r.origin, r.last = p, p
	if r.canPlace(b, m) {
		r.transition(PendingClick)
	} else {
		r.transition(Panning)
	}
	return Result{}
}

// Move advances the gesture. Moves while idle are hover and do nothing.
func (r *Resolver) Move(p geom.Point) Result {
	switch r.mode {
	case PendingClick:
		if p.Dist(r.origin) <= r.threshold {
			return Result{}
		}
		r.transition(Panning)
		d := p.Sub(r.origin)
		r.last = p
		r.view.Pan(d)
		return Result{Outcome: Panned, Delta: d}
	case Panning:
		d := p.Sub(r.last)
		r.last = p
		if d == (geom.Point{}) {
			return Result{}
		}
		r.view.Pan(d)
		return Result{Outcome: Panned, Delta: d}
	}
	return Result{}
}

// Up ends the gesture. A pending click places a vertex at p when the
// draw tool is still active and the polygon is still open.
func (r *Resolver) Up(p geom.Point) Result {
	prev := r.mode
	r.transition(Idle)
	if prev != PendingClick || r.tool != ToolDraw || r.target.Closed() {
		return Result{}
	}
	w := r.view.ToWorld(p)
	if !r.target.Add(w) {
		return Result{}
	}
	r.logger.Debug("vertex added", "x", w.X, "y", w.Y, "screen_x", p.X, "screen_y", p.Y)
	return Result{Outcome: VertexAdded, Vertex: w}
}

// Leave abandons the gesture without placing anything.
func (r *Resolver) Leave() Result {
	r.transition(Idle)
	return Result{}
}

func (r *Resolver) transition(next Mode) {
	prev := r.mode
	if prev == next {
		return
	}
	r.mode = next
	r.logger.Debug("gesture transition", "from", prev.String(), "to", next.String())
}
