package gesture

import (
	"testing"

	"polytrace/internal/geom"
)

// fakeView maps screen to world as world = (screen - offset) / 2 and
// records pans without clamping.
type fakeView struct {
	offset geom.Point
	pans   []geom.Point
}

func (v *fakeView) ToWorld(s geom.Point) geom.Point {
	return geom.Point{X: (s.X - v.offset.X) / 2, Y: (s.Y - v.offset.Y) / 2}
}

func (v *fakeView) Pan(d geom.Point) {
	v.offset = v.offset.Add(d)
	v.pans = append(v.pans, d)
}

type fakeTarget struct {
	points []geom.Point
	closed bool
}

func (t *fakeTarget) Closed() bool { return t.closed }
func (t *fakeTarget) Add(p geom.Point) bool {
	if t.closed {
		return false
	}
	t.points = append(t.points, p)
	return true
}

func newTestResolver(opts ...Option) (*Resolver, *fakeView, *fakeTarget) {
	v := &fakeView{}
	tg := &fakeTarget{}
	return New(v, tg, opts...), v, tg
}

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestClickWithinThresholdAddsVertex(t *testing.T) {
	r, v, tg := newTestResolver()
	r.Down(pt(100, 100), ButtonLeft, 0)
	if r.Mode() != PendingClick {
		t.Fatalf("Mode = %v, want pending-click", r.Mode())
	}
	r.Move(pt(101, 101))
	if r.Mode() != PendingClick {
		t.Fatalf("jitter changed mode to %v", r.Mode())
	}
	res := r.Up(pt(101, 101))
	if res.Outcome != VertexAdded {
		t.Fatalf("Outcome = %v, want vertex-added", res.Outcome)
	}
	want := v.ToWorld(pt(101, 101))
	if res.Vertex != want || len(tg.points) != 1 || tg.points[0] != want {
		t.Errorf("vertex = %v, target = %v, want %v", res.Vertex, tg.points, want)
	}
	if len(v.pans) != 0 {
		t.Errorf("click panned the view: %v", v.pans)
	}
	if r.Mode() != Idle {
		t.Errorf("Mode = %v, want idle", r.Mode())
	}
}

func TestDragBeyondThresholdPans(t *testing.T) {
	r, v, tg := newTestResolver()
	r.Down(pt(100, 100), ButtonLeft, 0)
	res := r.Move(pt(110, 100))
	if r.Mode() != Panning {
		t.Fatalf("Mode = %v, want panning", r.Mode())
	}
	if res.Outcome != Panned || res.Delta != pt(10, 0) {
		t.Errorf("Move = %+v, want pan by (10,0)", res)
	}
	if v.offset != pt(10, 0) {
		t.Errorf("offset = %v, want (10,0)", v.offset)
	}
	if up := r.Up(pt(110, 100)); up.Outcome != None {
		t.Errorf("Up = %v, want none", up.Outcome)
	}
	if len(tg.points) != 0 {
		t.Errorf("drag added vertices: %v", tg.points)
	}
}

func TestThresholdIsExclusive(t *testing.T) {
	r, _, _ := newTestResolver()
	r.Down(pt(0, 0), ButtonLeft, 0)
	r.Move(pt(4, 0))
	if r.Mode() != PendingClick {
		t.Errorf("distance == threshold switched to %v", r.Mode())
	}
	r.Move(pt(4.01, 0))
	if r.Mode() != Panning {
		t.Errorf("distance > threshold left mode %v", r.Mode())
	}
}

func TestPanningAppliesIncrementalDeltas(t *testing.T) {
	r, v, _ := newTestResolver()
	r.Down(pt(0, 0), ButtonRight, 0)
	if r.Mode() != Panning {
		t.Fatalf("right button Mode = %v, want panning", r.Mode())
	}
	r.Move(pt(3, 1))
	r.Move(pt(3, 1))
	r.Move(pt(1, 5))
	want := []geom.Point{pt(3, 1), pt(-2, 4)}
	if len(v.pans) != len(want) {
		t.Fatalf("pans = %v, want %v", v.pans, want)
	}
	for i := range want {
		if v.pans[i] != want[i] {
			t.Errorf("pan[%d] = %v, want %v", i, v.pans[i], want[i])
		}
	}
}

func TestPressesThatPanImmediately(t *testing.T) {
	tests := []struct {
		name   string
		tool   Tool
		button Button
		mods   Modifiers
		closed bool
	}{
		{"middle button", ToolDraw, ButtonMiddle, 0, false},
		{"right button", ToolDraw, ButtonRight, 0, false},
		{"shift held", ToolDraw, ButtonLeft, ModShift, false},
		{"ctrl alt held", ToolDraw, ButtonLeft, ModCtrl | ModAlt, false},
		{"pan tool", ToolPan, ButtonLeft, 0, false},
		{"closed polygon", ToolDraw, ButtonLeft, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, tg := newTestResolver()
			tg.closed = tt.closed
			r.SetTool(tt.tool)
			r.Down(pt(5, 5), tt.button, tt.mods)
			if r.Mode() != Panning {
				t.Errorf("Mode = %v, want panning", r.Mode())
			}
			if res := r.Up(pt(5, 5)); res.Outcome != None {
				t.Errorf("Up = %v, want none", res.Outcome)
			}
			if len(tg.points) != 0 {
				t.Errorf("vertices added: %v", tg.points)
			}
		})
	}
}

func TestLeaveDiscardsPendingClick(t *testing.T) {
	r, _, tg := newTestResolver()
	r.Down(pt(10, 10), ButtonLeft, 0)
	r.Leave()
	if r.Mode() != Idle {
		t.Fatalf("Mode = %v, want idle", r.Mode())
	}
	if res := r.Up(pt(10, 10)); res.Outcome != None {
		t.Errorf("Up after leave = %v, want none", res.Outcome)
	}
	if len(tg.points) != 0 {
		t.Errorf("vertices added: %v", tg.points)
	}
}

func TestToolSwitchDuringPendingClickBlocksVertex(t *testing.T) {
	r, _, tg := newTestResolver()
	r.Down(pt(10, 10), ButtonLeft, 0)
	r.SetTool(ToolPan)
	if res := r.Up(pt(10, 10)); res.Outcome != None {
		t.Errorf("Up = %v, want none", res.Outcome)
	}
	if len(tg.points) != 0 {
		t.Errorf("vertices added: %v", tg.points)
	}
}

func TestPolygonClosedDuringPendingClickBlocksVertex(t *testing.T) {
	r, _, tg := newTestResolver()
	r.Down(pt(10, 10), ButtonLeft, 0)
	tg.closed = true
	if res := r.Up(pt(10, 10)); res.Outcome != None {
		t.Errorf("Up = %v, want none", res.Outcome)
	}
}

func TestSecondPressIgnoredWhileActive(t *testing.T) {
	r, _, _ := newTestResolver()
	r.Down(pt(0, 0), ButtonLeft, 0)
	r.Down(pt(50, 50), ButtonRight, 0)
	if r.Mode() != PendingClick {
		t.Errorf("Mode = %v, want pending-click", r.Mode())
	}
}

func TestIdleMoveAndUpAreNoops(t *testing.T) {
	r, v, tg := newTestResolver()
	if res := r.Move(pt(30, 30)); res.Outcome != None {
		t.Errorf("idle Move = %v", res.Outcome)
	}
	if res := r.Up(pt(30, 30)); res.Outcome != None {
		t.Errorf("idle Up = %v", res.Outcome)
	}
	if len(v.pans) != 0 || len(tg.points) != 0 {
		t.Errorf("idle events mutated state: pans=%v points=%v", v.pans, tg.points)
	}
}

func TestWithThreshold(t *testing.T) {
	r, _, _ := newTestResolver(WithThreshold(12), WithLogger(nil))
	if r.Threshold() != 12 {
		t.Errorf("Threshold = %f, want 12", r.Threshold())
	}
	r.Down(pt(0, 0), ButtonLeft, 0)
	r.Move(pt(10, 0))
	if r.Mode() != PendingClick {
		t.Errorf("Mode = %v, want pending-click under a 12px threshold", r.Mode())
	}
	r2, _, _ := newTestResolver(WithThreshold(-1))
	if r2.Threshold() != DefaultThreshold {
		t.Errorf("Threshold = %f, want default", r2.Threshold())
	}
}

func TestModeStrings(t *testing.T) {
	for m, want := range map[Mode]string{Idle: "idle", PendingClick: "pending-click", Panning: "panning", Mode(9): "unknown"} {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), m.String(), want)
		}
	}
}
