// Package polygon holds the single annotation being traced: an ordered
// vertex sequence in image pixel space and a closed flag.
package polygon

import "polytrace/internal/geom"

// MinClosedVertices is the smallest vertex count Close accepts.
const MinClosedVertices = 3

// Polygon is a read-only snapshot of a Builder.
type Polygon struct {
	Points []geom.Point
	Closed bool
}

// Builder is the mutable polygon. Vertex order defines the edges.
type Builder struct {
	points []geom.Point
	closed bool
}

func NewBuilder() *Builder { return &Builder{} }

// Add appends p unless the polygon is closed. It reports whether p was added.
func (b *Builder) Add(p geom.Point) bool {
	if b.closed {
		return false
	}
	b.points = append(b.points, p)
	return true
}

// Close marks the polygon closed when it has at least three vertices.
// It reports whether the polygon is closed afterwards.
func (b *Builder) Close() bool {
	if len(b.points) >= MinClosedVertices {
		b.closed = true
	}
	return b.closed
}

// Undo removes the last vertex. The closed flag is left as it is, even
// when fewer than three vertices remain; only Close and Reset touch it.
func (b *Builder) Undo() (geom.Point, bool) {
	n := len(b.points)
	if n == 0 {
		return geom.Point{}, false
	}
	p := b.points[n-1]
	b.points = b.points[:n-1]
	return p, true
}

// Reset removes every vertex and reopens the polygon.
func (b *Builder) Reset() {
	b.points = nil
	b.closed = false
}

func (b *Builder) Closed() bool { return b.closed }
func (b *Builder) Len() int     { return len(b.points) }

// Points returns a copy of the vertex sequence.
func (b *Builder) Points() []geom.Point {
	return append([]geom.Point(nil), b.points...)
}

// Snapshot copies the current state.
func (b *Builder) Snapshot() Polygon {
	return Polygon{Points: b.Points(), Closed: b.closed}
}
