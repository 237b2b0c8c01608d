package geom

import "math"

// Point is a 2D coordinate. Depending on context it is either a world
// (image pixel) position or a screen position.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point    { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(k float64) Point  { return Point{X: p.X * k, Y: p.Y * k} }
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Size is a width/height pair in whole pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Center returns the geometric centre of a rectangle of this size at the origin.
func (s Size) Center() Point {
	return Point{X: float64(s.Width) / 2, Y: float64(s.Height) / 2}
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// BoundsOf returns the bounding box of pts; ok is false for an empty slice.
func BoundsOf(pts []Point) (bbox BBox, ok bool) {
	for i, p := range pts {
		if i == 0 {
			bbox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		if p.X < bbox.MinX {
			bbox.MinX = p.X
		}
		if p.Y < bbox.MinY {
			bbox.MinY = p.Y
		}
		if p.X > bbox.MaxX {
			bbox.MaxX = p.X
		}
		if p.Y > bbox.MaxY {
			bbox.MaxY = p.Y
		}
	}
	return bbox, len(pts) > 0
}

// Shape is a parsed vertex sequence and whether it forms a closed ring.
type Shape struct {
	Points []Point
	Closed bool
}

// Annotation is everything an exporter needs: the traced polygon and the
// image it was traced on.
type Annotation struct {
	Image  string
	Size   Size
	Points []Point
	Closed bool
}
