package geom

import "math"

// Extent returns the canvas size needed to hold both the image and every
// vertex: per axis, max(image dimension, largest vertex coordinate),
// rounded up. Vertices at negative coordinates do not grow the canvas.
func Extent(points []Point, size Size) Size {
	w, h := float64(size.Width), float64(size.Height)
	for _, p := range points {
		w = math.Max(w, p.X)
		h = math.Max(h, p.Y)
	}
	return Size{Width: int(math.Ceil(w)), Height: int(math.Ceil(h))}
}
