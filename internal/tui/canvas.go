package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/vector"

	"polytrace/internal/geom"
)

// pixelCanvas is an RGBA buffer in screen pixels. Two pixel rows make one
// terminal row.
type pixelCanvas struct {
	img *image.RGBA
}

func newPixelCanvas(w, h int) *pixelCanvas {
	return &pixelCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *pixelCanvas) setPixel(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// drawLine draws a line between two pixels using Bresenham
func (c *pixelCanvas) drawLine(x0, y0, x1, y1 int, col color.RGBA) {
	b := c.img.Rect
	if (x0 < b.Min.X && x1 < b.Min.X) || (x0 >= b.Max.X && x1 >= b.Max.X) ||
		(y0 < b.Min.Y && y1 < b.Min.Y) || (y0 >= b.Max.Y && y1 >= b.Max.Y) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawSegment draws a line between two screen points, clipped to the
// canvas first so far-away endpoints cost nothing.
func (c *pixelCanvas) drawSegment(a, b geom.Point, col color.RGBA) {
	r := c.img.Rect
	a, b, ok := clipSegment(a, b, float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
	if !ok {
		return
	}
	x0, y0 := toPixel(a)
	x1, y1 := toPixel(b)
	c.drawLine(x0, y0, x1, y1, col)
}

// clipSegment clips a-b to [minX,maxX]x[minY,maxY] (Liang-Barsky). ok is
// false when no part of the segment lies inside.
func clipSegment(a, b geom.Point, minX, minY, maxX, maxY float64) (geom.Point, geom.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if !finite(a.X) || !finite(a.Y) || !finite(dx) || !finite(dy) {
		return a, b, false
	}
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	// clamp against rounding so the ends stay on the canvas
	clamp := func(p geom.Point) geom.Point {
		return geom.Point{
			X: math.Min(math.Max(p.X, minX), maxX-0.5),
			Y: math.Min(math.Max(p.Y, minY), maxY-0.5),
		}
	}
	return clamp(geom.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}),
		clamp(geom.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}), true
}

// marker draws a (2r+1)-pixel square centred on p.
func (c *pixelCanvas) marker(p geom.Point, r int, col color.RGBA) {
	b := c.img.Rect
	fr := float64(r + 1)
	if !(p.X >= float64(b.Min.X)-fr && p.X < float64(b.Max.X)+fr &&
		p.Y >= float64(b.Min.Y)-fr && p.Y < float64(b.Max.Y)+fr) {
		return
	}
	x, y := toPixel(p)
	for j := y - r; j <= y+r; j++ {
		for i := x - r; i <= x+r; i++ {
			c.setPixel(i, j, col)
		}
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func toPixel(p geom.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// fillPolygon blends col over the interior of the ring pts.
func (c *pixelCanvas) fillPolygon(pts []geom.Point, col color.NRGBA) {
	b := c.img.Rect
	ring := clipRing(pts, float64(b.Dx()), float64(b.Dy()))
	if len(ring) < 3 {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(ring[0].X), float32(ring[0].Y))
	for _, p := range ring[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// clipRing clips a polygon to [0,w]x[0,h] (Sutherland-Hodgman).
func clipRing(pts []geom.Point, w, h float64) []geom.Point {
	type edge struct {
		inside func(geom.Point) bool
		cross  func(a, b geom.Point) geom.Point
	}
	lerpX := func(a, b geom.Point, x float64) geom.Point {
		t := (x - a.X) / (b.X - a.X)
		return geom.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
	}
	lerpY := func(a, b geom.Point, y float64) geom.Point {
		t := (y - a.Y) / (b.Y - a.Y)
		return geom.Point{X: a.X + t*(b.X-a.X), Y: y}
	}
	edges := []edge{
		{func(p geom.Point) bool { return p.X >= 0 }, func(a, b geom.Point) geom.Point { return lerpX(a, b, 0) }},
		{func(p geom.Point) bool { return p.X <= w }, func(a, b geom.Point) geom.Point { return lerpX(a, b, w) }},
		{func(p geom.Point) bool { return p.Y >= 0 }, func(a, b geom.Point) geom.Point { return lerpY(a, b, 0) }},
		{func(p geom.Point) bool { return p.Y <= h }, func(a, b geom.Point) geom.Point { return lerpY(a, b, h) }},
	}
	out := pts
	for _, e := range edges {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	return out
}

// toLines converts pixel row pairs to upper-half-block cells: the glyph
// takes the top pixel's colour and the cell background the bottom one.
// Runs of identical cells share one styled segment.
func (c *pixelCanvas) toLines() []string {
	b := c.img.Rect
	rows := b.Dy() / 2
	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		y := b.Min.Y + r*2
		runStart := b.Min.X
		for x := b.Min.X; x <= b.Max.X; x++ {
			if x < b.Max.X && x > runStart &&
				c.img.RGBAAt(x, y) == c.img.RGBAAt(runStart, y) &&
				c.img.RGBAAt(x, y+1) == c.img.RGBAAt(runStart, y+1) {
				continue
			}
			if x > runStart {
				sb.WriteString(halfBlock(c.img.RGBAAt(runStart, y), c.img.RGBAAt(runStart, y+1), x-runStart))
			}
			runStart = x
		}
		out[r] = sb.String()
	}
	return out
}

func halfBlock(top, bottom color.RGBA, n int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(top))).
		Background(lipgloss.Color(hexColor(bottom))).
		Render(strings.Repeat("▀", n))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
