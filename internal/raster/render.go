package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"polytrace/internal/view"
)

var (
	checkerLight = color.RGBA{R: 0x1A, G: 0x21, B: 0x2B, A: 0xFF}
	checkerDark  = color.RGBA{R: 0x0F, G: 0x14, B: 0x1A, A: 0xFF}
)

const checkerCell = 8

// Matrix returns the source-to-destination affine matrix for t. The
// source bounds origin is world (0, 0).
func Matrix(src image.Rectangle, t view.Transform) f64.Aff3 {
	k := t.Scale
	return f64.Aff3{
		k, 0, t.Offset.X - k*float64(src.Min.X),
		0, k, t.Offset.Y - k*float64(src.Min.Y),
	}
}

// Render paints a checkerboard into dst and draws img over it with the
// viewport transform. Magnified views use nearest-neighbour sampling so
// individual image pixels stay crisp; reduced views are filtered.
func Render(dst *image.RGBA, img *Image, t view.Transform) {
	fillChecker(dst)
	if img == nil || img.Src == nil || t.Scale <= 0 {
		return
	}
	var interp draw.Interpolator = draw.ApproxBiLinear
	if t.Scale >= 1 {
		interp = draw.NearestNeighbor
	}
	sr := img.Src.Bounds()
	interp.Transform(dst, Matrix(sr, t), img.Src, sr, draw.Over, nil)
}

func fillChecker(dst *image.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := checkerDark
			if ((x/checkerCell)+(y/checkerCell))%2 == 0 {
				c = checkerLight
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
