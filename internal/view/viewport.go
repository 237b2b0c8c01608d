// Package view maps between screen space (terminal pixels) and world
// space (image pixels).
//
// The mapping is a uniform scale plus translation:
//
//	screen = world*scale + offset
//	world  = (screen - offset) / scale
package view

import (
	"math"

	"polytrace/internal/geom"
)

const (
	// MinScale and MaxScale bound interactive zoom.
	MinScale = 0.1
	MaxScale = 10.0
)

// Transform is a snapshot of the viewport mapping.
type Transform struct {
	Scale  float64
	Offset geom.Point
}

// ToScreen applies the forward mapping.
func (t Transform) ToScreen(w geom.Point) geom.Point {
	return geom.Point{X: w.X*t.Scale + t.Offset.X, Y: w.Y*t.Scale + t.Offset.Y}
}

// ToWorld applies the inverse mapping.
func (t Transform) ToWorld(s geom.Point) geom.Point {
	return geom.Point{X: (s.X - t.Offset.X) / t.Scale, Y: (s.Y - t.Offset.Y) / t.Scale}
}

// Viewport owns the scale and offset used to show an image inside a
// visible area. Every mutation re-clamps the offset.
type Viewport struct {
	scale  float64
	offset geom.Point
	image  geom.Size
	size   geom.Size
}

// New returns an identity viewport with no image and no visible area.
func New() *Viewport {
	return &Viewport{scale: 1}
}

func (v *Viewport) Scale() float64       { return v.scale }
func (v *Viewport) Offset() geom.Point   { return v.offset }
func (v *Viewport) Image() geom.Size     { return v.image }
func (v *Viewport) Size() geom.Size      { return v.size }
func (v *Viewport) HasImage() bool       { return !v.image.Empty() }
func (v *Viewport) Transform() Transform { return Transform{Scale: v.scale, Offset: v.offset} }

// Center is the geometric centre of the visible area in screen space.
func (v *Viewport) Center() geom.Point { return v.size.Center() }

// ToWorld converts a screen point to image pixel space.
func (v *Viewport) ToWorld(s geom.Point) geom.Point { return v.Transform().ToWorld(s) }

// ToScreen converts an image pixel position to screen space.
func (v *Viewport) ToScreen(w geom.Point) geom.Point { return v.Transform().ToScreen(w) }

// SetImage records the dimensions of a newly loaded image. The transform
// is left alone; callers decide whether to Fit.
func (v *Viewport) SetImage(size geom.Size) {
	v.image = size
	v.offset = v.Clamp(v.offset)
}

// SetSize records the visible area and re-clamps the current offset.
func (v *Viewport) SetSize(size geom.Size) {
	v.size = size
	v.offset = v.Clamp(v.offset)
}

// SetScale changes the scale without moving the offset. The scale is held
// to [MinScale, MaxScale].
func (v *Viewport) SetScale(k float64) {
	if !v.HasImage() {
		return
	}
	v.scale = ClampScale(k)
	v.offset = v.Clamp(v.offset)
}

// SetOffset commits a proposed offset through Clamp.
func (v *Viewport) SetOffset(o geom.Point) {
	if !v.HasImage() {
		return
	}
	v.offset = v.Clamp(o)
}

// Pan shifts the offset by a screen-space delta.
func (v *Viewport) Pan(d geom.Point) {
	v.SetOffset(v.offset.Add(d))
}

// Clamp constrains a proposed offset per axis. When the scaled image fits
// within the visible extent on an axis the offset passes through
// unchanged, so small images can be placed anywhere. Otherwise the offset
// is held to [visible - scaled, 0] so no blank space shows past an image
// edge.
func (v *Viewport) Clamp(o geom.Point) geom.Point {
	if !v.HasImage() {
		return o
	}
	return geom.Point{
		X: clampAxis(o.X, float64(v.image.Width)*v.scale, float64(v.size.Width)),
		Y: clampAxis(o.Y, float64(v.image.Height)*v.scale, float64(v.size.Height)),
	}
}

func clampAxis(o, scaled, visible float64) float64 {
	if scaled <= visible {
		return o
	}
	return math.Max(visible-scaled, math.Min(o, 0))
}

// FitTransform computes the transform that shows the whole image centred
// in an area of the given size without upscaling past 1:1.
func (v *Viewport) FitTransform(size geom.Size) Transform {
	if !v.HasImage() || size.Empty() {
		return v.Transform()
	}
	iw, ih := float64(v.image.Width), float64(v.image.Height)
	vw, vh := float64(size.Width), float64(size.Height)
	k := math.Min(math.Min(vw/iw, vh/ih), 1)
	return Transform{
		Scale:  k,
		Offset: geom.Point{X: (vw - iw*k) / 2, Y: (vh - ih*k) / 2},
	}
}

// Fit applies FitTransform for the current visible area.
func (v *Viewport) Fit() Transform {
	t := v.FitTransform(v.size)
	v.scale = t.Scale
	v.offset = v.Clamp(t.Offset)
	return v.Transform()
}

// ClampScale holds k to [MinScale, MaxScale]. NaN maps to MinScale.
func ClampScale(k float64) float64 {
	if math.IsNaN(k) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(k, MaxScale))
}
