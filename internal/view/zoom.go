package view

import (
	"math"

	"polytrace/internal/geom"
)

const (
	// LevelMin and LevelMax bound the programmatic zoom level control,
	// which is narrower than the interactive range.
	LevelMin = 0.1
	LevelMax = 5.0
)

// Zoomer applies anchor-preserving scale changes to a Viewport: the world
// point under the anchor before the change is under the anchor after it.
// It remembers the last pointer position so zoom requests without an
// explicit anchor can use it, falling back to the viewport centre.
type Zoomer struct {
	vp        *Viewport
	cursor    geom.Point
	hasCursor bool
}

func NewZoomer(vp *Viewport) *Zoomer {
	return &Zoomer{vp: vp}
}

// Track records the latest pointer position in screen space.
func (z *Zoomer) Track(p geom.Point) {
	z.cursor = p
	z.hasCursor = true
}

// Forget drops the remembered pointer position.
func (z *Zoomer) Forget() { z.hasCursor = false }

// Cursor returns the remembered pointer position, if any.
func (z *Zoomer) Cursor() (geom.Point, bool) { return z.cursor, z.hasCursor }

// Anchor is the remembered pointer position, or the viewport centre when
// no pointer position is known.
func (z *Zoomer) Anchor() geom.Point {
	if z.hasCursor {
		return z.cursor
	}
	return z.vp.Center()
}

// ZoomTo sets an absolute scale around anchor and returns the committed
// scale. The target is clamped to [MinScale, MaxScale] and the resulting
// offset passes through Viewport.Clamp.
func (z *Zoomer) ZoomTo(anchor geom.Point, scale float64) float64 {
	v := z.vp
	if !v.HasImage() || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return v.scale
	}
	target := ClampScale(scale)
	world := v.ToWorld(anchor)
	v.scale = target
	v.offset = v.Clamp(anchor.Sub(world.Mul(target)))
	return v.scale
}

// ZoomAt multiplies the current scale by factor around anchor.
func (z *Zoomer) ZoomAt(anchor geom.Point, factor float64) float64 {
	if factor <= 0 {
		return z.vp.scale
	}
	return z.ZoomTo(anchor, z.vp.scale*factor)
}

// ZoomAtAnchor multiplies the current scale by factor around Anchor().
func (z *Zoomer) ZoomAtAnchor(factor float64) float64 {
	return z.ZoomAt(z.Anchor(), factor)
}

// SetLevel is the programmatic range control: k is held to
// [LevelMin, LevelMax] and applied around the viewport centre.
func (z *Zoomer) SetLevel(k float64) float64 {
	if math.IsNaN(k) {
		return z.vp.scale
	}
	k = math.Max(LevelMin, math.Min(k, LevelMax))
	return z.ZoomTo(z.vp.Center(), k)
}
