// Package warp deforms pattern points before they are drawn.
package warp

import (
	"math"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

// Warp maps raster points through one transform kind.
type Warp struct {
	Kind     params.TransformID
	Strength float64
	Center   mgl64.Vec2
}

// New builds the warp for a design on a raster of the given size. The
// pivot is the raster center.
func New(p *params.ScaffoldParams, width, height float64) Warp {
	return Warp{
		Kind:     p.TransformID,
		Strength: p.TransformStrength,
		Center:   mgl64.Vec2{width / 2, height / 2},
	}
}

// Apply warps a single point.
func (w Warp) Apply(pt mgl64.Vec2) mgl64.Vec2 {
	return Apply(pt, w.Kind, w.Strength, w.Center)
}

// Apply maps pt around center. Unknown kinds behave like none.
func Apply(pt mgl64.Vec2, kind params.TransformID, strength float64, center mgl64.Vec2) mgl64.Vec2 {
	d := pt.Sub(center)

	switch kind {
	case params.TransformTwist:
		if center.X() == 0 {
			return pt
		}
		r := d.Len()
		angle := math.Atan2(d.Y(), d.X()) + strength*(r/center.X())*math.Pi
		return mgl64.Vec2{center.X() + r*math.Cos(angle), center.Y() + r*math.Sin(angle)}

	case params.TransformPinch:
		r2 := d.Dot(d)
		factor := 1 - strength*math.Exp(-0.0001*r2)
		return center.Add(d.Mul(factor))

	case params.TransformRipple:
		dist := d.Len()
		// the unit direction is undefined at the pivot
		if dist == 0 {
			return pt
		}
		amount := strength * 20 * math.Sin(dist/(20*(1.1-strength)))
		return pt.Add(d.Mul(amount / dist))
	}

	return pt
}
