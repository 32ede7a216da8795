// Package mesh extrudes heightfields into triangle soup and writes STL.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"ScaffoldGen/internal/heightmap"
	"ScaffoldGen/internal/logger"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// DefaultMaxTriangles bounds a single extrusion. A fully solid 512x512
// raster needs a little over half a million triangles.
const DefaultMaxTriangles = 4_000_000

var ErrTooComplex = errors.New("mesh exceeds triangle budget")

// Triangle is one facet. Normal is the unnormalized cross product of the
// first two edges.
type Triangle struct {
	Normal mgl64.Vec3
	V      [3]mgl64.Vec3
}

// Mesh is an unordered bag of triangles with no shared vertices.
type Mesh struct {
	Triangles []Triangle
}

func (m *Mesh) Len() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned box around every vertex. An empty mesh
// reports two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Triangles) == 0 {
		return
	}
	inf := math.Inf(1)
	lo = mgl64.Vec3{inf, inf, inf}
	hi = mgl64.Vec3{-inf, -inf, -inf}
	for _, t := range m.Triangles {
		for _, v := range t.V {
			for i := 0; i < 3; i++ {
				lo[i] = math.Min(lo[i], v[i])
				hi[i] = math.Max(hi[i], v[i])
			}
		}
	}
	return lo, hi
}

func newTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{
		Normal: b.Sub(a).Cross(c.Sub(a)),
		V:      [3]mgl64.Vec3{a, b, c},
	}
}

// addQuad splits a quad into (a,b,c) and (a,c,d).
func (m *Mesh) addQuad(a, b, c, d mgl64.Vec3) {
	m.Triangles = append(m.Triangles, newTriangle(a, b, c), newTriangle(a, c, d))
}

// Extruder turns heightfields into closed triangle soup.
type Extruder struct {
	// MaxTriangles caps the output; zero or less means DefaultMaxTriangles.
	MaxTriangles int
}

func NewExtruder() *Extruder {
	return &Extruder{MaxTriangles: DefaultMaxTriangles}
}

func (e *Extruder) budget() int {
	if e == nil || e.MaxTriangles <= 0 {
		return DefaultMaxTriangles
	}
	return e.MaxTriangles
}

// Extrude emits one column per solid cell of hf over a physical footprint
// of width by height. Heights are taken as already in physical units.
// Row 0 of hf ends up at the far edge in y.
func (e *Extruder) Extrude(hf *heightmap.Heightfield, width, height float64) (*Mesh, error) {
	if hf.Width <= 0 || hf.Height <= 0 {
		return &Mesh{}, nil
	}
	sx := width / float64(hf.Width)
	sy := height / float64(hf.Height)

	quads := 0
	walk(hf, sx, sy, func(_, _, _, _ mgl64.Vec3) { quads++ })

	if limit := e.budget(); quads*2 > limit {
		return nil, fmt.Errorf("%w: %d triangles, limit %d", ErrTooComplex, quads*2, limit)
	}

	m := &Mesh{Triangles: make([]Triangle, 0, quads*2)}
	walk(hf, sx, sy, m.addQuad)

	logger.Log.Info("Extruded heightfield",
		zap.Int("cells", hf.Width*hf.Height),
		zap.Int("solid", hf.Solid()),
		zap.Int("triangles", m.Len()))
	return m, nil
}

// walk visits every quad of the extrusion in emission order. Every quad is
// wound counter-clockwise seen from outside the column. Image row y-1 lies
// on the far (+y) side of a cell, row y+1 on the near side.
func walk(hf *heightmap.Heightfield, sx, sy float64, quad func(a, b, c, d mgl64.Vec3)) {
	for y := 0; y < hf.Height; y++ {
		for x := 0; x < hf.Width; x++ {
			h := hf.At(x, y)
			if h <= 0 {
				continue
			}

			x0 := float64(x) * sx
			y0 := float64(hf.Height-1-y) * sy
			x1, y1 := x0+sx, y0+sy

			quad(
				mgl64.Vec3{x0, y0, h},
				mgl64.Vec3{x1, y0, h},
				mgl64.Vec3{x1, y1, h},
				mgl64.Vec3{x0, y1, h},
			)

			left := hf.At(x-1, y)
			right := hf.At(x+1, y)
			far := hf.At(x, y-1)
			near := hf.At(x, y+1)

			if exposed(h, left, right, far, near) {
				quad(
					mgl64.Vec3{x0, y0, 0},
					mgl64.Vec3{x0, y1, 0},
					mgl64.Vec3{x1, y1, 0},
					mgl64.Vec3{x1, y0, 0},
				)
			}

			if h > left {
				quad(
					mgl64.Vec3{x0, y0, left},
					mgl64.Vec3{x0, y0, h},
					mgl64.Vec3{x0, y1, h},
					mgl64.Vec3{x0, y1, left},
				)
			}
			if h > right {
				quad(
					mgl64.Vec3{x1, y0, h},
					mgl64.Vec3{x1, y0, right},
					mgl64.Vec3{x1, y1, right},
					mgl64.Vec3{x1, y1, h},
				)
			}
			if h > near {
				quad(
					mgl64.Vec3{x0, y0, h},
					mgl64.Vec3{x0, y0, near},
					mgl64.Vec3{x1, y0, near},
					mgl64.Vec3{x1, y0, h},
				)
			}
			if h > far {
				quad(
					mgl64.Vec3{x0, y1, far},
					mgl64.Vec3{x0, y1, h},
					mgl64.Vec3{x1, y1, h},
					mgl64.Vec3{x1, y1, far},
				)
			}
		}
	}
}

// exposed reports whether a cell needs a bottom cap: it touches void or
// stands above its lowest neighbor.
func exposed(h float64, neighbors ...float64) bool {
	lowest := math.Inf(1)
	for _, n := range neighbors {
		if n == 0 {
			return true
		}
		lowest = math.Min(lowest, n)
	}
	return h > lowest
}
