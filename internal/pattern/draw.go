package pattern

import (
	"errors"
	"fmt"
	"math"

	"ScaffoldGen/internal/params"
	"ScaffoldGen/internal/warp"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer selects one material out of Count. A primitive with index i
// belongs to the layer when i mod Count == Index.
type Layer struct {
	Index int
	Count int
}

// SingleLayer owns every primitive.
var SingleLayer = Layer{Index: 0, Count: 1}

// Owns reports whether the primitive with the given index is drawn on this layer.
func (l Layer) Owns(index int) bool {
	if l.Count <= 1 {
		return true
	}
	m := index % l.Count
	if m < 0 {
		m += l.Count
	}
	return m == l.Index
}

// maximum distance between samples on warped straight edges
const sampleStep = 4.0

// maxEdgeSamples bounds the subdivision of one straight edge.
const maxEdgeSamples = 4096

// MaxPrimitives bounds the primitives one layer may emit, owned or not.
// Dendrites at the depth cap stay below it.
const MaxPrimitives = 100_000

// ErrTooComplex reports a design whose sizes would emit more than
// MaxPrimitives primitives.
var ErrTooComplex = errors.New("pattern too complex to rasterize")

// Drawer applies the warp and layer ownership in front of a Canvas.
type Drawer struct {
	canvas    Canvas
	warp      warp.Warp
	layer     Layer
	lineWidth float64
	emitted   int

	// W and H are the raster size in pixels.
	W, H float64
	// ScaleX and ScaleY convert micrometers to pixels.
	ScaleX, ScaleY float64
}

// NewDrawer prepares a drawer for one material layer of a design.
func NewDrawer(c Canvas, p *params.ScaffoldParams, layer Layer) *Drawer {
	w := float64(c.Width())
	h := float64(c.Height())
	return &Drawer{
		canvas:    c,
		warp:      warp.New(p, w, h),
		layer:     layer,
		lineWidth: DefaultLineWidth,
		W:         w,
		H:         h,
		ScaleX:    w / p.Width,
		ScaleY:    h / p.Height,
	}
}

// Layer returns the material layer being drawn.
func (d *Drawer) Layer() Layer { return d.layer }

// Center is the raster center, also the warp pivot.
func (d *Drawer) Center() mgl64.Vec2 { return mgl64.Vec2{d.W / 2, d.H / 2} }

// Reserve fails if n more primitives would exceed MaxPrimitives. Rasterizers
// that know their primitive count call it before drawing anything.
func (d *Drawer) Reserve(n float64) error {
	total := float64(d.emitted) + n
	if !(total <= MaxPrimitives) {
		return fmt.Errorf("%w: %.3g primitives, limit %d", ErrTooComplex, total, MaxPrimitives)
	}
	return nil
}

func (d *Drawer) emit() error {
	d.emitted++
	if d.emitted > MaxPrimitives {
		return fmt.Errorf("%w: more than %d primitives", ErrTooComplex, MaxPrimitives)
	}
	return nil
}

func (d *Drawer) SetLineWidth(w float64) {
	d.lineWidth = w
	if w > 0 {
		d.canvas.SetLineWidth(w)
	}
}

func (d *Drawer) warped(pts []mgl64.Vec2) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(pts))
	for i, pt := range pts {
		out[i] = d.warp.Apply(pt)
	}
	return out
}

// Stroke draws a polyline owned by index.
func (d *Drawer) Stroke(index int, pts []mgl64.Vec2, closed bool) error {
	if err := d.emit(); err != nil {
		return err
	}
	if !d.layer.Owns(index) || !(d.lineWidth > 0) {
		return nil
	}
	return d.canvas.StrokePath(d.warped(pts), closed)
}

// Fill draws a filled polygon owned by index.
func (d *Drawer) Fill(index int, pts []mgl64.Vec2) error {
	if err := d.emit(); err != nil {
		return err
	}
	if !d.layer.Owns(index) {
		return nil
	}
	return d.canvas.FillPath(d.warped(pts))
}

// Disk fills a circle around a warped center. The radius is not warped.
func (d *Drawer) Disk(index int, center mgl64.Vec2, r float64) error {
	if err := d.emit(); err != nil {
		return err
	}
	if !d.layer.Owns(index) || !(r > 0) {
		return nil
	}
	return d.canvas.FillDisk(d.warp.Apply(center), r)
}

// Rect fills a rectangle whose outline is sampled and warped.
func (d *Drawer) Rect(index int, x, y, w, h float64) error {
	if err := d.emit(); err != nil {
		return err
	}
	if !d.layer.Owns(index) || !(w > 0) || !(h > 0) {
		return nil
	}
	corners := []mgl64.Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	var outline []mgl64.Vec2
	for i, c := range corners {
		edge := segment(c, corners[(i+1)%4])
		outline = append(outline, edge[:len(edge)-1]...)
	}
	return d.canvas.FillPath(d.warped(outline))
}

// Blocks fills small axis-aligned squares anchored at warped origins.
func (d *Drawer) Blocks(origins []mgl64.Vec2, size float64) error {
	if err := d.emit(); err != nil {
		return err
	}
	if len(origins) == 0 || !(size > 0) {
		return nil
	}
	rects := make([]Rect, len(origins))
	for i, o := range origins {
		t := d.warp.Apply(o)
		rects[i] = Rect{X: t.X(), Y: t.Y(), W: size, H: size}
	}
	return d.canvas.FillRects(rects)
}

// segment samples the straight line a->b, both ends included, with at
// most maxEdgeSamples steps.
func segment(a, b mgl64.Vec2) []mgl64.Vec2 {
	steps := math.Ceil(b.Sub(a).Len() / sampleStep)
	if !(steps <= maxEdgeSamples) {
		steps = maxEdgeSamples
	}
	n := max(int(steps), 1)
	pts := make([]mgl64.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, a.Mul(1-t).Add(b.Mul(t)))
	}
	return pts
}
