package pattern

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// DefaultLineWidth is the stroke width before a template sets its own.
const DefaultLineWidth = 2

// Rect is an axis-aligned rectangle in raster pixels.
type Rect struct {
	X, Y, W, H float64
}

// Canvas is what rasterizers draw on. Coordinates are raster pixels and
// have already been warped. Everything is drawn in the solid color.
type Canvas interface {
	Width() int
	Height() int
	SetLineWidth(w float64)
	StrokePath(pts []mgl64.Vec2, closed bool) error
	FillPath(pts []mgl64.Vec2) error
	FillDisk(center mgl64.Vec2, r float64) error
	FillRects(rects []Rect) error
}

// SurfaceCanvas draws white on a black gg pixmap.
type SurfaceCanvas struct {
	ctx *gg.Context
	pm  *gg.Pixmap
}

// NewSurfaceCanvas creates a cleared mask surface of the given size.
func NewSurfaceCanvas(width, height int) *SurfaceCanvas {
	pm := gg.NewPixmap(width, height)
	ctx := gg.NewContext(width, height, gg.WithPixmap(pm))
	ctx.ClearWithColor(gg.Black)
	ctx.SetRGB(1, 1, 1)
	ctx.SetLineWidth(DefaultLineWidth)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	return &SurfaceCanvas{ctx: ctx, pm: pm}
}

func (c *SurfaceCanvas) Width() int  { return c.pm.Width() }
func (c *SurfaceCanvas) Height() int { return c.pm.Height() }

func (c *SurfaceCanvas) SetLineWidth(w float64) {
	c.ctx.SetLineWidth(w)
}

func (c *SurfaceCanvas) trace(pts []mgl64.Vec2) {
	c.ctx.MoveTo(pts[0].X(), pts[0].Y())
	for _, pt := range pts[1:] {
		c.ctx.LineTo(pt.X(), pt.Y())
	}
}

func (c *SurfaceCanvas) StrokePath(pts []mgl64.Vec2, closed bool) error {
	if len(pts) < 2 {
		return nil
	}
	c.trace(pts)
	if closed {
		c.ctx.ClosePath()
	}
	return c.ctx.Stroke()
}

func (c *SurfaceCanvas) FillPath(pts []mgl64.Vec2) error {
	if len(pts) < 3 {
		return nil
	}
	c.trace(pts)
	c.ctx.ClosePath()
	return c.ctx.Fill()
}

func (c *SurfaceCanvas) FillDisk(center mgl64.Vec2, r float64) error {
	c.ctx.DrawCircle(center.X(), center.Y(), r)
	return c.ctx.Fill()
}

// FillRects fills all rectangles as one path.
func (c *SurfaceCanvas) FillRects(rects []Rect) error {
	if len(rects) == 0 {
		return nil
	}
	for _, r := range rects {
		c.ctx.DrawRectangle(r.X, r.Y, r.W, r.H)
	}
	return c.ctx.Fill()
}

// Surface returns the pixmap drawn so far.
func (c *SurfaceCanvas) Surface() *gg.Pixmap {
	return c.pm
}

// Close releases the drawing context. The surface stays valid.
func (c *SurfaceCanvas) Close() error {
	return c.ctx.Close()
}
