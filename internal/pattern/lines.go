package pattern

import (
	"math"
	"math/rand"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

func init() {
	RegisterRasterizer(params.SerpentineMesh, drawSerpentineMesh)
	RegisterRasterizer(params.AlignedFibers, drawAlignedFibers)
	RegisterRasterizer(params.CrosshatchGrid, drawCrosshatchGrid)
	RegisterRasterizer(params.WavyChannels, drawWavyChannels)
	RegisterRasterizer(params.SinusoidalFibers, drawSinusoidalFibers)
	RegisterRasterizer(params.Lamellar, drawLamellar)
}

// verticalLine samples x = const once per pixel row, 0..H inclusive.
func (d *Drawer) verticalLine(x float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, int(d.H)+1)
	for y := 0; y <= int(d.H); y++ {
		pts = append(pts, mgl64.Vec2{x, float64(y)})
	}
	return pts
}

func (d *Drawer) horizontalLine(y float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, int(d.W)+1)
	for x := 0; x <= int(d.W); x++ {
		pts = append(pts, mgl64.Vec2{float64(x), y})
	}
	return pts
}

func drawAlignedFibers(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	step := p.FiberSpacing * d.ScaleX
	if !(step > 0) {
		return nil
	}
	if err := d.Reserve(d.W/step); err != nil {
		return err
	}

	for i := 0; float64(i)*step < d.W; i++ {
		if err := d.Stroke(i, d.verticalLine(float64(i)*step), false); err != nil {
			return err
		}
	}
	return nil
}

// Vertical fibers first, then horizontal ones; both share one index.
func drawCrosshatchGrid(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	stepX := p.FiberSpacing * d.ScaleX
	stepY := p.FiberSpacing * d.ScaleY
	if !(stepX > 0) || !(stepY > 0) {
		return nil
	}
	if err := d.Reserve(d.W/stepX + d.H/stepY); err != nil {
		return err
	}

	index := 0
	for i := 0; float64(i)*stepX < d.W; i++ {
		if err := d.Stroke(index, d.verticalLine(float64(i)*stepX), false); err != nil {
			return err
		}
		index++
	}
	for j := 0; float64(j)*stepY < d.H; j++ {
		if err := d.Stroke(index, d.horizontalLine(float64(j)*stepY), false); err != nil {
			return err
		}
		index++
	}
	return nil
}

func drawWavyChannels(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	step := p.FiberSpacing * d.ScaleY
	amplitude := p.WaveAmplitude * d.ScaleX
	if !(step > 0) {
		return nil
	}
	d.SetLineWidth(p.ChannelWidth * d.ScaleX)
	if err := d.Reserve(d.H/step + 1); err != nil {
		return err
	}

	for i := 0; float64(i)*step < d.H+step; i++ {
		y := float64(i) * step
		pts := make([]mgl64.Vec2, 0, int(d.W)+1)
		pts = append(pts, mgl64.Vec2{0, y})
		for x := 1; x <= int(d.W); x++ {
			fx := float64(x)
			// each channel drifts down by half a spacing across the raster
			pts = append(pts, mgl64.Vec2{
				fx + amplitude*math.Sin(fx*p.WaveFrequency),
				y + fx/d.W*(step/2),
			})
		}
		if err := d.Stroke(i, pts, false); err != nil {
			return err
		}
	}
	return nil
}

func drawSinusoidalFibers(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	step := p.FiberSpacing * d.ScaleY
	amplitude := p.WaveAmplitude * d.ScaleX
	if !(step > 0) {
		return nil
	}
	if err := d.Reserve(d.H/step + 1); err != nil {
		return err
	}

	for i := 0; float64(i)*step < d.H+step; i++ {
		y := float64(i) * step
		pts := make([]mgl64.Vec2, 0, int(d.W)+1)
		pts = append(pts, mgl64.Vec2{0, y})
		for x := 1; x <= int(d.W); x++ {
			fx := float64(x)
			pts = append(pts, mgl64.Vec2{fx + amplitude*math.Sin(y*0.1+fx*p.WaveFrequency), y})
		}
		if err := d.Stroke(i, pts, false); err != nil {
			return err
		}
	}
	return nil
}

func drawLamellar(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	step := p.FiberSpacing * d.ScaleX
	width := p.LamellaeWidth * d.ScaleX
	if !(step > 0) {
		return nil
	}
	if err := d.Reserve(d.W/step); err != nil {
		return err
	}

	for i := 0; float64(i)*step < d.W; i++ {
		if err := d.Rect(i, float64(i)*step, 0, width, d.H); err != nil {
			return err
		}
	}
	return nil
}

const (
	serpentineConnectorSamples = 8
	serpentineArcSamples       = 12
)

// drawSerpentineMesh strokes rows of connectors joined by half circles that
// alternate above and below the row axis. Odd rows are shifted by half a
// period. Rows are owned by |row| mod k.
func drawSerpentineMesh(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	r := p.SerpentineArcRadius * d.ScaleX
	l := p.SerpentineConnectorLength * d.ScaleX
	s := p.SerpentineRowSpacing * d.ScaleX
	if r <= 0.1 || l < 0 || !(s > 0) {
		return nil
	}
	d.SetLineWidth(p.SerpentinePathWidth * d.ScaleX)

	period := 4*r + 2*l
	if err := d.Reserve(d.H/s + 6); err != nil {
		return err
	}

	for j := -3; float64(j)*s < d.H+3*s; j++ {
		y := float64(j) * s
		x := -period
		if j%2 != 0 {
			x += period / 2
		}
		for x > 0 {
			x -= period
		}

		pts := []mgl64.Vec2{{x, y}}
		connector := func() {
			from := mgl64.Vec2{x, y}
			to := mgl64.Vec2{x + l, y}
			for i := 1; i <= serpentineConnectorSamples; i++ {
				t := float64(i) / serpentineConnectorSamples
				pts = append(pts, from.Mul(1-t).Add(to.Mul(t)))
			}
			x += l
		}
		arc := func(start, end float64) {
			cx := x + r
			step := (end - start) / serpentineArcSamples
			for i := 1; i <= serpentineArcSamples; i++ {
				a := start + float64(i)*step
				pts = append(pts, mgl64.Vec2{cx + r*math.Cos(a), y + r*math.Sin(a)})
			}
			x += 2 * r
		}

		for x < d.W+period {
			connector()
			arc(math.Pi, 2*math.Pi)
			connector()
			arc(math.Pi, 0)
		}

		row := j
		if row < 0 {
			row = -row
		}
		if err := d.Stroke(row, pts, false); err != nil {
			return err
		}
	}
	return nil
}
