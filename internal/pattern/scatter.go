package pattern

import (
	"math"
	"math/rand"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

func init() {
	RegisterRasterizer(params.PorousNetwork, drawPorousNetwork)
	RegisterRasterizer(params.Equiaxed, drawEquiaxed)
	RegisterRasterizer(params.Cellular, drawCellular)
	RegisterRasterizer(params.GridGradient, drawGridGradient)
	RegisterRasterizer(params.MicropillarArray, drawMicropillarArray)
}

const (
	porousSites   = 5000
	equiaxedSites = 3000
	gradientCols  = 15
	cellVertices  = 16
)

func (d *Drawer) randomSite(rng *rand.Rand) mgl64.Vec2 {
	x := rng.Float64() * d.W
	y := rng.Float64() * d.H
	return mgl64.Vec2{x, y}
}

func drawPorousNetwork(d *Drawer, p *params.ScaffoldParams, rng *rand.Rand) error {
	n := (1 - p.Porosity) * porousSites
	r := p.PoreSize / 2 * d.ScaleX
	if err := d.Reserve(n); err != nil {
		return err
	}

	for i := 0; float64(i) < n; i++ {
		site := d.randomSite(rng)
		if err := d.Disk(i, site, r); err != nil {
			return err
		}
	}
	return nil
}

func drawEquiaxed(d *Drawer, p *params.ScaffoldParams, rng *rand.Rand) error {
	n := (1 - p.Porosity) * equiaxedSites
	if err := d.Reserve(n); err != nil {
		return err
	}

	for i := 0; float64(i) < n; i++ {
		site := d.randomSite(rng)
		variance := (rng.Float64() - 0.5) * 2 * p.PoreSizeVariance
		r := p.PoreSize * (1 + variance) / 2 * d.ScaleX
		if err := d.Disk(i, site, r); err != nil {
			return err
		}
	}
	return nil
}

// drawCellular fills irregular cells whose outline radius is jittered per
// vertex. Sizes are in pixels; cellDensity is cells per square pixel.
func drawCellular(d *Drawer, p *params.ScaffoldParams, rng *rand.Rand) error {
	if !(p.CellDensity > 0) {
		return nil
	}
	n := p.CellDensity * d.W * d.H
	base := math.Sqrt(1/p.CellDensity) / 2
	if err := d.Reserve(n); err != nil {
		return err
	}

	for i := 0; float64(i) < n; i++ {
		center := d.randomSite(rng)
		radius := (rng.Float64()*0.8 + 0.2) * base

		outline := make([]mgl64.Vec2, cellVertices)
		for v := range outline {
			a := float64(v) * math.Pi / 8
			r := radius * (0.8 + rng.Float64()*0.4)
			outline[v] = mgl64.Vec2{center.X() + r*math.Cos(a), center.Y() + r*math.Sin(a)}
		}
		if err := d.Fill(i, outline); err != nil {
			return err
		}
	}
	return nil
}

// drawGridGradient places a 15x15 pore lattice whose pore size grows
// linearly from gradientStart in the left column to gradientEnd in the right.
func drawGridGradient(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	cell := d.W / gradientCols

	index := 0
	for i := 0; i < gradientCols; i++ {
		t := float64(i) / (gradientCols - 1)
		size := p.GradientStart + t*(p.GradientEnd-p.GradientStart)
		r := size / 2 * d.ScaleX
		for j := 0; j < gradientCols; j++ {
			center := mgl64.Vec2{(float64(i) + 0.5) * cell, (float64(j) + 0.5) * cell}
			if err := d.Disk(index, center, r); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}

func drawMicropillarArray(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	r := p.PillarDiameter / 2 * d.ScaleX
	stepX := p.PillarSpacing * d.ScaleX
	stepY := p.PillarSpacing * d.ScaleY
	if !(stepX > 0) || !(stepY > 0) {
		return nil
	}
	if err := d.Reserve((d.W/stepX + 1) * (d.H/stepY + 1)); err != nil {
		return err
	}

	index := 0
	for j := 0; (float64(j)+0.5)*stepY < d.H; j++ {
		y := (float64(j) + 0.5) * stepY
		for i := 0; (float64(i)+0.5)*stepX < d.W; i++ {
			x := (float64(i) + 0.5) * stepX
			if err := d.Disk(index, mgl64.Vec2{x, y}, r); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}
