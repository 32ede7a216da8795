package pattern

import (
	"fmt"
	"math"
	"math/rand"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

func init() {
	RegisterRasterizer(params.RadialSpokes, drawRadialSpokes)
	RegisterRasterizer(params.ConcentricRings, drawConcentricRings)
	RegisterRasterizer(params.Vortex, drawVortex)
	RegisterRasterizer(params.ScherkTower, drawScherkTower)
}

const (
	ringSamples     = 72
	vortexTurnSteps = 360
	scherkStep      = 2
	scherkHashCell  = 10
	maxArmSamples   = 1 << 20
)

// Spokes run from the center to the ellipse inscribed in the raster.
func drawRadialSpokes(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	if err := d.Reserve(p.SpokeCount); err != nil {
		return err
	}
	d.SetLineWidth(p.ChannelWidth * d.ScaleX)
	c := d.Center()

	for i := 0; float64(i) < p.SpokeCount; i++ {
		angle := float64(i) / p.SpokeCount * 2 * math.Pi
		end := mgl64.Vec2{c.X() + c.X()*math.Cos(angle), c.Y() + c.Y()*math.Sin(angle)}
		if err := d.Stroke(i, segment(c, end), false); err != nil {
			return err
		}
	}
	return nil
}

func drawConcentricRings(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	step := p.RingSpacing * d.ScaleX
	if !(step > 0) {
		return nil
	}
	d.SetLineWidth(p.RingWidth * d.ScaleX)

	c := d.Center()
	maxR := c.Len()
	if err := d.Reserve(maxR/step); err != nil {
		return err
	}

	for i := 0; float64(i+1)*step < maxR; i++ {
		r := float64(i+1) * step
		ring := make([]mgl64.Vec2, ringSamples)
		for k := range ring {
			a := float64(k) * 2 * math.Pi / ringSamples
			ring[k] = mgl64.Vec2{c.X() + r*math.Cos(a), c.Y() + r*math.Sin(a)}
		}
		if err := d.Stroke(i, ring, true); err != nil {
			return err
		}
	}
	return nil
}

// drawVortex strokes one Archimedean spiral arm per material, rotated by
// index/count of a turn. Arms are not a partition of a single spiral.
func drawVortex(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	if !(p.VortexStrength > 0) {
		return nil
	}
	layer := d.Layer()
	count := layer.Count
	if count < 1 {
		count = 1
	}
	offset := float64(layer.Index) / float64(count) * 2 * math.Pi

	samples := vortexTurnSteps * p.SpiralDensity
	if !(samples <= maxArmSamples) {
		return fmt.Errorf("%w: spiral arm of %.3g samples, limit %d", ErrTooComplex, samples, maxArmSamples)
	}

	c := d.Center()
	var arm []mgl64.Vec2
	for i := 0; float64(i) < vortexTurnSteps*p.SpiralDensity; i++ {
		angle := 0.1*float64(i) + offset
		r := p.VortexStrength * 0.1 * float64(i)
		arm = append(arm, mgl64.Vec2{c.X() + r*math.Cos(angle), c.Y() + r*math.Sin(angle)})
	}
	return d.Stroke(layer.Index, arm, false)
}

// drawScherkTower fills a coarse grid wherever cos(f*x)+cos(f*y) > 0 with
// x and y normalized to [-1,1]. Cells of 10px are owned by their grid hash.
func drawScherkTower(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	layer := d.Layer()
	halfW := d.W / 2
	halfH := d.H / 2

	var origins []mgl64.Vec2
	for y := 0; float64(y) < d.H; y += scherkStep {
		for x := 0; float64(x) < d.W; x += scherkStep {
			hash := x/scherkHashCell + y/scherkHashCell
			if !layer.Owns(hash) {
				continue
			}
			nx := (float64(x) - halfW) / halfW
			ny := (float64(y) - halfH) / halfH
			if math.Cos(p.ScherkFrequency*nx)+math.Cos(p.ScherkFrequency*ny) > 0 {
				origins = append(origins, mgl64.Vec2{float64(x), float64(y)})
			}
		}
	}
	return d.Blocks(origins, scherkStep)
}
