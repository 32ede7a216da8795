// Package heightmap turns pattern masks into height rasters and heightfields.
package heightmap

import (
	"math"

	"ScaffoldGen/internal/noise"
	"ScaffoldGen/internal/params"

	"github.com/gogpu/gg"
)

// VoidThreshold is the lowest mask red value counted as solid. Anti-aliased
// fringes below it are dropped.
const VoidThreshold = 50

// Modulator applies height modulation to masks. Classic is shared between
// renders and only read.
type Modulator struct {
	Classic noise.Source
}

// NewModulator creates a modulator around the shared classic noise table.
func NewModulator(classic noise.Source) *Modulator {
	return &Modulator{Classic: classic}
}

// Field evaluates the modulation of one design at normalized coordinates,
// returning a height in [0,1].
type Field func(nx, ny float64) float64

// Field builds the modulation of p once. seed feeds the fractal kind only.
func (m *Modulator) Field(p *params.ScaffoldParams, seed int64) Field {
	f := p.HeightModulationFrequency
	a := p.HeightModulationAmplitude

	var t Field
	switch p.HeightModulationType {
	case params.ModulationGradient:
		rad := p.HeightModulationGradientAngle * math.Pi / 180
		gx, gy := math.Cos(rad), math.Sin(rad)
		t = func(nx, ny float64) float64 {
			return (nx-0.5)*gx + (ny-0.5)*gy + 0.5
		}
	case params.ModulationPerlin:
		src := m.Classic
		t = func(nx, ny float64) float64 {
			return (src.Noise2D(nx*f, ny*f) + 1) / 2
		}
	case params.ModulationFractal:
		src := noise.NewFractal(p.HeightModulationOctaves, seed)
		t = func(nx, ny float64) float64 {
			return (src.Noise2D(nx*f, ny*f) + 1) / 2
		}
	case params.ModulationWave:
		t = func(nx, _ float64) float64 {
			return (math.Sin(nx*f*2*math.Pi) + 1) / 2
		}
	default:
		return func(_, _ float64) float64 { return 1 }
	}

	return func(nx, ny float64) float64 {
		return clamp01((1 - a) + a*t(nx, ny))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Modulate writes a new grayscale height raster for mask. Solid pixels get
// round(h*255) with alpha 255, void pixels are fully transparent black.
// seed feeds the fractal kind only.
func (m *Modulator) Modulate(mask *gg.Pixmap, p *params.ScaffoldParams, seed int64) *gg.Pixmap {
	w, h := mask.Width(), mask.Height()
	out := gg.NewPixmap(w, h)
	height := m.Field(p, seed)

	src := mask.Data()
	dst := out.Data()
	for y := 0; y < h; y++ {
		ny := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if src[i] < VoidThreshold {
				continue
			}
			v := uint8(math.Round(height(float64(x)/float64(w), ny) * 255))
			dst[i] = v
			dst[i+1] = v
			dst[i+2] = v
			dst[i+3] = 255
		}
	}
	return out
}
