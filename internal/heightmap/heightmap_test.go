package heightmap

import (
	"math"
	"testing"

	"ScaffoldGen/internal/noise"
	"ScaffoldGen/internal/params"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripedMask has solid columns wherever x%4 < 2, with a faint fringe
// column at x%4 == 2.
func stripedMask(size int) *gg.Pixmap {
	pm := gg.NewPixmap(size, size)
	pm.Clear(gg.Black)
	data := pm.Data()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			switch x % 4 {
			case 0, 1:
				data[i], data[i+1], data[i+2] = 255, 255, 255
			case 2:
				data[i], data[i+1], data[i+2] = 49, 49, 49
			}
		}
	}
	return pm
}

var kinds = []params.ModulationType{
	params.ModulationNone,
	params.ModulationGradient,
	params.ModulationPerlin,
	params.ModulationWave,
	params.ModulationFractal,
}

func TestZeroAmplitudeIsFlat(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	mask := stripedMask(64)

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			p := params.Defaults(params.AlignedFibers)
			p.HeightModulationType = kind
			p.HeightModulationAmplitude = 0
			p.HeightModulationFrequency = 7

			out := m.Modulate(mask, &p, 3)
			data := out.Data()
			for i := 0; i < len(data); i += 4 {
				x := (i / 4) % 64
				if x%4 >= 2 {
					continue
				}
				if data[i] != 255 || data[i+3] != 255 {
					t.Fatalf("pixel %d mismatch: got (%d,%d), want (255,255)", i/4, data[i], data[i+3])
				}
			}
		})
	}
}

func TestVoidPropagation(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	mask := stripedMask(32)

	for _, kind := range kinds {
		p := params.Defaults(params.AlignedFibers)
		p.HeightModulationType = kind
		p.HeightModulationAmplitude = 0.8

		out := m.Modulate(mask, &p, 1).Data()
		src := mask.Data()
		for i := 0; i < len(src); i += 4 {
			if src[i] < VoidThreshold {
				assert.Equal(t, []uint8{0, 0, 0, 0}, out[i:i+4], "kind %s pixel %d", kind, i/4)
			} else {
				assert.Equal(t, uint8(255), out[i+3])
				assert.Equal(t, out[i], out[i+1])
				assert.Equal(t, out[i], out[i+2])
			}
		}
	}
}

func TestGradientHeights(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	p := params.Defaults(params.AlignedFibers)
	p.HeightModulationType = params.ModulationGradient
	p.HeightModulationAmplitude = 1
	p.HeightModulationGradientAngle = 0

	height := m.Field(&p, 0)
	assert.InDelta(t, 0.0, height(0, 0.3), 1e-12)
	assert.InDelta(t, 0.5, height(0.5, 0.9), 1e-12)
	assert.InDelta(t, 0.75, height(0.75, 0.1), 1e-12)

	// 90 degrees runs top to bottom
	p.HeightModulationGradientAngle = 90
	assert.InDelta(t, 0.75, m.Field(&p, 0)(0.1, 0.75), 1e-12)

	// half amplitude keeps a floor of 0.5
	p.HeightModulationGradientAngle = 0
	p.HeightModulationAmplitude = 0.5
	assert.InDelta(t, 0.5, m.Field(&p, 0)(0, 0), 1e-12)
}

func TestWaveHeights(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	p := params.Defaults(params.AlignedFibers)
	p.HeightModulationType = params.ModulationWave
	p.HeightModulationAmplitude = 1
	p.HeightModulationFrequency = 1

	height := m.Field(&p, 0)
	assert.InDelta(t, 0.5, height(0, 0), 1e-12)
	assert.InDelta(t, 1.0, height(0.25, 0), 1e-12)
	assert.InDelta(t, 0.0, height(0.75, 0), 1e-12)
}

func TestHeightsStayInRange(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	for _, kind := range kinds {
		p := params.Defaults(params.AlignedFibers)
		p.HeightModulationType = kind
		p.HeightModulationAmplitude = 1
		p.HeightModulationFrequency = 13
		p.HeightModulationGradientAngle = 45
		height := m.Field(&p, 9)
		for i := 0; i <= 20; i++ {
			v := height(float64(i)/20, float64(20-i)/20)
			assert.False(t, math.IsNaN(v))
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestFractalFieldIsSeeded(t *testing.T) {
	m := NewModulator(noise.NewClassic())
	p := params.Defaults(params.AlignedFibers)
	p.HeightModulationType = params.ModulationFractal
	p.HeightModulationAmplitude = 1
	p.HeightModulationFrequency = 5

	a, b, c := m.Field(&p, 4), m.Field(&p, 4), m.Field(&p, 5)
	differs := false
	for i := 0; i < 16; i++ {
		nx, ny := float64(i)/16+0.03, float64(15-i)/16+0.07
		assert.Equal(t, a(nx, ny), b(nx, ny))
		if a(nx, ny) != c(nx, ny) {
			differs = true
		}
	}
	assert.True(t, differs)
}

func TestFromSurface(t *testing.T) {
	pm := gg.NewPixmap(3, 1)
	data := pm.Data()
	copy(data, []uint8{
		255, 255, 255, 255,
		51, 51, 51, 255,
		200, 200, 200, 0,
	})

	hf := FromSurface(pm, 50)
	require.Equal(t, 3, hf.Width)
	assert.InDelta(t, 50.0, hf.At(0, 0), 1e-12)
	assert.InDelta(t, 10.0, hf.At(1, 0), 1e-12)
	assert.Equal(t, 0.0, hf.At(2, 0))
	assert.Equal(t, 0.0, hf.At(-1, 0))
	assert.Equal(t, 0.0, hf.At(0, 1))
	assert.Equal(t, 2, hf.Solid())
}
