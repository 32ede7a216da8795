package params

import (
	"math"
	"math/rand"
)

type fieldRange struct {
	set      func(p *ScaffoldParams, v float64)
	min, max float64
	isFloat  bool
}

func span(set func(p *ScaffoldParams, v float64), min, max float64) fieldRange {
	return fieldRange{set: set, min: min, max: max}
}

func spanF(set func(p *ScaffoldParams, v float64), min, max float64) fieldRange {
	return fieldRange{set: set, min: min, max: max, isFloat: true}
}

var (
	setFiberSpacing       = func(p *ScaffoldParams, v float64) { p.FiberSpacing = v }
	setChannelWidth       = func(p *ScaffoldParams, v float64) { p.ChannelWidth = v }
	setWaveAmplitude      = func(p *ScaffoldParams, v float64) { p.WaveAmplitude = v }
	setWaveFrequency      = func(p *ScaffoldParams, v float64) { p.WaveFrequency = v }
	setPoreSize           = func(p *ScaffoldParams, v float64) { p.PoreSize = v }
	setPorosity           = func(p *ScaffoldParams, v float64) { p.Porosity = v }
	setTunnelWidth        = func(p *ScaffoldParams, v float64) { p.TunnelWidth = v }
	setSerpentineArc      = func(p *ScaffoldParams, v float64) { p.SerpentineArcRadius = v }
	setSerpentinePath     = func(p *ScaffoldParams, v float64) { p.SerpentinePathWidth = v }
	setSerpentineLength   = func(p *ScaffoldParams, v float64) { p.SerpentineConnectorLength = v }
	setSerpentineRowSpace = func(p *ScaffoldParams, v float64) { p.SerpentineRowSpacing = v }
)

// randomRanges holds the geometric fields re-drawn per template.
var randomRanges = map[TemplateID][]fieldRange{
	AlignedFibers: {span(setFiberSpacing, 10, 80)},
	WavyChannels: {
		span(setFiberSpacing, 30, 100),
		span(setChannelWidth, 10, 50),
		span(setWaveAmplitude, 10, 80),
		spanF(setWaveFrequency, 0.01, 0.2),
	},
	RadialSpokes: {
		span(func(p *ScaffoldParams, v float64) { p.SpokeCount = v }, 4, 48),
		span(setChannelWidth, 5, 50),
	},
	PorousNetwork: {span(setPoreSize, 20, 80), spanF(setPorosity, 0.3, 0.7)},
	Equiaxed: {
		span(setPoreSize, 20, 80),
		spanF(func(p *ScaffoldParams, v float64) { p.PoreSizeVariance = v }, 0.1, 0.9),
		spanF(setPorosity, 0.3, 0.7),
	},
	GridGradient: {
		span(func(p *ScaffoldParams, v float64) { p.GradientStart = v }, 5, 50),
		span(func(p *ScaffoldParams, v float64) { p.GradientEnd = v }, 50, 150),
	},
	ConcentricRings: {
		span(func(p *ScaffoldParams, v float64) { p.RingSpacing = v }, 20, 80),
		span(func(p *ScaffoldParams, v float64) { p.RingWidth = v }, 5, 30),
	},
	MicropillarArray: {
		span(func(p *ScaffoldParams, v float64) { p.PillarDiameter = v }, 10, 50),
		span(func(p *ScaffoldParams, v float64) { p.PillarSpacing = v }, 20, 100),
	},
	CrosshatchGrid: {span(setFiberSpacing, 20, 100)},
	Tunnels: {
		span(setChannelWidth, 10, 150),
		span(func(p *ScaffoldParams, v float64) { p.WallThickness = v }, 5, 100),
	},
	Lamellar: {
		span(setFiberSpacing, 20, 100),
		span(func(p *ScaffoldParams, v float64) { p.LamellaeWidth = v }, 10, 50),
	},
	Dendritic: {
		span(func(p *ScaffoldParams, v float64) { p.BranchAngle = v }, 15, 75),
		spanF(func(p *ScaffoldParams, v float64) { p.BranchLengthFactor = v }, 0.6, 0.9),
		span(func(p *ScaffoldParams, v float64) { p.DendriteIterations = v }, 3, 6),
		span(func(p *ScaffoldParams, v float64) { p.BranchThickness = v }, 2, 8),
	},
	Honeycomb: {span(func(p *ScaffoldParams, v float64) { p.HexagonSize = v }, 15, 60)},
	Cellular:  {spanF(func(p *ScaffoldParams, v float64) { p.CellDensity = v }, 0.0001, 0.0015)},
	SinusoidalFibers: {
		span(setFiberSpacing, 20, 100),
		span(setWaveAmplitude, 5, 50),
		spanF(setWaveFrequency, 0.01, 0.2),
	},
	Vortex: {
		span(func(p *ScaffoldParams, v float64) { p.VortexStrength = v }, 2, 15),
		span(func(p *ScaffoldParams, v float64) { p.SpiralDensity = v }, 1, 8),
	},
	Maze:        {span(func(p *ScaffoldParams, v float64) { p.MazePathWidth = v }, 10, 50)},
	ScherkTower: {span(func(p *ScaffoldParams, v float64) { p.ScherkFrequency = v }, 2, 12)},
	TJunction: {
		span(func(p *ScaffoldParams, v float64) { p.JunctionSeparation = v }, 100, 400),
		span(func(p *ScaffoldParams, v float64) { p.JunctionHeight = v }, 100, 400),
		span(setTunnelWidth, 10, 80),
	},
	SerpentineMesh: {
		span(setSerpentinePath, 4, 20),
		span(setSerpentineArc, 10, 60),
		span(setSerpentineLength, 10, 80),
		span(setSerpentineRowSpace, 40, 150),
	},
}

var randomModulations = []ModulationType{ModulationNone, ModulationGradient, ModulationPerlin, ModulationWave}

// Randomize returns a variant of p with the active template's geometry,
// the warp strength and the height modulation re-drawn. p is not modified.
func Randomize(p *ScaffoldParams, rng *rand.Rand) *ScaffoldParams {
	out := p.Clone()

	draw := func(r fieldRange) {
		v := r.min + rng.Float64()*(r.max-r.min)
		if !r.isFloat {
			v = math.Round(v)
		}
		r.set(out, v)
	}

	for _, r := range randomRanges[out.TemplateID] {
		draw(r)
	}

	draw(spanF(func(p *ScaffoldParams, v float64) { p.TransformStrength = v }, 0.1, 0.8))
	out.HeightModulationType = randomModulations[rng.Intn(len(randomModulations))]
	draw(spanF(func(p *ScaffoldParams, v float64) { p.HeightModulationAmplitude = v }, 0.2, 1.0))
	draw(spanF(func(p *ScaffoldParams, v float64) { p.HeightModulationFrequency = v }, 2, 20))
	draw(span(func(p *ScaffoldParams, v float64) { p.HeightModulationGradientAngle = v }, 0, 360))

	return out
}
