package params

// Family groups templates by how they generate primitives.
type Family int

const (
	FamilyLine Family = iota
	FamilyPointScatter
	FamilyRadial
	FamilyRecursive
	FamilyCellularTiling
	FamilyChamber
)

func (f Family) String() string {
	switch f {
	case FamilyLine:
		return "line"
	case FamilyPointScatter:
		return "point-scatter"
	case FamilyRadial:
		return "radial"
	case FamilyRecursive:
		return "recursive"
	case FamilyCellularTiling:
		return "cellular-tiling"
	case FamilyChamber:
		return "chamber"
	default:
		return "unknown"
	}
}

// Template describes one entry of the template catalogue.
type Template struct {
	ID          TemplateID
	Name        string
	Family      Family
	Description string
	// Required lists the parameter keys that must be present in a loaded
	// document for this template.
	Required []string
}

// Templates is the catalogue in display order.
var Templates = []Template{
	{SerpentineMesh, "Serpentine Mesh", FamilyLine, "Rows of straight connectors joined by alternating arcs, a stretchable mesh.",
		[]string{"serpentinePathWidth", "serpentineArcRadius", "serpentineConnectorLength", "serpentineRowSpacing"}},
	{AlignedFibers, "Aligned Fibers", FamilyLine, "Parallel fibers for contact guidance.",
		[]string{"fiberSpacing"}},
	{Lamellar, "Lamellar", FamilyLine, "Parallel solid bands separated by gaps.",
		[]string{"fiberSpacing", "lamellaeWidth"}},
	{SinusoidalFibers, "Sinusoidal Fibers", FamilyLine, "Horizontal fibers following a sine path.",
		[]string{"fiberSpacing", "waveAmplitude", "waveFrequency"}},
	{WavyChannels, "Wavy Channels", FamilyLine, "Wide guidance channels with a sinusoidal course.",
		[]string{"fiberSpacing", "channelWidth", "waveAmplitude", "waveFrequency"}},
	{CrosshatchGrid, "Crosshatch Grid", FamilyLine, "Orthogonal fiber grid.",
		[]string{"fiberSpacing"}},
	{Dendritic, "Dendritic", FamilyRecursive, "Recursively branching tree.",
		[]string{"branchAngle", "branchLengthFactor", "dendriteIterations", "branchThickness"}},
	{RadialSpokes, "Radial Spokes", FamilyRadial, "Channels radiating from the center.",
		[]string{"spokeCount", "channelWidth"}},
	{Vortex, "Vortex", FamilyRadial, "Archimedean spiral, one arm per material.",
		[]string{"vortexStrength", "spiralDensity"}},
	{Maze, "Maze", FamilyCellularTiling, "One randomly oriented wall per lattice cell.",
		[]string{"mazePathWidth"}},
	{Honeycomb, "Honeycomb", FamilyCellularTiling, "Regular hexagon outlines on an offset row lattice.",
		[]string{"hexagonSize"}},
	{PorousNetwork, "Porous Network", FamilyPointScatter, "Uniformly scattered disks.",
		[]string{"poreSize", "porosity"}},
	{Equiaxed, "Equiaxed", FamilyPointScatter, "Scattered grains with per-grain size variance.",
		[]string{"poreSize", "poreSizeVariance", "porosity"}},
	{Cellular, "Cellular", FamilyPointScatter, "Irregular cell bodies with jittered outlines.",
		[]string{"cellDensity"}},
	{ScherkTower, "Scherk Tower", FamilyRadial, "Periodic minimal-surface cross-section.",
		[]string{"scherkFrequency"}},
	{GridGradient, "Grid Gradient", FamilyPointScatter, "Pore lattice with size graded left to right.",
		[]string{"gradientStart", "gradientEnd"}},
	{ConcentricRings, "Concentric Rings", FamilyRadial, "Rings around the center.",
		[]string{"ringSpacing", "ringWidth"}},
	{MicropillarArray, "Micropillar Array", FamilyPointScatter, "Regular lattice of pillars.",
		[]string{"pillarDiameter", "pillarSpacing"}},
	{Tunnels, "Tunnels", FamilyChamber, "Parallel filled channels separated by walls.",
		[]string{"channelWidth", "wallThickness"}},
	{TJunction, "T-Junction", FamilyChamber, "Two chambers joined by a tunnel.",
		[]string{"junctionSeparation", "junctionHeight", "tunnelWidth"}},
}

// Lookup finds a catalogue entry.
func Lookup(id TemplateID) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Defaults returns a complete record for the template with mid-range values.
func Defaults(id TemplateID) ScaffoldParams {
	p := ScaffoldParams{
		TemplateID:  id,
		TransformID: TransformNone,

		FiberSpacing:              50,
		ChannelWidth:              20,
		WaveAmplitude:             20,
		WaveFrequency:             0.05,
		SpokeCount:                16,
		PoreSize:                  40,
		PoreSizeVariance:          0.3,
		Porosity:                  0.6,
		GradientStart:             10,
		GradientEnd:               60,
		RingSpacing:               40,
		RingWidth:                 10,
		PillarDiameter:            20,
		PillarSpacing:             50,
		WallThickness:             20,
		LamellaeWidth:             20,
		BranchAngle:               30,
		BranchLengthFactor:        0.75,
		DendriteIterations:        5,
		BranchThickness:           6,
		HexagonSize:               30,
		CellDensity:               0.0005,
		VortexStrength:            5,
		SpiralDensity:             3,
		MazePathWidth:             20,
		ScherkFrequency:           6,
		JunctionSeparation:        300,
		JunctionHeight:            300,
		TunnelWidth:               40,
		SerpentinePathWidth:       8,
		SerpentineArcRadius:       25,
		SerpentineConnectorLength: 30,
		SerpentineRowSpacing:      80,

		TransformStrength: 0.5,

		HeightModulationType:          ModulationNone,
		HeightModulationAmplitude:     0.5,
		HeightModulationFrequency:     8,
		HeightModulationGradientAngle: 0,
		HeightModulationOctaves:       3,

		Thickness: 50,
		Width:     1000,
		Height:    1000,

		MaterialCount: 1,
	}

	switch id {
	case WavyChannels:
		p.FiberSpacing = 60
	case Lamellar, SinusoidalFibers:
		p.FiberSpacing = 60
	case CrosshatchGrid:
		p.FiberSpacing = 80
	case Tunnels:
		p.ChannelWidth = 60
	case RadialSpokes:
		p.ChannelWidth = 15
	case Equiaxed:
		p.Porosity = 0.5
	}
	return p
}
