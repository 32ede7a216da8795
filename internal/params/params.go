package params

import (
	"fmt"

	"github.com/google/uuid"
)

type TemplateID string

const (
	SerpentineMesh   TemplateID = "serpentine-mesh"
	AlignedFibers    TemplateID = "aligned-fibers"
	WavyChannels     TemplateID = "wavy-channels"
	RadialSpokes     TemplateID = "radial-spokes"
	PorousNetwork    TemplateID = "porous-network"
	GridGradient     TemplateID = "grid-gradient"
	ConcentricRings  TemplateID = "concentric-rings"
	MicropillarArray TemplateID = "micropillar-array"
	CrosshatchGrid   TemplateID = "crosshatch-grid"
	Tunnels          TemplateID = "tunnels"
	Lamellar         TemplateID = "lamellar"
	Dendritic        TemplateID = "dendritic"
	Honeycomb        TemplateID = "honeycomb"
	Equiaxed         TemplateID = "equiaxed"
	Cellular         TemplateID = "cellular"
	SinusoidalFibers TemplateID = "sinusoidal-fibers"
	Vortex           TemplateID = "vortex"
	Maze             TemplateID = "maze"
	ScherkTower      TemplateID = "scherk-tower"
	TJunction        TemplateID = "t-junction"
)

type TransformID string

const (
	TransformNone   TransformID = "none"
	TransformTwist  TransformID = "twist"
	TransformPinch  TransformID = "pinch"
	TransformRipple TransformID = "ripple"
)

type ModulationType string

const (
	ModulationNone     ModulationType = "none"
	ModulationGradient ModulationType = "gradient"
	ModulationPerlin   ModulationType = "perlin"
	ModulationWave     ModulationType = "wave"
	ModulationFractal  ModulationType = "fractal"
)

// MaxMaterials bounds materialCount.
const MaxMaterials = 16

// ScaffoldParams is the complete configuration of one design. Lengths are in
// micrometers. The rendering core only reads it.
type ScaffoldParams struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	TemplateID  TemplateID  `json:"templateId" yaml:"templateId"`
	TransformID TransformID `json:"transformId" yaml:"transformId"`

	// Template geometry
	FiberSpacing              float64 `json:"fiberSpacing" yaml:"fiberSpacing"`
	ChannelWidth              float64 `json:"channelWidth" yaml:"channelWidth"`
	WaveAmplitude             float64 `json:"waveAmplitude" yaml:"waveAmplitude"`
	WaveFrequency             float64 `json:"waveFrequency" yaml:"waveFrequency"`
	SpokeCount                float64 `json:"spokeCount" yaml:"spokeCount"`
	PoreSize                  float64 `json:"poreSize" yaml:"poreSize"`
	PoreSizeVariance          float64 `json:"poreSizeVariance" yaml:"poreSizeVariance"`
	Porosity                  float64 `json:"porosity" yaml:"porosity"`
	GradientStart             float64 `json:"gradientStart" yaml:"gradientStart"`
	GradientEnd               float64 `json:"gradientEnd" yaml:"gradientEnd"`
	RingSpacing               float64 `json:"ringSpacing" yaml:"ringSpacing"`
	RingWidth                 float64 `json:"ringWidth" yaml:"ringWidth"`
	PillarDiameter            float64 `json:"pillarDiameter" yaml:"pillarDiameter"`
	PillarSpacing             float64 `json:"pillarSpacing" yaml:"pillarSpacing"`
	WallThickness             float64 `json:"wallThickness" yaml:"wallThickness"`
	LamellaeWidth             float64 `json:"lamellaeWidth" yaml:"lamellaeWidth"`
	BranchAngle               float64 `json:"branchAngle" yaml:"branchAngle"`
	BranchLengthFactor        float64 `json:"branchLengthFactor" yaml:"branchLengthFactor"`
	DendriteIterations        float64 `json:"dendriteIterations" yaml:"dendriteIterations"`
	BranchThickness           float64 `json:"branchThickness" yaml:"branchThickness"`
	HexagonSize               float64 `json:"hexagonSize" yaml:"hexagonSize"`
	CellDensity               float64 `json:"cellDensity" yaml:"cellDensity"`
	VortexStrength            float64 `json:"vortexStrength" yaml:"vortexStrength"`
	SpiralDensity             float64 `json:"spiralDensity" yaml:"spiralDensity"`
	MazePathWidth             float64 `json:"mazePathWidth" yaml:"mazePathWidth"`
	ScherkFrequency           float64 `json:"scherkFrequency" yaml:"scherkFrequency"`
	JunctionSeparation        float64 `json:"junctionSeparation" yaml:"junctionSeparation"`
	JunctionHeight            float64 `json:"junctionHeight" yaml:"junctionHeight"`
	TunnelWidth               float64 `json:"tunnelWidth" yaml:"tunnelWidth"`
	SerpentinePathWidth       float64 `json:"serpentinePathWidth" yaml:"serpentinePathWidth"`
	SerpentineArcRadius       float64 `json:"serpentineArcRadius" yaml:"serpentineArcRadius"`
	SerpentineConnectorLength float64 `json:"serpentineConnectorLength" yaml:"serpentineConnectorLength"`
	SerpentineRowSpacing      float64 `json:"serpentineRowSpacing" yaml:"serpentineRowSpacing"`

	// Spatial warp
	TransformStrength float64 `json:"transformStrength" yaml:"transformStrength"`

	// Height modulation
	HeightModulationType          ModulationType `json:"heightModulationType" yaml:"heightModulationType"`
	HeightModulationAmplitude     float64        `json:"heightModulationAmplitude" yaml:"heightModulationAmplitude"`
	HeightModulationFrequency     float64        `json:"heightModulationFrequency" yaml:"heightModulationFrequency"`
	HeightModulationGradientAngle float64        `json:"heightModulationGradientAngle" yaml:"heightModulationGradientAngle"`
	HeightModulationOctaves       int            `json:"heightModulationOctaves" yaml:"heightModulationOctaves"`

	// Physical extent
	Thickness float64 `json:"thickness" yaml:"thickness"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`

	MaterialCount int `json:"materialCount" yaml:"materialCount"`

	// Seed drives scatter and maze templates. Zero asks the host for a fresh
	// seed on every render.
	Seed int64 `json:"seed" yaml:"seed"`
}

// New returns a fresh design for the template with default values and a new id.
func New(id TemplateID) (*ScaffoldParams, error) {
	t, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	p := Defaults(id)
	p.ID = uuid.NewString()
	p.Name = fmt.Sprintf("New %s Design", t.Name)
	return &p, nil
}

// Materials returns the effective material count; zero means one.
func (p *ScaffoldParams) Materials() int {
	if p.MaterialCount < 1 {
		return 1
	}
	return p.MaterialCount
}

// Clone returns a copy that can be edited without touching p.
func (p *ScaffoldParams) Clone() *ScaffoldParams {
	c := *p
	return &c
}
