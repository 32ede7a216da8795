package pattern

import (
	"math/rand"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

func init() {
	RegisterRasterizer(params.Tunnels, drawTunnels)
	RegisterRasterizer(params.TJunction, drawTJunction)
}

// Primitive ids of the t-junction.
const (
	LeftChamber  = 0
	RightChamber = 1
	JunctionTube = 2
)

// drawTunnels fills bands of channelWidth repeating every
// channelWidth+wallThickness. Both band edges are sampled per pixel row.
func drawTunnels(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	period := (p.ChannelWidth + p.WallThickness) * d.ScaleX
	channel := p.ChannelWidth * d.ScaleX
	if !(period > 0) || !(channel > 0) {
		return nil
	}
	if err := d.Reserve(d.W/period); err != nil {
		return err
	}

	rows := int(d.H)
	for i := 0; float64(i)*period < d.W; i++ {
		x := float64(i) * period
		band := make([]mgl64.Vec2, 0, 2*(rows+1))
		for y := 0; y <= rows; y++ {
			band = append(band, mgl64.Vec2{x, float64(y)})
		}
		for y := rows; y >= 0; y-- {
			band = append(band, mgl64.Vec2{x + channel, float64(y)})
		}
		if err := d.Fill(i, band); err != nil {
			return err
		}
	}
	return nil
}

// drawTJunction fills two vertical chambers and the tunnel joining them,
// centered on the raster.
func drawTJunction(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	tunnel := p.TunnelWidth * d.ScaleX
	sep := p.JunctionSeparation * d.ScaleX
	height := p.JunctionHeight * d.ScaleY
	c := d.Center()

	chamberY := c.Y() - height/2
	leftX := c.X() - sep/2
	rightX := c.X() + sep/2 - tunnel

	if err := d.Rect(LeftChamber, leftX, chamberY, tunnel, height); err != nil {
		return err
	}
	if err := d.Rect(RightChamber, rightX, chamberY, tunnel, height); err != nil {
		return err
	}
	return d.Rect(JunctionTube, leftX, c.Y()-tunnel/2, sep, tunnel)
}
