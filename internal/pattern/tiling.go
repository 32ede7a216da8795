package pattern

import (
	"math"
	"math/rand"

	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
)

func init() {
	RegisterRasterizer(params.Honeycomb, drawHoneycomb)
	RegisterRasterizer(params.Maze, drawMaze)
}

// drawHoneycomb strokes pointy-top hexagons. Cells are numbered row by row
// with one running counter; odd rows are shifted by half a cell.
func drawHoneycomb(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	size := p.HexagonSize * d.ScaleX
	if !(size > 0) {
		return nil
	}
	hexW := math.Sqrt(3) * size
	hexH := 2 * size

	rowStep := hexH * 3 / 4
	if err := d.Reserve(((d.H+size)/rowStep + 1) * ((d.W+hexW)/hexW + 1)); err != nil {
		return err
	}

	index := 0
	for row := 0; float64(row)*rowStep < d.H+size; row++ {
		y := float64(row) * rowStep
		offset := 0.0
		if row%2 != 0 {
			offset = hexW / 2
		}
		for col := 0; float64(col)*hexW < d.W+hexW; col++ {
			center := mgl64.Vec2{float64(col)*hexW + offset, y}
			hex := make([]mgl64.Vec2, 6)
			for i := range hex {
				a := math.Pi/3*float64(i) + math.Pi/6
				hex[i] = center.Add(mgl64.Vec2{size * math.Cos(a), size * math.Sin(a)})
			}
			if err := d.Stroke(index, hex, true); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}

// drawMaze puts one wall per lattice cell, horizontal or vertical at
// random. A random draw is made for every cell so that all layers agree.
func drawMaze(d *Drawer, p *params.ScaffoldParams, rng *rand.Rand) error {
	pathWidth := p.MazePathWidth * d.ScaleX
	if !(pathWidth > 0) {
		return nil
	}
	cell := pathWidth * 2
	if err := d.Reserve(math.Floor(d.W/cell) * math.Floor(d.H/cell)); err != nil {
		return err
	}
	d.SetLineWidth(pathWidth)

	cols := int(math.Floor(d.W / cell))
	rows := int(math.Floor(d.H / cell))

	index := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := float64(c)*cell + cell/2
			y := float64(r)*cell + cell/2

			var wall []mgl64.Vec2
			if rng.Float64() > 0.5 {
				wall = segment(mgl64.Vec2{x - cell/2, y}, mgl64.Vec2{x + cell/2, y})
			} else {
				wall = segment(mgl64.Vec2{x, y - cell/2}, mgl64.Vec2{x, y + cell/2})
			}
			if err := d.Stroke(index, wall, false); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}
