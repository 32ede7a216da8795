package heightmap

import "github.com/gogpu/gg"

// Heightfield is a grid of physical heights, row-major from the top row.
// Zero marks void.
type Heightfield struct {
	Width  int
	Height int
	Values []float64
}

// NewHeightfield allocates an all-void field.
func NewHeightfield(width, height int) *Heightfield {
	return &Heightfield{Width: width, Height: height, Values: make([]float64, width*height)}
}

// At returns the height at (x, y); outside the grid counts as void.
func (hf *Heightfield) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= hf.Width || y >= hf.Height {
		return 0
	}
	return hf.Values[y*hf.Width+x]
}

func (hf *Heightfield) Set(x, y int, v float64) {
	hf.Values[y*hf.Width+x] = v
}

// Solid counts cells with positive height.
func (hf *Heightfield) Solid() int {
	n := 0
	for _, v := range hf.Values {
		if v > 0 {
			n++
		}
	}
	return n
}

// FromSurface reads heights from a height raster: red/255 of thickness,
// or 0 where alpha is 0.
func FromSurface(pm *gg.Pixmap, thickness float64) *Heightfield {
	hf := NewHeightfield(pm.Width(), pm.Height())
	data := pm.Data()
	for i := range hf.Values {
		if data[i*4+3] == 0 {
			continue
		}
		hf.Values[i] = float64(data[i*4]) / 255 * thickness
	}
	return hf
}
