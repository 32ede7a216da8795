// Package compositor merges per-material height rasters for preview or export.
package compositor

import (
	"errors"
	"fmt"
	"math"

	"ScaffoldGen/internal/heightmap"
	"ScaffoldGen/internal/logger"
	"ScaffoldGen/internal/params"
	"ScaffoldGen/internal/pattern"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
)

type Mode int

const (
	// Preview tints every material and blends them with a per-channel max
	// over a dark background.
	Preview Mode = iota
	// Export keeps raw heights; later materials overwrite earlier ones.
	Export
)

func (m Mode) String() string {
	switch m {
	case Preview:
		return "preview"
	case Export:
		return "export"
	default:
		return "unknown"
	}
}

// AllMaterials requests every material layer.
const AllMaterials = -1

var ErrMaterialOutOfRange = errors.New("material index out of range")

// Palette tints preview layers, cycled by material index.
var Palette = [][3]uint8{
	{248, 113, 113},
	{96, 165, 250},
	{52, 211, 153},
	{251, 191, 36},
	{167, 139, 250},
	{232, 121, 249},
}

// Background is the opaque preview fill (#111827).
var Background = [3]uint8{0x11, 0x18, 0x27}

// Compositor drives rasterization and modulation per material.
type Compositor struct {
	modulator *heightmap.Modulator
}

func New(m *heightmap.Modulator) *Compositor {
	return &Compositor{modulator: m}
}

// Layer renders the height raster of one material in isolation.
func (c *Compositor) Layer(p *params.ScaffoldParams, material int, seed int64) (*gg.Pixmap, error) {
	count := p.Materials()
	if material < 0 || material >= count {
		return nil, fmt.Errorf("%w: %d of %d", ErrMaterialOutOfRange, material, count)
	}

	mask, err := pattern.Rasterize(p, pattern.Layer{Index: material, Count: count}, seed)
	if err != nil {
		return nil, err
	}
	return c.modulator.Modulate(mask, p, seed), nil
}

// Render composites the requested materials. material is an index or
// AllMaterials.
func (c *Compositor) Render(p *params.ScaffoldParams, mode Mode, material int, seed int64) (*gg.Pixmap, error) {
	materials, err := selectMaterials(p, material)
	if err != nil {
		return nil, err
	}

	out := gg.NewPixmap(pattern.Size, pattern.Size)
	if mode == Preview {
		out.Clear(gg.RGB(
			float64(Background[0])/255,
			float64(Background[1])/255,
			float64(Background[2])/255,
		))
	}

	for _, m := range materials {
		layer, err := c.Layer(p, m, seed)
		if err != nil {
			return nil, err
		}

		var solid int
		switch mode {
		case Preview:
			solid = lighten(out, layer, Palette[m%len(Palette)])
		case Export:
			solid = overwrite(out, layer)
		default:
			return nil, fmt.Errorf("unknown compositing mode %d", mode)
		}

		logger.Log.Debug("Composited material",
			zap.Stringer("mode", mode),
			zap.Int("material", m),
			zap.Int("solidPixels", solid))
	}
	return out, nil
}

func selectMaterials(p *params.ScaffoldParams, material int) ([]int, error) {
	count := p.Materials()
	if material == AllMaterials {
		all := make([]int, count)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if material < 0 || material >= count {
		return nil, fmt.Errorf("%w: %d of %d", ErrMaterialOutOfRange, material, count)
	}
	return []int{material}, nil
}

// lighten tints the solid pixels of layer and keeps the brighter channel.
func lighten(dst, layer *gg.Pixmap, tint [3]uint8) int {
	d := dst.Data()
	s := layer.Data()
	solid := 0
	for i := 0; i < len(s); i += 4 {
		if s[i+3] == 0 {
			continue
		}
		solid++
		g := float64(s[i]) / 255
		for ch := 0; ch < 3; ch++ {
			v := uint8(math.Round(g * float64(tint[ch])))
			if v > d[i+ch] {
				d[i+ch] = v
			}
		}
		d[i+3] = 255
	}
	return solid
}

// overwrite copies the solid pixels of layer onto dst.
func overwrite(dst, layer *gg.Pixmap) int {
	d := dst.Data()
	s := layer.Data()
	solid := 0
	for i := 0; i < len(s); i += 4 {
		if s[i+3] == 0 {
			continue
		}
		solid++
		copy(d[i:i+4], s[i:i+4])
	}
	return solid
}
