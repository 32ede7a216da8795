// Package pattern rasterizes scaffold templates into white-on-black masks.
package pattern

import (
	"fmt"
	"math/rand"

	"ScaffoldGen/internal/logger"
	"ScaffoldGen/internal/params"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
)

// Size is the edge length of every raster surface.
const Size = 512

// Draw runs the template's rasterizer for one layer on c. The random
// source is rebuilt from seed so every layer of a render sees the same sites.
func Draw(c Canvas, p *params.ScaffoldParams, layer Layer, seed int64) error {
	r, ok := rasterizerFor(p.TemplateID)
	if !ok {
		return fmt.Errorf("%w: %q", params.ErrUnknownTemplate, p.TemplateID)
	}
	if !(p.Width > 0) || !(p.Height > 0) {
		return nil
	}

	d := NewDrawer(c, p, layer)
	rng := rand.New(rand.NewSource(seed))
	if err := r(d, p, rng); err != nil {
		return fmt.Errorf("rasterize %s: %w", p.TemplateID, err)
	}
	return nil
}

// Rasterize draws one material layer of a design on a fresh Size x Size mask.
func Rasterize(p *params.ScaffoldParams, layer Layer, seed int64) (*gg.Pixmap, error) {
	c := NewSurfaceCanvas(Size, Size)
	defer c.Close()

	if err := Draw(c, p, layer, seed); err != nil {
		return nil, err
	}

	logger.Log.Debug("Rasterized layer",
		zap.String("template", string(p.TemplateID)),
		zap.Int("material", layer.Index),
		zap.Int("materials", layer.Count))
	return c.Surface(), nil
}
