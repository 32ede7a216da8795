// Package scaffold is the host-facing entry point: it renders designs to
// rasters and exports them as meshes.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"ScaffoldGen/internal/compositor"
	"ScaffoldGen/internal/heightmap"
	"ScaffoldGen/internal/logger"
	"ScaffoldGen/internal/mesh"
	"ScaffoldGen/internal/noise"
	"ScaffoldGen/internal/params"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
)

// ErrExportFailed is the single failure reported by mesh export. The
// underlying cause stays reachable through errors.Is.
var ErrExportFailed = errors.New("export failed, design may be too complex")

type Option func(*Generator)

// WithMaxTriangles sets the per-mesh triangle budget.
func WithMaxTriangles(n int) Option {
	return func(g *Generator) {
		g.extruder.MaxTriangles = n
	}
}

// WithSeedSource replaces the source of fresh seeds used when a design
// carries seed 0.
func WithSeedSource(next func() int64) Option {
	return func(g *Generator) {
		g.seeds = next
	}
}

// Generator renders and exports designs. It holds no per-call state and is
// safe for concurrent use as long as the seed source is.
type Generator struct {
	compositor *compositor.Compositor
	extruder   *mesh.Extruder
	seeds      func() int64
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		compositor: compositor.New(heightmap.NewModulator(noise.NewClassic())),
		extruder:   mesh.NewExtruder(),
		seeds:      freshSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func freshSeed() int64 {
	for {
		if s := rand.Int63(); s != 0 {
			return s
		}
	}
}

// Seed resolves the seed of one render call.
func (g *Generator) Seed(p *params.ScaffoldParams) int64 {
	if p.Seed != 0 {
		return p.Seed
	}
	return g.seeds()
}

// prepare validates a private copy so the caller's record is never touched.
func prepare(p *params.ScaffoldParams) (*params.ScaffoldParams, error) {
	q := p.Clone()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Render composites the design. material is an index or
// compositor.AllMaterials.
func (g *Generator) Render(p *params.ScaffoldParams, mode compositor.Mode, material int) (*gg.Pixmap, error) {
	q, err := prepare(p)
	if err != nil {
		return nil, err
	}
	return g.render(q, mode, material, g.Seed(q))
}

func (g *Generator) render(p *params.ScaffoldParams, mode compositor.Mode, material int, seed int64) (*gg.Pixmap, error) {
	logger.Log.Debug("Rendering design",
		zap.String("template", string(p.TemplateID)),
		zap.Stringer("mode", mode),
		zap.Int("material", material),
		zap.Int64("seed", seed))
	return g.compositor.Render(p, mode, material, seed)
}

// RenderPreview renders every material tinted over the preview background.
func (g *Generator) RenderPreview(p *params.ScaffoldParams) (*gg.Pixmap, error) {
	return g.Render(p, compositor.Preview, compositor.AllMaterials)
}

// ExportRasters returns one isolated export raster per material, all drawn
// from the same seed.
func (g *Generator) ExportRasters(p *params.ScaffoldParams) ([]*gg.Pixmap, error) {
	q, err := prepare(p)
	if err != nil {
		return nil, err
	}
	seed := g.Seed(q)

	out := make([]*gg.Pixmap, q.Materials())
	for m := range out {
		if out[m], err = g.render(q, compositor.Export, m, seed); err != nil {
			return nil, fmt.Errorf("material %d: %w", m+1, err)
		}
	}
	return out, nil
}

// ExportMesh extrudes the export raster of one material, or of the merged
// design for compositor.AllMaterials. Any failure past validation,
// including a panic, is reported as ErrExportFailed.
func (g *Generator) ExportMesh(p *params.ScaffoldParams, material int) (*mesh.Mesh, error) {
	q, err := prepare(p)
	if err != nil {
		return nil, err
	}
	return g.exportMesh(q, material, g.Seed(q))
}

// ExportMeshes extrudes one mesh per material from a shared seed.
func (g *Generator) ExportMeshes(p *params.ScaffoldParams) ([]*mesh.Mesh, error) {
	q, err := prepare(p)
	if err != nil {
		return nil, err
	}
	seed := g.Seed(q)

	out := make([]*mesh.Mesh, q.Materials())
	for m := range out {
		if out[m], err = g.exportMesh(q, m, seed); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *Generator) exportMesh(p *params.ScaffoldParams, material int, seed int64) (m *mesh.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: %v", ErrExportFailed, r)
		}
		if err != nil {
			logger.Log.Error("Mesh export failed",
				zap.String("template", string(p.TemplateID)),
				zap.Int("material", material),
				zap.Error(err))
		}
	}()

	raster, err := g.render(p, compositor.Export, material, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	hf := heightmap.FromSurface(raster, p.Thickness)
	m, err = g.extruder.Extrude(hf, p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return m, nil
}

// WriteSTL serializes m and reports the number of bytes written.
func (g *Generator) WriteSTL(w io.Writer, m *mesh.Mesh, format mesh.Format, gzip bool) (int64, error) {
	cw := &countingWriter{w: w}
	if err := mesh.Write(cw, m, format, gzip); err != nil {
		return cw.n, err
	}

	logger.Log.Info("Wrote STL",
		zap.Stringer("format", format),
		zap.Bool("gzip", gzip),
		zap.Int("triangles", m.Len()),
		zap.Int64("bytes", cw.n))
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
