package scaffold

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"ScaffoldGen/internal/compositor"
	"ScaffoldGen/internal/mesh"
	"ScaffoldGen/internal/params"
	"ScaffoldGen/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lamellar(materials int) *params.ScaffoldParams {
	p := params.Defaults(params.Lamellar)
	p.Width, p.Height = pattern.Size, pattern.Size
	p.FiberSpacing = 64
	p.LamellaeWidth = 20
	p.MaterialCount = materials
	return &p
}

func TestSeedResolution(t *testing.T) {
	calls := 0
	g := NewGenerator(WithSeedSource(func() int64 {
		calls++
		return 7
	}))

	p := params.Defaults(params.PorousNetwork)
	assert.Equal(t, int64(7), g.Seed(&p))
	assert.Equal(t, 1, calls)

	p.Seed = 3
	assert.Equal(t, int64(3), g.Seed(&p))
	assert.Equal(t, 1, calls)
}

func TestFreshSeedPerRender(t *testing.T) {
	next := int64(0)
	g := NewGenerator(WithSeedSource(func() int64 {
		next++
		return next
	}))
	p := params.Defaults(params.PorousNetwork)

	a, err := g.Render(&p, compositor.Export, compositor.AllMaterials)
	require.NoError(t, err)
	b, err := g.Render(&p, compositor.Export, compositor.AllMaterials)
	require.NoError(t, err)
	assert.NotEqual(t, a.Data(), b.Data())

	p.Seed = 42
	a, err = g.Render(&p, compositor.Export, compositor.AllMaterials)
	require.NoError(t, err)
	b, err = g.Render(&p, compositor.Export, compositor.AllMaterials)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), b.Data())
}

func TestRenderLeavesParamsUntouched(t *testing.T) {
	g := NewGenerator()
	p := lamellar(0)
	p.TransformID = ""
	p.HeightModulationType = ""

	_, err := g.RenderPreview(p)
	require.NoError(t, err)
	assert.Equal(t, 0, p.MaterialCount)
	assert.Equal(t, params.TransformID(""), p.TransformID)
	assert.Equal(t, params.ModulationType(""), p.HeightModulationType)
}

func TestRenderRejectsInvalidParams(t *testing.T) {
	g := NewGenerator()

	p := lamellar(1)
	p.Thickness = 0
	_, err := g.RenderPreview(p)
	assert.ErrorIs(t, err, params.ErrInvalidValue)

	_, err = g.ExportMesh(p, 0)
	assert.ErrorIs(t, err, params.ErrInvalidValue)
	assert.False(t, errors.Is(err, ErrExportFailed))

	p = lamellar(1)
	p.TemplateID = "gyroid"
	_, err = g.ExportRasters(p)
	assert.ErrorIs(t, err, params.ErrUnknownTemplate)
}

func TestExportRastersPerMaterial(t *testing.T) {
	g := NewGenerator()

	rasters, err := g.ExportRasters(lamellar(3))
	require.NoError(t, err)
	require.Len(t, rasters, 3)

	// material layers are disjoint
	for i := 3; i < len(rasters[0].Data()); i += 4 {
		solid := 0
		for _, r := range rasters {
			if r.Data()[i] != 0 {
				solid++
			}
		}
		if solid > 1 {
			t.Fatalf("pixel %d owned by %d materials", i/4, solid)
		}
	}
}

func TestExportMesh(t *testing.T) {
	g := NewGenerator()
	p := lamellar(2)

	m, err := g.ExportMesh(p, 1)
	require.NoError(t, err)
	require.Positive(t, m.Len())

	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, lo.Z())
	assert.InDelta(t, p.Thickness, hi.Z(), 1e-9)
	assert.GreaterOrEqual(t, lo.X(), 0.0)
	assert.LessOrEqual(t, hi.X(), p.Width)
	assert.LessOrEqual(t, hi.Y(), p.Height)

	meshes, err := g.ExportMeshes(p)
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	assert.Equal(t, m.Len(), meshes[1].Len())
}

func TestExportMeshTooComplex(t *testing.T) {
	g := NewGenerator(WithMaxTriangles(100))

	_, err := g.ExportMesh(lamellar(1), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.ErrorIs(t, err, mesh.ErrTooComplex)
	assert.True(t, strings.HasPrefix(err.Error(), "export failed, design may be too complex"))
}

func TestOversizedDesignFailsFast(t *testing.T) {
	p, err := params.Parse([]byte(`{"templateId":"aligned-fibers","width":1000,"height":1000,"thickness":50,"fiberSpacing":0.00001}`))
	require.NoError(t, err)

	g := NewGenerator()
	_, err = g.Render(p, compositor.Export, compositor.AllMaterials)
	assert.ErrorIs(t, err, pattern.ErrTooComplex)

	_, err = g.ExportMesh(p, 0)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.ErrorIs(t, err, pattern.ErrTooComplex)
}

func TestExportMeshBadMaterial(t *testing.T) {
	g := NewGenerator()

	_, err := g.ExportMesh(lamellar(2), 5)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.ErrorIs(t, err, compositor.ErrMaterialOutOfRange)
}

func TestWriteSTL(t *testing.T) {
	g := NewGenerator()
	p := lamellar(1)
	p.FiberSpacing = 256

	m, err := g.ExportMesh(p, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := g.WriteSTL(&buf, m, mesh.Binary, false)
	require.NoError(t, err)
	assert.Equal(t, int64(mesh.BinarySize(m.Len())), n)
	assert.Equal(t, int64(buf.Len()), n)

	buf.Reset()
	_, err = g.WriteSTL(&buf, m, mesh.ASCII, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "solid scaffold\n"))
	assert.True(t, strings.HasSuffix(buf.String(), "endsolid scaffold\n"))
}
