package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"ScaffoldGen/internal/compositor"
	"ScaffoldGen/internal/mesh"
	"ScaffoldGen/internal/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func TestSuffix(t *testing.T) {
	p := params.Defaults(params.Lamellar)
	assert.Equal(t, "", suffix(&p, 0))

	p.MaterialCount = 3
	assert.Equal(t, "_mat1", suffix(&p, 0))
	assert.Equal(t, "_mat3", suffix(&p, 2))
}

func TestSelected(t *testing.T) {
	p := params.Defaults(params.Lamellar)
	p.MaterialCount = 3
	assert.Equal(t, []int{0, 1, 2}, selected(&p, compositor.AllMaterials))
	assert.Equal(t, []int{1}, selected(&p, 1))
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()

	design := "templateId: lamellar\nwidth: 1000\nheight: 1000\nthickness: 40\n" +
		"fiberSpacing: 400\nlamellaeWidth: 60\nmaterialCount: 2\nseed: 5\n"
	designPath := filepath.Join(dir, "design.yaml")
	require.NoError(t, os.WriteFile(designPath, []byte(design), 0o644))

	out := filepath.Join(dir, "run")
	err := run(options{
		paramsPath:   designPath,
		out:          out,
		format:       "tiff",
		stl:          "binary",
		gzip:         true,
		preview:      true,
		material:     compositor.AllMaterials,
		maxTriangles: mesh.DefaultMaxTriangles,
	})
	require.NoError(t, err)

	for _, name := range []string{"run_preview.tiff", "run_mat1.tiff", "run_mat2.tiff"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		img, err := tiff.Decode(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, 512, img.Bounds().Dx())
	}

	f, err := os.Open(out + "_mat1.stl.gz")
	require.NoError(t, err)
	defer f.Close()
	gzReader, err := gzip.NewReader(f)
	require.NoError(t, err)
	m, err := mesh.ReadBinary(gzReader)
	require.NoError(t, err)
	assert.Positive(t, m.Len())
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	err := run(options{
		template:     string(params.AlignedFibers),
		out:          filepath.Join(t.TempDir(), "x"),
		format:       "bmp",
		material:     compositor.AllMaterials,
		maxTriangles: mesh.DefaultMaxTriangles,
	})
	assert.Error(t, err)
}
