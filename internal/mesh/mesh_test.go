package mesh

import (
	"bytes"
	"compress/gzip"
	"math"
	"strings"
	"testing"

	"ScaffoldGen/internal/heightmap"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatField(n int, h float64) *heightmap.Heightfield {
	hf := heightmap.NewHeightfield(n, n)
	for i := range hf.Values {
		hf.Values[i] = h
	}
	return hf
}

func centroid(t Triangle) mgl64.Vec3 {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Mul(1.0 / 3)
}

func allAt(t Triangle, z float64) bool {
	return t.V[0].Z() == z && t.V[1].Z() == z && t.V[2].Z() == z
}

func TestFlatGridFaceCounts(t *testing.T) {
	const n = 4
	const h = 5.0

	m, err := NewExtruder().Extrude(flatField(n, h), n, n)
	require.NoError(t, err)

	// tops for every cell, bottoms for the 4n-4 boundary cells, 4n walls
	want := 2 * (n*n + (4*n - 4) + 4*n)
	if m.Len() != want {
		t.Fatalf("triangle count mismatch: got %d, want %d", m.Len(), want)
	}

	var top, bottom, wall int
	for _, tri := range m.Triangles {
		switch {
		case allAt(tri, h):
			top++
		case allAt(tri, 0):
			bottom++
		default:
			wall++
		}
	}
	assert.Equal(t, 2*n*n, top)
	assert.Equal(t, 2*(4*n-4), bottom)
	assert.Equal(t, 2*4*n, wall)
}

func TestNormalsPointOutward(t *testing.T) {
	const n = 4
	const h = 5.0

	m, err := NewExtruder().Extrude(flatField(n, h), 8, 8)
	require.NoError(t, err)

	center := mgl64.Vec3{4, 4, h / 2}
	for i, tri := range m.Triangles {
		out := centroid(tri).Sub(center)
		if tri.Normal.Dot(out) <= 0 {
			t.Fatalf("triangle %d faces inward: normal %v at %v", i, tri.Normal, centroid(tri))
		}
	}
}

func TestNormalIsUnnormalizedCross(t *testing.T) {
	tri := newTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{0, 3, 0})
	assert.Equal(t, mgl64.Vec3{0, 0, 6}, tri.Normal)
}

func TestYAxisIsInverted(t *testing.T) {
	hf := heightmap.NewHeightfield(4, 4)
	hf.Set(0, 0, 2)

	m, err := NewExtruder().Extrude(hf, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 12, m.Len())

	lo, hi := m.Bounds()
	assert.Equal(t, mgl64.Vec3{0, 3, 0}, lo)
	assert.Equal(t, mgl64.Vec3{1, 4, 2}, hi)
}

func TestStepWalls(t *testing.T) {
	hf := heightmap.NewHeightfield(2, 1)
	hf.Set(0, 0, 10)
	hf.Set(1, 0, 5)

	m, err := NewExtruder().Extrude(hf, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 22, m.Len())

	// the step between the cells is one wall at x=1 from 5 to 10
	var step []Triangle
	for _, tri := range m.Triangles {
		if tri.V[0].X() == 1 && tri.V[1].X() == 1 && tri.V[2].X() == 1 {
			step = append(step, tri)
		}
	}
	require.Len(t, step, 2)
	for _, tri := range step {
		assert.Greater(t, tri.Normal.X(), 0.0)
		for _, v := range tri.V {
			assert.Contains(t, []float64{5, 10}, v.Z())
		}
	}
}

func TestEmptyField(t *testing.T) {
	m, err := NewExtruder().Extrude(heightmap.NewHeightfield(8, 8), 1, 1)
	require.NoError(t, err)
	assert.Zero(t, m.Len())

	lo, hi := m.Bounds()
	assert.Equal(t, mgl64.Vec3{}, lo)
	assert.Equal(t, mgl64.Vec3{}, hi)
}

func TestTriangleBudget(t *testing.T) {
	hf := flatField(4, 1)

	_, err := (&Extruder{MaxTriangles: 87}).Extrude(hf, 4, 4)
	assert.ErrorIs(t, err, ErrTooComplex)

	m, err := (&Extruder{MaxTriangles: 88}).Extrude(hf, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 88, m.Len())

	// zero falls back to the default budget
	_, err = (&Extruder{}).Extrude(hf, 4, 4)
	assert.NoError(t, err)
}

func TestWriteASCII(t *testing.T) {
	m := &Mesh{Triangles: []Triangle{
		newTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}),
		{Normal: mgl64.Vec3{math.Copysign(0, -1), 0.5, 1e-7}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, m))

	want := strings.Join([]string{
		"solid scaffold",
		"facet normal 0 0 1",
		"  outer loop",
		"    vertex 0 0 0",
		"    vertex 1 0 0",
		"    vertex 0 1 0",
		"  endloop",
		"endfacet",
		"facet normal 0 0.5 1e-07",
		"  outer loop",
		"    vertex 0 0 0",
		"    vertex 0 0 0",
		"    vertex 0 0 0",
		"  endloop",
		"endfacet",
		"endsolid scaffold",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBinary(t *testing.T) {
	m, err := NewExtruder().Extrude(flatField(3, 2.5), 1.5, 1.5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, Binary, false))
	if buf.Len() != BinarySize(m.Len()) {
		t.Fatalf("binary size mismatch: got %d, want %d", buf.Len(), BinarySize(m.Len()))
	}
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("binary STL scaffold")))

	decoded, err := ReadBinary(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Len(), decoded.Len())
	for i := range m.Triangles {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, m.Triangles[i].Normal[j], decoded.Triangles[i].Normal[j], 1e-5)
			for k := 0; k < 3; k++ {
				assert.InDelta(t, m.Triangles[i].V[k][j], decoded.Triangles[i].V[k][j], 1e-5)
			}
		}
	}
}

func TestWriteGzip(t *testing.T) {
	m, err := NewExtruder().Extrude(flatField(2, 1), 2, 2)
	require.NoError(t, err)

	for _, format := range []Format{ASCII, Binary} {
		t.Run(format.String(), func(t *testing.T) {
			var plain, packed bytes.Buffer
			require.NoError(t, Write(&plain, m, format, false))
			require.NoError(t, Write(&packed, m, format, true))

			gzReader, err := gzip.NewReader(&packed)
			require.NoError(t, err)
			defer gzReader.Close()

			var unpacked bytes.Buffer
			_, err = unpacked.ReadFrom(gzReader)
			require.NoError(t, err)
			assert.Equal(t, plain.Bytes(), unpacked.Bytes())
		})
	}
}

func TestReadBinaryTruncated(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader(make([]byte, 40)))
	assert.Error(t, err)

	var buf bytes.Buffer
	m := &Mesh{Triangles: []Triangle{{}, {}}}
	require.NoError(t, WriteBinary(&buf, m))
	_, err = ReadBinary(bytes.NewReader(buf.Bytes()[:buf.Len()-10]))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"ascii", ASCII, false},
		{"", ASCII, false},
		{"BINARY", Binary, false},
		{"obj", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
