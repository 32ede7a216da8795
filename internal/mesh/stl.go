package mesh

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Format selects the STL encoding.
type Format int

const (
	ASCII Format = iota
	Binary
)

func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseFormat accepts "ascii" or "binary", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return ASCII, nil
	case "binary":
		return Binary, nil
	default:
		return 0, fmt.Errorf("unknown STL format %q", s)
	}
}

// SolidName names the ASCII solid block.
const SolidName = "scaffold"

const (
	headerSize = 80
	recordSize = 50
)

// binaryRecord is one facet as laid out on disk.
type binaryRecord struct {
	Normal   [3]float32
	Vertices [3][3]float32
	Attr     uint16
}

// Write encodes m in the given format, optionally gzip-compressed.
func Write(w io.Writer, m *Mesh, format Format, compress bool) error {
	if !compress {
		return write(w, m, format)
	}

	gzWriter := gzip.NewWriter(w)
	if err := write(gzWriter, m, format); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}

func write(w io.Writer, m *Mesh, format Format) error {
	switch format {
	case ASCII:
		return WriteASCII(w, m)
	case Binary:
		return WriteBinary(w, m)
	default:
		return fmt.Errorf("unknown STL format %d", format)
	}
}

// WriteASCII writes a "solid scaffold" block with one facet per triangle.
func WriteASCII(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("solid " + SolidName + "\n")
	for _, t := range m.Triangles {
		bw.WriteString("facet normal " + formatVec(t.Normal) + "\n")
		bw.WriteString("  outer loop\n")
		for _, v := range t.V {
			bw.WriteString("    vertex " + formatVec(v) + "\n")
		}
		bw.WriteString("  endloop\n")
		bw.WriteString("endfacet\n")
	}
	bw.WriteString("endsolid " + SolidName + "\n")

	return bw.Flush()
}

func formatVec(v mgl64.Vec3) string {
	return formatFloat(v[0]) + " " + formatFloat(v[1]) + " " + formatFloat(v[2])
}

// formatFloat prints the shortest exact form and folds -0 into 0.
func formatFloat(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteBinary writes the 80-byte header, the facet count and one 50-byte
// record per triangle, little endian.
func WriteBinary(w io.Writer, m *Mesh) error {
	if uint64(len(m.Triangles)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d triangles do not fit binary STL", ErrTooComplex, len(m.Triangles))
	}

	bw := bufio.NewWriter(w)

	var header [headerSize]byte
	copy(header[:], "binary STL "+SolidName)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}

	for _, t := range m.Triangles {
		rec := binaryRecord{Normal: toFloat32(t.Normal)}
		for i, v := range t.V {
			rec.Vertices[i] = toFloat32(v)
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func toFloat32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// ReadBinary decodes a binary STL stream. Coordinates come back at float32
// precision.
func ReadBinary(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)

	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read STL header: %w", err)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read facet count: %w", err)
	}

	m := &Mesh{Triangles: make([]Triangle, 0, min(int(count), DefaultMaxTriangles))}
	for i := uint32(0); i < count; i++ {
		var rec binaryRecord
		if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("facet %d: %w", i, err)
		}
		t := Triangle{Normal: toFloat64(rec.Normal)}
		for j, v := range rec.Vertices {
			t.V[j] = toFloat64(v)
		}
		m.Triangles = append(m.Triangles, t)
	}
	return m, nil
}

func toFloat64(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// BinarySize is the encoded length of an uncompressed binary STL.
func BinarySize(triangles int) int {
	return headerSize + 4 + recordSize*triangles
}
