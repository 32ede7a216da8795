package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Source produces coherent 2D noise roughly in [-1, 1].
type Source interface {
	Noise2D(x, y float64) float64
}

// Ken Perlin's reference permutation
var permutation = [256]int{151, 160, 137, 91, 90, 15,
	131, 13, 201, 95, 96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23,
	190, 6, 148, 247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57, 177, 33,
	88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74, 165, 71, 134, 139, 48, 27, 166,
	77, 146, 158, 231, 83, 111, 229, 122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244,
	102, 143, 54, 65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169, 200, 196,
	135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64, 52, 217, 226, 250, 124, 123,
	5, 202, 38, 147, 118, 126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42,
	223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228,
	251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14, 239, 107,
	49, 192, 214, 31, 181, 199, 106, 157, 184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254,
	138, 236, 205, 93, 222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180}

// Classic is 2D gradient noise over the reference permutation table.
// The table is filled once in NewClassic and only read afterwards, so a
// single value can be shared between goroutines.
type Classic struct {
	perm [512]int // doubled to avoid wrapping
}

// NewClassic creates the reference noise table.
func NewClassic() *Classic {
	c := &Classic{}
	for i := 0; i < 256; i++ {
		c.perm[i] = permutation[i]
		c.perm[256+i] = permutation[i]
	}
	return c
}

// quintic 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise2D evaluates the noise at (x, y). Integer lattice points map to 0.
func (c *Classic) Noise2D(x, y float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	p := &c.perm
	A := p[X] + Y
	B := p[X+1] + Y

	return lerp(v,
		lerp(u, grad(p[A], x, y), grad(p[B], x-1, y)),
		lerp(u, grad(p[A+1], x, y-1), grad(p[B+1], x-1, y-1)),
	)
}

// Fractal is seeded multi-octave noise.
type Fractal struct {
	p *perlin.Perlin
}

const (
	fractalAlpha = 2.0
	fractalBeta  = 2.0
)

// NewFractal creates a fractal source; octaves below 1 are raised to 1.
func NewFractal(octaves int, seed int64) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	return &Fractal{p: perlin.NewPerlin(fractalAlpha, fractalBeta, int32(octaves), seed)}
}

// Noise2D returns the summed octaves clamped to [-1, 1].
func (f *Fractal) Noise2D(x, y float64) float64 {
	return math.Max(-1, math.Min(1, f.p.Noise2D(x, y)))
}
