// Package noise implements seeded 2D gradient noise backed by a fixed
// lookup table of unit gradients. Every query is a pure function of the
// coordinates and the seed, so results never depend on call order.
package noise

import (
	"math"
	"math/rand"
)

// tableSize is the number of precomputed gradients. Integer cells hash into
// the table, so variation comes from hash mixing rather than table size.
const tableSize = 1024

// Source samples deterministic gradient noise for one seed.
type Source struct {
	seed  int64
	table [tableSize][2]float64
}

// NewSource fills the gradient table from a seeded stream. Two sources with
// the same seed are interchangeable.
func NewSource(seed int64) *Source {
	s := &Source{seed: seed}
	rng := rand.New(rand.NewSource(seed))
	for i := range s.table {
		angle := 2 * math.Pi * rng.Float64()
		s.table[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}
	return s
}

// Seed returns the seed the source was built with.
func (s *Source) Seed() int64 {
	return s.seed
}

// CellHash mixes integer cell coordinates with the seed into a well spread
// 32-bit value. Crater stamping reuses it as a general per-cell hash.
func (s *Source) CellHash(cx, cy int) uint32 {
	h := uint32(cx*374761393+cy*668265263) ^ uint32(s.seed*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// GradientAt returns the unit gradient assigned to an integer cell.
func (s *Source) GradientAt(cx, cy int) (float64, float64) {
	g := s.table[s.CellHash(cx, cy)%tableSize]
	return g[0], g[1]
}

// CellValue2 maps the cell gradient into [0,1] per component, handy as a
// deterministic per-cell random pair.
func (s *Source) CellValue2(cx, cy int) (float64, float64) {
	gx, gy := s.GradientAt(cx, cy)
	return 0.5 + 0.5*gx, 0.5 + 0.5*gy
}

// Noise2 samples gradient noise at (x, y). The result is continuous across
// cell boundaries and stays within [-1, 1].
func (s *Source) Noise2(x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))

	fx := x - float64(x0)
	fy := y - float64(y0)

	d00 := s.cornerDot(x0, y0, fx, fy)
	d10 := s.cornerDot(x0+1, y0, fx-1, fy)
	d01 := s.cornerDot(x0, y0+1, fx, fy-1)
	d11 := s.cornerDot(x0+1, y0+1, fx-1, fy-1)

	u := smooth(fx)
	v := smooth(fy)

	bottom := lerp(d00, d10, u)
	top := lerp(d01, d11, u)
	return lerp(bottom, top, v)
}

func (s *Source) cornerDot(cx, cy int, ox, oy float64) float64 {
	gx, gy := s.GradientAt(cx, cy)
	return gx*ox + gy*oy
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
