package heightfield

import (
	"math"
	"math/rand"
	"testing"
)

func flatlandParams() Params {
	p := DefaultParams()
	p.WarpStrength = 0
	p.TerraceSteps = 1
	p.Rivers = false
	p.Craters = false
	p.OceanBias = 0
	return p
}

func TestHeightDeterministicForSeed(t *testing.T) {
	p := DefaultParams()
	p.Rivers = true
	p.Craters = true

	a := New(p)
	b := New(p)

	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 1000; i++ {
		u := rng.Float64()
		v := rng.Float64()
		if got, want := a.Height(u, v), b.Height(u, v); got != want {
			t.Fatalf("height mismatch at (%f, %f): %f vs %f", u, v, got, want)
		}
	}
}

func TestBaseSignalBoundedByHeightScale(t *testing.T) {
	p := flatlandParams()
	p.HeightScale = 1
	g := New(p)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 5000; i++ {
		u := rng.Float64()
		v := rng.Float64()
		h := g.Height(u, v)
		if h < -p.HeightScale || h > p.HeightScale {
			t.Fatalf("base signal escaped [-%f, %f] at (%f, %f): %f", p.HeightScale, p.HeightScale, u, v, h)
		}
	}
}

func TestSurfaceHeightClampsToSeaLevel(t *testing.T) {
	p := flatlandParams()
	p.SeaLevel = 0.1
	g := New(p)
	sea := g.SeaHeight()

	clamped := 0
	for i := 0; i < 64; i++ {
		for j := 0; j < 64; j++ {
			u := float64(i) / 64
			v := float64(j) / 64
			raw := g.Height(u, v)
			surf := g.SurfaceHeight(u, v)
			if raw < sea {
				clamped++
				if surf != sea {
					t.Fatalf("surface at (%f, %f) should sit at sea level %f, got %f", u, v, sea, surf)
				}
			} else if surf != raw {
				t.Fatalf("surface above sea should match raw height at (%f, %f): %f vs %f", u, v, surf, raw)
			}
		}
	}
	if clamped == 0 {
		t.Fatalf("expected the raised sea level to clamp at least one sample")
	}
}

func TestSurfacePointMatchesSurfaceHeight(t *testing.T) {
	g := New(DefaultParams())

	p := g.SurfacePoint(0.3, 0.7)
	if p.X() != 0.3 || p.Z() != 0.7 {
		t.Fatalf("surface point keeps the query coordinates, got %v", p)
	}
	if want := float32(g.SurfaceHeight(0.3, 0.7)); p.Y() != want {
		t.Fatalf("surface point height mismatch: %f vs %f", p.Y(), want)
	}
}

func TestTerracePlateausAreFlat(t *testing.T) {
	const steps = 4
	const smooth = 0.1

	// both inputs fall on the same plateau, away from the midpoint ramp
	a := Terrace(0.30, steps, smooth)
	b := Terrace(0.33, steps, smooth)
	if a != b {
		t.Fatalf("plateau should be flat: %f vs %f", a, b)
	}
	if want := 1.0 / steps; a != want {
		t.Fatalf("plateau level mismatch: got %f want %f", a, want)
	}
}

func TestTerraceMidpointStaysNearBand(t *testing.T) {
	const steps = 4
	const smooth = 0.15

	mid := (1 + 0.5) / float64(steps)
	got := Terrace(mid, steps, smooth)
	if math.Abs(got-1.0/steps) > smooth {
		t.Fatalf("midpoint drifted beyond the ramp: got %f", got)
	}
}

func TestTerraceSingleStepIsIdentity(t *testing.T) {
	for _, h := range []float64{0, 0.25, 0.5, 0.99} {
		if got := Terrace(h, 1, 0.15); got != h {
			t.Fatalf("one step should pass through: got %f want %f", got, h)
		}
	}
}

func TestRiversOnlyLowerTerrain(t *testing.T) {
	base := flatlandParams()
	carved := base
	carved.Rivers = true

	g0 := New(base)
	g1 := New(carved)

	lowered := 0
	for i := 0; i < 48; i++ {
		for j := 0; j < 48; j++ {
			u := float64(i) / 48
			v := float64(j) / 48
			h0 := g0.Height(u, v)
			h1 := g1.Height(u, v)
			if h1 > h0+1e-12 {
				t.Fatalf("river carving raised terrain at (%f, %f): %f -> %f", u, v, h0, h1)
			}
			if h1 < h0-1e-9 {
				lowered++
			}
		}
	}
	if lowered == 0 {
		t.Fatalf("expected river carving to lower at least one sample")
	}
}

func TestCraterCenterDropsByFullDepth(t *testing.T) {
	base := flatlandParams()
	cratered := base
	cratered.Craters = true

	g0 := New(base)
	g1 := New(cratered)

	// reconstruct the crater center of cell (1, 1) from the shared hash
	rx, ry := g1.Source().CellValue2(1, 1)
	cx := (1 + rx) / cratered.CraterDensity
	cy := (1 + ry) / cratered.CraterDensity

	drop := g0.Height(cx, cy) - g1.Height(cx, cy)
	want := cratered.CraterDepth * cratered.HeightScale
	if math.Abs(drop-want) > 1e-9 {
		t.Fatalf("crater center drop mismatch: got %f want %f", drop, want)
	}

	// far from every center the field must be untouched
	faru, farv := cx+1.5/cratered.CraterDensity, cy
	farDrop := g0.Height(faru, farv) - g1.Height(faru, farv)
	if farDrop >= want {
		t.Fatalf("expected a weaker drop away from the center, got %f", farDrop)
	}
}

func TestOceanBiasShiftsField(t *testing.T) {
	base := flatlandParams()
	biased := base
	biased.OceanBias = 0.3

	g0 := New(base)
	g1 := New(biased)

	want := biased.OceanBias * biased.HeightScale
	for _, uv := range [][2]float64{{0.1, 0.2}, {0.5, 0.5}, {0.9, 0.3}} {
		diff := g0.Height(uv[0], uv[1]) - g1.Height(uv[0], uv[1])
		if math.Abs(diff-want) > 1e-9 {
			t.Fatalf("ocean bias shift mismatch at %v: got %f want %f", uv, diff, want)
		}
	}
}
