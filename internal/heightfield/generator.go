package heightfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"terrascape/internal/noise"
)

// Generator evaluates the height field for one parameter snapshot. It is
// stateless after construction and safe for concurrent reads.
type Generator struct {
	params Params
	src    *noise.Source
}

// New builds a generator. Out-of-range shaping parameters are pinned to the
// nearest usable value rather than rejected; the field must always evaluate.
func New(p Params) *Generator {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.TerraceSteps < 1 {
		p.TerraceSteps = 1
	}
	return &Generator{params: p, src: noise.NewSource(p.Seed)}
}

// Params returns the snapshot the generator was built with.
func (g *Generator) Params() Params {
	return g.params
}

// Source exposes the underlying noise source, shared with crater stamping.
func (g *Generator) Source() *noise.Source {
	return g.src
}

// SeaHeight is the water surface height in final height units.
func (g *Generator) SeaHeight() float64 {
	return g.params.SeaLevel * g.params.HeightScale
}

// Height returns the raw terrain height at normalized coordinates. Values
// below the water surface keep their underwater shape.
func (g *Generator) Height(u, v float64) float64 {
	return g.height(u, v)
}

// SurfaceHeight reports the height with everything below the water surface
// raised to sea level. Placement logic must never see underwater terrain.
func (g *Generator) SurfaceHeight(u, v float64) float64 {
	h := g.height(u, v)
	if sea := g.SeaHeight(); h < sea {
		return sea
	}
	return h
}

// SurfacePoint returns the Y-up surface position for normalized (u, v).
func (g *Generator) SurfacePoint(u, v float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(u), float32(g.SurfaceHeight(u, v)), float32(v)}
}

func (g *Generator) height(u, v float64) float64 {
	p := g.params

	x, y := u, v
	if p.WarpStrength != 0 {
		wx := g.fbm(x*2+13.2, y*2+7.1, 3, 1, 2, 0.5)
		wy := g.fbm(x*2-9.7, y*2+5.4, 3, 1, 2, 0.5)
		x += p.WarpStrength * wx
		y += p.WarpStrength * wy
	}

	h := g.fbm(x, y, p.Octaves, p.BaseFreq, p.Lacunarity, p.Gain)

	if p.TerraceSteps > 1 {
		h01 := 0.5 * (h + 1)
		h = Terrace(h01, p.TerraceSteps, p.TerraceSmooth)*2 - 1
	}

	if p.Rivers {
		r := g.fbm(x*p.RiverFreq, y*p.RiverFreq, 4, 1, 2, 0.5)
		ridged := math.Pow(1-math.Abs(r), p.RiverSharpness)
		// inverted edges: the mask rises as ridged climbs past the threshold
		mask := smoothstep(p.RiverThreshold+riverChannelWidth, p.RiverThreshold, ridged)
		h -= p.RiverDepth * mask
	}

	if p.Craters && p.CraterDensity > 0 {
		h -= p.CraterDepth * g.craterField(x, y)
	}

	h -= p.OceanBias
	return h * p.HeightScale
}

const riverChannelWidth = 0.02

// fbm sums octaves of gradient noise and normalizes by the accumulated
// amplitude so the result stays in roughly [-1, 1] regardless of octaves.
func (g *Generator) fbm(x, y float64, octaves int, baseFreq, lacunarity, gain float64) float64 {
	freq := baseFreq
	amp := 1.0
	var sum, total float64
	for i := 0; i < octaves; i++ {
		sum += amp * g.src.Noise2(x*freq, y*freq)
		total += amp
		freq *= lacunarity
		amp *= gain
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Terrace quantizes h01 into equal bands. Each band is flat except for a
// smoothstep ramp of half-width smooth around the band midpoint, so plateaus
// connect without hard steps.
func Terrace(h01 float64, steps int, smooth float64) float64 {
	if steps <= 1 {
		return h01
	}
	x := h01 * float64(steps)
	i := math.Floor(x)
	f := x - i
	ramp := smoothstep(0.5-smooth, 0.5+smooth, f)
	return (i + ramp) / float64(steps)
}

// craterField returns the strongest bowl contribution from the 3x3 cell
// neighborhood, in [0, 1]. Centers and radii come from the same per-cell
// hash that drives the gradient lookup, so craters move with the seed.
func (g *Generator) craterField(x, y float64) float64 {
	p := g.params
	gx := x * p.CraterDensity
	gy := y * p.CraterDensity
	cellX := int(math.Floor(gx))
	cellY := int(math.Floor(gy))

	var crater float64
	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			cx := cellX + di
			cy := cellY + dj
			rx, ry := g.src.CellValue2(cx, cy)
			centerX := (float64(cx) + rx) / p.CraterDensity
			centerY := (float64(cy) + ry) / p.CraterDensity

			sizeJitter, _ := g.src.CellValue2(cx+73, cy-41)
			radius := p.CraterRadius * (0.6 + 0.8*sizeJitter)

			dist := math.Hypot(x-centerX, y-centerY)
			fall := smoothstep(radius, 0, dist)
			bowl := fall * (1 - dist/(radius+1e-6))
			if bowl > crater {
				crater = bowl
			}
		}
	}
	return crater
}

// smoothstep follows the GLSL contract, including swapped edges.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
