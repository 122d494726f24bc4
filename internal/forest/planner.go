// Package forest lays vegetation and rocks over a height field. Trees are
// planned in clusters, filtered by sea level, slope and biome weight, then
// grown through the L-system engine and pushed into flat instance lists.
package forest

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"terrascape/internal/heightfield"
	"terrascape/internal/lsystem"
)

// Instance caps bound the GPU upload buffers. Generation stops cleanly when
// the next tree would overflow either list.
const (
	MaxBranchInstances = 800000
	MaxLeafInstances   = 1600000
)

const (
	centerAttempts    = 32
	maxPlacementSlope = 0.96
	minGrassWeight    = 0.18
	slopeSampleStep   = 1.0 / 512.0

	// folds the render-side terrain model scale into local units
	treeScale = 2.0
)

// Params are the vegetation controls. The slider values are normalized to
// [0,1]; out-of-range input is clamped.
type Params struct {
	Coverage    float64
	TreeSize    float64
	LeafDensity float64
	Seed        int64
}

// DefaultParams is a moderately forested island.
func DefaultParams() Params {
	return Params{Coverage: 0.35, TreeSize: 0.5, LeafDensity: 0.5, Seed: 1337}
}

// Result aggregates every accepted tree.
type Result struct {
	Branches []lsystem.BranchInstance
	Leaves   []lsystem.LeafInstance

	// TreeSites records one surface point per placed tree, for diagnostics
	// and placement checks.
	TreeSites []mgl32.Vec3

	ClustersPlanned int
	ClustersSkipped int
	TreesPlaced     int
	CapReached      bool
}

// grammarVariants are the canopy shapes a tree can draw; F always doubles.
var grammarVariants = []string{
	"F[+FX][-FX][&FX][^FX]FX",
	"F[+F&X][-F^X][+FX][&FX]X",
	"F[+FX[&X]][-FX[^X]][&FX[+X]][^FX[-X]]X",
}

func baseTreeParams() lsystem.Params {
	return lsystem.Params{
		Iterations:     4,
		StepLength:     0.055,
		BaseAngleDeg:   30,
		AngleJitterDeg: 15,
		BaseRadius:     0.018,
		RadiusDecay:    0.75,
		LeafDensity:    1,
	}
}

// Plan samples cluster centers on the height field, grows trees around the
// viable ones and returns the aggregated instance lists. One seeded stream
// drives the whole layout, so equal inputs replay the exact forest.
func Plan(gen *heightfield.Generator, p Params) *Result {
	cov01 := clamp01(p.Coverage)
	size01 := clamp01(p.TreeSize)
	leaf01 := clamp01(p.LeafDensity)

	rng := rand.New(rand.NewSource(p.Seed))

	clusterCount := 12 + int(mix(40, 160, cov01))
	treesMin := 4 + int(mix(3, 10, size01))
	treesMax := treesMin + 4
	clusterRadiusBase := mix(0.10, 0.03, cov01)

	heightScale := gen.Params().HeightScale
	seaLimit := gen.Params().SeaLevel + 0.02*heightScale

	res := &Result{ClustersPlanned: clusterCount}

clusters:
	for c := 0; c < clusterCount; c++ {
		var centerU, centerV float64
		found := false
		for attempt := 0; attempt < centerAttempts && !found; attempt++ {
			u := rng.Float64()
			v := rng.Float64()
			if gen.SurfaceHeight(u, v) > seaLimit {
				centerU, centerV = u, v
				found = true
			}
		}
		if !found {
			res.ClustersSkipped++
			continue
		}

		clusterRadius := clusterRadiusBase * (0.7 + 0.6*rng.Float64())
		trees := treesMin + rng.Intn(treesMax-treesMin+1)

		for k := 0; k < trees; k++ {
			angle := 2 * math.Pi * rng.Float64()
			dist := clusterRadius * math.Sqrt(rng.Float64())
			u := clamp01(centerU + dist*math.Cos(angle))
			v := clamp01(centerV + dist*math.Sin(angle))

			y := gen.SurfaceHeight(u, v)
			if y <= seaLimit {
				continue
			}
			slope := SurfaceSlope(gen, u, v)
			if slope > maxPlacementSlope {
				continue
			}
			hNorm := clamp01((y - gen.Params().SeaLevel) / math.Max(heightScale, 1e-6))
			if heightfield.GrassWeight(hNorm, slope) < minGrassWeight {
				continue
			}

			tp := randomTreeParams(rng, size01, leaf01)
			rules := lsystem.Rules{
				'X': grammarVariants[rng.Intn(len(grammarVariants))],
				'F': "FF",
			}
			tree := lsystem.Generate(tp, "X", rules, rng)
			if len(tree.Branches) == 0 {
				continue
			}

			if len(res.Branches)+len(tree.Branches) > MaxBranchInstances ||
				len(res.Leaves)+len(tree.Leaves) > MaxLeafInstances {
				res.CapReached = true
				break clusters
			}

			scale := mix(0.12, 0.28, size01) * (0.8 + 0.4*rng.Float64()) * treeScale
			yaw := 2 * math.Pi * rng.Float64()
			tiltX := mgl32.DegToRad(float32((rng.Float64() - 0.5) * 8))
			tiltZ := mgl32.DegToRad(float32((rng.Float64() - 0.5) * 8))

			model := mgl32.Translate3D(float32(u), float32(y), float32(v)).
				Mul4(mgl32.HomogRotate3D(float32(yaw), mgl32.Vec3{0, 1, 0})).
				Mul4(mgl32.HomogRotate3D(tiltZ, mgl32.Vec3{0, 0, 1})).
				Mul4(mgl32.HomogRotate3D(tiltX, mgl32.Vec3{1, 0, 0})).
				Mul4(mgl32.Scale3D(float32(scale), float32(scale), float32(scale)))

			bushScale := float32(0.20 * (0.7 + 0.6*rng.Float64()))
			for _, b := range tree.Branches {
				res.Branches = append(res.Branches, lsystem.BranchInstance{
					Model:  model.Mul4(b.Model),
					Radius: b.Radius * bushScale,
				})
			}
			for _, leaf := range tree.Leaves {
				res.Leaves = append(res.Leaves, lsystem.LeafInstance{Model: model.Mul4(leaf.Model)})
			}

			res.TreeSites = append(res.TreeSites, mgl32.Vec3{float32(u), float32(y), float32(v)})
			res.TreesPlaced++
		}
	}

	return res
}

// randomTreeParams jitters the base tree around the size and leaf sliders.
func randomTreeParams(rng *rand.Rand, size01, leaf01 float64) lsystem.Params {
	tp := baseTreeParams()
	tp.StepLength *= (0.85 + 0.5*rng.Float64()) * mix(0.7, 1.4, size01)
	tp.BaseRadius *= mix(0.7, 1.3, size01)
	if size01 > 0.5 && rng.Float64() < 0.5 {
		tp.Iterations = 3
	} else {
		tp.Iterations = 2
	}
	tp.BaseAngleDeg += (rng.Float64() - 0.5) * 12
	tp.AngleJitterDeg *= 0.7 + 0.6*rng.Float64()
	tp.RadiusDecay = clampRange(tp.RadiusDecay+(rng.Float64()-0.5)*0.2, 0.6, 0.95)
	tp.LeafDensity = mix(0.5, 2.0, leaf01)
	return tp
}

// SurfaceSlope estimates steepness at (u, v) from finite differences of the
// sea-clamped surface height. 0 is flat, 1 vertical.
func SurfaceSlope(gen *heightfield.Generator, u, v float64) float64 {
	h0 := gen.SurfaceHeight(u, v)
	hdx := gen.SurfaceHeight(clamp01(u+slopeSampleStep), v)
	hdz := gen.SurfaceHeight(u, clamp01(v+slopeSampleStep))

	// n = normalize(cross(dz, dx)) with dx and dz the tangent steps
	nx := -slopeSampleStep * (hdx - h0)
	ny := slopeSampleStep * slopeSampleStep
	nz := -slopeSampleStep * (hdz - h0)
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l < 1e-18 {
		return 0
	}
	return clamp01(1 - ny/l)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
