// Package heightfield turns layered gradient noise into an island height
// field with optional warping, terraces, river carving and impact craters,
// plus the terrain mesh and biome weighting built on top of it.
package heightfield

// Params is an immutable snapshot of the terrain controls. A Generator is
// built from one snapshot; changing parameters means building a new one.
type Params struct {
	Seed int64

	Octaves    int
	BaseFreq   float64
	Lacunarity float64
	Gain       float64

	HeightScale  float64
	WarpStrength float64

	TerraceSteps  int
	TerraceSmooth float64

	Rivers         bool
	RiverFreq      float64
	RiverSharpness float64
	RiverThreshold float64
	RiverDepth     float64

	Craters       bool
	CraterDensity float64
	CraterRadius  float64
	CraterDepth   float64

	SeaLevel  float64
	OceanBias float64
}

// DefaultParams returns a gently hilly island with rivers and craters off.
func DefaultParams() Params {
	return Params{
		Seed:           1230,
		Octaves:        4,
		BaseFreq:       0.25,
		Lacunarity:     2.0,
		Gain:           0.5,
		HeightScale:    0.6,
		WarpStrength:   0.25,
		TerraceSteps:   1,
		TerraceSmooth:  0.15,
		RiverFreq:      0.8,
		RiverSharpness: 1.5,
		RiverThreshold: 0.85,
		RiverDepth:     0.2,
		CraterDensity:  4,
		CraterRadius:   0.05,
		CraterDepth:    0.32,
		SeaLevel:       -0.1,
	}
}
