// Package scene runs the full content pipeline and owns its products: the
// terrain mesh, the vegetation and rock instance lists and the flat buffers
// a renderer uploads.
package scene

import (
	"terrascape/internal/config"
	"terrascape/internal/forest"
	"terrascape/internal/heightfield"
	"terrascape/internal/lsystem"
)

// Scene is one fully generated island.
type Scene struct {
	Heights *heightfield.Generator
	Terrain heightfield.Mesh
	Forest  *forest.Result
	Rocks   *forest.RockResult
	Stats   Stats
}

// Stats summarizes a generation run for logging and the preview endpoint.
type Stats struct {
	TerrainVertices int  `json:"terrainVertices"`
	BranchCount     int  `json:"branchCount"`
	LeafCount       int  `json:"leafCount"`
	RockCount       int  `json:"rockCount"`
	TreesPlaced     int  `json:"treesPlaced"`
	ClustersPlanned int  `json:"clustersPlanned"`
	ClustersSkipped int  `json:"clustersSkipped"`
	CapReached      bool `json:"capReached"`
}

// Assemble generates terrain, forest and rocks from one configuration.
// Generation is synchronous; callers wanting overlap run Assemble on their
// own goroutine and swap the result in whole.
func Assemble(cfg *config.Config) *Scene {
	gen := heightfield.New(terrainParams(cfg.Terrain))

	mesh := gen.BuildMesh(cfg.Mesh.Resolution)

	trees := forest.Plan(gen, forest.Params{
		Coverage:    cfg.Vegetation.Coverage,
		TreeSize:    cfg.Vegetation.TreeSize,
		LeafDensity: cfg.Vegetation.LeafDensity,
		Seed:        cfg.Vegetation.Seed,
	})

	rocks := forest.ScatterRocks(gen, forest.RockParams{
		Count: cfg.Rocks.Count,
		Seed:  cfg.Rocks.Seed,
	})

	return &Scene{
		Heights: gen,
		Terrain: mesh,
		Forest:  trees,
		Rocks:   rocks,
		Stats: Stats{
			TerrainVertices: mesh.VertexCount(),
			BranchCount:     len(trees.Branches),
			LeafCount:       len(trees.Leaves),
			RockCount:       len(rocks.Rocks),
			TreesPlaced:     trees.TreesPlaced,
			ClustersPlanned: trees.ClustersPlanned,
			ClustersSkipped: trees.ClustersSkipped,
			CapReached:      trees.CapReached,
		},
	}
}

func terrainParams(tc config.TerrainConfig) heightfield.Params {
	return heightfield.Params{
		Seed:           tc.Seed,
		Octaves:        tc.Octaves,
		BaseFreq:       tc.BaseFrequency,
		Lacunarity:     tc.Lacunarity,
		Gain:           tc.Gain,
		HeightScale:    tc.HeightScale,
		WarpStrength:   tc.WarpStrength,
		TerraceSteps:   tc.TerraceSteps,
		TerraceSmooth:  tc.TerraceSmoothing,
		Rivers:         tc.Rivers,
		RiverFreq:      tc.RiverFrequency,
		RiverSharpness: tc.RiverSharpness,
		RiverThreshold: tc.RiverThreshold,
		RiverDepth:     tc.RiverDepth,
		Craters:        tc.Craters,
		CraterDensity:  tc.CraterDensity,
		CraterRadius:   tc.CraterRadius,
		CraterDepth:    tc.CraterDepth,
		SeaLevel:       tc.SeaLevel,
		OceanBias:      tc.OceanBias,
	}
}

// BranchTransforms flattens branch models into column-major float32 data,
// 16 floats per instance, ready for an instanced attribute upload.
func BranchTransforms(branches []lsystem.BranchInstance) []float32 {
	out := make([]float32, 0, len(branches)*16)
	for _, b := range branches {
		out = append(out, b.Model[:]...)
	}
	return out
}

// BranchRadii extracts the per-instance radius stream matching
// BranchTransforms element for element.
func BranchRadii(branches []lsystem.BranchInstance) []float32 {
	out := make([]float32, 0, len(branches))
	for _, b := range branches {
		out = append(out, b.Radius)
	}
	return out
}

// LeafTransforms flattens leaf models, 16 floats per instance.
func LeafTransforms(leaves []lsystem.LeafInstance) []float32 {
	out := make([]float32, 0, len(leaves)*16)
	for _, l := range leaves {
		out = append(out, l.Model[:]...)
	}
	return out
}

// RockTransforms flattens rock models, 16 floats per instance.
func RockTransforms(rocks []forest.RockInstance) []float32 {
	out := make([]float32, 0, len(rocks)*16)
	for _, r := range rocks {
		out = append(out, r.Model[:]...)
	}
	return out
}
