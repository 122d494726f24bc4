// Package config holds the generator configuration: terrain shaping, mesh
// tessellation, vegetation, rocks and the optional preview server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the root configuration tree. JSON is the on-disk format; the
// same structs decode YAML payloads delivered through the environment.
type Config struct {
	Terrain    TerrainConfig    `json:"terrain"`
	Mesh       MeshConfig       `json:"mesh"`
	Vegetation VegetationConfig `json:"vegetation"`
	Rocks      RockConfig       `json:"rocks"`
	Preview    PreviewConfig    `json:"preview"`
}

// TerrainConfig shapes the height field.
type TerrainConfig struct {
	Seed             int64   `json:"seed"`
	Octaves          int     `json:"octaves"`
	BaseFrequency    float64 `json:"baseFrequency"`
	Lacunarity       float64 `json:"lacunarity"`
	Gain             float64 `json:"gain"`
	HeightScale      float64 `json:"heightScale"`
	WarpStrength     float64 `json:"warpStrength"`
	TerraceSteps     int     `json:"terraceSteps"`
	TerraceSmoothing float64 `json:"terraceSmoothing"`
	Rivers           bool    `json:"rivers"`
	RiverFrequency   float64 `json:"riverFrequency"`
	RiverSharpness   float64 `json:"riverSharpness"`
	RiverThreshold   float64 `json:"riverThreshold"`
	RiverDepth       float64 `json:"riverDepth"`
	Craters          bool    `json:"craters"`
	CraterDensity    float64 `json:"craterDensity"`
	CraterRadius     float64 `json:"craterRadius"`
	CraterDepth      float64 `json:"craterDepth"`
	SeaLevel         float64 `json:"seaLevel"`
	OceanBias        float64 `json:"oceanBias"`
}

// MeshConfig controls terrain tessellation.
type MeshConfig struct {
	Resolution int `json:"resolution"`
}

// VegetationConfig drives the forest planner. The sliders run 0 to 1.
type VegetationConfig struct {
	Coverage    float64 `json:"coverage"`
	TreeSize    float64 `json:"treeSize"`
	LeafDensity float64 `json:"leafDensity"`
	Seed        int64   `json:"seed"`
}

// RockConfig drives the boulder scatter.
type RockConfig struct {
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
}

// PreviewConfig configures the diagnostic HTTP server. An empty listen
// address disables it unless the CLI overrides.
type PreviewConfig struct {
	Listen    string `json:"listen"`
	ImageSize int    `json:"imageSize"`
}

// Default returns the stock island scene.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Seed:             1230,
			Octaves:          4,
			BaseFrequency:    0.25,
			Lacunarity:       2.0,
			Gain:             0.5,
			HeightScale:      0.6,
			WarpStrength:     0.25,
			TerraceSteps:     1,
			TerraceSmoothing: 0.15,
			RiverFrequency:   0.8,
			RiverSharpness:   1.5,
			RiverThreshold:   0.85,
			RiverDepth:       0.2,
			CraterDensity:    4,
			CraterRadius:     0.05,
			CraterDepth:      0.32,
			SeaLevel:         -0.1,
		},
		Mesh: MeshConfig{
			Resolution: 256,
		},
		Vegetation: VegetationConfig{
			Coverage:    0.35,
			TreeSize:    0.5,
			LeafDensity: 0.5,
			Seed:        1337,
		},
		Rocks: RockConfig{
			Count: 300,
			Seed:  5678,
		},
		Preview: PreviewConfig{
			ImageSize: 512,
		},
	}
}

// Load reads a JSON configuration file and validates it. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run.
func (c *Config) Validate() error {
	if c.Terrain.Octaves <= 0 {
		return fmt.Errorf("terrain.octaves must be positive")
	}
	if c.Terrain.Lacunarity < 1 {
		return fmt.Errorf("terrain.lacunarity must be at least 1")
	}
	if c.Terrain.Gain <= 0 || c.Terrain.Gain > 1 {
		return fmt.Errorf("terrain.gain must be within (0, 1]")
	}
	if c.Terrain.HeightScale < 0 {
		return fmt.Errorf("terrain.heightScale cannot be negative")
	}
	if c.Terrain.TerraceSteps <= 0 {
		return fmt.Errorf("terrain.terraceSteps must be positive")
	}
	if c.Terrain.TerraceSmoothing < 0 || c.Terrain.TerraceSmoothing > 0.5 {
		return fmt.Errorf("terrain.terraceSmoothing must be within [0, 0.5]")
	}
	if c.Terrain.Rivers && c.Terrain.RiverSharpness <= 0 {
		return fmt.Errorf("terrain.riverSharpness must be positive")
	}
	if c.Terrain.Craters && c.Terrain.CraterDensity <= 0 {
		return fmt.Errorf("terrain.craterDensity must be positive")
	}
	if c.Mesh.Resolution < 2 {
		return fmt.Errorf("mesh.resolution must be at least 2")
	}
	if c.Vegetation.Coverage < 0 || c.Vegetation.Coverage > 1 {
		return fmt.Errorf("vegetation.coverage must be within [0, 1]")
	}
	if c.Vegetation.TreeSize < 0 || c.Vegetation.TreeSize > 1 {
		return fmt.Errorf("vegetation.treeSize must be within [0, 1]")
	}
	if c.Vegetation.LeafDensity < 0 || c.Vegetation.LeafDensity > 1 {
		return fmt.Errorf("vegetation.leafDensity must be within [0, 1]")
	}
	if c.Rocks.Count < 0 {
		return fmt.Errorf("rocks.count cannot be negative")
	}
	if c.Preview.ImageSize <= 0 {
		return fmt.Errorf("preview.imageSize must be positive")
	}
	return nil
}
