package scene

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// WriteBuffers exports the scene as raw little-endian float32 streams plus
// a stats summary, one file per buffer:
//
//	terrain.f32   interleaved terrain vertices
//	branches.f32  branch instance matrices
//	radii.f32     branch instance radii
//	leaves.f32    leaf instance matrices
//	rocks.f32     rock instance matrices
//	stats.json    generation summary
func (s *Scene) WriteBuffers(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	files := []struct {
		name string
		data []float32
	}{
		{"terrain.f32", s.Terrain.Vertices},
		{"branches.f32", BranchTransforms(s.Forest.Branches)},
		{"radii.f32", BranchRadii(s.Forest.Branches)},
		{"leaves.f32", LeafTransforms(s.Forest.Leaves)},
		{"rocks.f32", RockTransforms(s.Rocks.Rocks)},
	}
	for _, f := range files {
		if err := writeFloats(filepath.Join(dir, f.name), f.data); err != nil {
			return err
		}
	}

	stats, err := json.MarshalIndent(s.Stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stats.json"), stats, 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

func writeFloats(path string, data []float32) error {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
