package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "non positive octaves",
			mutate: func(cfg *Config) {
				cfg.Terrain.Octaves = 0
			},
			wantErr: "terrain.octaves must be positive",
		},
		{
			name: "lacunarity below one",
			mutate: func(cfg *Config) {
				cfg.Terrain.Lacunarity = 0.5
			},
			wantErr: "terrain.lacunarity must be at least 1",
		},
		{
			name: "gain out of range",
			mutate: func(cfg *Config) {
				cfg.Terrain.Gain = 1.5
			},
			wantErr: "terrain.gain must be within (0, 1]",
		},
		{
			name: "negative height scale",
			mutate: func(cfg *Config) {
				cfg.Terrain.HeightScale = -1
			},
			wantErr: "terrain.heightScale cannot be negative",
		},
		{
			name: "non positive terrace steps",
			mutate: func(cfg *Config) {
				cfg.Terrain.TerraceSteps = 0
			},
			wantErr: "terrain.terraceSteps must be positive",
		},
		{
			name: "river sharpness when rivers enabled",
			mutate: func(cfg *Config) {
				cfg.Terrain.Rivers = true
				cfg.Terrain.RiverSharpness = 0
			},
			wantErr: "terrain.riverSharpness must be positive",
		},
		{
			name: "crater density when craters enabled",
			mutate: func(cfg *Config) {
				cfg.Terrain.Craters = true
				cfg.Terrain.CraterDensity = 0
			},
			wantErr: "terrain.craterDensity must be positive",
		},
		{
			name: "tiny mesh resolution",
			mutate: func(cfg *Config) {
				cfg.Mesh.Resolution = 1
			},
			wantErr: "mesh.resolution must be at least 2",
		},
		{
			name: "coverage out of range",
			mutate: func(cfg *Config) {
				cfg.Vegetation.Coverage = 1.5
			},
			wantErr: "vegetation.coverage must be within [0, 1]",
		},
		{
			name: "negative rock count",
			mutate: func(cfg *Config) {
				cfg.Rocks.Count = -1
			},
			wantErr: "rocks.count cannot be negative",
		},
		{
			name: "non positive preview image size",
			mutate: func(cfg *Config) {
				cfg.Preview.ImageSize = 0
			},
			wantErr: "preview.imageSize must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("unexpected error: got %q want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if want := Default(); !reflect.DeepEqual(cfg, want) {
		t.Fatalf("default configuration mismatch:\nwant: %#v\n got: %#v", want, cfg)
	}
}

func TestLoadReadsFileAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Terrain.Seed = 99
	cfg.Terrain.Rivers = true
	cfg.Mesh.Resolution = 64

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("loaded configuration mismatch:\nwant: %#v\n got: %#v", cfg, got)
	}
}

func TestLoadInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Mesh.Resolution = 0

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Fatalf("expected load to fail")
	}
	if !strings.Contains(err.Error(), "validate config: mesh.resolution must be at least 2") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatalf("expected load to fail for a missing file")
	}
}
