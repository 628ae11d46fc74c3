// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/driftline/veldt/pkg/math"
	"github.com/driftline/veldt/pkg/terrain"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Shading ShadingConfig `yaml:"shading"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds the height field parameters exposed to the config
// file. Tunables not listed here keep their built-in defaults.
type TerrainConfig struct {
	Seed        uint32  `yaml:"seed"`
	Profile     string  `yaml:"profile"`
	TileSize    int     `yaml:"tile_size"`
	TerrainSize int     `yaml:"terrain_size"` // tiles per world edge
	ChunkRadius int     `yaml:"chunk_radius"` // tiles kept resident around the camera

	MountainHeight float32 `yaml:"mountain_height"`
	DuneHeight     float32 `yaml:"dune_height"`
	Octaves        int     `yaml:"octaves"`
	Frequency      float32 `yaml:"frequency"`
	BiomeRadius    float32 `yaml:"biome_radius"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	MoveSpeed   float32 `yaml:"move_speed"`  // world units per second
	Sensitivity float32 `yaml:"sensitivity"` // radians per mouse pixel
}

// ShadingConfig holds terrain shading settings.
type ShadingConfig struct {
	UVScale        float32 `yaml:"uv_scale"`
	SlopeThreshold float32 `yaml:"slope_threshold"`
	Ambient        float32 `yaml:"ambient"`
	SunLongitude   float32 `yaml:"sun_longitude"` // degrees
	SunLatitude    float32 `yaml:"sun_latitude"`  // degrees
	NormalMapping  bool    `yaml:"normal_mapping"`

	// TexturePaths lists the terrain texture layers in order: flat albedo,
	// flat normal, cliff albedo, cliff normal. Empty falls back to the
	// built-in solid layers.
	TexturePaths []string `yaml:"texture_paths"`
}

// DebugConfig holds debug settings.
type DebugConfig struct {
	DebugMode bool `yaml:"debug_mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Seed:           0,
			Profile:        "mountains",
			TileSize:       256,
			TerrainSize:    16,
			ChunkRadius:    4,
			MountainHeight: 50,
			DuneHeight:     15,
			Octaves:        4,
			Frequency:      0.005,
			BiomeRadius:    900,
		},
		Camera: CameraConfig{
			MoveSpeed:   20,
			Sensitivity: 0.002,
		},
		Shading: ShadingConfig{
			UVScale:        0.1,
			SlopeThreshold: 0.8,
			Ambient:        0.1,
			SunLongitude:   45,
			SunLatitude:    50,
			NormalMapping:  true,
		},
		Debug: DebugConfig{
			DebugMode: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the config for values the viewer cannot run with.
func (c *Config) Validate() error {
	if _, ok := terrain.ParseProfile(c.Terrain.Profile); !ok {
		return fmt.Errorf("unknown terrain profile %q", c.Terrain.Profile)
	}
	if c.Terrain.TileSize < 2 {
		return fmt.Errorf("tile_size must be at least 2, got %d", c.Terrain.TileSize)
	}
	if c.Terrain.TerrainSize < 1 {
		return fmt.Errorf("terrain_size must be at least 1, got %d", c.Terrain.TerrainSize)
	}
	if c.Terrain.Octaves < 1 {
		return fmt.Errorf("octaves must be at least 1, got %d", c.Terrain.Octaves)
	}
	if c.Terrain.ChunkRadius < 0 {
		return fmt.Errorf("chunk_radius must not be negative, got %d", c.Terrain.ChunkRadius)
	}
	if n := len(c.Shading.TexturePaths); n != 0 && n != 4 {
		return fmt.Errorf("texture_paths needs 4 entries (flat, flat normal, cliff, cliff normal), got %d", n)
	}
	return nil
}

// Params builds the terrain parameter set from the config, placing the
// biome center at the middle of the configured world.
func (t TerrainConfig) Params() terrain.Params {
	p := terrain.DefaultParams()
	p.Seed = t.Seed
	if prof, ok := terrain.ParseProfile(t.Profile); ok {
		p.Profile = prof
	}
	p.TileSize = t.TileSize
	p.Octaves = t.Octaves
	p.Frequency = t.Frequency
	p.MountainHeight = t.MountainHeight
	p.DuneHeight = t.DuneHeight
	p.BiomeRadius = t.BiomeRadius

	half := float32(t.TerrainSize*(t.TileSize-1)) / 2
	p.BiomeCenter = math.Vec2{X: half, Y: half}
	return p
}
