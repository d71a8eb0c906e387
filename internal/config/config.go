// Package config handles voxelworld configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"

	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
	"github.com/Faultbox/voxelworld/internal/voxel/terrain"
)

// Config holds all settings.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Picking PickingConfig `yaml:"picking"`
	Run     RunConfig     `yaml:"run"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig holds chunk streaming settings.
type WorldConfig struct {
	RenderRadius      int     `yaml:"render_radius"`        // In chunks
	MaxLoadsPerUpdate int     `yaml:"max_loads_per_update"` // Chunk loads per frame
	UnloadDistance    int     `yaml:"unload_distance"`      // 0 keeps every chunk
	MaxRenderDistance float32 `yaml:"max_render_distance"`  // In blocks
}

// TerrainConfig holds terrain generation settings. Levels and depths are
// fractions of the chunk height.
type TerrainConfig struct {
	Seed          uint32  `yaml:"seed"`
	SeaLevel      float64 `yaml:"sea_level"`
	MountainLevel float64 `yaml:"mountain_level"`
	GrassLevel    float64 `yaml:"grass_level"`
	DirtDepth     float64 `yaml:"dirt_depth"`
	StoneDepth    float64 `yaml:"stone_depth"`
}

// CameraConfig holds the initial camera state.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`   // Degrees
	Pitch    float32    `yaml:"pitch"` // Degrees
	FOV      float32    `yaml:"fov"`   // Vertical, degrees
	Aspect   float32    `yaml:"aspect"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// PickingConfig holds block selection settings.
type PickingConfig struct {
	InteractionDistance float32 `yaml:"interaction_distance"`
}

// RunConfig holds headless run settings.
type RunConfig struct {
	Frames     int           `yaml:"frames"`     // 0 runs until interrupted
	FrameTime  time.Duration `yaml:"frame_time"` // Simulated time per frame
	Speed      float32       `yaml:"speed"`      // Camera speed, blocks per second
	TurnRate   float32       `yaml:"turn_rate"`  // Camera yaw, degrees per second
	StatsEvery int           `yaml:"stats_every"`
}

// CaptureConfig holds debug capture settings.
type CaptureConfig struct {
	Dir        string `yaml:"dir"`
	MapPNG     bool   `yaml:"map_png"`
	RenderDump bool   `yaml:"render_dump"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := terrain.DefaultParams()
	o := chunk.DefaultOptions()
	return &Config{
		World: WorldConfig{
			RenderRadius:      o.RenderRadius,
			MaxLoadsPerUpdate: o.MaxLoadsPerUpdate,
			UnloadDistance:    o.UnloadDistance,
			MaxRenderDistance: o.MaxRenderDistance,
		},
		Terrain: TerrainConfig{
			Seed:          p.Seed,
			SeaLevel:      p.SeaLevel,
			MountainLevel: p.MountainLevel,
			GrassLevel:    p.GrassLevel,
			DirtDepth:     p.DirtDepth,
			StoneDepth:    p.StoneDepth,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 60, 0},
			Yaw:      -90,
			Pitch:    -30,
			FOV:      45,
			Aspect:   16.0 / 9.0,
			Near:     0.1,
			Far:      1000,
		},
		Picking: PickingConfig{
			InteractionDistance: 8,
		},
		Run: RunConfig{
			Frames:     600,
			FrameTime:  time.Second / 60,
			Speed:      10,
			TurnRate:   0,
			StatsEvery: 60,
		},
		Capture: CaptureConfig{
			Dir: "captures",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the terrain section to generator parameters.
func (c TerrainConfig) Params() terrain.Params {
	return terrain.Params{
		Seed:          c.Seed,
		SeaLevel:      c.SeaLevel,
		MountainLevel: c.MountainLevel,
		GrassLevel:    c.GrassLevel,
		DirtDepth:     c.DirtDepth,
		StoneDepth:    c.StoneDepth,
	}
}

// Options converts the world section to chunk manager options.
func (c WorldConfig) Options() chunk.Options {
	return chunk.Options{
		RenderRadius:      c.RenderRadius,
		MaxLoadsPerUpdate: c.MaxLoadsPerUpdate,
		UnloadDistance:    c.UnloadDistance,
		MaxRenderDistance: c.MaxRenderDistance,
	}
}

// Vec3 returns the camera position as a vector.
func (c CameraConfig) Vec3() mgl32.Vec3 {
	return mgl32.Vec3(c.Position)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	w := c.World
	check(w.RenderRadius > 0, "world.render_radius must be positive, got %d", w.RenderRadius)
	check(w.MaxLoadsPerUpdate > 0, "world.max_loads_per_update must be positive, got %d", w.MaxLoadsPerUpdate)
	check(w.UnloadDistance == 0 || w.UnloadDistance >= w.RenderRadius,
		"world.unload_distance must be 0 or at least render_radius (%d), got %d", w.RenderRadius, w.UnloadDistance)
	check(w.MaxRenderDistance > 0, "world.max_render_distance must be positive, got %v", w.MaxRenderDistance)

	if terr := c.Terrain.Params().Validate(); terr != nil {
		err = multierr.Append(err, fmt.Errorf("terrain: %w", terr))
	}

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov must be in (0, 180), got %v", cam.FOV)
	check(cam.Aspect > 0, "camera.aspect must be positive, got %v", cam.Aspect)
	check(cam.Near > 0 && cam.Far > cam.Near, "camera near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)

	check(c.Picking.InteractionDistance > 0, "picking.interaction_distance must be positive, got %v", c.Picking.InteractionDistance)

	check(c.Run.Frames >= 0, "run.frames must not be negative, got %d", c.Run.Frames)
	check(c.Run.FrameTime > 0, "run.frame_time must be positive, got %v", c.Run.FrameTime)

	return err
}
