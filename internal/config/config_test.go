package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.World.RenderRadius != 8 {
		t.Errorf("expected render radius 8, got %d", cfg.World.RenderRadius)
	}
	if cfg.World.MaxLoadsPerUpdate != 2 {
		t.Errorf("expected 2 loads per update, got %d", cfg.World.MaxLoadsPerUpdate)
	}
	if cfg.World.MaxRenderDistance != 300 {
		t.Errorf("expected max render distance 300, got %v", cfg.World.MaxRenderDistance)
	}
	if cfg.Terrain.Seed != 11242342 {
		t.Errorf("expected seed 11242342, got %d", cfg.Terrain.Seed)
	}
	if cfg.Picking.InteractionDistance != 8 {
		t.Errorf("expected interaction distance 8, got %v", cfg.Picking.InteractionDistance)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
world:
  render_radius: 4
  max_loads_per_update: 3
  unload_distance: 6

terrain:
  seed: 7
  grass_level: 0.8

camera:
  position: [10, 70, -5]
  fov: 60

run:
  frames: 120
  frame_time: 20ms

capture:
  dir: "out"
  map_png: true

logging:
  level: "debug"
  log_file: "voxelworld.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.RenderRadius != 4 || cfg.World.MaxLoadsPerUpdate != 3 || cfg.World.UnloadDistance != 6 {
		t.Errorf("world section not loaded: %+v", cfg.World)
	}
	// Untouched keys keep their defaults.
	if cfg.World.MaxRenderDistance != 300 {
		t.Errorf("expected default max render distance, got %v", cfg.World.MaxRenderDistance)
	}
	if cfg.Terrain.Seed != 7 || cfg.Terrain.GrassLevel != 0.8 {
		t.Errorf("terrain section not loaded: %+v", cfg.Terrain)
	}
	if cfg.Terrain.SeaLevel != 0.3 {
		t.Errorf("expected default sea level, got %v", cfg.Terrain.SeaLevel)
	}
	if cfg.Camera.Position != [3]float32{10, 70, -5} || cfg.Camera.FOV != 60 {
		t.Errorf("camera section not loaded: %+v", cfg.Camera)
	}
	if cfg.Run.Frames != 120 || cfg.Run.FrameTime != 20*time.Millisecond {
		t.Errorf("run section not loaded: %+v", cfg.Run)
	}
	if cfg.Capture.Dir != "out" || !cfg.Capture.MapPNG || cfg.Capture.RenderDump {
		t.Errorf("capture section not loaded: %+v", cfg.Capture)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "voxelworld.log" {
		t.Errorf("logging section not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "world:\n  render_radius: not a number\n  invalid syntax here\n"},
		{"unknown key", "world:\n  render_raduis: 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Errorf("empty file: %v", err)
	}
	if cfg.World.RenderRadius != 8 {
		t.Errorf("empty file changed defaults: %+v", cfg.World)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/voxelworld.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero radius", func(c *Config) { c.World.RenderRadius = 0 }, "render_radius"},
		{"zero budget", func(c *Config) { c.World.MaxLoadsPerUpdate = 0 }, "max_loads_per_update"},
		{"unload inside window", func(c *Config) { c.World.UnloadDistance = 3 }, "unload_distance"},
		{"eviction disabled", func(c *Config) { c.World.UnloadDistance = 0 }, ""},
		{"sea level above one", func(c *Config) { c.Terrain.SeaLevel = 1.2 }, "sea_level"},
		{"flat fov", func(c *Config) { c.Camera.FOV = 0 }, "camera.fov"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, "near/far"},
		{"no reach", func(c *Config) { c.Picking.InteractionDistance = 0 }, "interaction_distance"},
		{"negative frames", func(c *Config) { c.Run.Frames = -1 }, "run.frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.World.RenderRadius = 0
	cfg.Camera.Aspect = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"render_radius", "camera.aspect"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("world:\n  render_radius: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.World.RenderRadius = 5
	cfg.Run.FrameTime = 40 * time.Millisecond

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.World.RenderRadius != 5 || loaded.Run.FrameTime != 40*time.Millisecond {
		t.Errorf("saved values lost: %+v %+v", loaded.World, loaded.Run)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed zero is honoured",
			setup: func() { *flagSeed = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Terrain.Seed)
				}
			},
			teardown: func() { *flagSeed = -1 },
		},
		{
			name:  "radius grows unload distance",
			setup: func() { *flagRadius = 12 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.RenderRadius != 12 || cfg.World.UnloadDistance != 14 {
					t.Errorf("expected radius 12 unload 14, got %+v", cfg.World)
				}
			},
			teardown: func() { *flagRadius = 0 },
		},
		{
			name: "capture flags",
			setup: func() {
				*flagCaptureDir = "shots"
				*flagMap = true
				*flagDump = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Capture.Dir != "shots" || !cfg.Capture.MapPNG || !cfg.Capture.RenderDump {
					t.Errorf("capture flags not applied: %+v", cfg.Capture)
				}
			},
			teardown: func() {
				*flagCaptureDir = ""
				*flagMap = false
				*flagDump = false
			},
		},
		{
			name:  "frames zero runs forever",
			setup: func() { *flagFrames = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Run.Frames != 0 {
					t.Errorf("expected 0 frames, got %d", cfg.Run.Frames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
world:
  render_radius: 5
terrain:
  seed: 99
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSeed = 1234
	defer func() {
		*flagConfig = ""
		*flagSeed = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Seed != 1234 {
		t.Errorf("expected seed 1234 from flag, got %d", cfg.Terrain.Seed)
	}
	if cfg.World.RenderRadius != 5 {
		t.Errorf("expected radius 5 from file, got %d", cfg.World.RenderRadius)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("world:\n  render_radius: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}
