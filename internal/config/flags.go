package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Int64("seed", -1, "Terrain seed")
	flagRadius     = flag.Int("radius", 0, "Render radius in chunks")
	flagFrames     = flag.Int("frames", -1, "Number of frames to run (0 runs until interrupted)")
	flagCaptureDir = flag.String("capture-dir", "", "Directory for debug captures")
	flagMap        = flag.Bool("map", false, "Write a top-down map PNG when the run ends")
	flagDump       = flag.Bool("dump", false, "Write a compressed render data dump when the run ends")
	flagLogFile    = flag.String("log-file", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed >= 0 {
		cfg.Terrain.Seed = uint32(*flagSeed)
	}
	if *flagRadius > 0 {
		cfg.World.RenderRadius = *flagRadius
		if cfg.World.UnloadDistance != 0 && cfg.World.UnloadDistance < *flagRadius {
			cfg.World.UnloadDistance = *flagRadius + 2
		}
	}
	if *flagFrames >= 0 {
		cfg.Run.Frames = *flagFrames
	}
	if *flagCaptureDir != "" {
		cfg.Capture.Dir = *flagCaptureDir
	}
	if *flagMap {
		cfg.Capture.MapPNG = true
	}
	if *flagDump {
		cfg.Capture.RenderDump = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
