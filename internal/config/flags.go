package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log", "", "Write logs to this file")
	flagWidth     = flag.Int("width", 0, "Snapshot width in pixels")
	flagHeight    = flag.Int("height", 0, "Snapshot height in pixels")
	flagFPS       = flag.Int("fps", 0, "Target FPS")
	flagFOV       = flag.Float64("fov", 0, "Field of view in degrees")
	flagCapacity  = flag.Int("capacity", 0, "Triangle buffer capacity")
	flagWireframe = flag.Bool("wireframe", false, "Draw triangle outlines instead of filling")
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
		cfg.Display.ShowHUD = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagFPS > 0 {
		cfg.Display.FPS = *flagFPS
	}
	if *flagFOV > 0 {
		cfg.Camera.FOV = *flagFOV
	}
	if *flagCapacity > 0 {
		cfg.Render.BufferCapacity = *flagCapacity
	}
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
}
