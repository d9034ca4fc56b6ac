// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds presentation settings. Width and Height size headless
// snapshots; the terminal viewer follows the terminal size instead.
type DisplayConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Background [3]int `yaml:"background"` // R, G, B
	ShowHUD    bool   `yaml:"show_hud"`
}

// RenderConfig holds pipeline settings.
type RenderConfig struct {
	BufferCapacity int        `yaml:"buffer_capacity"`
	AmbientFloor   float64    `yaml:"ambient_floor"`
	NearEpsilon    float64    `yaml:"near_epsilon"`
	Sun            [3]float64 `yaml:"sun"`
	Wireframe      bool       `yaml:"wireframe"`
}

// CameraConfig holds the starting view and free-fly tuning.
type CameraConfig struct {
	FOV       float64    `yaml:"fov"` // degrees
	Position  [3]float64 `yaml:"position"`
	Rotation  [3]float64 `yaml:"rotation"`   // pitch, yaw, roll in radians
	MoveSpeed float64    `yaml:"move_speed"` // units per second
	LookRate  float64    `yaml:"look_rate"`  // degrees per mouse cell
	Smoothing float64    `yaml:"smoothing"`  // spring angular frequency
	Damping   float64    `yaml:"damping"`    // spring damping ratio
}

// SceneConfig names the scene to load.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			FPS:        60,
			Background: [3]int{30, 30, 40},
		},
		Render: RenderConfig{
			BufferCapacity: 25000,
			AmbientFloor:   0.15,
			NearEpsilon:    0.01,
			Sun:            [3]float64{3, 4, 1},
		},
		Camera: CameraConfig{
			FOV:       70,
			MoveSpeed: 4,
			LookRate:  0.3,
			Smoothing: 6,
			Damping:   1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
