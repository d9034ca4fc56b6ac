package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 1280 || cfg.Display.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Display.FPS)
	}
	if cfg.Render.BufferCapacity != 25000 {
		t.Errorf("expected buffer capacity 25000, got %d", cfg.Render.BufferCapacity)
	}
	if cfg.Render.AmbientFloor != 0.15 {
		t.Errorf("expected ambient floor 0.15, got %f", cfg.Render.AmbientFloor)
	}
	if cfg.Render.NearEpsilon != 0.01 {
		t.Errorf("expected near epsilon 0.01, got %f", cfg.Render.NearEpsilon)
	}
	if cfg.Render.Sun != [3]float64{3, 4, 1} {
		t.Errorf("expected sun (3, 4, 1), got %v", cfg.Render.Sun)
	}
	if cfg.Render.Wireframe {
		t.Error("expected wireframe to be off by default")
	}
	if cfg.Camera.FOV != 70 {
		t.Errorf("expected fov 70, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.MoveSpeed != 4 || cfg.Camera.LookRate != 0.3 {
		t.Errorf("expected move speed 4 and look rate 0.3, got %f and %f", cfg.Camera.MoveSpeed, cfg.Camera.LookRate)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 640
  height: 360
  fps: 30
  background: [10, 20, 30]

render:
  buffer_capacity: 5000
  ambient_floor: 0.25
  sun: [0, 1, 0]
  wireframe: true

camera:
  fov: 90
  position: [0, 2, -6]

scene:
  path: "scenes/demo.yaml"

logging:
  level: "debug"
  log_file: "easel.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 640 || cfg.Display.Height != 360 {
		t.Errorf("expected 640x360, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Background != [3]int{10, 20, 30} {
		t.Errorf("expected background (10, 20, 30), got %v", cfg.Display.Background)
	}
	if cfg.Render.BufferCapacity != 5000 {
		t.Errorf("expected buffer capacity 5000, got %d", cfg.Render.BufferCapacity)
	}
	if cfg.Render.AmbientFloor != 0.25 {
		t.Errorf("expected ambient floor 0.25, got %f", cfg.Render.AmbientFloor)
	}
	// Untouched keys keep their defaults.
	if cfg.Render.NearEpsilon != 0.01 {
		t.Errorf("expected default near epsilon, got %f", cfg.Render.NearEpsilon)
	}
	if !cfg.Render.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Camera.FOV != 90 || cfg.Camera.Position != [3]float64{0, 2, -6} {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Camera.MoveSpeed != 4 {
		t.Errorf("expected default move speed, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Scene.Path != "scenes/demo.yaml" {
		t.Errorf("expected scene path, got %q", cfg.Scene.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "easel.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("easel.yaml", []byte("display:\n  width: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find easel.yaml in current directory")
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
				if !cfg.Display.ShowHUD {
					t.Error("expected HUD to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "size flags",
			setup: func() {
				*flagWidth = 320
				*flagHeight = 200
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Width != 320 || cfg.Display.Height != 200 {
					t.Errorf("expected 320x200, got %dx%d", cfg.Display.Width, cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "render flags",
			setup: func() {
				*flagCapacity = 100
				*flagWireframe = true
				*flagFOV = 50
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.BufferCapacity != 100 {
					t.Errorf("expected capacity 100, got %d", cfg.Render.BufferCapacity)
				}
				if !cfg.Render.Wireframe {
					t.Error("expected wireframe")
				}
				if cfg.Camera.FOV != 50 {
					t.Errorf("expected fov 50, got %f", cfg.Camera.FOV)
				}
			},
			teardown: func() {
				*flagCapacity = 0
				*flagWireframe = false
				*flagFOV = 0
			},
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "/tmp/easel.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/easel.log" {
					t.Errorf("expected log file, got %q", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
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
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Display.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Display.Height)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg := Default()
	cfg.Camera.FOV = 55
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(ConfigDir(), "config.yaml")
	if got := findConfigFile(); got != want {
		t.Fatalf("findConfigFile = %q, want %q", got, want)
	}
	loaded := Default()
	if err := loadFromFile(loaded, want); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Camera.FOV != 55 {
		t.Errorf("FOV = %v, want 55", loaded.Camera.FOV)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.BufferCapacity = 1234
	cfg.Scene.Path = "demo.yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Render.BufferCapacity != 1234 || loaded.Scene.Path != "demo.yaml" {
		t.Errorf("saved config not reloaded: %+v", loaded.Render)
	}
}
