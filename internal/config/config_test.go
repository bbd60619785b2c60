package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Background != 0x333355 {
		t.Errorf("expected background 0x333355, got %v", cfg.Graphics.Background)
	}
	if cfg.Graphics.Stars != 100 {
		t.Errorf("expected 100 stars, got %d", cfg.Graphics.Stars)
	}
	if cfg.Window.Backend != BackendSDL {
		t.Errorf("expected backend sdl, got %s", cfg.Window.Backend)
	}
	if cfg.Scene.Name != SceneSolar {
		t.Errorf("expected scene solar, got %s", cfg.Scene.Name)
	}
	if cfg.Camera.Eye != [3]float32{0, 0, 10} {
		t.Errorf("expected eye (0,0,10), got %v", cfg.Camera.Eye)
	}
	if cfg.Output.Format != FormatPNG {
		t.Errorf("expected format png, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 320
  height: 240
  background: "#102030"
  stars: 0
  star_color: 0xFFEE00

window:
  backend: terminal
  scale: 2

scene:
  name: single
  model: ship.obj
  material: gas

camera:
  eye: [1, 2, 3]
  zoom_speed: 0.5

output:
  format: bmp
  frames: 12
  hud: true

logging:
  level: "debug"
  log_file: "softrast.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 320 || cfg.Graphics.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Background != 0x102030 {
		t.Errorf("expected background 0x102030, got %v", cfg.Graphics.Background)
	}
	if cfg.Graphics.StarColor != 0xFFEE00 {
		t.Errorf("expected star color 0xFFEE00, got %v", cfg.Graphics.StarColor)
	}
	if cfg.Graphics.Stars != 0 {
		t.Errorf("expected no stars, got %d", cfg.Graphics.Stars)
	}
	if cfg.Window.Backend != BackendTerminal || cfg.Window.Scale != 2 {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	if cfg.Scene.Name != SceneSingle || cfg.Scene.Model != "ship.obj" || cfg.Scene.Material != "gas" {
		t.Errorf("unexpected scene config %+v", cfg.Scene)
	}
	if cfg.Camera.Eye != [3]float32{1, 2, 3} {
		t.Errorf("expected eye (1,2,3), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.ZoomSpeed != 0.5 {
		t.Errorf("expected zoom speed 0.5, got %v", cfg.Camera.ZoomSpeed)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Camera.Up != [3]float32{0, 1, 0} {
		t.Errorf("expected default up, got %v", cfg.Camera.Up)
	}
	if cfg.Output.Format != FormatBMP || cfg.Output.Frames != 12 || !cfg.Output.HUD {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "softrast.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileBadColor(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "color.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  background: 0x1000000\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	err := loadFromFile(Default(), configPath)
	if !errors.Is(err, ErrColorRange) {
		t.Errorf("expected ErrColorRange, got %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Hex
		wantErr bool
	}{
		{"0x333355", 0x333355, false},
		{"#FFFFFF", 0xFFFFFF, false},
		{"255", 0xFF, false},
		{"0xGG0000", 0, true},
		{"#1000000", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
	if s := Hex(0x333355).String(); s != "0x333355" {
		t.Errorf("String: got %s, want 0x333355", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }, ErrInvalidSize},
		{"backend", func(c *Config) { c.Window.Backend = "vulkan" }, ErrUnknownBackend},
		{"format", func(c *Config) { c.Output.Format = "gif" }, ErrUnknownFormat},
		{"scene", func(c *Config) { c.Scene.Name = "galaxy" }, ErrUnknownScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate: got %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("material", func(t *testing.T) {
		cfg := Default()
		cfg.Scene.Material = "plasma"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for unknown material")
		}
	})

	t.Run("clamps", func(t *testing.T) {
		cfg := Default()
		cfg.Window.Scale = 0
		cfg.Output.Frames = -3
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if cfg.Window.Scale != 1 || cfg.Output.Frames != 1 {
			t.Errorf("expected scale 1 and frames 1, got %d and %d", cfg.Window.Scale, cfg.Output.Frames)
		}
	})
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

	configPath := filepath.Join(tmpDir, "softrast.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find softrast.yaml in current directory")
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
				if !cfg.Window.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1024
				*flagHeight = 768
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagFrames = 30
				*flagOut = "frames"
				*flagFormat = FormatBMP
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Frames != 30 || cfg.Output.Dir != "frames" || cfg.Output.Format != FormatBMP {
					t.Errorf("unexpected output config %+v", cfg.Output)
				}
			},
			teardown: func() {
				*flagFrames = 0
				*flagOut = ""
				*flagFormat = ""
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagScene = SceneSingle
				*flagModel = "ship.obj"
				*flagBackend = BackendEbiten
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Name != SceneSingle || cfg.Scene.Model != "ship.obj" {
					t.Errorf("unexpected scene config %+v", cfg.Scene)
				}
				if cfg.Window.Backend != BackendEbiten {
					t.Errorf("expected backend ebiten, got %s", cfg.Window.Backend)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagModel = ""
				*flagBackend = ""
			},
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
graphics:
  width: 640
  height: 480
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1024
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 480 {
		t.Errorf("expected height 480 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  backend: vulkan\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(configPath); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("LoadFile: got %v, want ErrUnknownBackend", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "softrast.yaml")

	cfg := Default()
	cfg.Graphics.Background = 0x0A0B0C
	cfg.Scene.Name = SceneSingle
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Graphics.Background != 0x0A0B0C {
		t.Errorf("background: got %v, want 0x0A0B0C", loaded.Graphics.Background)
	}
	if loaded.Scene.Name != SceneSingle {
		t.Errorf("scene: got %s, want single", loaded.Scene.Name)
	}
}
