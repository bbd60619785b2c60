package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging and the FPS counter")
	flagWidth    = flag.Int("width", 0, "Framebuffer width")
	flagHeight   = flag.Int("height", 0, "Framebuffer height")
	flagBackend  = flag.String("backend", "", "Window backend: sdl, ebiten or terminal")
	flagFrames   = flag.Int("frames", 0, "Frames to render in headless mode")
	flagOut      = flag.String("out", "", "Output directory for screenshots and frames")
	flagFormat   = flag.String("format", "", "Image format: png or bmp")
	flagScene    = flag.String("scene", "", "Scene: solar or single")
	flagModel    = flag.String("model", "", "OBJ model to load")
	flagBackdrop = flag.String("background-image", "", "PNG, BMP or TGA image behind the scene")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Headless reports whether -frames asked for an offline render instead of a
// window.
func Headless() bool {
	return *flagFrames > 0
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Window.ShowFPS = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagFrames > 0 {
		cfg.Output.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagScene != "" {
		cfg.Scene.Name = *flagScene
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
	}
	if *flagBackdrop != "" {
		cfg.Graphics.BackgroundImage = *flagBackdrop
	}
}
