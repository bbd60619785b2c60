// Package config handles viewer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Window   WindowConfig   `yaml:"window"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds framebuffer settings. The framebuffer size is fixed
// when the renderer starts.
type GraphicsConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Background      Hex    `yaml:"background"`
	Stars           int    `yaml:"stars"`
	StarColor       Hex    `yaml:"star_color"`
	StarSeed        uint64 `yaml:"star_seed"`
	BackgroundImage string `yaml:"background_image"` // PNG, BMP or TGA behind the stars
	FPSLimit        int    `yaml:"fps_limit"`
}

// WindowConfig holds presentation settings.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Scale   int    `yaml:"scale"` // window pixels per framebuffer pixel
	VSync   bool   `yaml:"vsync"`
	Backend string `yaml:"backend"`
	ShowFPS bool   `yaml:"show_fps"`
}

// Presentation backends.
const (
	BackendSDL      = "sdl"
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

// SceneConfig selects what is drawn.
type SceneConfig struct {
	Name           string  `yaml:"name"`
	Model          string  `yaml:"model"`    // OBJ file replacing the ship mesh
	Material       string  `yaml:"material"` // material of the single-model scene
	LightLongitude float32 `yaml:"light_longitude"`
	LightLatitude  float32 `yaml:"light_latitude"`
	OrbitScale     float32 `yaml:"orbit_scale"`
	SunLight       bool    `yaml:"sun_light"` // point light at the sun
}

// Scene names.
const (
	SceneSolar  = "solar"
	SceneSingle = "single"
)

// CameraConfig holds the initial camera and control speeds.
type CameraConfig struct {
	Eye        [3]float32 `yaml:"eye"`
	Center     [3]float32 `yaml:"center"`
	Up         [3]float32 `yaml:"up"`
	OrbitSpeed float32    `yaml:"orbit_speed"` // radians per frame
	ZoomSpeed  float32    `yaml:"zoom_speed"`
	MoveSpeed  float32    `yaml:"move_speed"`
}

// OutputConfig controls screenshots and headless renders.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
	Frames int    `yaml:"frames"`
	HUD    bool   `yaml:"hud"`
}

// Image formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Background: 0x333355,
			Stars:      100,
			StarColor:  0xFFFFFF,
			StarSeed:   1,
			FPSLimit:   60,
		},
		Window: WindowConfig{
			Title:   "softrast",
			Scale:   1,
			VSync:   true,
			Backend: BackendSDL,
		},
		Scene: SceneConfig{
			Name:           SceneSolar,
			Material:       "hull",
			LightLongitude: 0,
			LightLatitude:  17,
			OrbitScale:     1,
			SunLight:       true,
		},
		Camera: CameraConfig{
			Eye:        [3]float32{0, 0, 10},
			Center:     [3]float32{0, 0, 0},
			Up:         [3]float32{0, 1, 0},
			OrbitSpeed: 0.0628,
			ZoomSpeed:  0.1,
			MoveSpeed:  1,
		},
		Output: OutputConfig{
			Dir:    "screenshots",
			Prefix: "softrast",
			Format: FormatPNG,
			Frames: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
