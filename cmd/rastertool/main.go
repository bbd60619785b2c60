// rastertool renders scenes headlessly and inspects OBJ models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Faultbox/softrast/internal/app"
	"github.com/Faultbox/softrast/internal/config"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/logger"
	"github.com/Faultbox/softrast/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render", "r":
		cmdRender(args)
	case "term", "t":
		cmdTerm(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rastertool - software rasterizer utility

Usage:
  rastertool <command> [options]

Commands:
  render [options]        Render frames to image files
  term [options]          Show the scene in the terminal
  info <model.obj>        Show model statistics

Examples:
  rastertool render -frames 60 -out ./frames -format bmp
  rastertool render -scene single -model ship.obj -material hull -hud
  rastertool term -scene solar
  rastertool info ship.obj`)
}

// sceneFlags are the options shared by render and term.
type sceneFlags struct {
	config   *string
	scene    *string
	model    *string
	material *string
	backdrop *string
	width    *int
	height   *int
	orbit    *float64
	verbose  *bool
}

func addSceneFlags(fs *flag.FlagSet) sceneFlags {
	return sceneFlags{
		config:   fs.String("config", "", "Path to config file"),
		scene:    fs.String("scene", "", "Scene: solar or single"),
		model:    fs.String("model", "", "OBJ model to load"),
		material: fs.String("material", "", "Material of the single-model scene"),
		backdrop: fs.String("background-image", "", "PNG, BMP or TGA image behind the scene"),
		width:    fs.Int("width", 0, "Framebuffer width"),
		height:   fs.Int("height", 0, "Framebuffer height"),
		orbit:    fs.Float64("orbit", 0, "Orbit speed multiplier"),
		verbose:  fs.Bool("v", false, "Verbose logging"),
	}
}

// load builds the config from the file and flags, then starts the logger.
func (f sceneFlags) load(apply func(*config.Config)) *config.Config {
	cfg, err := config.LoadFile(*f.config)
	if err != nil {
		fatalf("Error: %v", err)
	}
	if *f.scene != "" {
		cfg.Scene.Name = *f.scene
	}
	if *f.model != "" {
		cfg.Scene.Model = *f.model
	}
	if *f.material != "" {
		cfg.Scene.Material = *f.material
	}
	if *f.backdrop != "" {
		cfg.Graphics.BackgroundImage = *f.backdrop
	}
	if *f.width > 0 {
		cfg.Graphics.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Graphics.Height = *f.height
	}
	if *f.orbit > 0 {
		cfg.Scene.OrbitScale = float32(*f.orbit)
	}
	cfg.Logging.Level = "warn"
	if *f.verbose {
		cfg.Logging.Level = "debug"
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Error: %v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatalf("Logger error: %v", err)
	}
	return cfg
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	sf := addSceneFlags(fs)
	frames := fs.Int("frames", 1, "Number of frames")
	out := fs.String("out", ".", "Output directory")
	prefix := fs.String("prefix", "frame", "File name prefix")
	format := fs.String("format", "png", "Image format: png or bmp")
	hud := fs.Bool("hud", false, "Draw frame statistics")
	depth := fs.Bool("depth", false, "Also write depth images")
	quiet := fs.Bool("q", false, "Hide the progress bar")
	fs.Parse(args)

	cfg := sf.load(func(c *config.Config) {
		c.Output.Format = *format
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := app.New(cfg)
	if err != nil {
		fatalf("Error: %v", err)
	}
	res, err := v.Offline(ctx, app.OfflineOptions{
		Frames:   *frames,
		Dir:      *out,
		Prefix:   *prefix,
		Format:   *format,
		HUD:      *hud,
		Depth:    *depth,
		Progress: !*quiet,
		Writers:  4,
	})
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Wrote %d files to %s\n", len(res.Files), *out)
	fmt.Printf("Triangles: %d  Fragments: %d  Pixels: %d\n",
		res.Stats.Triangles, res.Stats.Fragments, res.Stats.PixelsWritten)
}

func cmdTerm(args []string) {
	fs := flag.NewFlagSet("term", flag.ExitOnError)
	sf := addSceneFlags(fs)
	fps := fs.Int("fps", 20, "Frame rate limit")
	fs.Parse(args)

	cfg := sf.load(func(c *config.Config) {
		c.Window.Backend = config.BackendTerminal
		c.Graphics.FPSLimit = *fps
		if c.Logging.LogFile == "" {
			// Log lines would tear the picture.
			c.Logging.Level = "fatal"
		}
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := app.New(cfg)
	if err != nil {
		fatalf("Error: %v", err)
	}
	if err := v.Run(ctx); err != nil {
		fatalf("Error: %v", err)
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: rastertool info <model.obj>")
		os.Exit(1)
	}

	m, err := model.LoadOBJ(args[0])
	if err != nil {
		fatalf("Error: %v", err)
	}

	var colored, textured, degenerate int
	for _, v := range m.Vertices {
		if v.HasColor {
			colored++
		}
		if v.TexCoord != (math.Vec2{}) {
			textured++
		}
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		a, b, c := m.Vertices[i].Position, m.Vertices[i+1].Position, m.Vertices[i+2].Position
		if b.Sub(a).Cross(c.Sub(a)).Length() < 1e-8 {
			degenerate++
		}
	}

	size := m.Bounds.Size()
	center := m.Bounds.Center()
	fmt.Printf("Model:      %s\n", m.Name)
	fmt.Printf("Vertices:   %d\n", len(m.Vertices))
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Degenerate: %d\n", degenerate)
	fmt.Printf("Colored:    %d\n", colored)
	fmt.Printf("With UVs:   %d\n", textured)
	fmt.Printf("Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z,
		m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	fmt.Printf("Size:       %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
