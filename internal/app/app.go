// Package app ties the scene, camera and renderer together and drives them
// from a window, a terminal or a headless loop.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/softrast/internal/config"
	"github.com/Faultbox/softrast/internal/engine/camera"
	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/debug"
	"github.com/Faultbox/softrast/internal/engine/framebuffer"
	"github.com/Faultbox/softrast/internal/engine/input"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/pipeline"
	"github.com/Faultbox/softrast/internal/engine/texture"
	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/internal/logger"
	"github.com/Faultbox/softrast/internal/scene"
	"github.com/Faultbox/softrast/pkg/math"
)

// Viewer renders the configured scene one frame at a time. It owns the
// framebuffer, camera and scene and does not depend on any window system.
type Viewer struct {
	cfg    *config.Config
	fb     *framebuffer.Framebuffer
	scene  *scene.Scene
	camera *camera.Camera
	frame  pipeline.Frame
	speeds input.Speeds

	hud     *debug.HUD
	showHUD bool
	shots   *debug.ScreenshotCapture
	fps     fpsCounter
	fpsNew  bool
}

// New builds the scene and framebuffer described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	s, err := BuildScene(cfg)
	if err != nil {
		return nil, err
	}

	shots, err := debug.NewScreenshotCapture(cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("screenshots: %w", err)
	}

	fb := framebuffer.New(cfg.Graphics.Width, cfg.Graphics.Height)
	fb.SetBackgroundColor(color.Packed(cfg.Graphics.Background))
	fb.SetBackgroundStars(color.Packed(cfg.Graphics.StarColor), cfg.Graphics.Stars, cfg.Graphics.StarSeed)
	if path := cfg.Graphics.BackgroundImage; path != "" {
		img, err := texture.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading background image: %w", err)
		}
		logger.Info("background image loaded",
			zap.String("path", path),
			zap.Int("width", img.Width),
			zap.Int("height", img.Height))
		fb.SetBackgroundImage(img)
	}
	fb.Clear()

	cam := camera.New(vec3(cfg.Camera.Eye), vec3(cfg.Camera.Center), vec3(cfg.Camera.Up))
	if cfg.Scene.Name == config.SceneSingle && cfg.Scene.Model != "" {
		b := s.Bounds()
		cam.FitToBounds(b.Min, b.Max)
	}

	v := &Viewer{
		cfg:    cfg,
		fb:     fb,
		scene:  s,
		camera: cam,
		speeds: input.Speeds{
			Orbit: cfg.Camera.OrbitSpeed,
			Zoom:  cfg.Camera.ZoomSpeed,
			Move:  cfg.Camera.MoveSpeed,
		},
		hud:     debug.NewHUD(),
		showHUD: cfg.Output.HUD,
		shots:   shots,
	}

	logger.Info("viewer ready",
		zap.String("scene", s.Name),
		zap.Int("objects", len(s.Objects)),
		zap.Int("vertices", s.VertexCount()),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))
	return v, nil
}

// BuildScene creates the scene selected by cfg.Scene, loading the optional
// OBJ model.
func BuildScene(cfg *config.Config) (*scene.Scene, error) {
	var loaded *model.Mesh
	if cfg.Scene.Model != "" {
		m, err := model.LoadOBJ(cfg.Scene.Model)
		if err != nil {
			return nil, fmt.Errorf("loading scene model: %w", err)
		}
		logger.Info("model loaded",
			zap.String("path", cfg.Scene.Model),
			zap.Int("triangles", m.TriangleCount()))
		loaded = m
	}

	var s *scene.Scene
	switch cfg.Scene.Name {
	case config.SceneSolar:
		meshes := scene.DefaultMeshes()
		if loaded != nil {
			meshes.Ship = loaded
		}
		s = scene.SolarSystem(meshes)
	case config.SceneSingle:
		mat, err := model.ParseMaterial(cfg.Scene.Material)
		if err != nil {
			return nil, fmt.Errorf("scene material: %w", err)
		}
		if loaded == nil {
			loaded = model.Sphere(32, 48)
		}
		s = scene.Single(loaded, mat)
	default:
		return nil, fmt.Errorf("scene %q: %w", cfg.Scene.Name, config.ErrUnknownScene)
	}

	s.OrbitScale = cfg.Scene.OrbitScale
	s.SetLight(cfg.Scene.LightLongitude, cfg.Scene.LightLatitude)
	if !cfg.Scene.SunLight {
		s.Lights = nil
	}
	return s, nil
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Framebuffer returns the image the viewer draws into.
func (v *Viewer) Framebuffer() *framebuffer.Framebuffer {
	return v.fb
}

// Scene returns the scene being drawn.
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Camera returns the viewer camera.
func (v *Viewer) Camera() *camera.Camera {
	return v.camera
}

// Frames returns the number of frames drawn.
func (v *Viewer) Frames() uint32 {
	return v.frame.Count()
}

// FPS returns the frame rate measured over the last second.
func (v *Viewer) FPS() float64 {
	return v.fps.rate
}

// SetHUD shows or hides the statistics overlay.
func (v *Viewer) SetHUD(on bool) {
	v.showHUD = on
}

// Step applies st, then draws one frame. It reports done when quit was
// requested. Screenshot failures are logged and do not stop the loop.
func (v *Viewer) Step(st *input.State) (done bool, err error) {
	if st.Active(input.ActionQuit) {
		return true, nil
	}
	st.ApplyCamera(v.camera, v.speeds)
	if st.Pressed(input.ActionToggleHUD) {
		v.showHUD = !v.showHUD
	}

	v.Render()

	if st.Pressed(input.ActionScreenshot) {
		path, err := v.shots.Capture(v.fb)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("path", path))
		}
	}
	return false, nil
}

// Render advances the scene and draws the next frame into the framebuffer.
func (v *Viewer) Render() pipeline.Stats {
	v.scene.Update()

	w, h := v.fb.Size()
	u := transform.NewFrame(v.camera.Transform(), float32(w), float32(h), float32(w), float32(h), v.frame.Count()+1)
	stats := v.frame.Draw(v.fb, v.scene.Uniforms(u), v.scene.DrawList())
	v.fpsNew = v.fps.tick()

	if v.showHUD {
		v.hud.SetLines(v.StatusLines()...)
		v.hud.Draw(v.fb)
	}
	return stats
}

// StatusLines describes the last frame.
func (v *Viewer) StatusLines() []string {
	s := v.frame.Last()
	eye := v.camera.Eye
	return []string{
		fmt.Sprintf("frame %d  %.1f fps", v.frame.Count(), v.fps.rate),
		fmt.Sprintf("tris %d  px %d", s.Triangles, s.PixelsWritten),
		fmt.Sprintf("eye %.1f %.1f %.1f", eye.X, eye.Y, eye.Z),
	}
}
