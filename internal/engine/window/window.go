// Package window opens the SDL2 window the GL presenter blits finished
// frames into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/softrast/internal/logger"
)

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title     string
	Width     int
	Height    int
	VSync     bool
	Resizable bool
}

// glAttributes requests a 4.1 core context, the newest macOS offers. The
// rasterizer owns depth, so the default framebuffer gets no depth bits.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 0},
	{sdl.GL_STENCIL_SIZE, 0},
}

// Window is an SDL2 window with a current GL context.
type Window struct {
	config Config
	handle *sdl.Window
	glctx  sdl.GLContext
}

// New initializes SDL video, opens the window and makes its GL context
// current. On failure everything created so far is released.
func New(cfg Config) (w *Window, err error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	w = &Window{config: cfg}
	defer func() {
		if err != nil {
			w.Close()
			w = nil
		}
	}()

	var attrErr error
	for _, a := range glAttributes {
		attrErr = multierr.Append(attrErr, sdl.GLSetAttribute(a.attr, a.value))
	}
	if attrErr != nil {
		return w, fmt.Errorf("setting GL attributes: %w", attrErr)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	w.handle, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return w, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	if w.glctx, err = w.handle.GLCreateContext(); err != nil {
		return w, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}

	dw, dh := w.DrawableSize()
	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close releases the context and window and shuts SDL down.
func (w *Window) Close() {
	if w.glctx != nil {
		sdl.GLDeleteContext(w.glctx)
		w.glctx = nil
	}
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	sdl.Quit()
}

// SwapBuffers shows the frame drawn into the back buffer.
func (w *Window) SwapBuffers() {
	w.handle.GLSwap()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) {
	ww, wh := w.handle.GetSize()
	return int(ww), int(wh)
}

// DrawableSize returns the GL drawable size in pixels. It is larger than
// Size on high-DPI displays.
func (w *Window) DrawableSize() (width, height int) {
	dw, dh := w.handle.GLGetDrawableSize()
	return int(dw), int(dh)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}
