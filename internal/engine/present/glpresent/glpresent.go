// Package glpresent shows framebuffers in an SDL window through OpenGL.
//
// The CPU color buffer is uploaded into a texture attached to a read
// framebuffer object and blitted to the window, flipping Y on the way since
// GL rows start at the bottom.
package glpresent

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
	"github.com/Faultbox/softrast/internal/engine/present"
	"github.com/Faultbox/softrast/internal/engine/window"
	"github.com/Faultbox/softrast/internal/logger"
)

// Presenter uploads framebuffers to an SDL window.
type Presenter struct {
	win     *window.Window
	fbo     uint32
	texture uint32
	width   int32
	height  int32
	rgba    []byte
	closed  bool
}

var _ present.Presenter = (*Presenter)(nil)

// New creates a presenter for win.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(win *window.Window, width, height int) (*Presenter, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	p := &Presenter{win: win}
	if err := p.create(int32(width), int32(height)); err != nil {
		return nil, fmt.Errorf("creating upload target: %w", err)
	}
	return p, nil
}

func (p *Presenter) create(width, height int32) error {
	p.width = max(width, 1)
	p.height = max(height, 1)
	p.rgba = make([]byte, int(p.width)*int(p.height)*4)

	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, p.width, p.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenFramebuffers(1, &p.fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.texture, 0)

	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		p.destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// resize reallocates the texture when the framebuffer size changed.
func (p *Presenter) resize(width, height int32) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height
	p.rgba = make([]byte, int(width)*int(height)*4)

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	logger.Debug("upload texture resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
}

// Present uploads fb and swaps the window buffers.
func (p *Presenter) Present(fb *framebuffer.Framebuffer) error {
	if p.closed {
		return present.ErrClosed
	}
	p.resize(int32(fb.Width()), int32(fb.Height()))
	fb.WriteRGBA(p.rgba)

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, p.width, p.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(p.rgba))

	dw, dh := p.win.DrawableSize()
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(dw), int32(dh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	// Row 0 of the texture is the top image row, so the destination Y
	// range runs from top to bottom.
	gl.BlitFramebuffer(
		0, 0, p.width, p.height,
		0, int32(dh), int32(dw), 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST,
	)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("presenting frame: GL error 0x%x", code)
	}
	p.win.SwapBuffers()
	return nil
}

// Close releases all OpenGL resources.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.destroy()
	return nil
}

func (p *Presenter) destroy() {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
		p.fbo = 0
	}
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
		p.texture = 0
	}
}
