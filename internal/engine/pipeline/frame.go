package pipeline

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
	"github.com/Faultbox/softrast/internal/engine/model"
	"github.com/Faultbox/softrast/internal/engine/shader"
	"github.com/Faultbox/softrast/internal/engine/transform"
	"github.com/Faultbox/softrast/internal/logger"
	"github.com/Faultbox/softrast/pkg/math"
)

// Object is one draw call: a shared vertex list placed by a model matrix.
type Object struct {
	Name     string
	Vertices []model.Vertex
	Model    math.Mat4
	Material model.Material

	// Shader overrides the material's shader when set.
	Shader shader.Shader
}

// Frame draws whole frames. Objects are drawn in order into one shared depth
// buffer, so the result does not depend on the order except for depth ties,
// which keep the first object drawn.
type Frame struct {
	renderer Renderer
	count    uint32
	last     Stats
}

// Draw clears fb and draws every object with the per-frame uniforms u,
// replacing u.Model with each object's model matrix.
func (f *Frame) Draw(fb *framebuffer.Framebuffer, u transform.Uniforms, objects []Object) Stats {
	fb.Clear()

	var total Stats
	for _, o := range objects {
		ou := u.WithModel(o.Model)
		sh := o.Shader
		if sh == nil {
			sh = shader.For(o.Material)
		}
		total.Add(f.renderer.RenderWith(fb, ou, o.Vertices, o.Material, sh))
	}

	f.count++
	f.last = total
	if logger.Enabled(zapcore.DebugLevel) {
		logger.Debug("frame drawn", append([]zap.Field{zap.Uint32("frame", f.count)}, total.Fields()...)...)
	}
	return total
}

// Count returns the number of frames drawn.
func (f *Frame) Count() uint32 {
	return f.count
}

// Last returns the statistics of the most recent frame.
func (f *Frame) Last() Stats {
	return f.last
}
