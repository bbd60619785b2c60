// Package present shows finished framebuffers. Presenters only copy the CPU
// color buffer; they never draw.
package present

import (
	"errors"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
)

// Presenter errors.
var (
	ErrClosed      = errors.New("presenter closed")
	ErrNotTerminal = errors.New("not a terminal")
)

// Presenter displays a framebuffer.
type Presenter interface {
	// Present shows the current contents of fb. It must be called only
	// after the whole frame is drawn.
	Present(fb *framebuffer.Framebuffer) error
	Close() error
}
