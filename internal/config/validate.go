package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/softrast/internal/engine/model"
)

// Validation errors.
var (
	ErrInvalidSize    = errors.New("invalid framebuffer size")
	ErrUnknownBackend = errors.New("unknown window backend")
	ErrUnknownFormat  = errors.New("unknown image format")
	ErrUnknownScene   = errors.New("unknown scene")
	ErrColorRange     = errors.New("color out of range")
)

// Validate checks the settings that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Graphics.Width < 1 || c.Graphics.Height < 1 {
		return fmt.Errorf("graphics %dx%d: %w", c.Graphics.Width, c.Graphics.Height, ErrInvalidSize)
	}
	switch c.Window.Backend {
	case BackendSDL, BackendEbiten, BackendTerminal:
	default:
		return fmt.Errorf("window.backend %q: %w", c.Window.Backend, ErrUnknownBackend)
	}
	switch c.Output.Format {
	case FormatPNG, FormatBMP:
	default:
		return fmt.Errorf("output.format %q: %w", c.Output.Format, ErrUnknownFormat)
	}
	switch c.Scene.Name {
	case SceneSolar, SceneSingle:
	default:
		return fmt.Errorf("scene.name %q: %w", c.Scene.Name, ErrUnknownScene)
	}
	if _, err := model.ParseMaterial(c.Scene.Material); err != nil {
		return fmt.Errorf("scene.material: %w", err)
	}
	if c.Window.Scale < 1 {
		c.Window.Scale = 1
	}
	if c.Output.Frames < 1 {
		c.Output.Frames = 1
	}
	return nil
}
