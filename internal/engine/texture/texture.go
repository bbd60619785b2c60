// Package texture loads images the framebuffer draws behind the scene.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/softrast/internal/engine/color"
)

// ErrEmpty is returned for images without pixels.
var ErrEmpty = errors.New("empty texture")

// Texture is an RGB image stored row-major from the top-left corner.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pix    []color.Color
}

// Load reads a PNG, BMP or TGA file.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	t, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return t, nil
}

// FromImage copies img into a texture.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]color.Color, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			t.Pix = append(t.Pix, color.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8)))
		}
	}
	return t, nil
}

// At returns the texel at (x, y), wrapping out-of-range coordinates.
func (t *Texture) At(x, y int) color.Color {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Pix[y*t.Width+x]
}

// Fit scales the image to cover width×height, keeping its aspect ratio and
// cropping the overflow evenly from both sides. Pixels are picked nearest.
func (t *Texture) Fit(width, height int) []color.Packed {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]color.Packed, width*height)
	scale := max(float64(width)/float64(t.Width), float64(height)/float64(t.Height))
	offX := (float64(t.Width) - float64(width)/scale) / 2
	offY := (float64(t.Height) - float64(height)/scale) / 2
	for y := 0; y < height; y++ {
		sy := min(int(offY+(float64(y)+0.5)/scale), t.Height-1)
		for x := 0; x < width; x++ {
			sx := min(int(offX+(float64(x)+0.5)/scale), t.Width-1)
			out[y*width+x] = t.At(sx, sy).Pack()
		}
	}
	return out
}
