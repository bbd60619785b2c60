package debug

import (
	"image"
	stdcolor "image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/softrast/internal/engine/color"
	"github.com/Faultbox/softrast/internal/engine/framebuffer"
)

// HUD draws lines of text in the top-left corner of a frame.
type HUD struct {
	Lines  []string
	Color  color.Packed
	Shadow color.Packed
	Margin int

	mask *image.Alpha
}

// NewHUD creates a HUD with white text and a black shadow.
func NewHUD() *HUD {
	return &HUD{
		Color:  0xFFFFFF,
		Shadow: 0x000000,
		Margin: 4,
	}
}

// SetLines replaces the HUD text.
func (h *HUD) SetLines(lines ...string) {
	h.Lines = append(h.Lines[:0], lines...)
}

// Size returns the text block size in pixels.
func (h *HUD) Size() (width, height int) {
	face := basicfont.Face7x13
	for _, l := range h.Lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	return width, len(h.Lines) * face.Height
}

// render rasterizes the text into an alpha mask.
func (h *HUD) render() *image.Alpha {
	w, ht := h.Size()
	r := image.Rect(0, 0, w, ht)
	if h.mask == nil || !h.mask.Rect.Eq(r) {
		h.mask = image.NewAlpha(r)
	} else {
		clear(h.mask.Pix)
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  h.mask,
		Src:  image.NewUniform(stdcolor.Alpha{A: 0xFF}),
		Face: face,
	}
	for i, l := range h.Lines {
		d.Dot = fixed.P(0, i*face.Height+face.Ascent)
		d.DrawString(l)
	}
	return h.mask
}

// Draw writes the text over fb with a one pixel drop shadow. Only colors
// change; the depth buffer still describes the scene.
func (h *HUD) Draw(fb *framebuffer.Framebuffer) {
	if len(h.Lines) == 0 {
		return
	}
	mask := h.render()
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A < 0x80 {
				continue
			}
			px, py := h.Margin+x, h.Margin+y
			fb.Overlay(px, py, h.Color)
			// The shadow must not cover text pixels already written.
			if h.Shadow != h.Color && (x+1 >= b.Max.X || y+1 >= b.Max.Y || mask.AlphaAt(x+1, y+1).A < 0x80) {
				fb.Overlay(px+1, py+1, h.Shadow)
			}
		}
	}
}

// DrawImage writes the text onto img, for images that are no longer in a
// framebuffer.
func (h *HUD) DrawImage(img *image.RGBA) {
	if len(h.Lines) == 0 {
		return
	}
	mask := h.render()
	r, g, bl := h.Color.RGB8()
	c := stdcolor.RGBA{R: r, G: g, B: bl, A: 0xFF}
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				img.SetRGBA(h.Margin+x, h.Margin+y, c)
			}
		}
	}
}
