// Package framebuffer provides the CPU color and depth buffers the rasterizer
// draws into.
package framebuffer

import (
	"image"
	stdcolor "image/color"
	"math"
	"math/rand/v2"

	"github.com/Faultbox/softrast/internal/engine/color"
)

// Default colors of a freshly created framebuffer.
const (
	DefaultBackground color.Packed = 0x000000
	DefaultColor      color.Packed = 0xFFFFFF
)

// Backdrop is an image drawn behind the scene. Fit returns width*height
// row-major pixels.
type Backdrop interface {
	Fit(width, height int) []color.Packed
}

// Framebuffer holds a packed 0xRRGGBB color buffer and a parallel depth buffer,
// both indexed by y*width+x with the origin at the top-left corner.
//
// The two buffers always have width*height entries; they are allocated,
// resized and cleared together. A depth of +Inf means nothing was drawn.
type Framebuffer struct {
	width  int
	height int
	pixels []uint32
	depth  []float32

	background   color.Packed
	current      color.Packed
	backdrop     []uint32 // optional background layer copied by Clear
	image        Backdrop
	starColor    color.Packed
	starCount    int
	starSeed     uint64
	clearedDepth []float32
}

// New creates a framebuffer with the given dimensions, cleared to the default
// background. Dimensions below 1 are raised to 1.
func New(width, height int) *Framebuffer {
	fb := &Framebuffer{
		background: DefaultBackground,
		current:    DefaultColor,
	}
	fb.allocate(width, height)
	fb.Clear()
	return fb
}

func (fb *Framebuffer) allocate(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	n := width * height
	fb.width = width
	fb.height = height
	fb.pixels = make([]uint32, n)
	fb.depth = make([]float32, n)

	fb.clearedDepth = make([]float32, n)
	inf := float32(math.Inf(1))
	for i := range fb.clearedDepth {
		fb.clearedDepth[i] = inf
	}

	fb.refreshBackdrop()
}

// Clear resets every pixel to the background and every depth to +Inf.
func (fb *Framebuffer) Clear() {
	if fb.backdrop != nil {
		copy(fb.pixels, fb.backdrop)
	} else {
		bg := uint32(fb.background)
		for i := range fb.pixels {
			fb.pixels[i] = bg
		}
	}
	copy(fb.depth, fb.clearedDepth)
}

// Point writes c at (x, y) if the pixel is inside the buffer and depth is
// strictly nearer than the stored depth. Out-of-range coordinates are ignored
// and ties keep the pixel that was drawn first.
func (fb *Framebuffer) Point(x, y int, depth float32, c color.Packed) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	i := y*fb.width + x
	if depth < fb.depth[i] {
		fb.pixels[i] = uint32(c)
		fb.depth[i] = depth
	}
}

// Overlay writes c at (x, y) without testing or updating depth, for overlays
// drawn after the scene. Out-of-range coordinates are ignored.
func (fb *Framebuffer) Overlay(x, y int, c color.Packed) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.pixels[y*fb.width+x] = uint32(c)
}

// SetCurrentColor sets the color used by PointCurrent.
func (fb *Framebuffer) SetCurrentColor(c color.Packed) {
	fb.current = c
}

// CurrentColor returns the color used by PointCurrent.
func (fb *Framebuffer) CurrentColor() color.Packed {
	return fb.current
}

// PointCurrent is Point with the color set by SetCurrentColor.
func (fb *Framebuffer) PointCurrent(x, y int, depth float32) {
	fb.Point(x, y, depth, fb.current)
}

// SetBackgroundColor replaces the color used by Clear. It rebuilds the star
// layer when one is configured and does not touch the current contents.
func (fb *Framebuffer) SetBackgroundColor(c color.Packed) {
	fb.background = c
	fb.refreshBackdrop()
}

// BackgroundColor returns the color used by Clear.
func (fb *Framebuffer) BackgroundColor() color.Packed {
	return fb.background
}

// SetBackgroundStars scatters n pixels of starColor over the background.
// The layout is a function of seed, so every Clear restores the same sky.
// n <= 0 removes the stars.
func (fb *Framebuffer) SetBackgroundStars(starColor color.Packed, n int, seed uint64) {
	fb.starColor = starColor
	fb.starCount = n
	fb.starSeed = seed
	fb.refreshBackdrop()
}

// SetBackgroundImage draws img behind the stars, refitted on every Resize.
// nil goes back to the plain background color. Like SetBackgroundColor it
// takes effect at the next Clear.
func (fb *Framebuffer) SetBackgroundImage(img Backdrop) {
	fb.image = img
	fb.refreshBackdrop()
}

func (fb *Framebuffer) refreshBackdrop() {
	if fb.starCount <= 0 && fb.image == nil {
		fb.backdrop = nil
		return
	}
	if len(fb.backdrop) != len(fb.pixels) {
		fb.backdrop = make([]uint32, len(fb.pixels))
	}

	bg := uint32(fb.background)
	for i := range fb.backdrop {
		fb.backdrop[i] = bg
	}
	if fb.image != nil {
		for i, p := range fb.image.Fit(fb.width, fb.height) {
			if i >= len(fb.backdrop) {
				break
			}
			fb.backdrop[i] = uint32(p)
		}
	}

	if fb.starCount <= 0 {
		return
	}
	rng := rand.New(rand.NewPCG(fb.starSeed, fb.starSeed^0x9e3779b97f4a7c15))
	for range fb.starCount {
		x := rng.IntN(fb.width)
		y := rng.IntN(fb.height)
		fb.backdrop[y*fb.width+x] = uint32(fb.starColor)
	}
}

// Resize reallocates both buffers if the dimensions changed and clears them.
func (fb *Framebuffer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == fb.width && height == fb.height {
		return
	}
	fb.allocate(width, height)
	fb.Clear()
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// Pixels returns the row-major color buffer for presentation.
// The slice is owned by the framebuffer and valid until the next Resize.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pixels
}

// Depth returns the row-major depth buffer.
func (fb *Framebuffer) Depth() []float32 {
	return fb.depth
}

// At returns the color at (x, y), or the background when out of range.
func (fb *Framebuffer) At(x, y int) color.Packed {
	if !fb.InBounds(x, y) {
		return fb.background
	}
	return color.Packed(fb.pixels[y*fb.width+x])
}

// DepthAt returns the depth at (x, y), or +Inf when out of range.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	if !fb.InBounds(x, y) {
		return float32(math.Inf(1))
	}
	return fb.depth[y*fb.width+x]
}

// WriteRGBA expands the color buffer into dst as RGBA bytes with opaque alpha.
// dst must hold at least width*height*4 bytes.
func (fb *Framebuffer) WriteRGBA(dst []byte) {
	for i, p := range fb.pixels {
		j := i * 4
		dst[j+0] = uint8(p >> 16)
		dst[j+1] = uint8(p >> 8)
		dst[j+2] = uint8(p)
		dst[j+3] = 0xFF
	}
}

// RGBA copies the color buffer into a new image.
func (fb *Framebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.WriteRGBA(img.Pix)
	return img
}

// imageView adapts the color buffer to image.Image without copying.
type imageView struct {
	fb *Framebuffer
}

// Image returns a read-only image.Image view of the color buffer.
func (fb *Framebuffer) Image() image.Image {
	return imageView{fb: fb}
}

func (v imageView) ColorModel() stdcolor.Model { return stdcolor.RGBAModel }

func (v imageView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.fb.width, v.fb.height)
}

func (v imageView) At(x, y int) stdcolor.Color {
	r, g, b := v.fb.At(x, y).RGB8()
	return stdcolor.RGBA{R: r, G: g, B: b, A: 0xFF}
}
