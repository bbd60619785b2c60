package debug

import (
	"image"
	"math"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
)

// DepthImage renders the depth buffer as grayscale: the nearest written
// depth is white, the farthest dark grey and untouched pixels black.
func DepthImage(fb *framebuffer.Framebuffer) *image.Gray {
	w, h := fb.Size()
	img := image.NewGray(image.Rect(0, 0, w, h))
	depth := fb.Depth()

	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, d := range depth {
		if math.IsInf(float64(d), 0) || d != d {
			continue
		}
		lo = min(lo, d)
		hi = max(hi, d)
	}
	if lo > hi {
		return img
	}

	span := hi - lo
	for i, d := range depth {
		if math.IsInf(float64(d), 0) || d != d {
			continue
		}
		t := float32(1)
		if span > 0 {
			t = min(max(1-(d-lo)/span, 0), 1)
		}
		img.Pix[i] = uint8(48 + t*207 + 0.5)
	}
	return img
}
