package framebuffer

import (
	"math"
	"slices"
	"testing"

	"github.com/Faultbox/softrast/internal/engine/color"
)

func TestNewInvariants(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"regular", 800, 600, 800, 600},
		{"single pixel", 1, 1, 1, 1},
		{"zero clamps", 0, -5, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := New(tt.w, tt.h)
			w, h := fb.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if len(fb.Pixels()) != w*h || len(fb.Depth()) != w*h {
				t.Errorf("buffer lengths = %d/%d, want %d", len(fb.Pixels()), len(fb.Depth()), w*h)
			}
			for i, d := range fb.Depth() {
				if !math.IsInf(float64(d), 1) {
					t.Fatalf("depth[%d] = %v, want +Inf", i, d)
				}
			}
		})
	}
}

func TestClearThenPointAlwaysWrites(t *testing.T) {
	fb := New(4, 3)
	fb.Point(1, 1, 0.3, 0x111111)
	fb.Point(2, 2, -5, 0x222222)
	fb.Clear()

	for _, d := range []float32{-1e30, 0, 0.5, 999, 1e30} {
		fb.Clear()
		fb.Point(3, 2, d, 0xABCDEF)
		if got := fb.At(3, 2); got != 0xABCDEF {
			t.Errorf("depth %v: At() = %s, want #abcdef", d, got)
		}
		if got := fb.DepthAt(3, 2); got != d {
			t.Errorf("depth %v: DepthAt() = %v", d, got)
		}
	}
}

func TestPointIdempotent(t *testing.T) {
	once := New(5, 5)
	twice := New(5, 5)

	once.Point(2, 3, 0.4, 0x00FF00)
	twice.Point(2, 3, 0.4, 0x00FF00)
	twice.Point(2, 3, 0.4, 0x00FF00)

	if !slices.Equal(once.Pixels(), twice.Pixels()) || !slices.Equal(once.Depth(), twice.Depth()) {
		t.Error("repeated identical Point calls changed the result")
	}
}

func TestDepthOrderIndependence(t *testing.T) {
	const near, far = 0.2, 0.8
	const nearColor, farColor color.Packed = 0xFF0000, 0x0000FF

	a := New(2, 2)
	a.Point(1, 1, near, nearColor)
	a.Point(1, 1, far, farColor)

	b := New(2, 2)
	b.Point(1, 1, far, farColor)
	b.Point(1, 1, near, nearColor)

	for name, fb := range map[string]*Framebuffer{"near first": a, "far first": b} {
		if got := fb.At(1, 1); got != nearColor {
			t.Errorf("%s: color = %s, want %s", name, got, nearColor)
		}
		if got := fb.DepthAt(1, 1); got != near {
			t.Errorf("%s: depth = %v, want %v", name, got, float32(near))
		}
	}
}

func TestDepthTieKeepsFirst(t *testing.T) {
	fb := New(3, 3)
	fb.Point(0, 0, 0.5, 0xAAAAAA)
	fb.Point(0, 0, 0.5, 0xBBBBBB)
	if got := fb.At(0, 0); got != 0xAAAAAA {
		t.Errorf("tie: At() = %s, want first writer #aaaaaa", got)
	}
}

func TestOutOfBoundsIgnored(t *testing.T) {
	fb := New(4, 4)
	fb.Point(1, 1, 0.5, 0x123456)
	pixels := slices.Clone(fb.Pixels())
	depth := slices.Clone(fb.Depth())

	coords := [][2]int{{4, 0}, {0, 4}, {4, 4}, {-1, 0}, {0, -1}, {100, 100}, {math.MaxInt32, 2}}
	for _, c := range coords {
		fb.Point(c[0], c[1], -1, 0xFFFFFF)
	}

	if !slices.Equal(pixels, fb.Pixels()) || !slices.Equal(depth, fb.Depth()) {
		t.Error("out-of-bounds Point mutated the buffers")
	}
}

func TestNaNDepthIgnored(t *testing.T) {
	fb := New(2, 2)
	fb.Point(0, 0, float32(math.NaN()), 0xFFFFFF)
	if got := fb.At(0, 0); got != DefaultBackground {
		t.Errorf("NaN depth wrote %s", got)
	}
}

func TestOverlayKeepsDepth(t *testing.T) {
	fb := New(4, 4)
	fb.Point(1, 1, 0.5, 0x00FF00)

	fb.Overlay(1, 1, 0xFF0000)
	fb.Overlay(2, 2, 0x0000FF)
	fb.Overlay(-1, 9, 0xFFFFFF)

	if got := fb.At(1, 1); got != 0xFF0000 {
		t.Errorf("color over geometry: got %06x, want ff0000", uint32(got))
	}
	if got := fb.DepthAt(1, 1); got != 0.5 {
		t.Errorf("depth under overlay: got %v, want 0.5", got)
	}
	if got := fb.At(2, 2); got != 0x0000FF {
		t.Errorf("color on empty pixel: got %06x, want 0000ff", uint32(got))
	}
	if got := fb.DepthAt(2, 2); !math.IsInf(float64(got), 1) {
		t.Errorf("depth of empty pixel: got %v, want +Inf", got)
	}

	// Geometry nearer than the stored depth still draws over an overlay.
	fb.Point(2, 2, 0.1, 0x00FF00)
	if got := fb.At(2, 2); got != 0x00FF00 {
		t.Errorf("point after overlay: got %06x, want 00ff00", uint32(got))
	}
}

func TestBackgroundColor(t *testing.T) {
	fb := New(3, 2)
	fb.SetBackgroundColor(0x333355)
	if got := fb.At(0, 0); got != DefaultBackground {
		t.Errorf("SetBackgroundColor should not repaint before Clear, got %s", got)
	}
	fb.Clear()
	for i, p := range fb.Pixels() {
		if color.Packed(p) != 0x333355 {
			t.Fatalf("pixel %d = %s, want #333355", i, color.Packed(p))
		}
	}
}

func TestCurrentColorCompat(t *testing.T) {
	fb := New(2, 2)
	if fb.CurrentColor() != DefaultColor {
		t.Errorf("CurrentColor() = %s, want %s", fb.CurrentColor(), DefaultColor)
	}
	fb.SetCurrentColor(0x00FF00)
	fb.PointCurrent(1, 0, 1)
	if got := fb.At(1, 0); got != 0x00FF00 {
		t.Errorf("PointCurrent wrote %s, want #00ff00", got)
	}
}

func TestBackgroundStarsPersistAcrossClear(t *testing.T) {
	fb := New(40, 30)
	fb.SetBackgroundColor(0x333355)
	fb.SetBackgroundStars(0xFFFFFF, 100, 7)
	fb.Clear()

	stars := countColor(fb, 0xFFFFFF)
	if stars == 0 || stars > 100 {
		t.Fatalf("star count = %d, want 1..100", stars)
	}
	first := slices.Clone(fb.Pixels())

	fb.Point(0, 0, 0.1, 0xFF0000)
	fb.Clear()
	if !slices.Equal(first, fb.Pixels()) {
		t.Error("Clear did not restore the same star layout")
	}

	other := New(40, 30)
	other.SetBackgroundColor(0x333355)
	other.SetBackgroundStars(0xFFFFFF, 100, 7)
	other.Clear()
	if !slices.Equal(first, other.Pixels()) {
		t.Error("same seed produced a different sky")
	}

	fb.SetBackgroundStars(0xFFFFFF, 0, 7)
	fb.Clear()
	if n := countColor(fb, 0xFFFFFF); n != 0 {
		t.Errorf("stars remain after removal: %d", n)
	}
}

// stripes fits as vertical stripes of its colors.
type stripes []color.Packed

func (s stripes) Fit(width, height int) []color.Packed {
	out := make([]color.Packed, width*height)
	for i := range out {
		out[i] = s[(i%width)*len(s)/width]
	}
	return out
}

func TestBackgroundImage(t *testing.T) {
	fb := New(4, 2)
	fb.SetBackgroundImage(stripes{0xFF0000, 0x0000FF})
	fb.Clear()
	if fb.At(0, 1) != 0xFF0000 || fb.At(3, 0) != 0x0000FF {
		t.Fatalf("image not drawn: %06x %06x", uint32(fb.At(0, 1)), uint32(fb.At(3, 0)))
	}
	if !math.IsInf(float64(fb.DepthAt(0, 0)), 1) {
		t.Error("background image wrote depth")
	}

	// Stars go over the image and both survive a resize.
	fb.SetBackgroundStars(0xFFFFFF, 4, 7)
	fb.Resize(8, 4)
	stars, left, right := 0, 0, 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			switch fb.At(x, y) {
			case 0xFFFFFF:
				stars++
			case 0xFF0000:
				left++
				if x >= 4 {
					t.Errorf("red pixel in the right half at (%d,%d)", x, y)
				}
			case 0x0000FF:
				right++
			}
		}
	}
	if stars == 0 || left == 0 || right == 0 {
		t.Errorf("after resize: %d stars, %d red, %d blue", stars, left, right)
	}

	fb.SetBackgroundStars(0, 0, 0)
	fb.SetBackgroundImage(nil)
	fb.Clear()
	for _, p := range fb.Pixels() {
		if color.Packed(p) != fb.BackgroundColor() {
			t.Fatalf("pixel %06x after removing the image", p)
		}
	}
}

func TestResize(t *testing.T) {
	fb := New(4, 4)
	fb.Point(1, 1, 0.5, 0x123456)
	fb.Resize(8, 2)

	if w, h := fb.Size(); w != 8 || h != 2 {
		t.Fatalf("Size() = %dx%d, want 8x2", w, h)
	}
	if len(fb.Pixels()) != 16 || len(fb.Depth()) != 16 {
		t.Fatalf("buffer lengths = %d/%d, want 16", len(fb.Pixels()), len(fb.Depth()))
	}
	if d := fb.DepthAt(7, 1); !math.IsInf(float64(d), 1) {
		t.Errorf("DepthAt after resize = %v, want +Inf", d)
	}
}

func TestRGBA(t *testing.T) {
	fb := New(2, 1)
	fb.Point(1, 0, 0, 0x102030)
	img := fb.RGBA()

	got := img.Pix[4:8]
	want := []byte{0x10, 0x20, 0x30, 0xFF}
	if !slices.Equal(got, want) {
		t.Errorf("RGBA pixel = %v, want %v", got, want)
	}
	if r, g, b, _ := fb.Image().At(1, 0).RGBA(); r>>8 != 0x10 || g>>8 != 0x20 || b>>8 != 0x30 {
		t.Errorf("Image().At = %x %x %x", r>>8, g>>8, b>>8)
	}
}

func countColor(fb *Framebuffer, c color.Packed) int {
	n := 0
	for _, p := range fb.Pixels() {
		if color.Packed(p) == c {
			n++
		}
	}
	return n
}
