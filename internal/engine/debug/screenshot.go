// Package debug provides screenshots and on-screen diagnostics.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
)

// ErrUnknownFormat is returned for image formats other than png and bmp.
var ErrUnknownFormat = errors.New("unknown image format")

// ScreenshotCapture writes framebuffer images to disk.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
	last      string
	seq       int
}

// NewScreenshotCapture creates a capture handler writing format ("png" or
// "bmp") files named prefix_<suffix>.<format> into outputDir.
func NewScreenshotCapture(outputDir, prefix, format string) (*ScreenshotCapture, error) {
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "bmp" {
		return nil, fmt.Errorf("screenshot format %q: %w", format, ErrUnknownFormat)
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}, nil
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Capture saves the color buffer of fb under a timestamped name.
func (sc *ScreenshotCapture) Capture(fb *framebuffer.Framebuffer) (string, error) {
	return sc.CaptureFromImage(fb.RGBA())
}

// CaptureFromImage saves img under a timestamped name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	return sc.save(sc.GenerateFilename(), img)
}

// CaptureFrame saves img as frame n of a sequence, e.g. prefix_000042.png.
func (sc *ScreenshotCapture) CaptureFrame(img image.Image, n int) (string, error) {
	return sc.save(sc.path(fmt.Sprintf("%06d", n)), img)
}

// GenerateFilename returns the next timestamped filename without saving.
// Several captures within one second get increasing suffixes.
func (sc *ScreenshotCapture) GenerateFilename() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	if stamp == sc.last {
		sc.seq++
		return sc.path(fmt.Sprintf("%s_%d", stamp, sc.seq))
	}
	sc.last, sc.seq = stamp, 0
	return sc.path(stamp)
}

func (sc *ScreenshotCapture) path(suffix string) string {
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, suffix, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

func (sc *ScreenshotCapture) save(filename string, img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, img, sc.format); err != nil {
		return "", err
	}
	return filename, nil
}

// Encode writes img to w as png or bmp.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		return fmt.Errorf("encoding %q: %w", format, ErrUnknownFormat)
	}
	return nil
}
