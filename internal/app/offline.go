package app

import (
	"context"
	"fmt"
	"image"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/softrast/internal/engine/debug"
	"github.com/Faultbox/softrast/internal/engine/pipeline"
	"github.com/Faultbox/softrast/internal/logger"
)

// OfflineOptions control a headless render.
type OfflineOptions struct {
	Frames   int
	Dir      string
	Prefix   string
	Format   string
	HUD      bool
	Depth    bool // also write the depth buffer of every frame
	Progress bool
	// Writers limits the number of images encoded concurrently.
	Writers int
}

// OfflineResult lists the files written and the summed frame statistics.
type OfflineResult struct {
	Files []string
	Stats pipeline.Stats
}

// Offline renders opts.Frames frames without a window and writes each one to
// disk. Frames are drawn in order; encoding runs in the background.
func (v *Viewer) Offline(ctx context.Context, opts OfflineOptions) (OfflineResult, error) {
	var res OfflineResult
	frames := max(opts.Frames, 1)
	shots, err := debug.NewScreenshotCapture(opts.Dir, opts.Prefix, opts.Format)
	if err != nil {
		return res, err
	}
	depthShots, err := debug.NewScreenshotCapture(opts.Dir, opts.Prefix+"_depth", opts.Format)
	if err != nil {
		return res, err
	}
	v.showHUD = opts.HUD

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(frames), "rendering")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Writers, 1))

	files := make([]string, frames*(1+btoi(opts.Depth)))
	for i := 0; i < frames; i++ {
		if gctx.Err() != nil {
			break
		}
		res.Stats.Add(v.Render())

		n := i + 1
		var depth image.Image
		if opts.Depth {
			depth = debug.DepthImage(v.fb)
		}
		img := v.fb.RGBA()
		g.Go(func() error {
			path, err := shots.CaptureFrame(img, n)
			if err != nil {
				return fmt.Errorf("frame %d: %w", n, err)
			}
			files[n-1] = path
			if depth != nil {
				dpath, err := depthShots.CaptureFrame(depth, n)
				if err != nil {
					return fmt.Errorf("frame %d depth: %w", n, err)
				}
				files[frames+n-1] = dpath
			}
			return nil
		})
		if bar != nil {
			bar.Add(1)
		}
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if bar != nil {
		bar.Finish()
	}

	res.Files = files
	logger.Info("offline render finished",
		append([]zap.Field{zap.Int("frames", frames), zap.String("dir", opts.Dir)}, res.Stats.Fields()...)...)
	return res, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
