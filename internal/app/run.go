package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Faultbox/softrast/internal/config"
	"github.com/Faultbox/softrast/internal/engine/input"
	"github.com/Faultbox/softrast/internal/engine/present"
	"github.com/Faultbox/softrast/internal/engine/present/ebitenpresent"
	"github.com/Faultbox/softrast/internal/engine/present/glpresent"
	"github.com/Faultbox/softrast/internal/engine/window"
	"github.com/Faultbox/softrast/internal/logger"
)

// Run opens the configured backend and draws frames until the user quits or
// ctx is canceled.
func (v *Viewer) Run(ctx context.Context) error {
	logger.Info("starting render loop", zap.String("backend", v.cfg.Window.Backend))

	var err error
	switch v.cfg.Window.Backend {
	case config.BackendSDL:
		err = v.runSDL(ctx)
	case config.BackendEbiten:
		err = v.runEbiten(ctx)
	case config.BackendTerminal:
		err = v.runTerminal(ctx)
	default:
		err = fmt.Errorf("backend %q: %w", v.cfg.Window.Backend, config.ErrUnknownBackend)
	}

	logger.Info("render loop stopped", zap.Uint32("frames", v.Frames()))
	return err
}

// limiter returns the frame pacing limiter, or nil when unlimited.
func (v *Viewer) limiter() *rate.Limiter {
	if v.cfg.Graphics.FPSLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(v.cfg.Graphics.FPSLimit), 1)
}

func (v *Viewer) title() string {
	if !v.cfg.Window.ShowFPS {
		return v.cfg.Window.Title
	}
	return fmt.Sprintf("%s - %.1f FPS", v.cfg.Window.Title, v.fps.rate)
}

func (v *Viewer) runSDL(ctx context.Context) (err error) {
	w, h := v.fb.Size()
	scale := max(v.cfg.Window.Scale, 1)

	win, err := window.New(window.Config{
		Title:  v.cfg.Window.Title,
		Width:  w * scale,
		Height: h * scale,
		VSync:  v.cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	p, err := glpresent.New(win, w, h)
	if err != nil {
		return fmt.Errorf("failed to create presenter: %w", err)
	}
	defer func() { err = multierr.Append(err, p.Close()) }()

	var st input.State
	lim := v.limiter()
	for ctx.Err() == nil {
		if win.PollEvents(&st) {
			return nil
		}
		done, err := v.Step(&st)
		st.EndFrame()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := p.Present(v.fb); err != nil {
			return fmt.Errorf("present: %w", err)
		}
		if v.fpsNew && v.cfg.Window.ShowFPS {
			win.SetTitle(v.title())
		}
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return nil
			}
		}
	}
	return nil
}

func (v *Viewer) runEbiten(ctx context.Context) error {
	cfg := ebitenpresent.Config{
		Title: v.cfg.Window.Title,
		Scale: v.cfg.Window.Scale,
		VSync: v.cfg.Window.VSync,
		TPS:   v.cfg.Graphics.FPSLimit,
	}
	return ebitenpresent.Run(cfg, v.fb, func(st *input.State) (bool, error) {
		if ctx.Err() != nil {
			return true, nil
		}
		return v.Step(st)
	})
}

func (v *Viewer) runTerminal(ctx context.Context) (err error) {
	t := present.NewTerminal(os.Stdout, int(os.Stdout.Fd()), 0, 0)
	defer func() { err = multierr.Append(err, t.Close()) }()

	keys, err := present.NewTerminalInput(os.Stdin)
	switch {
	case errors.Is(err, present.ErrNotTerminal):
		// Piped stdin: the view still animates until ctx ends.
		logger.Info("keyboard disabled, stdin is not a terminal")
		keys, err = nil, nil
	case err != nil:
		logger.Warn("terminal input unavailable", zap.Error(err))
		keys, err = nil, nil
	default:
		defer func() { err = multierr.Append(err, keys.Close()) }()
	}

	var st input.State
	lim := v.limiter()
	for ctx.Err() == nil {
		if keys != nil && keys.Poll(&st) {
			return nil
		}
		done, err := v.Step(&st)
		st.EndFrame()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		t.SetStatus(v.StatusLines()[0])
		if err := t.Present(v.fb); err != nil {
			if errors.Is(err, present.ErrClosed) {
				return nil
			}
			return fmt.Errorf("present: %w", err)
		}
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return nil
			}
		}
	}
	return nil
}
