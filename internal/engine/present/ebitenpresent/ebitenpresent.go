// Package ebitenpresent runs the viewer inside an ebiten window. Ebiten owns
// the main loop, so the viewer supplies a Step callback instead of calling a
// presenter.
package ebitenpresent

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Faultbox/softrast/internal/engine/framebuffer"
	"github.com/Faultbox/softrast/internal/engine/input"
)

// Step advances the viewer by one frame and draws it into the framebuffer.
// Returning done ends the loop.
type Step func(st *input.State) (done bool, err error)

// Config holds the window settings.
type Config struct {
	Title string
	Scale int
	VSync bool
	TPS   int
}

// Keys maps ebiten keys to viewer actions.
var Keys = map[ebiten.Key]input.Action{
	ebiten.KeyArrowLeft:  input.ActionOrbitLeft,
	ebiten.KeyArrowRight: input.ActionOrbitRight,
	ebiten.KeyW:          input.ActionOrbitUp,
	ebiten.KeyS:          input.ActionOrbitDown,
	ebiten.KeyA:          input.ActionPanLeft,
	ebiten.KeyD:          input.ActionPanRight,
	ebiten.KeyQ:          input.ActionPanUp,
	ebiten.KeyE:          input.ActionPanDown,
	ebiten.KeyArrowUp:    input.ActionZoomIn,
	ebiten.KeyArrowDown:  input.ActionZoomOut,
	ebiten.KeyEscape:     input.ActionQuit,
	ebiten.KeyF12:        input.ActionScreenshot,
	ebiten.KeyH:          input.ActionToggleHUD,
}

type game struct {
	fb   *framebuffer.Framebuffer
	step Step
	st   input.State
	img  *ebiten.Image
	pix  []byte
}

func (g *game) Update() error {
	for k, a := range Keys {
		g.st.Set(a, ebiten.IsKeyPressed(k))
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		g.st.Tap(input.ActionZoomIn)
	} else if dy < 0 {
		g.st.Tap(input.ActionZoomOut)
	}

	done, err := g.step(&g.st)
	g.st.EndFrame()
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.fb.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		g.pix = make([]byte, w*h*4)
	}

	g.fb.WriteRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Size()
}

// Run opens the window and calls step once per tick until it reports done,
// returns an error, or the window is closed. It blocks and must run on the
// main goroutine.
func Run(cfg Config, fb *framebuffer.Framebuffer, step Step) error {
	scale := max(cfg.Scale, 1)
	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	w, h := fb.Size()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(tps)

	return ebiten.RunGame(&game{fb: fb, step: step})
}
