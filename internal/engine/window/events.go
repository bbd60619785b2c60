package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/softrast/internal/engine/input"
)

// Keys maps SDL scancodes to viewer actions.
var Keys = map[sdl.Scancode]input.Action{
	sdl.SCANCODE_LEFT:   input.ActionOrbitLeft,
	sdl.SCANCODE_RIGHT:  input.ActionOrbitRight,
	sdl.SCANCODE_W:      input.ActionOrbitUp,
	sdl.SCANCODE_S:      input.ActionOrbitDown,
	sdl.SCANCODE_A:      input.ActionPanLeft,
	sdl.SCANCODE_D:      input.ActionPanRight,
	sdl.SCANCODE_Q:      input.ActionPanUp,
	sdl.SCANCODE_E:      input.ActionPanDown,
	sdl.SCANCODE_UP:     input.ActionZoomIn,
	sdl.SCANCODE_DOWN:   input.ActionZoomOut,
	sdl.SCANCODE_ESCAPE: input.ActionQuit,
	sdl.SCANCODE_F12:    input.ActionScreenshot,
	sdl.SCANCODE_H:      input.ActionToggleHUD,
}

// PollEvents drains the SDL event queue into st. It returns true when the
// window was asked to close.
func (w *Window) PollEvents(st *input.State) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
				st.Reset()
			}

		case *sdl.KeyboardEvent:
			if a, ok := Keys[e.Keysym.Scancode]; ok {
				st.Set(a, e.Type == sdl.KEYDOWN)
			}

		case *sdl.MouseWheelEvent:
			if e.Y > 0 {
				st.Tap(input.ActionZoomIn)
			} else if e.Y < 0 {
				st.Tap(input.ActionZoomOut)
			}
		}
	}
	return quit
}
