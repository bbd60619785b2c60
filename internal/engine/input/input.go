// Package input maps key presses from any window backend to viewer actions
// and applies them to the camera.
package input

import (
	"github.com/Faultbox/softrast/internal/engine/camera"
	"github.com/Faultbox/softrast/pkg/math"
)

// Action is a viewer control.
type Action uint8

// Actions, bound by default to the keys noted.
const (
	ActionNone       Action = iota
	ActionOrbitLeft         // Left
	ActionOrbitRight        // Right
	ActionOrbitUp           // W
	ActionOrbitDown         // S
	ActionPanLeft           // A
	ActionPanRight          // D
	ActionPanUp             // Q
	ActionPanDown           // E
	ActionZoomIn            // Up
	ActionZoomOut           // Down
	ActionQuit              // Escape
	ActionScreenshot        // F12
	ActionToggleHUD         // H
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:       "none",
	ActionOrbitLeft:  "orbit-left",
	ActionOrbitRight: "orbit-right",
	ActionOrbitUp:    "orbit-up",
	ActionOrbitDown:  "orbit-down",
	ActionPanLeft:    "pan-left",
	ActionPanRight:   "pan-right",
	ActionPanUp:      "pan-up",
	ActionPanDown:    "pan-down",
	ActionZoomIn:     "zoom-in",
	ActionZoomOut:    "zoom-out",
	ActionQuit:       "quit",
	ActionScreenshot: "screenshot",
	ActionToggleHUD:  "toggle-hud",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// State tracks which actions are held and which were pressed since the last
// EndFrame.
type State struct {
	held    [actionCount]bool
	pressed [actionCount]bool
}

// Set records a key transition for a.
func (s *State) Set(a Action, down bool) {
	if a == ActionNone || a >= actionCount {
		return
	}
	if down && !s.held[a] {
		s.pressed[a] = true
	}
	s.held[a] = down
}

// Tap marks a as pressed for one frame without holding it. Backends that only
// see key presses, like terminals, report keys this way.
func (s *State) Tap(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	s.pressed[a] = true
}

// Held reports whether a is held down.
func (s *State) Held(a Action) bool {
	return a < actionCount && s.held[a]
}

// Pressed reports whether a was pressed this frame.
func (s *State) Pressed(a Action) bool {
	return a < actionCount && s.pressed[a]
}

// Active reports whether a is held or was pressed this frame.
func (s *State) Active(a Action) bool {
	return s.Held(a) || s.Pressed(a)
}

// EndFrame clears the pressed flags.
func (s *State) EndFrame() {
	s.pressed = [actionCount]bool{}
}

// Reset releases every action.
func (s *State) Reset() {
	*s = State{}
}

// Speeds are the per-frame camera steps of the controls.
type Speeds struct {
	Orbit float32 // radians
	Zoom  float32
	Move  float32
}

// ApplyCamera moves the camera for every active action. It reports whether
// the camera changed.
func (s *State) ApplyCamera(c *camera.Camera, sp Speeds) bool {
	changed := false

	var yaw, pitch float32
	if s.Active(ActionOrbitLeft) {
		yaw += sp.Orbit
	}
	if s.Active(ActionOrbitRight) {
		yaw -= sp.Orbit
	}
	if s.Active(ActionOrbitUp) {
		pitch += sp.Orbit
	}
	if s.Active(ActionOrbitDown) {
		pitch -= sp.Orbit
	}
	if yaw != 0 || pitch != 0 {
		c.Orbit(yaw, pitch)
		changed = true
	}

	var move math.Vec3
	if s.Active(ActionPanLeft) {
		move.X -= sp.Move
	}
	if s.Active(ActionPanRight) {
		move.X += sp.Move
	}
	if s.Active(ActionPanUp) {
		move.Y += sp.Move
	}
	if s.Active(ActionPanDown) {
		move.Y -= sp.Move
	}
	if move.Length() > 0 {
		c.MoveCenter(move)
		changed = true
	}

	if s.Active(ActionZoomIn) {
		c.Zoom(sp.Zoom)
		changed = true
	}
	if s.Active(ActionZoomOut) {
		c.Zoom(-sp.Zoom)
		changed = true
	}
	return changed
}
