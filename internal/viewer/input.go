package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/camera"
)

// FrameInput is everything handleInput reads from the window in one frame.
type FrameInput struct {
	Mouse        camera.Mouse
	Position     rl.Vector2
	LeftPressed  bool
	LeftReleased bool
	Escape       bool
	ToggleDebug  bool
}

func readFrameInput() FrameInput {
	return FrameInput{
		Mouse:        camera.ReadMouse(),
		Position:     rl.GetMousePosition(),
		LeftPressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		LeftReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Escape:       rl.IsKeyPressed(rl.KeyEscape),
		ToggleDebug:  rl.IsKeyPressed(rl.KeyF1),
	}
}

// handleInput routes one frame of input. The popup swallows presses and
// orbit gestures that start on it; a left drag begun on the scene keeps
// orbiting when it crosses the popup.
func (v *Viewer) handleInput(in FrameInput, w, h float32) {
	if in.ToggleDebug {
		v.DebugMode = !v.DebugMode
	}
	if in.Escape {
		v.Controller.ClosePopup()
	}

	mouse := in.Position
	overPopup := v.Popup.Contains(mouse)
	if in.Mouse.Delta.X != 0 || in.Mouse.Delta.Y != 0 {
		v.Controller.PointerMove(mouse.X, mouse.Y, w, h)
	}

	if in.LeftPressed {
		if overPopup {
			v.gesture.Cancel()
		} else {
			v.gesture.Press(mouse)
		}
	}

	orbit := camera.Input{}
	if !overPopup || v.gesture.Pressed() {
		orbit = in.Mouse.Input()
	}
	v.Camera.Update(orbit)

	if in.LeftReleased && v.gesture.Release(mouse) {
		v.Controller.PointerMove(mouse.X, mouse.Y, w, h)
		v.Controller.Click(v.Camera)
	}
}
