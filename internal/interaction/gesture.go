package interaction

import rl "github.com/gen2brain/raylib-go/raylib"

// ClickGesture tells clicks apart from drags: a release counts as a click
// only if the pointer stayed within Slop pixels of where it was pressed.
type ClickGesture struct {
	Slop float32

	pressed bool
	start   rl.Vector2
}

func (g *ClickGesture) Press(pos rl.Vector2) {
	g.pressed = true
	g.start = pos
}

// Release ends the gesture and reports whether it was a click.
func (g *ClickGesture) Release(pos rl.Vector2) bool {
	if !g.pressed {
		return false
	}
	g.pressed = false
	return rl.Vector2Distance(g.start, pos) <= g.Slop
}

// Cancel drops a press, e.g. when it landed on the popup.
func (g *ClickGesture) Cancel() {
	g.pressed = false
}

func (g *ClickGesture) Pressed() bool {
	return g.pressed
}
