package camera

import rl "github.com/gen2brain/raylib-go/raylib"

// Mouse is one frame of the mouse state orbit input is derived from.
type Mouse struct {
	Delta    rl.Vector2
	Wheel    float32
	LeftDown bool
	PanDown  bool // right or middle button
}

func ReadMouse() Mouse {
	return Mouse{
		Delta:    rl.GetMouseDelta(),
		Wheel:    rl.GetMouseWheelMove(),
		LeftDown: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		PanDown:  rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle),
	}
}

// Input maps the mouse to orbit gestures. Left drag rotates, right or middle
// drag pans, the wheel zooms.
func (m Mouse) Input() Input {
	in := Input{Wheel: m.Wheel}
	switch {
	case m.LeftDown:
		in.Rotate = m.Delta
	case m.PanDown:
		in.Pan = m.Delta
	}
	return in
}
