package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

// CenterAndGround moves root so its world-space bounds are centered on X/Z
// and rest on Y=0. It returns the applied offset; ok is false for a model
// with no geometry, which is left where it is.
func CenterAndGround(root *engine.Node) (offset rl.Vector3, ok bool) {
	box, ok := engine.Bounds(root)
	if !ok {
		return rl.Vector3{}, false
	}

	offset = rl.Vector3{
		X: -(box.Min.X + box.Max.X) / 2,
		Y: -box.Min.Y,
		Z: -(box.Min.Z + box.Max.Z) / 2,
	}

	if m := root.Transform.Matrix; m != nil {
		moved := rl.MatrixMultiply(*m, rl.MatrixTranslate(offset.X, offset.Y, offset.Z))
		root.Transform.Matrix = &moved
	} else {
		root.Transform.Position = rl.Vector3Add(root.Transform.Position, offset)
	}
	return offset, true
}
