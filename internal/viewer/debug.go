package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

// drawPickBounds outlines every clickable node, the hovered one in red.
// Must run inside BeginMode3D.
func (v *Viewer) drawPickBounds() {
	hover := v.Controller.Hover()
	for _, n := range v.World.Picks.Nodes() {
		box, ok := engine.Bounds(n)
		if !ok {
			continue
		}
		color := rl.Yellow
		if n == hover {
			color = rl.Red
		}
		rl.DrawBoundingBox(box, color)
	}
}

func (v *Viewer) drawDebug() {
	rl.DrawFPS(10, 40)

	previewSize := int32(256)
	screenW := int32(rl.GetScreenWidth())
	depth := v.Renderer.ShadowMap.Depth
	rl.DrawTexturePro(
		depth,
		rl.Rectangle{X: 0, Y: 0, Width: float32(depth.Width), Height: float32(-depth.Height)},
		rl.Rectangle{X: float32(screenW - previewSize - 10), Y: 10, Width: float32(previewSize), Height: float32(previewSize)},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(screenW-previewSize-10, 10, previewSize, previewSize, rl.Green)
	rl.DrawText("Shadow Map", screenW-previewSize-10, previewSize+15, 16, rl.Green)

	hover := "-"
	if n := v.Controller.Hover(); n != nil {
		hover = n.Path()
	}
	p := v.Controller.Pointer()
	stats := v.Renderer.Stats

	rl.DrawText(fmt.Sprintf("Pointer: (%.2f, %.2f)  Hover: %s", p.X, p.Y, hover), 10, 65, 16, rl.Yellow)
	rl.DrawText(fmt.Sprintf("Meshes: %d  Interactable: %d  Drawn: %d  Culled: %d",
		len(v.meshes), v.World.Picks.Len(), stats.Drawn, stats.Culled), 10, 85, 16, rl.Yellow)
	dpi := rl.GetWindowScaleDPI()
	rl.DrawText(fmt.Sprintf("Zoom: %.2f  DPI: %.1fx%.1f", v.Camera.Zoom, dpi.X, dpi.Y), 10, 105, 16, rl.Yellow)

	rl.DrawText(fmt.Sprintf("Update:  %.2f ms", v.timing.updateMs), 10, 130, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Shadows: %.2f ms", v.timing.shadowMs), 10, 150, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", v.timing.drawMs), 10, 170, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Total:   %.2f ms", v.timing.updateMs+v.timing.shadowMs+v.timing.drawMs), 10, 190, 16, rl.Lime)
}
