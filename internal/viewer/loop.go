package viewer

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/ui"
	"portfolio3d/internal/world"
)

type frameTiming struct {
	updateMs float64
	shadowMs float64
	drawMs   float64
}

// Run opens the window and blocks until it is closed or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	var flags uint32
	if v.cfg.Window.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	if v.cfg.Window.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if v.cfg.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(v.cfg.Window.Width, v.cfg.Window.Height, v.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(v.cfg.Window.TargetFPS)
	// Escape closes the popup, not the window
	rl.SetExitKey(rl.KeyNull)
	ui.ApplyStyle()

	v.Renderer.Initialize(ShaderDir)
	defer v.Renderer.Unload()
	v.Models.SetShader(v.Renderer.Shader)
	defer v.Models.Unload()

	v.resize()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.Start(ctx)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		v.Update()
		v.Draw()
	}
	return nil
}

func (v *Viewer) Update() {
	updateStart := time.Now()
	dt := rl.GetFrameTime()

	if root := v.pollLoad(); root != nil {
		v.Models.Upload(root)
	}
	v.pollContent()

	if rl.IsWindowResized() {
		v.resize()
	}
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())

	v.Popup.Sync(v.Controller.Popup())
	v.Popup.Update(dt)
	v.Popup.Layout(w, h, ui.RaylibMeasure)

	v.handleInput(readFrameInput(), w, h)
	v.Controller.Tick(v.Camera)
	v.Popup.Sync(v.Controller.Popup())

	v.timing.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// resize matches the projection to the window. The framebuffer itself,
// including its pixel density under FlagWindowHighdpi, is resized by raylib.
func (v *Viewer) resize() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	v.Camera.Resize(w, h)
	slog.Debug("viewport resized", "width", w, "height", h, "dpi", rl.GetWindowScaleDPI(),
		"render", rl.Vector2{X: float32(rl.GetRenderWidth()), Y: float32(rl.GetRenderHeight())})
}

func (v *Viewer) Draw() {
	view := v.Camera.ViewMatrix()
	proj := v.Camera.ProjectionMatrix()

	shadowStart := time.Now()
	if len(v.meshes) > 0 {
		v.Renderer.DrawShadowMap(v.meshes, v.Models)
	}
	v.timing.shadowMs = float64(time.Since(shadowStart).Microseconds()) / 1000.0

	rl.BeginDrawing()
	rl.ClearBackground(v.Renderer.Background)

	drawStart := time.Now()
	rl.BeginMode3D(v.Camera.RaylibCamera())
	rl.SetMatrixProjection(proj)
	v.Renderer.DrawWithShadows(v.Camera.Position(), world.ExtractFrustum(view, proj), v.meshes, v.Models)
	if v.DebugMode {
		v.drawPickBounds()
	}
	rl.EndMode3D()
	v.timing.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	if v.loading {
		rl.DrawText("Loading...", 10, 10, 20, rl.LightGray)
	}
	v.Popup.Draw()
	if v.DebugMode {
		v.drawDebug()
	}
	rl.EndDrawing()
}
