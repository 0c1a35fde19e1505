// Package viewer runs the interactive session: window, main loop, model
// load and the wiring between camera, picking and the popup.
package viewer

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/camera"
	"portfolio3d/internal/config"
	"portfolio3d/internal/content"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/interaction"
	"portfolio3d/internal/ui"
	"portfolio3d/internal/world"
)

// ShaderDir holds lighting.vs and lighting.fs.
const ShaderDir = "assets/shaders"

// Viewer is one session. It owns everything the main loop touches; nothing
// in it is safe for use from other goroutines.
type Viewer struct {
	cfg config.Config

	World      *world.World
	Camera     *camera.Orbit
	Renderer   *world.Renderer
	Models     *assets.Manager
	Controller *interaction.Controller
	Popup      *ui.PopupView
	DebugMode  bool

	gesture interaction.ClickGesture
	content *content.Table
	meshes  []*engine.Node

	load           <-chan assets.Result
	loading        bool
	contentUpdates <-chan content.Update

	timing frameTiming
}

func New(cfg config.Config) *Viewer {
	v := &Viewer{
		cfg:       cfg,
		World:     world.New(),
		Camera:    camera.New(cfg.Camera, cfg.Window.Width, cfg.Window.Height),
		Renderer:  world.NewRenderer(cfg.Lighting),
		Models:    assets.NewManager(),
		Popup:     ui.NewPopupView(),
		DebugMode: cfg.Debug.Overlay,
		gesture:   interaction.ClickGesture{Slop: cfg.Input.ClickSlop},
		content:   content.Default(),
	}
	v.Controller = interaction.NewController(&raylibCursor{}, v.content)

	v.Popup.OnClose.AddListener(v.Controller.ClosePopup)
	v.Controller.Opened.AddListener(func(name string) {
		slog.Info("popup opened", "object", name)
	})
	return v
}

// Start kicks off the asynchronous model load and the content table. The
// content watcher stops with ctx.
func (v *Viewer) Start(ctx context.Context) {
	slog.Info("loading model", "path", v.cfg.Asset.Path)
	v.load = assets.LoadAsync(v.cfg.Asset.Path)
	v.loading = true

	table, err := content.Load(v.cfg.Content.Path)
	if err != nil {
		slog.Warn("content not loaded, using defaults", "path", v.cfg.Content.Path, "err", err)
	} else {
		v.setContent(table)
	}

	if v.cfg.Content.Watch {
		updates, err := content.Watch(ctx, v.cfg.Content.Path)
		if err != nil {
			slog.Warn("content watch disabled", "path", v.cfg.Content.Path, "err", err)
			return
		}
		v.contentUpdates = updates
	}
}

// pollLoad takes the load result if it has arrived, without blocking. It
// returns the model that still needs a GPU upload, or nil.
func (v *Viewer) pollLoad() *engine.Node {
	if v.load == nil {
		return nil
	}
	select {
	case res := <-v.load:
		v.load = nil
		v.loading = false
		return v.applyLoad(res)
	default:
		return nil
	}
}

// applyLoad installs the loaded model, or an empty interactable set when the
// load failed, so the session stays navigable either way.
func (v *Viewer) applyLoad(res assets.Result) *engine.Node {
	var root *engine.Node
	if res.Err != nil {
		slog.Error("model load failed", "path", res.Path, "err", res.Err)
	} else if err := v.World.Populate(res.Root); err != nil {
		slog.Error("model rejected", "path", res.Path, "err", err)
	} else {
		root = res.Root
		v.meshes = v.World.Scene.Meshes()
	}

	if err := v.Controller.SetInteractables(v.World.Picks); err != nil {
		slog.Error("interactables not installed", "err", err)
	}
	return root
}

func (v *Viewer) pollContent() {
	if v.contentUpdates == nil {
		return
	}
	select {
	case u, ok := <-v.contentUpdates:
		if !ok {
			v.contentUpdates = nil
			return
		}
		if u.Err != nil {
			slog.Warn("content reload failed, keeping previous table", "err", u.Err)
			return
		}
		v.setContent(u.Table)
		slog.Info("content reloaded", "entries", u.Table.Len())
	default:
	}
}

func (v *Viewer) setContent(t *content.Table) {
	v.content = t
	v.Controller.SetBodies(t)
}

// Loading reports whether the model has not arrived yet.
func (v *Viewer) Loading() bool {
	return v.loading
}

// raylibCursor maps cursor kinds onto the system cursors.
type raylibCursor struct{}

func (raylibCursor) SetCursor(kind interaction.CursorKind) {
	switch kind {
	case interaction.CursorPointer:
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	default:
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}
