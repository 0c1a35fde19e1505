package world

import (
	"errors"
	"log/slog"

	"portfolio3d/internal/engine"
	"portfolio3d/internal/physics"
)

var ErrAlreadyPopulated = errors.New("world already holds a model")

// World is the live scene plus the pickable subset of it. It is filled once,
// after the model load completes.
type World struct {
	Scene         *engine.Scene
	Model         *engine.Node
	Interactables []*engine.Node
	Picks         *physics.PickSet
}

func New() *World {
	return &World{
		Scene: engine.NewScene("Main"),
		Picks: physics.NewPickSet(nil),
	}
}

// Populate centers and grounds root, classifies its meshes, attaches it to
// the scene and builds the pick colliders for the interactable meshes.
func (w *World) Populate(root *engine.Node) error {
	if root == nil {
		return errors.New("populate: nil model")
	}
	if w.Model != nil {
		return ErrAlreadyPopulated
	}

	offset, placed := CenterAndGround(root)
	if !placed {
		slog.Warn("model has no geometry", "model", root.Name)
	}

	w.Interactables = Classify(root)
	w.Scene.SetRoot(root)
	w.Model = root
	// colliders bake world matrices, so they are built after placement
	w.Picks = physics.NewPickSet(w.Interactables)

	slog.Info("model placed",
		"model", root.Name,
		"offset", offset,
		"meshes", len(w.Scene.Meshes()),
		"interactables", len(w.Interactables))
	return nil
}

// Populated reports whether a model has been attached.
func (w *World) Populated() bool {
	return w.Model != nil
}
