package world

import (
	"slices"
	"strings"

	"portfolio3d/internal/engine"
)

var interactableCollections = []string{"house", "office", "drone"}

const projectPrefix = "project"

// IsInteractableCollection reports whether meshes under a top-level node with
// this name respond to clicks. Matching is case-insensitive.
func IsInteractableCollection(name string) bool {
	lower := strings.ToLower(name)
	return slices.Contains(interactableCollections, lower) || strings.HasPrefix(lower, projectPrefix)
}

// TopLevelAncestor walks up from n to the node directly below root. A node
// that is already a child of root, or is root itself, is its own ancestor.
func TopLevelAncestor(n, root *engine.Node) *engine.Node {
	a := n
	for a.Parent != nil && a.Parent != root {
		a = a.Parent
	}
	return a
}

// Classify walks the model once. Every mesh casts and receives shadows and
// renders both faces; meshes under an interactable collection are returned in
// pre-order.
func Classify(root *engine.Node) []*engine.Node {
	var interactables []*engine.Node
	root.Walk(func(n *engine.Node) bool {
		if !n.IsMesh() {
			return true
		}

		n.CastShadow = true
		n.ReceiveShadow = true
		if n.Mesh.Material == nil {
			n.Mesh.Material = engine.DefaultMaterial()
		}
		n.Mesh.Material.DoubleSided = true

		if IsInteractableCollection(TopLevelAncestor(n, root).Name) {
			interactables = append(interactables, n)
		}
		return true
	})
	return interactables
}
