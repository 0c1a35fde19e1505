package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/world"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.glb|model.gltf>",
		Short: "Print the scene tree and which meshes are clickable",
		Long:  "Load a scene without opening a window, place and classify it the way the viewer does, and print the node tree with mesh (M) and interactable (*) markers followed by the interactable set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := assets.Load(args[0])
			if err != nil {
				return err
			}
			w := world.New()
			if err := w.Populate(root); err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), w)
			return nil
		},
	}
}

func printInspection(out io.Writer, w *world.World) {
	interactable := make(map[*engine.Node]bool, len(w.Interactables))
	for _, n := range w.Interactables {
		interactable[n] = true
	}

	w.Model.Walk(func(n *engine.Node) bool {
		marker := "  "
		switch {
		case interactable[n]:
			marker = "M*"
		case n.IsMesh():
			marker = "M "
		}
		depth := n.Depth() - w.Model.Depth()
		detail := ""
		if n.IsMesh() {
			detail = fmt.Sprintf(" (%d tris)", n.Mesh.TriangleCount())
		}
		fmt.Fprintf(out, "%s %s%s%s\n", marker, strings.Repeat("  ", depth), n.Name, detail)
		return true
	})

	if box, ok := engine.Bounds(w.Model); ok {
		fmt.Fprintf(out, "\nBounds: (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	}

	fmt.Fprintf(out, "\nInteractable (%d):\n", len(w.Interactables))
	for _, n := range w.Interactables {
		fmt.Fprintf(out, "  %s\n", n.Path())
	}
}
