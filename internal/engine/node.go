package engine

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is a node's placement relative to its parent. When Matrix is set it
// replaces the TRS fields, mirroring how glTF nodes carry one or the other.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
	Matrix   *rl.Matrix
}

func IdentityTransform() Transform {
	return Transform{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// LocalMatrix builds scale -> rotate -> translate, the same order ModelRenderer used.
func (t Transform) LocalMatrix() rl.Matrix {
	if t.Matrix != nil {
		return *t.Matrix
	}
	scale := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	rot := rl.QuaternionToMatrix(t.Rotation)
	trans := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

// Node is one entry of the scene graph. Parent is a back-link for traversal only.
type Node struct {
	Name      string
	Transform Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh

	CastShadow    bool
	ReceiveShadow bool
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: IdentityTransform(),
		Children:  make([]*Node, 0),
	}
}

func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// IsMesh reports whether the node carries renderable geometry.
func (n *Node) IsMesh() bool {
	return n.Mesh != nil && len(n.Mesh.Indices) >= 3
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix composes local matrices from this node up to the top of the tree.
func (n *Node) WorldMatrix() rl.Matrix {
	m := n.Transform.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = rl.MatrixMultiply(m, p.Transform.LocalMatrix())
	}
	return m
}

// Walk visits the subtree in pre-order. Returning false from fn skips the
// node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Path is the slash-joined chain of names from the top of the tree.
func (n *Node) Path() string {
	var parts []string
	for p := n; p != nil; p = p.Parent {
		parts = append(parts, p.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// Depth is the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Bounds returns the world-space box around every mesh vertex in the subtree.
// ok is false when the subtree has no geometry.
func Bounds(root *Node) (box rl.BoundingBox, ok bool) {
	root.Walk(func(n *Node) bool {
		if !n.IsMesh() {
			return true
		}
		world := n.WorldMatrix()
		for _, p := range n.Mesh.Positions {
			v := rl.Vector3Transform(p, world)
			if !ok {
				box = rl.BoundingBox{Min: v, Max: v}
				ok = true
				continue
			}
			box.Min = rl.Vector3Min(box.Min, v)
			box.Max = rl.Vector3Max(box.Max, v)
		}
		return true
	})
	return box, ok
}
