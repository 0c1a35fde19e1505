package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	n := NewNode("TestObject")

	assert.Equal(t, "TestObject", n.Name)
	assert.NotNil(t, n.Children)
	assert.False(t, n.IsMesh())
	assert.Equal(t, rl.MatrixIdentity(), n.Transform.LocalMatrix())
}

func TestNodeParentChild(t *testing.T) {
	parent := NewNode("Parent")
	child := NewNode("Child")

	parent.AddChild(child)

	assert.Same(t, parent, child.Parent)
	require.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
}

func TestNodeAddChildReparents(t *testing.T) {
	a := NewNode("A")
	b := NewNode("B")
	child := NewNode("Child")

	a.AddChild(child)
	b.AddChild(child)

	assert.Empty(t, a.Children)
	assert.Same(t, b, child.Parent)
}

func TestNodeRemoveChild(t *testing.T) {
	parent := NewNode("Parent")
	child1 := NewNode("Child1")
	child2 := NewNode("Child2")
	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	require.Len(t, parent.Children, 1)
	assert.Same(t, child2, parent.Children[0])
	assert.Nil(t, child1.Parent)
}

func TestNodeWorldMatrixComposesParents(t *testing.T) {
	parent := NewNode("Parent")
	parent.Transform.Position = rl.Vector3{X: 10, Y: 0, Z: 0}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	child := NewNode("Child")
	child.Transform.Position = rl.Vector3{X: 1, Y: 1, Z: 0}
	parent.AddChild(child)

	origin := rl.Vector3Transform(rl.Vector3Zero(), child.WorldMatrix())
	assert.InDelta(t, 12, origin.X, 1e-5)
	assert.InDelta(t, 2, origin.Y, 1e-5)
	assert.InDelta(t, 0, origin.Z, 1e-5)
}

func TestNodeWorldMatrixRotation(t *testing.T) {
	parent := NewNode("Parent")
	parent.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, rl.Pi/2)

	child := NewNode("Child")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	p := rl.Vector3Transform(rl.Vector3Zero(), child.WorldMatrix())
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
}

func TestTransformMatrixOverridesTRS(t *testing.T) {
	m := rl.MatrixTranslate(3, 4, 5)
	tr := IdentityTransform()
	tr.Position = rl.Vector3{X: 100}
	tr.Matrix = &m

	assert.Equal(t, m, tr.LocalMatrix())
}

func TestNodeWalkPreOrder(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	a1 := NewNode("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, names)
}

func TestNodeWalkSkipsChildren(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	root.AddChild(a)
	a.AddChild(NewNode("a1"))

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a"}, names)
}

func TestNodePathAndDepth(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a1 := NewNode("a1")
	root.AddChild(a)
	a.AddChild(a1)

	assert.Equal(t, "/root/a/a1", a1.Path())
	assert.Equal(t, 2, a1.Depth())
	assert.Equal(t, 0, root.Depth())
}

func TestBounds(t *testing.T) {
	root := NewNode("root")
	root.Transform.Position = rl.Vector3{Y: 5}
	m := NewMeshNode("tri", triangleMesh())
	root.AddChild(m)

	box, ok := Bounds(root)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 0, Y: 5, Z: 0}, box.Min)
	assert.Equal(t, rl.Vector3{X: 1, Y: 6, Z: 0}, box.Max)
}

func TestBoundsEmpty(t *testing.T) {
	_, ok := Bounds(NewNode("root"))
	assert.False(t, ok)
}

func TestFaceNormal(t *testing.T) {
	m := triangleMesh()
	assert.Equal(t, rl.Vector3{X: 0, Y: 0, Z: 1}, m.FaceNormal(0))

	m.Indices = []uint32{0, 2, 1}
	assert.Equal(t, rl.Vector3{X: 0, Y: 0, Z: -1}, m.FaceNormal(0))
}

func TestEventInvokesListenersInOrder(t *testing.T) {
	var e Event
	var calls []int
	e.AddListener(func() { calls = append(calls, 1) })
	e.AddListener(nil)
	e.AddListener(func() { calls = append(calls, 2) })

	e.Invoke()

	assert.Equal(t, []int{1, 2}, calls)
	assert.Equal(t, 2, e.ListenerCount())

	e.RemoveAllListeners()
	e.Invoke()
	assert.Equal(t, []int{1, 2}, calls)
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[string]
	var got []string
	e.AddListener(func(s string) { got = append(got, s) })

	e.Invoke("Propeller")

	assert.Equal(t, []string{"Propeller"}, got)
}
