package engine

// Scene is the live scene graph. Root is the container every loaded model is
// attached to, so a model's own root stays one level below it.
type Scene struct {
	Name string
	Root *Node
}

func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		Root: NewNode(name),
	}
}

func (s *Scene) Add(n *Node) {
	s.Root.AddChild(n)
}

// SetRoot makes n the only model under the scene container.
func (s *Scene) SetRoot(n *Node) {
	for len(s.Root.Children) > 0 {
		s.Root.RemoveChild(s.Root.Children[0])
	}
	s.Root.AddChild(n)
}

func (s *Scene) Remove(n *Node) {
	s.Root.RemoveChild(n)
}

// FindByName returns the first node in pre-order with the given name.
func (s *Scene) FindByName(name string) *Node {
	var found *Node
	s.Root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Meshes lists every mesh node in pre-order.
func (s *Scene) Meshes() []*Node {
	var result []*Node
	s.Root.Walk(func(n *Node) bool {
		if n.IsMesh() {
			result = append(result, n)
		}
		return true
	})
	return result
}

func (s *Scene) Walk(fn func(*Node) bool) {
	s.Root.Walk(fn)
}
