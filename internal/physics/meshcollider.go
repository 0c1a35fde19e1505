package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

// BVHNode is a node in the bounding volume hierarchy
type BVHNode struct {
	Bounds    AABB
	Left      *BVHNode
	Right     *BVHNode
	Triangles []int // indices into the triangle array (only for leaf nodes)
}

const (
	bvhLeafSize = 4
	bvhMaxDepth = 20
)

// MeshCollider holds a node's triangles in world space behind a BVH. It is a
// snapshot: moving the node afterwards does not update it.
type MeshCollider struct {
	Node      *engine.Node
	Triangles []Triangle
	Root      *BVHNode
}

// NewMeshCollider bakes the node's mesh with its current world matrix.
func NewMeshCollider(n *engine.Node) *MeshCollider {
	m := &MeshCollider{Node: n}
	if !n.IsMesh() {
		return m
	}

	world := n.WorldMatrix()
	count := n.Mesh.TriangleCount()
	m.Triangles = make([]Triangle, 0, count)
	for i := 0; i < count; i++ {
		a, b, c := n.Mesh.Triangle(i)
		m.Triangles = append(m.Triangles, NewTriangle(
			rl.Vector3Transform(a, world),
			rl.Vector3Transform(b, world),
			rl.Vector3Transform(c, world),
		))
	}
	m.buildBVH()
	return m
}

func (m *MeshCollider) buildBVH() {
	if len(m.Triangles) == 0 {
		return
	}
	indices := make([]int, len(m.Triangles))
	for i := range indices {
		indices[i] = i
	}
	m.Root = m.buildBVHNode(indices, 0)
}

func (m *MeshCollider) buildBVHNode(indices []int, depth int) *BVHNode {
	node := &BVHNode{Bounds: m.computeBounds(indices)}

	if len(indices) <= bvhLeafSize || depth > bvhMaxDepth {
		node.Triangles = indices
		return node
	}

	// Split on the longest axis
	size := node.Bounds.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > axisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.Triangles = indices
		return node
	}

	node.Left = m.buildBVHNode(indices[:mid], depth+1)
	node.Right = m.buildBVHNode(indices[mid:], depth+1)
	return node
}

func (m *MeshCollider) computeBounds(indices []int) AABB {
	bounds := EmptyAABB()
	for _, idx := range indices {
		tri := &m.Triangles[idx]
		bounds = bounds.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return bounds
}

func (m *MeshCollider) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += axisValue(centroid(&m.Triangles[idx]), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if axisValue(centroid(&m.Triangles[indices[left]]), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func centroid(tri *Triangle) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Raycast returns the nearest triangle hit within maxDistance.
func (m *MeshCollider) Raycast(ray rl.Ray, maxDistance float32) (RaycastHit, bool) {
	if m.Root == nil {
		return RaycastHit{}, false
	}
	best := RaycastHit{Distance: maxDistance}
	hit := false
	m.raycastNode(m.Root, ray, &best, &hit)
	if !hit {
		return RaycastHit{}, false
	}
	best.Node = m.Node
	best.Point = rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, best.Distance))
	return best, true
}

func (m *MeshCollider) raycastNode(node *BVHNode, ray rl.Ray, best *RaycastHit, hit *bool) {
	if _, ok := node.Bounds.RayDistance(ray, best.Distance); !ok {
		return
	}
	if node.Triangles != nil {
		for _, idx := range node.Triangles {
			tri := &m.Triangles[idx]
			if t, ok := raycastTriangle(ray, tri, best.Distance); ok {
				best.Distance = t
				best.Normal = facing(tri.Normal, ray.Direction)
				*hit = true
			}
		}
		return
	}
	m.raycastNode(node.Left, ray, best, hit)
	m.raycastNode(node.Right, ray, best, hit)
}

// Bounds is the world-space box of every triangle in the collider.
func (m *MeshCollider) Bounds() AABB {
	if m.Root == nil {
		return AABB{}
	}
	return m.Root.Bounds
}

func (m *MeshCollider) TriangleCount() int {
	return len(m.Triangles)
}
