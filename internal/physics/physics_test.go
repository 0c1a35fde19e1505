package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio3d/internal/engine"
)

// quad builds a 2x2 square in the XY plane centered on the node origin.
func quad(name string, z float32) *engine.Node {
	n := engine.NewMeshNode(name, &engine.Mesh{
		Positions: []rl.Vector3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
		Material:  engine.DefaultMaterial(),
	})
	n.Transform.Position = rl.Vector3{Z: z}
	return n
}

func towards(origin, dir rl.Vector3) rl.Ray {
	return rl.Ray{Position: origin, Direction: dir}
}

func TestAABBRayDistance(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	d, ok := box.RayDistance(towards(rl.Vector3{Z: 10}, rl.Vector3{Z: -1}), 100)
	require.True(t, ok)
	assert.InDelta(t, 9, d, 1e-5)

	_, ok = box.RayDistance(towards(rl.Vector3{X: 5, Z: 10}, rl.Vector3{Z: -1}), 100)
	assert.False(t, ok)

	_, ok = box.RayDistance(towards(rl.Vector3{Z: 10}, rl.Vector3{Z: -1}), 5)
	assert.False(t, ok, "box beyond max distance")

	d, ok = box.RayDistance(towards(rl.Vector3{}, rl.Vector3{X: 1}), 100)
	require.True(t, ok)
	assert.Zero(t, d, "origin inside the box")
}

func TestAABBExtendAndCenter(t *testing.T) {
	box := EmptyAABB().Extend(rl.Vector3{X: -2, Y: 0, Z: 1}).Extend(rl.Vector3{X: 4, Y: 3, Z: -1})

	assert.Equal(t, rl.Vector3{X: -2, Y: 0, Z: -1}, box.Min)
	assert.Equal(t, rl.Vector3{X: 4, Y: 3, Z: 1}, box.Max)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1.5, Z: 0}, box.Center())
	assert.True(t, box.Intersects(AABB{Min: rl.Vector3{X: 3}, Max: rl.Vector3{X: 5, Y: 1, Z: 1}}))
}

func TestRaycastTriangleBothSides(t *testing.T) {
	tri := NewTriangle(rl.Vector3{X: -1, Y: -1}, rl.Vector3{X: 1, Y: -1}, rl.Vector3{Y: 1})

	front, ok := raycastTriangle(towards(rl.Vector3{Z: 5}, rl.Vector3{Z: -1}), &tri, 100)
	require.True(t, ok)
	assert.InDelta(t, 5, front, 1e-5)

	back, ok := raycastTriangle(towards(rl.Vector3{Z: -3}, rl.Vector3{Z: 1}), &tri, 100)
	require.True(t, ok)
	assert.InDelta(t, 3, back, 1e-5)

	_, ok = raycastTriangle(towards(rl.Vector3{X: 5, Z: 5}, rl.Vector3{Z: -1}), &tri, 100)
	assert.False(t, ok)

	_, ok = raycastTriangle(towards(rl.Vector3{Z: 5}, rl.Vector3{X: 1}), &tri, 100)
	assert.False(t, ok, "parallel ray")
}

func TestMeshColliderUsesWorldTransform(t *testing.T) {
	parent := engine.NewNode("parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	q := quad("q", 0)
	parent.AddChild(q)

	c := NewMeshCollider(q)
	require.Equal(t, 2, c.TriangleCount())

	_, ok := c.Raycast(towards(rl.Vector3{Z: 5}, rl.Vector3{Z: -1}), 100)
	assert.False(t, ok)

	hit, ok := c.Raycast(towards(rl.Vector3{X: 10, Z: 5}, rl.Vector3{Z: -1}), 100)
	require.True(t, ok)
	assert.Same(t, q, hit.Node)
	assert.InDelta(t, 5, hit.Distance, 1e-5)
	assert.InDelta(t, 10, hit.Point.X, 1e-5)
	assert.InDelta(t, 1, hit.Normal.Z, 1e-5)
}

func TestMeshColliderNonMesh(t *testing.T) {
	c := NewMeshCollider(engine.NewNode("group"))

	_, ok := c.Raycast(towards(rl.Vector3{Z: 5}, rl.Vector3{Z: -1}), 100)
	assert.False(t, ok)
	assert.Equal(t, AABB{}, c.Bounds())
}

func TestMeshColliderBVHMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	mesh := &engine.Mesh{Material: engine.DefaultMaterial()}
	for i := 0; i < 300; i++ {
		base := uint32(len(mesh.Positions))
		c := rl.Vector3{X: rng.Float32()*20 - 10, Y: rng.Float32()*20 - 10, Z: rng.Float32()*20 - 10}
		for k := 0; k < 3; k++ {
			mesh.Positions = append(mesh.Positions, rl.Vector3Add(c, rl.Vector3{
				X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1, Z: rng.Float32()*2 - 1,
			}))
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2)
	}
	c := NewMeshCollider(engine.NewMeshNode("soup", mesh))
	require.NotNil(t, c.Root.Left, "expected a split BVH")

	for i := 0; i < 200; i++ {
		ray := towards(
			rl.Vector3{X: rng.Float32()*20 - 10, Y: rng.Float32()*20 - 10, Z: 30},
			rl.Vector3Normalize(rl.Vector3{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5, Z: -1}),
		)

		want := float32(-1)
		for j := range c.Triangles {
			if d, ok := raycastTriangle(ray, &c.Triangles[j], 1e9); ok && (want < 0 || d < want) {
				want = d
			}
		}

		hit, ok := c.Raycast(ray, 1e9)
		if want < 0 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.InDelta(t, want, hit.Distance, 1e-4)
	}
}

func TestPickSetOrdersByDistance(t *testing.T) {
	far := quad("far", -5)
	near := quad("near", 2)
	miss := quad("miss", 0)
	miss.Transform.Position.X = 50

	set := NewPickSet([]*engine.Node{far, miss, near})
	hits := set.Intersect(towards(rl.Vector3{Z: 10}, rl.Vector3{Z: -3}))

	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Node)
	assert.Same(t, far, hits[1].Node)
	assert.InDelta(t, 8, hits[0].Distance, 1e-5)
	assert.InDelta(t, 15, hits[1].Distance, 1e-5)
}

func TestPickSetIgnoresHitsBehindOrigin(t *testing.T) {
	behind := quad("behind", 20)
	set := NewPickSet([]*engine.Node{behind})

	assert.Empty(t, set.Intersect(towards(rl.Vector3{Z: 10}, rl.Vector3{Z: -1})))
}

func TestPickSetEmpty(t *testing.T) {
	var nilSet *PickSet
	assert.Nil(t, nilSet.Intersect(towards(rl.Vector3{}, rl.Vector3{Z: -1})))
	assert.Zero(t, nilSet.Len())

	empty := NewPickSet(nil)
	assert.Nil(t, empty.Intersect(towards(rl.Vector3{}, rl.Vector3{Z: -1})))
}

func TestPickSetNodesKeepsOrderAndCopies(t *testing.T) {
	a, b := quad("a", 0), quad("b", 1)
	in := []*engine.Node{a, b}
	set := NewPickSet(in)
	in[0] = nil

	assert.Equal(t, []*engine.Node{a, b}, set.Nodes())
}
