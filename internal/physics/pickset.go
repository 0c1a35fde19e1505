package physics

import (
	"sort"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

// PickSet is the ray-cast query over a fixed, ordered set of candidate nodes.
// Colliders are baked once, so the nodes must not move after construction.
type PickSet struct {
	nodes     []*engine.Node
	colliders []*MeshCollider
}

func NewPickSet(nodes []*engine.Node) *PickSet {
	p := &PickSet{
		nodes:     append([]*engine.Node(nil), nodes...),
		colliders: make([]*MeshCollider, 0, len(nodes)),
	}
	for _, n := range p.nodes {
		p.colliders = append(p.colliders, NewMeshCollider(n))
	}
	return p
}

// Nodes returns the candidates in insertion order.
func (p *PickSet) Nodes() []*engine.Node {
	if p == nil {
		return nil
	}
	return p.nodes
}

func (p *PickSet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.nodes)
}

// Intersect returns the nearest hit of every candidate the ray touches,
// ordered by distance. Equal distances keep insertion order.
func (p *PickSet) Intersect(ray rl.Ray) []RaycastHit {
	if p.Len() == 0 {
		return nil
	}
	ray.Direction = rl.Vector3Normalize(ray.Direction)

	var hits []RaycastHit
	for _, c := range p.colliders {
		if h, ok := c.Raycast(ray, math32.Inf(1)); ok {
			hits = append(hits, h)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
