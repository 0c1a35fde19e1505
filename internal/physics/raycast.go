package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

type RaycastHit struct {
	Node     *engine.Node
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Triangle is a world-space triangle with its precomputed face normal.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

func NewTriangle(v0, v1, v2 rl.Vector3) Triangle {
	n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0)))
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: n}
}

const rayEpsilon = 1e-7

// raycastTriangle is Moller-Trumbore without backface culling; every pickable
// material is double-sided.
func raycastTriangle(ray rl.Ray, tri *Triangle, maxDistance float32) (float32, bool) {
	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)
	p := rl.Vector3CrossProduct(ray.Direction, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det

	tv := rl.Vector3Subtract(ray.Position, tri.V0)
	u := rl.Vector3DotProduct(tv, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := rl.Vector3CrossProduct(tv, edge1)
	v := rl.Vector3DotProduct(ray.Direction, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// facing flips the normal toward the ray origin, matching double-sided shading.
func facing(normal, direction rl.Vector3) rl.Vector3 {
	if rl.Vector3DotProduct(normal, direction) > 0 {
		return rl.Vector3Negate(normal)
	}
	return normal
}
