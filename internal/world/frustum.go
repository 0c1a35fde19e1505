package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes in world space, normals pointing inward.
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is n·p + d = 0.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum pulls the planes out of view*projection (Gribb/Hartmann).
func ExtractFrustum(view, proj rl.Matrix) Frustum {
	vp := rl.MatrixMultiply(view, proj)

	// rows of the combined matrix in raylib's column-major field layout
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		f.planes[axis*2] = planeFromRows(rows[3], rows[axis], 1)
		f.planes[axis*2+1] = planeFromRows(rows[3], rows[axis], -1)
	}
	return f
}

func planeFromRows(w, r [4]float32, sign float32) Plane {
	return normalizePlane(Plane{
		normal: rl.Vector3{
			X: w[0] + sign*r[0],
			Y: w[1] + sign*r[1],
			Z: w[2] + sign*r[2],
		},
		distance: w[3] + sign*r[3],
	})
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

func (p Plane) signedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.normal, point) + p.distance
}

// ContainsSphere reports whether the sphere is inside or crosses the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].signedDistance(center) < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := range f.planes {
		if f.planes[i].signedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// ContainsBox tests the box corner furthest along each plane normal. It can
// report boxes near a frustum corner as visible; that only costs a draw call.
func (f *Frustum) ContainsBox(box rl.BoundingBox) bool {
	for i := range f.planes {
		n := f.planes[i].normal
		positive := box.Min
		if n.X >= 0 {
			positive.X = box.Max.X
		}
		if n.Y >= 0 {
			positive.Y = box.Max.Y
		}
		if n.Z >= 0 {
			positive.Z = box.Max.Z
		}
		if f.planes[i].signedDistance(positive) < 0 {
			return false
		}
	}
	return true
}
