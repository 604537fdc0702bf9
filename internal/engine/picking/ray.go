// Package picking casts rays from the pointer into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts a normalized device coordinate (-1 to 1, y up) to a
// world-space ray. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(ndc math.Vec2, invViewProj math.Mat4) Ray {
	nearWorld := invViewProj.TransformPoint(math.V3(ndc.X, ndc.Y, -1))
	farWorld := invViewProj.TransformPoint(math.V3(ndc.X, ndc.Y, 1))

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.V3(min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)),
		Max: math.V3(max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)),
	}
}

// BoxAABB returns the bounds of a box centered at center with full extents size.
func BoxAABB(center, size math.Vec3) AABB {
	half := size.Scale(0.5)
	return NewAABB(center.Sub(half), center.Add(half))
}
