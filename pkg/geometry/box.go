package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AxisAlignedBox is a solid box surface. BVH visualization renders node
// bounds with it.
type AxisAlignedBox struct {
	Box    core.AABB
	Visual VisualData
}

// NewAxisAlignedBox creates a box surface from its bounds
func NewAxisAlignedBox(box core.AABB, visual VisualData) *AxisAlignedBox {
	return &AxisAlignedBox{Box: box, Visual: visual}
}

// Hit returns the entry point, or the exit point when the ray starts inside
func (b *AxisAlignedBox) Hit(ray core.Ray) (Hit, bool) {
	tNear, tFar, ok := b.Box.Intersect(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return Hit{}, false
	}

	t := tNear
	if t < MinRayT {
		t = tFar
		if t < MinRayT {
			return Hit{}, false
		}
	}
	return Hit{T: t, Normal: b.faceNormal(ray.At(t))}, true
}

// faceNormal returns the outward normal of the face closest to p
func (b *AxisAlignedBox) faceNormal(p core.Point3) core.Vec3 {
	var normal core.Vec3
	best := math.Inf(1)
	axes := [3]core.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	for axis := 0; axis < 3; axis++ {
		v := p.Component(axis)
		if d := math.Abs(v - b.Box.Min.Component(axis)); d < best {
			best, normal = d, axes[axis].Negate()
		}
		if d := math.Abs(v - b.Box.Max.Component(axis)); d < best {
			best, normal = d, axes[axis]
		}
	}
	return normal
}

// VisualData returns the shading parameters
func (b *AxisAlignedBox) VisualData() VisualData {
	return b.Visual
}

// Bounds returns the box itself
func (b *AxisAlignedBox) Bounds() core.AABB {
	return b.Box
}
