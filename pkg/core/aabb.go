package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Point3 // Minimum corner
	Max Point3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Point3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Point3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = MinPoint(box.Min, point)
		box.Max = MaxPoint(box.Max, point)
	}
	return box
}

// Hit tests if a ray intersects with this AABB within [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, ok := aabb.Intersect(ray, tMin, tMax)
	return ok
}

// Intersect clips [tMin, tMax] against the three slabs and returns the
// entry and exit parameters of the overlap
func (aabb AABB) Intersect(ray Ray, tMin, tMax float64) (float64, float64, bool) {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return 0, 0, false // Ray origin outside slab
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: MinPoint(aabb.Min, other.Min), Max: MaxPoint(aabb.Max, other.Max)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Point3 {
	return aabb.Min.Add(aabb.Max.Subtract(aabb.Min).Multiply(0.5))
}

// Contains reports whether p lies inside or on the box
func (aabb AABB) Contains(p Point3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Add(expansion.Negate()),
		Max: aabb.Max.Add(expansion),
	}
}

// BoundingSphere is a sphere used only for cheap ray rejection
type BoundingSphere struct {
	Center Point3
	Radius float64
}

// Hit reports whether the ray touches the sphere anywhere at t >= 0
func (s BoundingSphere) Hit(ray Ray) bool {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	farRoot := (-halfB + math.Sqrt(discriminant)) / a
	return farRoot >= 0
}
