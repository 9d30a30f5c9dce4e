package core

import "math"

// Point3 is a location in space. Points and vectors are kept apart:
// point minus point is a vector, point plus vector is a point.
type Point3 struct {
	X, Y, Z float64
}

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Origin returns the point (0, 0, 0)
func Origin() Point3 {
	return Point3{}
}

// Add returns the point displaced by v
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the vector from other to p
func (p Point3) Subtract(other Point3) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// DistanceTo returns the Euclidean distance between two points
func (p Point3) DistanceTo(other Point3) float64 {
	return p.Subtract(other).Length()
}

// ToVec3 returns the displacement of p from the origin
func (p Point3) ToVec3() Vec3 {
	return Vec3{p.X, p.Y, p.Z}
}

// Component returns the coordinate along axis 0, 1 or 2
func (p Point3) Component(axis int) float64 {
	return p.ToVec3().Component(axis)
}

// MinPoint returns the component-wise minimum of two points
func MinPoint(a, b Point3) Point3 {
	return Point3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// MaxPoint returns the component-wise maximum of two points
func MaxPoint(a, b Point3) Point3 {
	return Point3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Centroid returns the average of the given points
func Centroid(points ...Point3) Point3 {
	var sum Vec3
	for _, p := range points {
		sum = sum.Add(p.ToVec3())
	}
	return sum.Multiply(1.0 / float64(len(points))).ToPoint()
}
