package core

// Ray represents a ray with an origin and direction. The direction is
// not required to be unit length.
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// ParameterOf returns the t whose ray point is the projection of p onto the ray
func (r Ray) ParameterOf(p Point3) float64 {
	return p.Subtract(r.Origin).Dot(r.Direction) / r.Direction.LengthSquared()
}
