package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point3
	Radius float64
	Visual VisualData
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, visual VisualData) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Visual: visual,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	t, ok := SelectSmallestRoot(a, b, c)
	if !ok {
		return Hit{}, false
	}

	normal := ray.At(t).Subtract(s.Center).Multiply(1.0 / s.Radius)
	return Hit{T: t, Normal: normal}, true
}

// VisualData returns the shading parameters
func (s *Sphere) VisualData() VisualData {
	return s.Visual
}

// Bounds returns the axis-aligned bounding box for this sphere
func (s *Sphere) Bounds() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Add(radius.Negate()), s.Center.Add(radius))
}
