package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Point3 // A point on the plane
	Normal core.Vec3   // Unit normal
	Visual VisualData
}

// NewPlane creates a new plane
func NewPlane(point core.Point3, normal core.Vec3, visual VisualData) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
		Visual: visual,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray) (Hit, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return Hit{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < MinRayT {
		return Hit{}, false
	}

	return Hit{T: t, Normal: p.Normal}, true
}

// VisualData returns the shading parameters
func (p *Plane) VisualData() VisualData {
	return p.Visual
}
