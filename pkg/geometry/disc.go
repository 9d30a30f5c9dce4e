package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Disc represents a flat circular disc in 3D space. The normal is
// one-sided: it is returned as given whichever side the ray comes from.
type Disc struct {
	Center core.Point3
	Normal core.Vec3 // Unit normal
	Radius float64
	Visual VisualData
}

// NewDisc creates a new disc; the normal is normalized
func NewDisc(center core.Point3, normal core.Vec3, radius float64, visual VisualData) *Disc {
	return &Disc{
		Center: center,
		Normal: normal.Normalize(),
		Radius: radius,
		Visual: visual,
	}
}

// Hit intersects the disc's plane and keeps points within the radius
func (d *Disc) Hit(ray core.Ray) (Hit, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return Hit{}, false // Ray is parallel to disc
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < MinRayT {
		return Hit{}, false
	}

	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return Hit{}, false
	}
	return Hit{T: t, Normal: d.Normal}, true
}

// VisualData returns the shading parameters
func (d *Disc) VisualData() VisualData {
	return d.Visual
}

// Bounds returns the box enclosing the disc. Along each axis the disc
// extends radius·sqrt(1 - n²) from its center.
func (d *Disc) Bounds() core.AABB {
	extent := core.NewVec3(
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.X*d.Normal.X)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Y*d.Normal.Y)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Z*d.Normal.Z)),
	)
	return core.NewAABB(d.Center.Add(extent.Negate()), d.Center.Add(extent))
}
