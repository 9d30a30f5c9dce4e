package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Ellipsoid is an axis-aligned ellipsoid: a unit sphere scaled by Radii
// and moved to Center
type Ellipsoid struct {
	Center core.Point3
	Radii  core.Vec3 // Semi-axis lengths along x, y, z
	Visual VisualData
}

// NewEllipsoid creates an ellipsoid; every semi-axis must be positive
func NewEllipsoid(center core.Point3, radii core.Vec3, visual VisualData) (*Ellipsoid, error) {
	if radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		return nil, fmt.Errorf("ellipsoid radii must be positive, got %v", radii)
	}
	return &Ellipsoid{Center: center, Radii: radii, Visual: visual}, nil
}

// Hit intersects the ray in unit-sphere space. The map is affine, so the
// ray parameter is the same in both spaces.
func (e *Ellipsoid) Hit(ray core.Ray) (Hit, bool) {
	origin := ray.Origin.Subtract(e.Center).DivideVec(e.Radii)
	direction := ray.Direction.DivideVec(e.Radii)

	a := direction.LengthSquared()
	b := 2 * origin.Dot(direction)
	c := origin.LengthSquared() - 1

	t, ok := SelectSmallestRoot(a, b, c)
	if !ok {
		return Hit{}, false
	}

	// Gradient of sum((p_i - c_i)² / r_i²), up to a factor of two
	local := origin.Add(direction.Multiply(t))
	normal := local.DivideVec(e.Radii).Normalize()
	return Hit{T: t, Normal: normal}, true
}

// VisualData returns the shading parameters
func (e *Ellipsoid) VisualData() VisualData {
	return e.Visual
}

// Bounds returns the axis-aligned bounding box for this ellipsoid
func (e *Ellipsoid) Bounds() core.AABB {
	return core.NewAABB(e.Center.Add(e.Radii.Negate()), e.Center.Add(e.Radii))
}
