package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is an upright solid cone: apex on top, axis along -y, closed by a
// flat circular base Height below the apex
type Cone struct {
	Apex      core.Point3
	Height    float64
	HalfAngle float64 // Angle between axis and lateral surface, radians
	Visual    VisualData

	// Cached derived values
	tanSquared float64 // tan²(HalfAngle)
	baseY      float64 // y of the base plane
	baseRadius float64 // Radius of the base disk
	base       *Disc   // Base cap, facing down
}

// NewCone creates a new cone
func NewCone(apex core.Point3, height, halfAngle float64, visual VisualData) (*Cone, error) {
	if height <= 0 {
		return nil, fmt.Errorf("cone height must be positive, got %f", height)
	}
	if halfAngle <= 0 || halfAngle >= math.Pi/2 {
		return nil, fmt.Errorf("cone half angle must be in (0, pi/2), got %f", halfAngle)
	}

	tanAngle := math.Tan(halfAngle)
	baseY := apex.Y - height
	return &Cone{
		Apex:       apex,
		Height:     height,
		HalfAngle:  halfAngle,
		Visual:     visual,
		tanSquared: tanAngle * tanAngle,
		baseY:      baseY,
		baseRadius: height * tanAngle,
		base:       NewDisc(core.NewPoint3(apex.X, baseY, apex.Z), core.NewVec3(0, -1, 0), height*tanAngle, visual),
	}, nil
}

// Hit tests the lateral surface and the base cap and keeps the closer hit
func (c *Cone) Hit(ray core.Ray) (Hit, bool) {
	best := InfiniteHit()
	found := false

	if hit, ok := c.hitLateral(ray); ok {
		best, found = hit, true
	}
	if hit, ok := c.base.Hit(ray); ok && hit.T < best.T {
		best, found = hit, true
	}
	return best, found
}

// hitLateral solves x² + z² = tan²(α)·y² relative to the apex and keeps
// the first root lying between the base and the apex
func (c *Cone) hitLateral(ray core.Ray) (Hit, bool) {
	o := ray.Origin.Subtract(c.Apex)
	d := ray.Direction
	k := c.tanSquared

	a := d.X*d.X + d.Z*d.Z - k*d.Y*d.Y
	b := 2 * (o.X*d.X + o.Z*d.Z - k*o.Y*d.Y)
	cc := o.X*o.X + o.Z*o.Z - k*o.Y*o.Y

	roots, count := FindRoots(a, b, cc)
	for i := 0; i < count; i++ {
		t := roots[i]
		if t < MinRayT {
			continue
		}
		// Height range rejects the upper nappe and anything past the base
		y := o.Y + t*d.Y
		if y > 0 || y < -c.Height {
			continue
		}
		q := o.Add(d.Multiply(t))
		normal := core.NewVec3(q.X, -k*q.Y, q.Z)
		if normal.LengthSquared() == 0 {
			// Apex: no unique normal
			normal = core.NewVec3(0, 1, 0)
		}
		return Hit{T: t, Normal: normal.Normalize()}, true
	}
	return Hit{}, false
}

// VisualData returns the shading parameters
func (c *Cone) VisualData() VisualData {
	return c.Visual
}

// Bounds returns the axis-aligned bounding box for this cone
func (c *Cone) Bounds() core.AABB {
	r := c.baseRadius
	return core.NewAABB(
		core.NewPoint3(c.Apex.X-r, c.baseY, c.Apex.Z-r),
		core.NewPoint3(c.Apex.X+r, c.Apex.Y, c.Apex.Z+r),
	)
}
