package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Projection selects how primary rays leave the camera
type Projection int

const (
	// Perspective rays share the camera origin
	Perspective Projection = iota
	// Parallel rays share the camera forward direction
	Parallel
)

// String returns the lowercase projection name
func (p Projection) String() string {
	if p == Parallel {
		return "parallel"
	}
	return "perspective"
}

// ParseProjection parses "perspective" or "parallel"
func ParseProjection(name string) (Projection, error) {
	switch name {
	case "", "perspective":
		return Perspective, nil
	case "parallel":
		return Parallel, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", name)
}

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Origin       core.Point3
	Forward      core.Vec3 // Viewing direction
	Up           core.Vec3 // Approximate up; orthogonalized against Forward
	Width        int       // Image width in pixels
	Height       int       // Image height in pixels
	FieldOfView  float64   // Horizontal field of view in radians
	Projection   Projection
	ViewDistance float64 // Distance at which parallel framing matches perspective framing; 0 means 1
}

// Camera generates primary rays over a viewing plane one unit in front
// of the origin
type Camera struct {
	origin     core.Point3
	forward    core.Vec3
	up         core.Vec3
	right      core.Vec3
	projection Projection
	width      int
	height     int

	// Viewing plane extents
	xMin, xDist float64
	yMin, yDist float64
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("camera image size must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.FieldOfView <= 0 || config.FieldOfView >= math.Pi {
		return nil, fmt.Errorf("field of view must be in (0, pi), got %f", config.FieldOfView)
	}

	forward := config.Forward.Normalize()
	right := forward.Cross(config.Up)
	if right.LengthSquared() < 1e-12 {
		return nil, fmt.Errorf("camera up %v is parallel to forward %v", config.Up, config.Forward)
	}
	right = right.Normalize()
	up := right.Cross(forward)

	halfWidth := math.Tan(config.FieldOfView / 2)
	if config.Projection == Parallel {
		distance := config.ViewDistance
		if distance <= 0 {
			distance = 1
		}
		halfWidth *= distance
	}
	aspectRatio := float64(config.Width) / float64(config.Height)
	halfHeight := halfWidth / aspectRatio

	return &Camera{
		origin:     config.Origin,
		forward:    forward,
		up:         up,
		right:      right,
		projection: config.Projection,
		width:      config.Width,
		height:     config.Height,
		xMin:       -halfWidth,
		xDist:      2 * halfWidth,
		yMin:       -halfHeight,
		yDist:      2 * halfHeight,
	}, nil
}

// GenerateRay returns the ray through the center of pixel (column, row).
// Rows count upwards from the bottom of the image.
func (c *Camera) GenerateRay(column, row int) core.Ray {
	return c.GenerateJitteredRay(column, row, 0.5, 0.5)
}

// GenerateJitteredRay returns the ray through the point (du, dv) of pixel
// (column, row), where du and dv lie in [0,1)
func (c *Camera) GenerateJitteredRay(column, row int, du, dv float64) core.Ray {
	u := c.xMin + c.xDist*(float64(column)+du)/float64(c.width)
	v := c.yMin + c.yDist*(float64(row)+dv)/float64(c.height)
	offset := c.right.Multiply(u).Add(c.up.Multiply(v))

	if c.projection == Parallel {
		return core.NewRay(c.origin.Add(offset), c.forward)
	}
	return core.NewRay(c.origin, c.forward.Add(offset))
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// Size returns the image size the camera was built for
func (c *Camera) Size() (int, int) {
	return c.width, c.height
}
