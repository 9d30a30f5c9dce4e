package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Light is a small rectangular area light spanned by Right and Top from
// Position. With zero extents it is a point light.
type Light struct {
	Position core.Point3 // Corner of the rectangle
	Color    core.Color
	Right    core.Vec3 // First edge of the rectangle
	Top      core.Vec3 // Second edge of the rectangle
}

// NewLight creates a rectangular area light
func NewLight(position core.Point3, color core.Color, right, top core.Vec3) *Light {
	return &Light{
		Position: position,
		Color:    color,
		Right:    right,
		Top:      top,
	}
}

// NewPointLight creates a light with no extent
func NewPointLight(position core.Point3, color core.Color) *Light {
	return NewLight(position, color, core.Vec3{}, core.Vec3{})
}

// NominalPosition returns the position used when soft shadows are off
func (l *Light) NominalPosition() core.Point3 {
	return l.Position
}

// Sample returns a uniformly jittered point on the light rectangle
func (l *Light) Sample(sampler core.Sampler) core.Point3 {
	sample := sampler.Get2D()
	return l.Position.Add(l.Right.Multiply(sample.X)).Add(l.Top.Multiply(sample.Y))
}

// Transform returns the light moved by transform, extents included
func (l *Light) Transform(transform core.Affine) *Light {
	return &Light{
		Position: transform.ApplyPoint(l.Position),
		Color:    l.Color,
		Right:    transform.ApplyVector(l.Right),
		Top:      transform.ApplyVector(l.Top),
	}
}

// IsPoint reports whether the light has no extent
func (l *Light) IsPoint() bool {
	return l.Right.LengthSquared() == 0 && l.Top.LengthSquared() == 0
}
