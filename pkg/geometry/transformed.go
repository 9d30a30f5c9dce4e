package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Transformed places any surface in the scene with an affine transform
// without touching its intersection code
type Transformed struct {
	surface      Surface
	transform    core.Affine // local -> world
	inverse      core.Affine // world -> local
	normalMatrix core.Mat3   // transpose of the inverse linear part
}

// NewTransformed wraps surface with transform. The transform must be
// invertible.
func NewTransformed(transform core.Affine, surface Surface) (*Transformed, error) {
	inverse, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("transformed surface: %w", err)
	}
	return &Transformed{
		surface:      surface,
		transform:    transform,
		inverse:      inverse,
		normalMatrix: inverse.Linear.Transpose(),
	}, nil
}

// Hit intersects the ray in the wrapped surface's local space. The hit
// point is mapped back to world space and its parameter recomputed along
// the world ray so distances compare across differently scaled surfaces.
func (s *Transformed) Hit(ray core.Ray) (Hit, bool) {
	local := core.NewRay(
		s.inverse.ApplyPoint(ray.Origin),
		s.inverse.ApplyVector(ray.Direction).Normalize(),
	)

	hit, ok := s.surface.Hit(local)
	if !ok {
		return Hit{}, false
	}

	world := s.transform.ApplyPoint(local.At(hit.T))
	t := ray.ParameterOf(world)
	if t < MinRayT {
		return Hit{}, false
	}

	return Hit{T: t, Normal: s.normalMatrix.MulVec(hit.Normal).Normalize()}, true
}

// VisualData returns the wrapped surface's shading parameters
func (s *Transformed) VisualData() VisualData {
	return s.surface.VisualData()
}

// Surface returns the wrapped surface
func (s *Transformed) Surface() Surface {
	return s.surface
}

// Transform returns the local-to-world transform
func (s *Transformed) Transform() core.Affine {
	return s.transform
}
