package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MinRayT is the smallest accepted ray parameter. Hits closer than this
// are discarded so secondary rays do not re-hit their own origin.
const MinRayT = 1e-4

// Hit is the result of a ray-surface intersection
type Hit struct {
	T      float64   // Ray parameter of the hit point
	Normal core.Vec3 // Unit surface normal at the hit point
}

// InfiniteHit returns the sentinel used when aggregating hits; it loses
// every distance comparison
func InfiniteHit() Hit {
	return Hit{T: math.Inf(1)}
}

// IsInfinite reports whether h is the no-intersection sentinel
func (h Hit) IsInfinite() bool {
	return math.IsInf(h.T, 1)
}

// VisualData holds the shading parameters of a surface
type VisualData struct {
	Color                core.Color
	SpecularStrength     float64
	ReflectionStrength   float64
	ReflectionGlossiness float64 // 0 = mirror, > 0 = cone half-angle in radians
}

// Surface is anything a ray can hit. Implementations are immutable after
// construction and safe for concurrent use.
type Surface interface {
	Hit(ray core.Ray) (Hit, bool)
	VisualData() VisualData
}

// Bounded is implemented by surfaces with a finite extent
type Bounded interface {
	Bounds() core.AABB
}
