package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator. It is not safe
// for concurrent use; each render worker owns one.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// OrthonormalBasis returns two unit vectors u, v such that (u, v, w) is
// orthonormal. The helper axis is chosen so it is never nearly parallel to w.
func OrthonormalBasis(w Vec3) (Vec3, Vec3) {
	var helper Vec3
	if math.Abs(w.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	u := helper.Cross(w).Normalize()
	v := w.Cross(u)
	return u, v
}

// SampleCone samples a direction uniformly within a cone around a unit direction
func SampleCone(direction Vec3, cosTotalWidth float64, sample Vec2) Vec3 {
	u, v := OrthonormalBasis(direction)

	cosTheta := 1.0 - sample.X*(1.0-cosTotalWidth)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)
	return u.Multiply(x).Add(v.Multiply(y)).Add(direction.Multiply(cosTheta))
}

// StratifiedSample maps a uniform sample into cell (i, j) of an n x n grid over [0,1)²
func StratifiedSample(i, j, n int, sample Vec2) Vec2 {
	inv := 1.0 / float64(n)
	return NewVec2((float64(i)+sample.X)*inv, (float64(j)+sample.Y)*inv)
}
