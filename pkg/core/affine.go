package core

import (
	"fmt"
	"math"
)

// Affine is a linear map followed by a translation: p -> Linear·p + Translation
type Affine struct {
	Linear      Mat3
	Translation Vec3
}

// NewAffine creates an affine transform
func NewAffine(linear Mat3, translation Vec3) Affine {
	return Affine{Linear: linear, Translation: translation}
}

// IdentityAffine returns the transform that leaves everything in place
func IdentityAffine() Affine {
	return Affine{Linear: Identity3()}
}

// Translate returns a pure translation
func Translate(offset Vec3) Affine {
	return Affine{Linear: Identity3(), Translation: offset}
}

// Scaling returns a pure axis-aligned scale
func Scaling(x, y, z float64) Affine {
	return Affine{Linear: Scale3(x, y, z)}
}

// Rotation returns a pure rotation around axis through the origin
func Rotation(angle float64, axis Vec3) Affine {
	return Affine{Linear: Rotation3(angle, axis)}
}

// ApplyPoint transforms a point, translation included
func (a Affine) ApplyPoint(p Point3) Point3 {
	return a.Linear.MulPoint(p).Add(a.Translation)
}

// ApplyVector transforms a direction, ignoring translation
func (a Affine) ApplyVector(v Vec3) Vec3 {
	return a.Linear.MulVec(v)
}

// Compose returns a∘b: the transform that applies b first, then a.
// The linear part is a.Linear dotted row by row against the rows of
// transpose(b.Linear), which is the ordinary product a.Linear·b.Linear.
func (a Affine) Compose(b Affine) Affine {
	return Affine{
		Linear:      a.Linear.mulRows(b.Linear.Transpose()),
		Translation: a.Linear.MulVec(b.Translation).Add(a.Translation),
	}
}

// Inverse returns the transform undoing a, or ErrSingularMatrix
func (a Affine) Inverse() (Affine, error) {
	inv, err := a.Linear.Inverse()
	if err != nil {
		return Affine{}, fmt.Errorf("invert affine transform: %w", err)
	}
	return Affine{Linear: inv, Translation: inv.MulVec(a.Translation).Negate()}, nil
}

// LookAt returns the world-to-camera transform for a camera at position
// oriented by yaw (around +y) and pitch (towards +y). In camera space the
// camera sits at the origin looking down -z with +y up.
// The rows of the linear part are the camera's right, up and backward axes.
func LookAt(position Point3, yaw, pitch float64) Affine {
	forward := NewVec3(
		math.Cos(pitch)*math.Cos(yaw),
		math.Sin(pitch),
		-math.Cos(pitch)*math.Sin(yaw),
	).Normalize()
	right := forward.Cross(NewVec3(0, 1, 0)).Normalize()
	back := forward.Negate()
	up := back.Cross(right)

	rotation := NewMat3(right, up, back)
	return Affine{
		Linear:      rotation,
		Translation: rotation.MulVec(position.ToVec3()).Negate(),
	}
}
