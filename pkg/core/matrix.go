package core

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero
var ErrSingularMatrix = errors.New("matrix is singular")

// singularEpsilon is the smallest determinant magnitude treated as invertible
const singularEpsilon = 1e-12

// Mat3 is a 3x3 matrix stored as rows
type Mat3 [3]Vec3

// NewMat3 creates a matrix from its rows
func NewMat3(r0, r1, r2 Vec3) Mat3 {
	return Mat3{r0, r1, r2}
}

// Identity3 returns the identity matrix
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Scale3 returns a diagonal scaling matrix
func Scale3(x, y, z float64) Mat3 {
	return Mat3{{x, 0, 0}, {0, y, 0}, {0, 0, z}}
}

// Rotation3 returns the rotation by angle radians around axis (right-hand rule)
func Rotation3(angle float64, axis Vec3) Mat3 {
	a := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	return Mat3{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c},
	}
}

// Column returns column j as a vector
func (m Mat3) Column(j int) Vec3 {
	return Vec3{m[0].Component(j), m[1].Component(j), m[2].Component(j)}
}

// MulVec returns m·v
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{m[0].Dot(v), m[1].Dot(v), m[2].Dot(v)}
}

// MulPoint applies the linear map to a point's displacement from the origin
func (m Mat3) MulPoint(p Point3) Point3 {
	return m.MulVec(p.ToVec3()).ToPoint()
}

// Transpose returns the transposed matrix
func (m Mat3) Transpose() Mat3 {
	return Mat3{m.Column(0), m.Column(1), m.Column(2)}
}

// mulRows returns the matrix whose (i, j) entry is m[i]·other[j].
// Passing the transpose of B as other yields the ordinary product m·B.
func (m Mat3) mulRows(other Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		out[i] = Vec3{m[i].Dot(other[0]), m[i].Dot(other[1]), m[i].Dot(other[2])}
	}
	return out
}

// Mul returns the matrix product m·other
func (m Mat3) Mul(other Mat3) Mat3 {
	return m.mulRows(other.Transpose())
}

// Scale returns every entry multiplied by s
func (m Mat3) Scale(s float64) Mat3 {
	return Mat3{m[0].Multiply(s), m[1].Multiply(s), m[2].Multiply(s)}
}

// Det returns the determinant as the triple product of the rows
func (m Mat3) Det() float64 {
	return m[0].Dot(m[1].Cross(m[2]))
}

// Inverse returns the inverse computed from the adjugate.
// The cofactor rows are the pairwise cross products of the rows.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Det()
	if math.Abs(det) < singularEpsilon || math.IsNaN(det) {
		return Mat3{}, ErrSingularMatrix
	}
	cofactor := Mat3{m[1].Cross(m[2]), m[2].Cross(m[0]), m[0].Cross(m[1])}
	return cofactor.Transpose().Scale(1 / det), nil
}
