package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NormalMode selects how a triangle hit gets its shading normal
type NormalMode int

const (
	// NormalAuto interpolates provided normals when the mesh has them and
	// pseudo-normals otherwise
	NormalAuto NormalMode = iota
	// NormalProvided interpolates the per-vertex normals from the source data
	NormalProvided
	// NormalPseudo interpolates the area-weighted pseudo-normals
	NormalPseudo
	// NormalFace uses the flat face normal
	NormalFace
)

// parallelEpsilon rejects rays nearly parallel to a triangle's plane
const parallelEpsilon = 1e-8

// VertexBuffer is the read-only vertex data shared by every triangle of a
// mesh. Normals is nil when the source had none.
type VertexBuffer struct {
	Positions     []core.Point3
	Normals       []core.Vec3
	PseudoNormals []core.Vec3
}

// Triangle references three vertices of a shared buffer
type Triangle struct {
	indices [3]int
	buffer  *VertexBuffer
	visual  VisualData
}

// NewTriangle creates a triangle over the given buffer indices. Winding
// is i0 -> i1 -> i2 counter-clockwise around the face normal.
func NewTriangle(buffer *VertexBuffer, i0, i1, i2 int, visual VisualData) *Triangle {
	return &Triangle{indices: [3]int{i0, i1, i2}, buffer: buffer, visual: visual}
}

// Vertices returns the three corner positions
func (t *Triangle) Vertices() (core.Point3, core.Point3, core.Point3) {
	p := t.buffer.Positions
	return p[t.indices[0]], p[t.indices[1]], p[t.indices[2]]
}

// Centroid returns the average of the three corners
func (t *Triangle) Centroid() core.Point3 {
	p0, p1, p2 := t.Vertices()
	return core.Centroid(p0, p1, p2)
}

// Bounds returns the axis-aligned bounding box of the triangle
func (t *Triangle) Bounds() core.AABB {
	p0, p1, p2 := t.Vertices()
	return core.NewAABBFromPoints(p0, p1, p2)
}

// FaceNormal returns the unit normal given by the winding order
func (t *Triangle) FaceNormal() core.Vec3 {
	p0, p1, p2 := t.Vertices()
	return p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
}

// Hit tests the triangle using NormalAuto shading normals
func (t *Triangle) Hit(ray core.Ray) (Hit, bool) {
	return t.intersect(ray, NormalAuto)
}

// VisualData returns the shading parameters
func (t *Triangle) VisualData() VisualData {
	return t.visual
}

// intersect finds the plane hit and keeps it when the point is on the
// inner side of all three directed edges
func (t *Triangle) intersect(ray core.Ray, mode NormalMode) (Hit, bool) {
	p0, p1, p2 := t.Vertices()
	cross := p1.Subtract(p0).Cross(p2.Subtract(p0))
	if cross.LengthSquared() == 0 {
		return Hit{}, false
	}
	normal := cross.Normalize()

	denominator := normal.Dot(ray.Direction)
	if math.Abs(denominator) < parallelEpsilon {
		return Hit{}, false
	}

	tHit := p0.Subtract(ray.Origin).Dot(normal) / denominator
	if tHit < MinRayT {
		return Hit{}, false
	}

	point := ray.At(tHit)
	if isOnTheRight(p0, p1, point, normal) ||
		isOnTheRight(p1, p2, point, normal) ||
		isOnTheRight(p2, p0, point, normal) {
		return Hit{}, false
	}

	weights := barycentric(p0, p1, p2, point, normal)
	return Hit{T: tHit, Normal: t.shadingNormal(weights, normal, mode)}, true
}

// isOnTheRight reports whether p lies strictly to the right of the
// directed edge from -> to, seen from the side the normal points to
func isOnTheRight(from, to, p core.Point3, normal core.Vec3) bool {
	return to.Subtract(from).Cross(p.Subtract(from)).Dot(normal) < 0
}

// barycentric returns the sub-triangle areas opposite each vertex divided
// by the total area. Signed areas make the weights sum to one exactly.
func barycentric(p0, p1, p2, p core.Point3, normal core.Vec3) [3]float64 {
	total := p1.Subtract(p0).Cross(p2.Subtract(p0)).Dot(normal)
	w0 := p1.Subtract(p).Cross(p2.Subtract(p)).Dot(normal) / total
	w1 := p2.Subtract(p).Cross(p0.Subtract(p)).Dot(normal) / total
	return [3]float64{w0, w1, 1 - w0 - w1}
}

// Barycentric returns the weights of p with respect to the triangle corners
func (t *Triangle) Barycentric(p core.Point3) [3]float64 {
	p0, p1, p2 := t.Vertices()
	return barycentric(p0, p1, p2, p, t.FaceNormal())
}

func (t *Triangle) shadingNormal(weights [3]float64, face core.Vec3, mode NormalMode) core.Vec3 {
	var normals []core.Vec3
	switch mode {
	case NormalFace:
		return face
	case NormalProvided:
		normals = t.buffer.Normals
	case NormalPseudo:
		normals = t.buffer.PseudoNormals
	default:
		normals = t.buffer.Normals
		if normals == nil {
			normals = t.buffer.PseudoNormals
		}
	}
	if normals == nil {
		return face
	}

	var interpolated core.Vec3
	for i, index := range t.indices {
		interpolated = interpolated.Add(normals[index].Multiply(weights[i]))
	}
	if interpolated.LengthSquared() == 0 {
		return face
	}
	return interpolated.Normalize()
}

// ComputePseudoNormals returns per-vertex normals averaged from adjacent
// face normals weighted by face area
func ComputePseudoNormals(positions []core.Point3, indices []int) []core.Vec3 {
	normals := make([]core.Vec3, len(positions))
	for f := 0; f+2 < len(indices); f += 3 {
		i0, i1, i2 := indices[f], indices[f+1], indices[f+2]
		// Cross product length is twice the face area
		weighted := positions[i1].Subtract(positions[i0]).Cross(positions[i2].Subtract(positions[i0]))
		normals[i0] = normals[i0].Add(weighted)
		normals[i1] = normals[i1].Add(weighted)
		normals[i2] = normals[i2].Add(weighted)
	}
	for i, n := range normals {
		if n.LengthSquared() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}
