package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MeshOptions controls how a mesh is traversed and shaded
type MeshOptions struct {
	NormalMode     NormalMode
	BoundingVolume BoundingVolume
	DisplayDepth   int // Stop at this BVH depth and show the bounds; -1 disables
}

// DefaultMeshOptions returns box pruning, automatic normals and no
// hierarchy display
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		NormalMode:     NormalAuto,
		BoundingVolume: BoundingBox,
		DisplayDepth:   -1,
	}
}

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	buffer    *VertexBuffer
	triangles []*Triangle
	root      *BVHNode
	visual    VisualData
	options   MeshOptions
}

// NewTriangleMesh creates a mesh from flat arrays as produced by a model
// loader: positions and optional normals hold three floats per vertex,
// indices hold three vertex indices per triangle. Zero-area triangles are
// dropped.
func NewTriangleMesh(positions, normals []float64, indices []int, visual VisualData, options MeshOptions) (*TriangleMesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("position count %d is not a multiple of 3", len(positions))
	}
	if len(normals) != 0 && len(normals) != len(positions) {
		return nil, fmt.Errorf("normal count %d does not match position count %d", len(normals), len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	vertexCount := len(positions) / 3
	buffer := &VertexBuffer{Positions: make([]core.Point3, vertexCount)}
	for i := range buffer.Positions {
		buffer.Positions[i] = core.NewPoint3(positions[3*i], positions[3*i+1], positions[3*i+2])
	}
	if len(normals) != 0 {
		buffer.Normals = make([]core.Vec3, vertexCount)
		for i := range buffer.Normals {
			n := core.NewVec3(normals[3*i], normals[3*i+1], normals[3*i+2])
			if n.LengthSquared() > 0 {
				n = n.Normalize()
			}
			buffer.Normals[i] = n
		}
	}

	for i, index := range indices {
		if index < 0 || index >= vertexCount {
			return nil, fmt.Errorf("index %d at position %d out of range [0, %d)", index, i, vertexCount)
		}
	}
	buffer.PseudoNormals = ComputePseudoNormals(buffer.Positions, indices)

	triangles := make([]*Triangle, 0, len(indices)/3)
	for f := 0; f < len(indices); f += 3 {
		tri := NewTriangle(buffer, indices[f], indices[f+1], indices[f+2], visual)
		p0, p1, p2 := tri.Vertices()
		if p1.Subtract(p0).Cross(p2.Subtract(p0)).LengthSquared() == 0 {
			continue
		}
		triangles = append(triangles, tri)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh has no non-degenerate triangles")
	}

	return &TriangleMesh{
		buffer:    buffer,
		triangles: triangles,
		root:      BuildBVH(triangles),
		visual:    visual,
		options:   options,
	}, nil
}

// Hit finds the closest triangle hit through the BVH
func (m *TriangleMesh) Hit(ray core.Ray) (Hit, bool) {
	return m.root.hit(ray, &traversal{options: m.options}, 0)
}

// VisualData returns the shading parameters shared by all triangles
func (m *TriangleMesh) VisualData() VisualData {
	return m.visual
}

// Bounds returns the bounding box of the whole mesh
func (m *TriangleMesh) Bounds() core.AABB {
	return m.root.Box
}

// WithOptions returns a mesh sharing this mesh's geometry and BVH but
// traversed with different options
func (m *TriangleMesh) WithOptions(options MeshOptions) *TriangleMesh {
	mesh := *m
	mesh.options = options
	return &mesh
}

// WithVisualData returns a mesh sharing this mesh's geometry and BVH but
// shaded with different parameters
func (m *TriangleMesh) WithVisualData(visual VisualData) *TriangleMesh {
	mesh := *m
	mesh.visual = visual
	return &mesh
}

// Options returns the traversal options
func (m *TriangleMesh) Options() MeshOptions {
	return m.options
}

// Triangles returns the triangles of the mesh
func (m *TriangleMesh) Triangles() []*Triangle {
	return m.triangles
}

// BVH returns the root of the acceleration structure
func (m *TriangleMesh) BVH() *BVHNode {
	return m.root
}

// Buffer returns the shared vertex data
func (m *TriangleMesh) Buffer() *VertexBuffer {
	return m.buffer
}
