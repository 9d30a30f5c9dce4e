package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for model files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported model format")

// SubMesh is one independently shaded part of a model as flat arrays.
// Positions and Normals hold three floats per vertex, TexCoords two.
// Normals and TexCoords are empty when the model does not provide them
// for every vertex. Indices hold three vertex indices per triangle.
type SubMesh struct {
	Name      string
	Positions []float64
	Normals   []float64
	TexCoords []float64
	Indices   []int
}

// VertexCount returns the number of vertices
func (m SubMesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles
func (m SubMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Load reads a model file, choosing the reader from the file extension
func Load(path string) ([]SubMesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".ply":
		return LoadPLY(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// fanTriangulate appends the triangles (v0, vi, vi+1) of a convex polygon
func fanTriangulate(indices []int, polygon []int) []int {
	for i := 1; i+1 < len(polygon); i++ {
		indices = append(indices, polygon[0], polygon[i], polygon[i+1])
	}
	return indices
}
