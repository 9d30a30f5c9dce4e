package scene

import (
	"fmt"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// Assets caches meshes and their BVHs across scene builds. Camera and
// light changes rebuild the Scene, but static mesh geometry is loaded
// and partitioned only once per path.
type Assets struct {
	mu     sync.Mutex
	meshes map[string][]*geometry.TriangleMesh
	logger core.Logger
}

// NewAssets creates an empty cache; logger may be nil
func NewAssets(logger core.Logger) *Assets {
	return &Assets{
		meshes: make(map[string][]*geometry.TriangleMesh),
		logger: logger,
	}
}

// Meshes returns one triangle mesh per sub-mesh of the model at path
func (a *Assets) Meshes(path string) ([]*geometry.TriangleMesh, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if meshes, ok := a.meshes[path]; ok {
		return meshes, nil
	}

	subMeshes, err := loaders.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh %s: %w", path, err)
	}
	meshes, err := a.build(subMeshes)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh %s: %w", path, err)
	}
	a.meshes[path] = meshes
	return meshes, nil
}

// Builtin returns the procedural mesh named name ("box" or "icosahedron")
func (a *Assets) Builtin(name string) (*geometry.TriangleMesh, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := "builtin:" + name
	if meshes, ok := a.meshes[key]; ok {
		return meshes[0], nil
	}

	var subMesh loaders.SubMesh
	switch name {
	case "box":
		subMesh = BoxMesh(0.5)
	case "icosahedron":
		subMesh = IcosahedronMesh(0.5)
	default:
		return nil, fmt.Errorf("unknown builtin mesh %q", name)
	}

	meshes, err := a.build([]loaders.SubMesh{subMesh})
	if err != nil {
		return nil, err
	}
	a.meshes[key] = meshes
	return meshes[0], nil
}

func (a *Assets) build(subMeshes []loaders.SubMesh) ([]*geometry.TriangleMesh, error) {
	meshes := make([]*geometry.TriangleMesh, 0, len(subMeshes))
	for _, subMesh := range subMeshes {
		mesh, err := geometry.NewTriangleMesh(subMesh.Positions, subMesh.Normals, subMesh.Indices,
			geometry.VisualData{}, geometry.DefaultMeshOptions())
		if err != nil {
			return nil, fmt.Errorf("sub-mesh %q: %w", subMesh.Name, err)
		}
		if a.logger != nil {
			stats := mesh.BVH().Stats()
			a.logger.Printf("Mesh %q: %d triangles, %d BVH nodes, depth %d\n",
				subMesh.Name, stats.Triangles, stats.TotalNodes, stats.MaxDepth)
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}
