package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// boundsEpsilon pads node bounds so triangles lying on a face are not clipped
const boundsEpsilon = 1e-6

// BoundingVolume selects the primitive a BVH node tests before descending
type BoundingVolume int

const (
	// BoundingBox tests the node's axis-aligned box
	BoundingBox BoundingVolume = iota
	// BoundingSphereVolume tests the node's bounding sphere
	BoundingSphereVolume
	// BoundingNone disables pruning and visits every node
	BoundingNone
)

// bvhChild is a node's child: either a triangle or another node
type bvhChild interface {
	hit(ray core.Ray, traversal *traversal, depth int) (Hit, bool)
}

// traversal carries per-mesh options down the tree so one BVH can be
// shared by meshes with different settings
type traversal struct {
	options MeshOptions
}

// BVHNode represents a node in the Bounding Volume Hierarchy. Left and
// Right are triangles in leaf nodes and subtrees otherwise; Right is nil
// for a node over a single triangle.
type BVHNode struct {
	Box    core.AABB
	Sphere core.BoundingSphere
	Left   bvhChild
	Right  bvhChild
}

// BuildBVH constructs a BVH over the triangles. The input slice is not
// modified. It returns nil for no triangles.
func BuildBVH(triangles []*Triangle) *BVHNode {
	if len(triangles) == 0 {
		return nil
	}

	// Sorting happens in place during the build
	trianglesCopy := make([]*Triangle, len(triangles))
	copy(trianglesCopy, triangles)

	return buildBVH(trianglesCopy)
}

// buildBVH splits at the median triangle centroid along x. Groups of one
// or two triangles become leaves holding the triangles directly.
func buildBVH(triangles []*Triangle) *BVHNode {
	node := &BVHNode{}
	node.Box, node.Sphere = computeBounds(triangles)

	if len(triangles) <= 2 {
		node.Left = triangles[0]
		if len(triangles) == 2 {
			node.Right = triangles[1]
		}
		return node
	}

	sort.Slice(triangles, func(i, j int) bool {
		return triangles[i].Centroid().X < triangles[j].Centroid().X
	})

	mid := len(triangles) / 2
	node.Left = buildChild(triangles[:mid])
	node.Right = buildChild(triangles[mid:])
	return node
}

func buildChild(triangles []*Triangle) bvhChild {
	if len(triangles) == 1 {
		return triangles[0]
	}
	return buildBVH(triangles)
}

// computeBounds returns the padded box and the sphere centered on the
// average triangle centroid that encloses every vertex
func computeBounds(triangles []*Triangle) (core.AABB, core.BoundingSphere) {
	centroids := make([]core.Point3, len(triangles))
	box := triangles[0].Bounds()
	for i, tri := range triangles {
		centroids[i] = tri.Centroid()
		box = box.Union(tri.Bounds())
	}

	center := core.Centroid(centroids...)
	radius := 0.0
	for _, tri := range triangles {
		p0, p1, p2 := tri.Vertices()
		radius = math.Max(radius, center.DistanceTo(p0))
		radius = math.Max(radius, center.DistanceTo(p1))
		radius = math.Max(radius, center.DistanceTo(p2))
	}

	return box.Expand(boundsEpsilon), core.BoundingSphere{Center: center, Radius: radius + boundsEpsilon}
}

// Hit tests the ray against the hierarchy with default mesh options
func (n *BVHNode) Hit(ray core.Ray) (Hit, bool) {
	return n.hit(ray, &traversal{options: DefaultMeshOptions()}, 0)
}

func (n *BVHNode) hit(ray core.Ray, traversal *traversal, depth int) (Hit, bool) {
	options := traversal.options
	if !n.boundsHit(ray, options.BoundingVolume) {
		return Hit{}, false
	}

	if options.DisplayDepth >= 0 && depth >= options.DisplayDepth {
		return n.boundsSurfaceHit(ray, options.BoundingVolume)
	}

	best := InfiniteHit()
	found := false
	for _, child := range [2]bvhChild{n.Left, n.Right} {
		if child == nil {
			continue
		}
		if hit, ok := child.hit(ray, traversal, depth+1); ok && hit.T < best.T {
			best, found = hit, true
		}
	}
	return best, found
}

func (n *BVHNode) boundsHit(ray core.Ray, volume BoundingVolume) bool {
	switch volume {
	case BoundingSphereVolume:
		return n.Sphere.Hit(ray)
	case BoundingNone:
		return true
	default:
		return n.Box.Hit(ray, 0, math.Inf(1))
	}
}

// boundsSurfaceHit intersects the node's bounding primitive as if it
// were solid geometry
func (n *BVHNode) boundsSurfaceHit(ray core.Ray, volume BoundingVolume) (Hit, bool) {
	if volume == BoundingSphereVolume {
		sphere := Sphere{Center: n.Sphere.Center, Radius: n.Sphere.Radius}
		return sphere.Hit(ray)
	}
	box := AxisAlignedBox{Box: n.Box}
	return box.Hit(ray)
}

func (t *Triangle) hit(ray core.Ray, traversal *traversal, depth int) (Hit, bool) {
	return t.intersect(ray, traversal.options.NormalMode)
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	Triangles  int
	MaxDepth   int
}

// Stats walks the tree and collects its statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	for _, child := range [2]bvhChild{n.Left, n.Right} {
		switch c := child.(type) {
		case *BVHNode:
			c.collectStats(depth+1, stats)
		case *Triangle:
			stats.Triangles++
		}
	}
}
