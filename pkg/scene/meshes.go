package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// BoxMesh returns a cube mesh of the given half extent centered at the
// origin, wound counter-clockwise seen from outside
func BoxMesh(halfExtent float64) loaders.SubMesh {
	h := halfExtent
	positions := []float64{
		-h, -h, -h, // 0
		h, -h, -h, // 1
		h, h, -h, // 2
		-h, h, -h, // 3
		-h, -h, h, // 4
		h, -h, h, // 5
		h, h, h, // 6
		-h, h, h, // 7
	}
	indices := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
	}
	return loaders.SubMesh{Name: "box", Positions: positions, Indices: indices}
}

// IcosahedronMesh returns a regular icosahedron whose vertices lie on a
// sphere of the given radius
func IcosahedronMesh(radius float64) loaders.SubMesh {
	phi := (1 + math.Sqrt(5)) / 2
	s := radius / math.Sqrt(1+phi*phi)
	a, b := s, phi*s

	positions := []float64{
		-a, b, 0,
		a, b, 0,
		-a, -b, 0,
		a, -b, 0,
		0, -a, b,
		0, a, b,
		0, -a, -b,
		0, a, -b,
		b, 0, -a,
		b, 0, a,
		-b, 0, -a,
		-b, 0, a,
	}
	indices := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return loaders.SubMesh{Name: "icosahedron", Positions: positions, Indices: indices}
}
