package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadOBJ loads a Wavefront OBJ file
func LoadOBJ(filename string) ([]SubMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	meshes, err := ReadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read OBJ file %s: %w", filename, err)
	}
	return meshes, nil
}

// objVertex is one v/vt/vn reference of a face, as zero-based indices;
// -1 marks a missing component
type objVertex struct {
	position, texCoord, normal int
}

// objBuilder accumulates the sub-mesh started by the last o or g line
type objBuilder struct {
	name      string
	vertices  map[objVertex]int
	order     []objVertex
	indices   []int
	normals   bool // every vertex so far has a normal
	texCoords bool // every vertex so far has a texture coordinate
}

func newOBJBuilder(name string) *objBuilder {
	return &objBuilder{name: name, vertices: make(map[objVertex]int), normals: true, texCoords: true}
}

func (b *objBuilder) vertexIndex(v objVertex) int {
	if index, ok := b.vertices[v]; ok {
		return index
	}
	index := len(b.order)
	b.vertices[v] = index
	b.order = append(b.order, v)
	b.normals = b.normals && v.normal >= 0
	b.texCoords = b.texCoords && v.texCoord >= 0
	return index
}

func (b *objBuilder) build(positions, texCoords, normals [][3]float64) SubMesh {
	mesh := SubMesh{
		Name:      b.name,
		Positions: make([]float64, 0, 3*len(b.order)),
		Indices:   b.indices,
	}
	for _, v := range b.order {
		p := positions[v.position]
		mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])
		if b.normals {
			n := normals[v.normal]
			mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
		}
		if b.texCoords {
			uv := texCoords[v.texCoord]
			mesh.TexCoords = append(mesh.TexCoords, uv[0], uv[1])
		}
	}
	return mesh
}

// ReadOBJ parses OBJ text. Every o or g statement starts a new sub-mesh;
// polygons are fan triangulated. Each distinct v/vt/vn combination becomes
// one vertex so that all attributes share a single index stream.
// Materials, lines and points are ignored.
func ReadOBJ(r io.Reader) ([]SubMesh, error) {
	var (
		positions [][3]float64
		texCoords [][3]float64
		normals   [][3]float64
		meshes    []SubMesh
	)
	current := newOBJBuilder("default")

	flush := func() {
		if len(current.indices) > 0 {
			meshes = append(meshes, current.build(positions, texCoords, normals))
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNumber, err)
			}
			positions = append(positions, v)
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNumber, err)
			}
			texCoords = append(texCoords, v)
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNumber, err)
			}
			normals = append(normals, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNumber, len(fields)-1)
			}
			polygon := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				v, err := parseOBJVertex(field, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				polygon = append(polygon, current.vertexIndex(v))
			}
			current.indices = fanTriangulate(current.indices, polygon)
		case "o", "g":
			name := strings.Join(fields[1:], " ")
			if len(current.indices) == 0 {
				current.name = name
				continue
			}
			flush()
			current = newOBJBuilder(name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan OBJ data: %w", err)
	}
	flush()

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no faces found")
	}
	return meshes, nil
}

// parseFloats parses at least minCount floats; missing trailing values are zero
func parseFloats(fields []string, minCount int) ([3]float64, error) {
	var values [3]float64
	if len(fields) < minCount {
		return values, fmt.Errorf("expected %d values, got %d", minCount, len(fields))
	}
	for i := 0; i < len(fields) && i < 3; i++ {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return values, fmt.Errorf("invalid number %q: %w", fields[i], err)
		}
		values[i] = value
	}
	return values, nil
}

// parseOBJVertex parses "p", "p/t", "p//n" or "p/t/n". Indices are one-based;
// negative indices count back from the last element defined so far.
func parseOBJVertex(field string, positionCount, texCoordCount, normalCount int) (objVertex, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return objVertex{}, fmt.Errorf("invalid face vertex %q", field)
	}

	v := objVertex{position: -1, texCoord: -1, normal: -1}
	counts := [3]int{positionCount, texCoordCount, normalCount}
	targets := [3]*int{&v.position, &v.texCoord, &v.normal}
	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return objVertex{}, fmt.Errorf("face vertex %q has no position", field)
			}
			continue
		}
		index, err := strconv.Atoi(part)
		if err != nil {
			return objVertex{}, fmt.Errorf("invalid index in face vertex %q: %w", field, err)
		}
		switch {
		case index > 0:
			index--
		case index < 0:
			index += counts[i]
		default:
			return objVertex{}, fmt.Errorf("zero index in face vertex %q", field)
		}
		if index < 0 || index >= counts[i] {
			return objVertex{}, fmt.Errorf("index out of range in face vertex %q", field)
		}
		*targets[i] = index
	}
	return v, nil
}
