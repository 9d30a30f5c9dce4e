package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestPLY creates a binary PLY square made of two triangles
func createTestPLY(t *testing.T, filename string, order binary.ByteOrder, includeNormals bool, includeColors bool) {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	if order == binary.LittleEndian {
		buf.WriteString("format binary_little_endian 1.0\n")
	} else {
		buf.WriteString("format binary_big_endian 1.0\n")
	}
	buf.WriteString("comment square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 1.0, 255, 0, 0},
		{1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0, 255, 0},
		{1.0, 1.0, 0.0, 0.0, 0.0, 1.0, 0, 0, 255},
		{0.0, 1.0, 0.0, 0.0, 0.0, 1.0, 255, 255, 0},
	}

	for _, v := range vertices {
		binary.Write(&buf, order, []float32{v.x, v.y, v.z})
		if includeNormals {
			binary.Write(&buf, order, []float32{v.nx, v.ny, v.nz})
		}
		if includeColors {
			binary.Write(&buf, order, []uint8{v.r, v.g, v.b})
		}
	}

	faces := []struct {
		count      uint8
		v1, v2, v3 int32
	}{
		{3, 0, 1, 2},
		{3, 0, 2, 3},
	}

	for _, f := range faces {
		binary.Write(&buf, order, f.count)
		binary.Write(&buf, order, []int32{f.v1, f.v2, f.v3})
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func assertFloats(t *testing.T, label string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d values, got %d", label, len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %v, got %v", label, i, want[i], got[i])
		}
	}
}

func assertInts(t *testing.T, label string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %d values, got %d", label, len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %d, got %d", label, i, want[i], got[i])
		}
	}
}

var squarePositions = []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name    string
		order   binary.ByteOrder
		normals bool
		colors  bool
	}{
		{"little endian", binary.LittleEndian, false, false},
		{"little endian with normals", binary.LittleEndian, true, false},
		{"little endian with colors", binary.LittleEndian, false, true},
		{"big endian with normals and colors", binary.BigEndian, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, testFile, tt.order, tt.normals, tt.colors)

			meshes, err := LoadPLY(testFile)
			if err != nil {
				t.Fatalf("Failed to load PLY: %v", err)
			}
			if len(meshes) != 1 {
				t.Fatalf("Expected 1 mesh, got %d", len(meshes))
			}
			mesh := meshes[0]

			if mesh.Name != "square" {
				t.Errorf("Expected mesh named after the file, got %q", mesh.Name)
			}
			assertFloats(t, "positions", mesh.Positions, squarePositions)
			assertInts(t, "indices", mesh.Indices, []int{0, 1, 2, 0, 2, 3})

			if tt.normals {
				assertFloats(t, "normals", mesh.Normals, []float64{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1})
			} else if len(mesh.Normals) != 0 {
				t.Errorf("Expected no normals, got %d", len(mesh.Normals))
			}
		})
	}
}

func TestReadPLY_ASCII(t *testing.T) {
	data := `ply
format ascii 1.0
element vertex 5
property float x
property float y
property float z
property float u
property float v
element face 1
property uchar flags
property list uchar int vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0 0 0
1 0 0 1 0
1 1 0 1 1
0.5 1.5 0 0.5 1
0 1 0 0 1
7 5 0 1 2 3 4
0 1
`
	mesh, err := ReadPLY(strings.NewReader(data), "pentagon")
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}

	if mesh.VertexCount() != 5 {
		t.Errorf("Expected 5 vertices, got %d", mesh.VertexCount())
	}
	assertFloats(t, "texcoords", mesh.TexCoords, []float64{0, 0, 1, 0, 1, 1, 0.5, 1, 0, 1})
	// The pentagon is fan triangulated around its first vertex
	assertInts(t, "indices", mesh.Indices, []int{0, 1, 2, 0, 2, 3, 0, 3, 4})
}

func TestReadPLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no magic", "format ascii 1.0\nend_header\n"},
		{"no end header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"missing coordinates", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\n1\n"},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 3\n"},
		{"degenerate face list", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n2 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPLY(strings.NewReader(tt.data), "broken"); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	_, err := LoadPLY("nonexistent.ply")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestParsePLYHeader(t *testing.T) {
	headerContent := `ply
format binary_little_endian 1.0
comment Test PLY file
element vertex 100
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element face 50
property list uchar int vertex_indices
end_header
DATA`

	reader := bufio.NewReader(strings.NewReader(headerContent))
	header, err := parsePLYHeader(reader)
	if err != nil {
		t.Fatalf("Failed to parse header: %v", err)
	}

	if header.Format != "binary_little_endian" {
		t.Errorf("Expected format 'binary_little_endian', got '%s'", header.Format)
	}
	if header.Version != "1.0" {
		t.Errorf("Expected version '1.0', got '%s'", header.Version)
	}

	vertex, ok := header.Element("vertex")
	if !ok || vertex.Count != 100 || len(vertex.Properties) != 9 {
		t.Errorf("Unexpected vertex element %+v", vertex)
	}
	face, ok := header.Element("face")
	if !ok || face.Count != 50 || len(face.Properties) != 1 || !face.Properties[0].IsList {
		t.Errorf("Unexpected face element %+v", face)
	}
	if vertex.index("nx") != 3 || vertex.index("missing") != -1 {
		t.Error("Property lookup returned wrong positions")
	}

	// The reader is left at the first data byte
	rest, _ := reader.ReadString('\n')
	if rest != "DATA" {
		t.Errorf("Expected reader at data section, got %q", rest)
	}
}

func TestGetTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"float", 4},
		{"float32", 4},
		{"int", 4},
		{"int32", 4},
		{"uint", 4},
		{"uint32", 4},
		{"double", 8},
		{"float64", 8},
		{"short", 2},
		{"int16", 2},
		{"ushort", 2},
		{"uint16", 2},
		{"char", 1},
		{"int8", 1},
		{"uchar", 1},
		{"uint8", 1},
		{"unknown", 0},
	}

	for _, test := range tests {
		result := getTypeSize(test.dataType)
		if result != test.expected {
			t.Errorf("getTypeSize(%s): expected %d, got %d", test.dataType, test.expected, result)
		}
	}
}
