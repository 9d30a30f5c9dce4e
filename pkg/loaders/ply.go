package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block of the header, e.g. vertex or face
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// Element returns the element named name
func (h *PLYHeader) Element(name string) (PLYElement, bool) {
	for _, element := range h.Elements {
		if element.Name == name {
			return element, true
		}
	}
	return PLYElement{}, false
}

// index returns the position of the named property, or -1
func (e PLYElement) index(names ...string) int {
	for i, prop := range e.Properties {
		for _, name := range names {
			if prop.Name == name {
				return i
			}
		}
	}
	return -1
}

// LoadPLY loads a PLY file as a single sub-mesh named after the file
func LoadPLY(filename string) ([]SubMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	mesh, err := ReadPLY(file, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY file %s: %w", filename, err)
	}
	return []SubMesh{mesh}, nil
}

// ReadPLY parses PLY data in ascii, binary little endian or binary big
// endian format. Polygons are fan triangulated.
func ReadPLY(r io.Reader, name string) (SubMesh, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return SubMesh{}, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	default:
		return SubMesh{}, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := SubMesh{Name: name}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, &mesh)
		case "face":
			err = readPLYFaces(values, element, &mesh)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return SubMesh{}, err
		}
	}

	vertexCount := mesh.VertexCount()
	for _, index := range mesh.Indices {
		if index < 0 || index >= vertexCount {
			return SubMesh{}, fmt.Errorf("face index %d out of range for %d vertices", index, vertexCount)
		}
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header,
// leaving the reader at the first data byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list types %s %s", prop.ListType, prop.DataType)
		}
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
		if getTypeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported data type: %s", prop.Type)
		}
	}

	return prop, nil
}

func readPLYVertices(values plyValueReader, element PLYElement, mesh *SubMesh) error {
	position := [3]int{element.index("x"), element.index("y"), element.index("z")}
	if position[0] < 0 || position[1] < 0 || position[2] < 0 {
		return fmt.Errorf("vertex element lacks x, y or z")
	}
	normal := [3]int{element.index("nx"), element.index("ny"), element.index("nz")}
	hasNormals := normal[0] >= 0 && normal[1] >= 0 && normal[2] >= 0
	texCoord := [2]int{element.index("u", "s", "texture_u"), element.index("v", "t", "texture_v")}
	hasTexCoords := texCoord[0] >= 0 && texCoord[1] >= 0

	mesh.Positions = make([]float64, 0, 3*element.Count)
	if hasNormals {
		mesh.Normals = make([]float64, 0, 3*element.Count)
	}
	if hasTexCoords {
		mesh.TexCoords = make([]float64, 0, 2*element.Count)
	}

	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if prop.IsList {
				if _, err := readPLYList(values, prop); err != nil {
					return fmt.Errorf("vertex %d, property %s: %w", i, prop.Name, err)
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d, property %s: %w", i, prop.Name, err)
			}
			row[j] = value
		}

		mesh.Positions = append(mesh.Positions, row[position[0]], row[position[1]], row[position[2]])
		if hasNormals {
			mesh.Normals = append(mesh.Normals, row[normal[0]], row[normal[1]], row[normal[2]])
		}
		if hasTexCoords {
			mesh.TexCoords = append(mesh.TexCoords, row[texCoord[0]], row[texCoord[1]])
		}
	}
	return nil
}

func readPLYFaces(values plyValueReader, element PLYElement, mesh *SubMesh) error {
	indicesProp := element.index("vertex_indices", "vertex_index")
	if indicesProp < 0 || !element.Properties[indicesProp].IsList {
		return fmt.Errorf("face element lacks a vertex_indices list")
	}

	mesh.Indices = make([]int, 0, 3*element.Count)
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if !prop.IsList {
				if _, err := values.read(prop.Type); err != nil {
					return fmt.Errorf("face %d, property %s: %w", i, prop.Name, err)
				}
				continue
			}
			list, err := readPLYList(values, prop)
			if err != nil {
				return fmt.Errorf("face %d, property %s: %w", i, prop.Name, err)
			}
			if j != indicesProp {
				continue
			}
			if len(list) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(list))
			}
			polygon := make([]int, len(list))
			for k, value := range list {
				polygon[k] = int(value)
			}
			mesh.Indices = fanTriangulate(mesh.Indices, polygon)
		}
	}
	return nil
}

func skipPLYElement(values plyValueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			var err error
			if prop.IsList {
				_, err = readPLYList(values, prop)
			} else {
				_, err = values.read(prop.Type)
			}
			if err != nil {
				return fmt.Errorf("failed to skip %s %d, property %s: %w", element.Name, i, prop.Name, err)
			}
		}
	}
	return nil
}

func readPLYList(values plyValueReader, prop PLYProperty) ([]float64, error) {
	count, err := values.read(prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("failed to read list count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative list count %v", count)
	}
	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.read(prop.DataType); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// plyValueReader decodes one scalar of the given PLY type
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.reader, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default:
		return float64(data[0]), nil
	}
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", dataType, a.scanner.Text(), err)
	}
	return value, nil
}
