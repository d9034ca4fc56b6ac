package models

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/taigrr/easel/pkg/math3d"
)

// maxLineBytes bounds a single OBJ line; faces of very large polygons can be
// long but never approach this.
const maxLineBytes = 1 << 20

// LoadOBJ loads a Wavefront OBJ file.
//
// Only v, vn, vt and f records are read; every other record is ignored.
// Any malformed record, or any face index that does not resolve, fails the
// whole load with a *ParseError.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, path)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ parses OBJ records from r. name is used in error messages.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var faceLines []int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := fieldTokenizer.Split(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math3d.Vec3
			v, err = parseVec3(fields[1:])
			mesh.Positions = append(mesh.Positions, v)
		case "vn":
			var n math3d.Vec3
			n, err = parseVec3(fields[1:])
			mesh.Normals = append(mesh.Normals, n)
		case "vt":
			var uv math3d.Vec2
			uv, err = parseVec2(fields[1:])
			mesh.UVs = append(mesh.UVs, uv)
		case "f":
			var face Face
			face, err = parseFace(fields[1:])
			mesh.Faces = append(mesh.Faces, face)
			faceLines = append(faceLines, lineNo)
		}
		if err != nil {
			return nil, &ParseError{Path: name, Line: lineNo, Err: fmt.Errorf("%s record: %w", fields[0], err)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: name, Line: lineNo, Err: err}
	}

	// Faces may legally precede the attributes they reference, so indices
	// are checked once the whole file has been read.
	for i, f := range mesh.Faces {
		if err := mesh.ValidateFace(f); err != nil {
			return nil, &ParseError{Path: name, Line: faceLines[i], Err: err}
		}
	}

	mesh.Positions = slices.Clip(mesh.Positions)
	mesh.Normals = slices.Clip(mesh.Normals)
	mesh.UVs = slices.Clip(mesh.UVs)
	mesh.Faces = slices.Clip(mesh.Faces)
	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: want 3 numbers, got %d", ErrFieldCount, len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := parseFloat(fields[i])
		if err != nil {
			return math3d.Vec3{}, err
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}

func parseVec2(fields []string) (math3d.Vec2, error) {
	if len(fields) < 2 {
		return math3d.Vec2{}, fmt.Errorf("%w: want 2 numbers, got %d", ErrFieldCount, len(fields))
	}
	u, err := parseFloat(fields[0])
	if err != nil {
		return math3d.Vec2{}, err
	}
	v, err := parseFloat(fields[1])
	if err != nil {
		return math3d.Vec2{}, err
	}
	return math3d.V2(u, v), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, s)
	}
	return f, nil
}

func parseFace(refs []string) (Face, error) {
	if len(refs) < 3 {
		return Face{}, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(refs))
	}
	face := Face{Vertices: make([]FaceVertex, len(refs))}
	for i, ref := range refs {
		fv, err := parseFaceVertex(ref)
		if err != nil {
			return Face{}, fmt.Errorf("vertex %d: %w", i, err)
		}
		face.Vertices[i] = fv
	}
	return face, nil
}

// parseFaceVertex parses "p//n", "p/u/n" or a bare "p" and converts the
// 1-based file indices to 0-based. "p/u" is rejected: without the normal
// field it cannot be told apart from a truncated reference.
func parseFaceVertex(ref string) (FaceVertex, error) {
	parts := refTokenizer.Split(ref)
	if len(parts) == 1 && parts[0] != "" {
		pos, err := parseIndex(parts[0])
		if err != nil {
			return FaceVertex{}, err
		}
		return FaceVertex{Pos: pos, UV: Absent, Normal: Absent}, nil
	}
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return FaceVertex{}, fmt.Errorf("%w: %q", ErrFaceArity, ref)
	}

	pos, err := parseIndex(parts[0])
	if err != nil {
		return FaceVertex{}, err
	}
	norm, err := parseIndex(parts[2])
	if err != nil {
		return FaceVertex{}, err
	}
	uv := Absent
	if parts[1] != "" {
		if uv, err = parseIndex(parts[1]); err != nil {
			return FaceVertex{}, err
		}
	}
	return FaceVertex{Pos: pos, UV: uv, Normal: norm}, nil
}

// parseIndex parses a 1-based OBJ index and returns it 0-based. Relative
// (negative) indices are not supported.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d: %w", n, ErrIndexRange)
	}
	return n - 1, nil
}
