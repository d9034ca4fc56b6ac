package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/easel/pkg/math3d"
)

// LoadGLB loads a binary or JSON glTF file. Every triangle primitive of every
// mesh in the document is merged into one Mesh of triangle faces whose
// position, UV and normal indices coincide.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("open gltf: %w", err)}
	}
	mesh, err := meshFromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return mesh, nil
}

// LoadGLBWithTexture loads a glTF file and returns the mesh plus the first
// embedded (or sidecar) image that decodes. The image is nil when there is
// none.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: fmt.Errorf("open gltf: %w", err)}
	}
	mesh, err := meshFromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	for _, data := range imageData(doc, filepath.Dir(path)) {
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return mesh, img, nil
		}
	}
	return mesh, nil, nil
}

func meshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := appendPrimitives(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.Positions = slices.Clip(mesh.Positions)
	mesh.Normals = slices.Clip(mesh.Normals)
	mesh.UVs = slices.Clip(mesh.UVs)
	mesh.Faces = slices.Clip(mesh.Faces)
	return mesh, nil
}

func appendPrimitives(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3Accessor(doc, idx); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []math3d.Vec2
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVec2Accessor(doc, idx); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []int
		if prim.Indices != nil {
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		for _, i := range indices {
			if i < 0 || i >= len(positions) {
				return fmt.Errorf("index %d of %d positions: %w", i, len(positions), ErrIndexRange)
			}
		}

		basePos := len(mesh.Positions)
		baseNorm := len(mesh.Normals)
		baseUV := len(mesh.UVs)
		mesh.Positions = append(mesh.Positions, positions...)
		mesh.Normals = append(mesh.Normals, normals...)
		for _, uv := range uvs {
			// glTF puts V=0 at the top of the image; flip to the OBJ convention.
			mesh.UVs = append(mesh.UVs, math3d.V2(uv.X, 1-uv.Y))
		}

		ref := func(i int) FaceVertex {
			fv := FaceVertex{Pos: basePos + i, UV: Absent, Normal: Absent}
			if i < len(uvs) {
				fv.UV = baseUV + i
			}
			if i < len(normals) {
				fv.Normal = baseNorm + i
			}
			return fv
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{Vertices: []FaceVertex{
				ref(indices[i]),
				ref(indices[i+1]),
				ref(indices[i+2]),
			}})
		}
	}
	return nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v", accessor.Type)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		o := i * stride
		result[i] = math3d.V3(readFloat32(data[o:]), readFloat32(data[o+4:]), readFloat32(data[o+8:]))
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v", accessor.Type)
	}
	data, stride, err := accessorBytes(doc, accessor, 8)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, accessor.Count)
	for i := range result {
		o := i * stride
		result[i] = math3d.V2(readFloat32(data[o:]), readFloat32(data[o+4:]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", idx, ErrIndexRange)
	}
	return doc.Accessors[idx], nil
}

// accessorBytes returns the bytes backing accessor, starting at its first
// element, together with the element stride. The returned slice is checked
// to hold every element.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d: %w", *accessor.BufferView, ErrIndexRange)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d: %w", view.Buffer, ErrIndexRange)
	}
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor reads bytes [%d,%d) of %d: %w", start, end, len(buf.Data), ErrIndexRange)
	}
	return buf.Data[start:end], stride, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// imageData returns the raw bytes of every image in the document, embedded
// ones first in document order, then sidecar files relative to dir.
func imageData(doc *gltf.Document, dir string) [][]byte {
	var out [][]byte
	for _, img := range doc.Images {
		switch {
		case img.BufferView != nil && *img.BufferView < len(doc.BufferViews):
			bv := doc.BufferViews[*img.BufferView]
			if bv.Buffer < len(doc.Buffers) {
				data := doc.Buffers[bv.Buffer].Data
				if end := bv.ByteOffset + bv.ByteLength; end <= len(data) {
					out = append(out, data[bv.ByteOffset:end])
				}
			}
		case img.URI != "":
			if data, err := os.ReadFile(filepath.Join(dir, img.URI)); err == nil {
				out = append(out, data)
			}
		}
	}
	return out
}
