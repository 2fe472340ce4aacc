package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into a flat triangle list.
type GLTFLoader struct {
	// Normalize recenters the mesh on the origin and scales it to fit a
	// sphere of radius 1.
	Normalize bool
	// UseMaterialColor takes the mesh base color from the first material's
	// base color factor.
	UseMaterialColor bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Normalize:        false,
		UseMaterialColor: true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens path and converts every triangle primitive of every mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("open gltf: %w", err)}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := l.Convert(doc, name)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return mesh, nil
}

// Convert builds a Mesh from an already decoded document.
func (l *GLTFLoader) Convert(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	mesh.CalculateBounds()
	if l.Normalize {
		mesh.Normalize()
	}
	return mesh, nil
}

// processMesh appends the triangles of every triangle-list primitive of m.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// lines and points have no faces
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// glTF front faces are counter-clockwise, which is already the
		// right-hand rule outward normal the culler expects.
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if max(a, b, c) >= len(positions) {
				return fmt.Errorf("triangle %d: %w", i/3, ErrIndexRange)
			}
			mesh.Add(Tri(positions[a], positions[b], positions[c]))
		}

		if l.UseMaterialColor && prim.Material != nil {
			if c, ok := materialColor(doc, *prim.Material); ok {
				mesh.BaseColor = c
			}
		}
	}

	return nil
}

// materialColor returns the base color factor of material i, if any.
func materialColor(doc *gltf.Document, i int) (color.RGBA, bool) {
	if i < 0 || i >= len(doc.Materials) {
		return color.RGBA{}, false
	}
	pbr := doc.Materials[i].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return color.RGBA{}, false
	}
	f := *pbr.BaseColorFactor
	to8 := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: to8(f[0]), G: to8(f[1]), B: to8(f[2]), A: 0xff}, true
}

// readPositions reads a VEC3 float accessor as points.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec4, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d does not exist", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec4, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math3d.Point(
			float64(readFloat32(b[0:])),
			float64(readFloat32(b[4:])),
			float64(readFloat32(b[8:])),
		)
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d does not exist", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
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
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
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

// accessorBytes returns the buffer bytes starting at the accessor's first
// element, and the element stride. elemSize is used when the view is tightly
// packed.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, errors.New("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d does not exist", *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d does not exist", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer].Data
	if buf == nil {
		return nil, 0, errors.New("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return buf[start:start], stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(buf) {
		return nil, 0, fmt.Errorf("accessor reads bytes %d..%d of a %d byte buffer", start, end, len(buf))
	}
	return buf[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
