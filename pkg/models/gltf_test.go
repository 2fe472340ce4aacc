package models

import (
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

// quadDocument returns an in-memory document holding a unit quad drawn with
// two indexed triangles and a red material.
func quadDocument() *gltf.Document {
	var buf []byte
	for _, p := range [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
		for _, c := range p {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
		}
	}
	for _, i := range []uint16{0, 1, 2, 0, 2, 3} {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 48},
			{Buffer: 0, ByteOffset: 48, ByteLength: 12},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: 6, Type: gltf.AccessorScalar},
		},
		Materials: []*gltf.Material{{
			Name:                 "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
			}},
		}},
	}
}

func TestGLTFConvert(t *testing.T) {
	mesh, err := NewGLTFLoader().Convert(quadDocument(), "quad")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if got := mesh.Triangles[1].V[2]; !got.ApproxEqual(math3d.Point(0, 1, 0), 0) {
		t.Errorf("last vertex = %v, want (0, 1, 0)", got)
	}
	if mesh.BaseColor != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("BaseColor = %v, want red", mesh.BaseColor)
	}

	// counter-clockwise glTF faces keep +Z normals
	n, err := mesh.Triangles[0].Normal()
	if err != nil || !n.ApproxEqual(math3d.Dir(0, 0, 1), 1e-9) {
		t.Errorf("normal = %v (%v), want (0, 0, 1)", n, err)
	}
}

func TestGLTFConvertOptions(t *testing.T) {
	loader := &GLTFLoader{Normalize: true}
	mesh, err := loader.Convert(quadDocument(), "quad")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if mesh.BaseColor != DefaultBaseColor {
		t.Errorf("material color used although disabled: %v", mesh.BaseColor)
	}
	if c := mesh.Center(); !c.ApproxEqual(math3d.Point(0, 0, 0), 1e-9) {
		t.Errorf("Center = %v, want origin", c)
	}
}

func TestGLTFConvertBadIndex(t *testing.T) {
	doc := quadDocument()
	// the last index (3) becomes 9
	binary.LittleEndian.PutUint16(doc.Buffers[0].Data[58:], 9)

	_, err := NewGLTFLoader().Convert(doc, "quad")
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("err = %v, want ErrIndexRange", err)
	}
}

func TestGLTFConvertEmpty(t *testing.T) {
	_, err := NewGLTFLoader().Convert(&gltf.Document{}, "empty")
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("err = %v, want ErrEmptyMesh", err)
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error %v is not a *ParseError", err)
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.UseMaterialColor {
		t.Error("UseMaterialColor should default to true")
	}
	if loader.Normalize {
		t.Error("Normalize should default to false")
	}
}
