package models

import (
	"math"
	"testing"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

func TestTriangleNormal(t *testing.T) {
	tri := Tri(math3d.Point(0, 0, 0), math3d.Point(1, 0, 0), math3d.Point(0, 1, 0))
	n, err := tri.Normal()
	if err != nil {
		t.Fatalf("Normal: %v", err)
	}
	if !n.ApproxEqual(math3d.Dir(0, 0, 1), 1e-12) {
		t.Errorf("normal = %v, want (0, 0, 1)", n)
	}

	flat := Tri(math3d.Point(0, 0, 0), math3d.Point(1, 1, 1), math3d.Point(2, 2, 2))
	if _, err := flat.Normal(); err == nil {
		t.Error("degenerate triangle should have no normal")
	}
}

func TestTriangleTransformCopies(t *testing.T) {
	tri := Tri(math3d.Point(0, 0, 0), math3d.Point(1, 0, 0), math3d.Point(0, 1, 0))
	tri.Intensity = 0.5

	moved := tri.Transform(math3d.Translate(0, 0, 3))
	if moved.V[0].Z != 3 || moved.Intensity != 0.5 {
		t.Errorf("moved = %+v", moved)
	}
	if tri.V[0].Z != 0 {
		t.Error("Transform modified its receiver")
	}
}

func TestUnitCube(t *testing.T) {
	cube := UnitCube()

	if cube.TriangleCount() != 12 {
		t.Fatalf("TriangleCount = %d, want 12", cube.TriangleCount())
	}
	if cube.VertexCount() != 36 {
		t.Errorf("VertexCount = %d, want 36", cube.VertexCount())
	}
	if !cube.BoundsMin.ApproxEqual(math3d.Point(0, 0, 0), 0) || !cube.BoundsMax.ApproxEqual(math3d.Point(1, 1, 1), 0) {
		t.Errorf("bounds = %v..%v", cube.BoundsMin, cube.BoundsMax)
	}

	center := cube.Center()
	for i, tri := range cube.Triangles {
		n, err := tri.Normal()
		if err != nil {
			t.Fatalf("triangle %d: %v", i, err)
		}
		out := tri.V[0].Add(tri.V[1]).Add(tri.V[2]).Scale(1.0 / 3).Sub(center)
		if n.Dot(out) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, n)
		}
	}
}

func TestNewBoxOffset(t *testing.T) {
	box := NewBox(1, 2, 3, 4, 0.2, 5)

	if !box.BoundsMin.ApproxEqual(math3d.Point(1, 2, 3), 1e-12) {
		t.Errorf("BoundsMin = %v", box.BoundsMin)
	}
	if !box.BoundsMax.ApproxEqual(math3d.Point(5, 2.2, 8), 1e-12) {
		t.Errorf("BoundsMax = %v", box.BoundsMax)
	}
	if s := box.Size(); !s.ApproxEqual(math3d.Dir(4, 0.2, 5), 1e-12) {
		t.Errorf("Size = %v", s)
	}
}

func TestMeshNormalize(t *testing.T) {
	mesh := NewBox(10, 10, 10, 4, 4, 4)
	mesh.Normalize()

	if c := mesh.Center(); !c.ApproxEqual(math3d.Point(0, 0, 0), 1e-9) {
		t.Errorf("Center = %v, want origin", c)
	}
	if r := mesh.Radius(); math.Abs(r-1) > 1e-9 {
		t.Errorf("Radius = %v, want 1", r)
	}
}

func TestNewMeshDefaults(t *testing.T) {
	mesh := NewMesh("test")

	if mesh.TriangleCount() != 0 {
		t.Errorf("empty mesh should have 0 triangles")
	}
	if mesh.BaseColor != DefaultBaseColor {
		t.Errorf("BaseColor = %v, want %v", mesh.BaseColor, DefaultBaseColor)
	}

	// bounds of an empty mesh stay at the origin
	mesh.CalculateBounds()
	if mesh.Radius() != 0 {
		t.Errorf("Radius = %v, want 0", mesh.Radius())
	}
}
