// Package models provides the triangle-soup mesh used by Trusk and the
// loaders that build one from OBJ or glTF files.
package models

import (
	"image/color"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

// DefaultBaseColor is the orange used when a mesh does not carry its own color.
var DefaultBaseColor = color.RGBA{R: 0xff, G: 0xa7, B: 0x5e, A: 0xff}

// Triangle is three homogeneous vertices plus the shading resolved for the
// current frame.
type Triangle struct {
	V [3]math3d.Vec4

	// Intensity is the light/normal dot product, in [-1, 1].
	Intensity float64
	// Color is the final shaded color handed to the surface. On a mesh
	// triangle a non-zero Color replaces the mesh BaseColor before shading.
	Color color.RGBA
}

// Tri creates a triangle from three vertices.
func Tri(a, b, c math3d.Vec4) Triangle {
	return Triangle{V: [3]math3d.Vec4{a, b, c}}
}

// Normal returns the unit face normal using the right-hand rule on
// (V1-V0) × (V2-V0). Degenerate triangles return math3d.ErrZeroLength.
func (t Triangle) Normal() (math3d.Vec4, error) {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Normalize()
}

// Transform returns a copy of t with every vertex multiplied by m.
// Shading is carried over unchanged.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	for i := range t.V {
		t.V[i] = t.V[i].Transform(m)
	}
	return t
}

// MeanZ returns the average Z of the three vertices.
func (t Triangle) MeanZ() float64 {
	return (t.V[0].Z + t.V[1].Z + t.V[2].Z) / 3
}

// Mesh is an ordered list of triangles. Order is draw order.
type Mesh struct {
	Name      string
	Triangles []Triangle
	BaseColor color.RGBA

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec4
	BoundsMax math3d.Vec4
}

// NewMesh creates an empty mesh with the default base color.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
		BaseColor: DefaultBaseColor,
		BoundsMin: math3d.Point(0, 0, 0),
		BoundsMax: math3d.Point(0, 0, 0),
	}
}

// Add appends triangles to the mesh.
func (m *Mesh) Add(tris ...Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		return
	}

	lo := m.Triangles[0].V[0]
	hi := lo
	for _, t := range m.Triangles {
		for _, v := range t.V {
			lo.X, hi.X = min(lo.X, v.X), max(hi.X, v.X)
			lo.Y, hi.Y = min(lo.Y, v.Y), max(hi.Y, v.Y)
			lo.Z, hi.Z = min(lo.Z, v.Z), max(hi.Z, v.Z)
		}
	}
	m.BoundsMin = math3d.Point(lo.X, lo.Y, lo.Z)
	m.BoundsMax = math3d.Point(hi.X, hi.Y, hi.Z)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec4 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec4 {
	s := m.BoundsMax.Sub(m.BoundsMin)
	s.W = 0
	return s
}

// Radius returns half the diagonal of the bounding box.
func (m *Mesh) Radius() float64 {
	return m.Size().Len() / 2
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of (unshared) vertices.
func (m *Mesh) VertexCount() int {
	return 3 * len(m.Triangles)
}

// Transform applies a transformation matrix to every vertex. It is meant for
// load-time normalisation; per-frame motion goes through the world matrix.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Normalize recenters the mesh on the origin and scales it so that its
// bounding box diagonal is 2.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	c := m.Center()
	r := m.Radius()
	if r == 0 {
		return
	}
	s := 1 / r
	m.Transform(math3d.Translate(-c.X, -c.Y, -c.Z).Mul(math3d.Scale(s, s, s)))
}
