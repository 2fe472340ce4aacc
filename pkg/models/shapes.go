package models

import "github.com/daniel-roulin/trusk/pkg/math3d"

// NewBox returns a box whose back lower left corner is (x, y, z) with
// width w along X, height h along Y and depth d along Z. Every face normal
// (right-hand rule) points outward.
func NewBox(x, y, z, w, h, d float64) *Mesh {
	p := func(px, py, pz float64) math3d.Vec4 {
		return math3d.Point(x+px, y+py, z+pz)
	}
	p1, p2 := p(0, 0, 0), p(w, 0, 0)
	p3, p4 := p(0, h, 0), p(w, h, 0)
	p5, p6 := p(0, 0, d), p(w, 0, d)
	p7, p8 := p(0, h, d), p(w, h, d)

	m := NewMesh("box")
	m.Add(
		// front (-z)
		Tri(p1, p3, p4), Tri(p1, p4, p2),
		// right (+x)
		Tri(p2, p4, p8), Tri(p2, p8, p6),
		// back (+z)
		Tri(p6, p8, p7), Tri(p6, p7, p5),
		// left (-x)
		Tri(p5, p7, p3), Tri(p5, p3, p1),
		// top (+y)
		Tri(p3, p7, p8), Tri(p3, p8, p4),
		// bottom (-y)
		Tri(p6, p5, p1), Tri(p6, p1, p2),
	)
	m.CalculateBounds()
	return m
}

// UnitCube returns the 12-triangle cube spanning (0,0,0) to (1,1,1).
func UnitCube() *Mesh {
	m := NewBox(0, 0, 0, 1, 1, 1)
	m.Name = "cube"
	return m
}
