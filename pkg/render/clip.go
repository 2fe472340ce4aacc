package render

import (
	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/models"
)

// Plane is a clipping plane given by a point on it and a normal pointing
// toward the kept half-space.
type Plane struct {
	Point  math3d.Vec4
	Normal math3d.Vec4
}

// NearPlane returns the view-space near plane at distance near.
func NearPlane(near float64) Plane {
	return Plane{Point: math3d.Point(0, 0, near), Normal: math3d.Dir(0, 0, 1)}
}

// ScreenEdges returns the four planes bounding a width×height pixel area,
// in top, bottom, left, right order. The right and bottom planes sit on the
// far edge of the last pixel. Only X and Y take part.
func ScreenEdges(width, height int) [4]Plane {
	w, h := float64(width), float64(height)
	return [4]Plane{
		{Point: math3d.Point(0, 0, 0), Normal: math3d.Dir(0, 1, 0)},
		{Point: math3d.Point(0, h, 0), Normal: math3d.Dir(0, -1, 0)},
		{Point: math3d.Point(0, 0, 0), Normal: math3d.Dir(1, 0, 0)},
		{Point: math3d.Point(w, 0, 0), Normal: math3d.Dir(-1, 0, 0)},
	}
}

// Distance returns the signed distance from v to the plane. The normal must
// be normalized.
func (p Plane) Distance(v math3d.Vec4) float64 {
	return math3d.DistanceToPlane(v, p.Point, p.Normal)
}

// Intersect returns the point where the segment a→b crosses the plane.
// The normal must be normalized and the segment must not be parallel to it.
func (p Plane) Intersect(a, b math3d.Vec4) math3d.Vec4 {
	d := -p.Normal.Dot(p.Point)
	ad := a.Dot(p.Normal)
	bd := b.Dot(p.Normal)
	t := (-d - ad) / (bd - ad)
	return a.Lerp(b, t)
}

// ClipTriangle clips tri against plane and returns how many of out hold
// valid triangles (0, 1 or 2). Vertices on the plane count as inside.
// Outputs are fresh values carrying tri's shading; tri itself is never
// modified. A plane with a zero normal keeps nothing.
func ClipTriangle(plane Plane, tri models.Triangle) (n int, out [2]models.Triangle) {
	normal, err := plane.Normal.Normalize()
	if err != nil {
		return 0, out
	}
	plane.Normal = normal

	var inside, outside [3]math3d.Vec4
	var nIn, nOut int
	for _, v := range tri.V {
		if plane.Distance(v) >= 0 {
			inside[nIn] = v
			nIn++
		} else {
			outside[nOut] = v
			nOut++
		}
	}

	switch nIn {
	case 0:
		return 0, out

	case 3:
		out[0] = tri
		return 1, out

	case 1:
		t := tri
		t.V = [3]math3d.Vec4{
			inside[0],
			plane.Intersect(inside[0], outside[0]),
			plane.Intersect(inside[0], outside[1]),
		}
		out[0] = t
		return 1, out

	default:
		// Two inside: the kept part is a quad, split along in1→I(in0).
		i0 := plane.Intersect(inside[0], outside[0])
		i1 := plane.Intersect(inside[1], outside[0])

		t0, t1 := tri, tri
		t0.V = [3]math3d.Vec4{inside[0], inside[1], i0}
		t1.V = [3]math3d.Vec4{inside[1], i0, i1}
		out[0], out[1] = t0, t1
		return 2, out
	}
}

// ClipAll clips every triangle in tris against each plane in turn and
// returns the surviving pieces. The input slice is not modified.
func ClipAll(tris []models.Triangle, planes ...Plane) []models.Triangle {
	cur := append([]models.Triangle(nil), tris...)
	for _, p := range planes {
		next := make([]models.Triangle, 0, len(cur))
		for _, t := range cur {
			n, out := ClipTriangle(p, t)
			next = append(next, out[:n]...)
		}
		cur = next
	}
	return cur
}
