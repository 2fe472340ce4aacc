package render

import (
	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/models"
)

// Cull runs the back-face test for tri seen from camPos. Both must be in the
// same space. The triangle is visible when its normal and the ray from the
// camera to its first vertex point in opposite directions. Degenerate
// triangles are never visible. The unit normal is returned for shading.
func Cull(tri models.Triangle, camPos math3d.Vec4) (normal math3d.Vec4, visible bool) {
	normal, err := tri.Normal()
	if err != nil {
		return math3d.Vec4{}, false
	}
	ray := tri.V[0].Sub(camPos)
	return normal, normal.Dot(ray) < 0
}
