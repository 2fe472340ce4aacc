package render

import "github.com/daniel-roulin/trusk/pkg/math3d"

// Viewport maps normalized device coordinates to pixels:
//
//	x' = (±x + Offset.X) · width/2
//	y' = (±y + Offset.Y) · height/2
//
// The sign flips only apply to perspective projection, matching a device
// whose Y axis grows downward.
type Viewport struct {
	FlipX  bool
	FlipY  bool
	Offset math3d.Vec2
}

// DefaultViewport flips both axes and moves the [-1, 1] range to [0, 2]
// before scaling, which centers the image.
func DefaultViewport() Viewport {
	return Viewport{
		FlipX:  true,
		FlipY:  true,
		Offset: math3d.V2(1, 1),
	}
}

// Map converts v to screen space for a width×height surface. Z and W are
// left untouched.
func (vp Viewport) Map(v math3d.Vec4, width, height int, mode ProjectionMode) math3d.Vec4 {
	if mode == Perspective {
		if vp.FlipX {
			v.X = -v.X
		}
		if vp.FlipY {
			v.Y = -v.Y
		}
	}
	v.X = (v.X + vp.Offset.X) * float64(width) / 2
	v.Y = (v.Y + vp.Offset.Y) * float64(height) / 2
	return v
}
