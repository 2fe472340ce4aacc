package orbit

import "github.com/daniel-roulin/trusk/pkg/render"

// Fly moves a camera from held keys:
//
//	w/s          forward/back along the look direction
//	a/d          strafe left/right
//	space/shift  up/down
//	left/right   yaw
//	up/down      pitch
type Fly struct {
	Speed    float64 // units per second
	TurnRate float64 // radians per second
}

// DefaultFly returns the reference speeds.
func DefaultFly() Fly {
	return Fly{Speed: 2.4, TurnRate: 1.5}
}

// Step moves cam for dt seconds of the keys held in in. It reports whether
// any key moved the camera.
func (f Fly) Step(cam *render.Camera, in render.Input, dt float64) bool {
	move := f.Speed * dt
	turn := f.TurnRate * dt
	moved := false

	axis := func(pos, neg string) float64 {
		v := 0.0
		if in.KeyPressed(pos) {
			v++
		}
		if in.KeyPressed(neg) {
			v--
		}
		if v != 0 {
			moved = true
		}
		return v
	}

	forward := axis("w", "s")
	// the viewport mirrors view X, so screen right is -Right()
	right := axis("a", "d")
	up := axis("space", "shift")
	yaw := axis("left", "right")
	pitch := axis("up", "down")

	if forward != 0 {
		cam.MoveForward(forward * move)
	}
	if right != 0 || up != 0 {
		cam.Strafe(right*move, up*move)
	}
	if yaw != 0 {
		cam.Yaw(yaw * turn)
	}
	if pitch != 0 {
		cam.Pitch(pitch * turn)
	}
	return moved
}
