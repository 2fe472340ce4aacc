package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

// ProjectionMode selects how view space is flattened onto the screen.
type ProjectionMode int

const (
	// Perspective multiplies by the projection matrix and divides by W.
	Perspective ProjectionMode = iota
	// Orthographic skips the projection matrix; view X and Y go straight to
	// the viewport.
	Orthographic
)

// ErrUnknownProjection is returned by ParseProjectionMode.
var ErrUnknownProjection = errors.New("render: unknown projection mode")

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// ParseProjectionMode accepts "perspective"/"persp"/"p" and
// "orthographic"/"ortho"/"o", case-insensitively.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "persp", "p":
		return Perspective, nil
	case "orthographic", "ortho", "o":
		return Orthographic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
}

// Camera holds everything needed to build the view and projection matrices
// of a frame. It is a plain value: the host mutates it between frames and
// hands a copy to the pipeline.
type Camera struct {
	Position math3d.Vec4 // W=1
	LookDir  math3d.Vec4 // need not be normalized
	Up       math3d.Vec4

	FOV         float64 // vertical field of view in degrees
	AspectRatio float64
	Near        float64
	Far         float64

	Mode ProjectionMode
}

// NewCamera creates a camera at (0, 0, 2) looking down -Z.
func NewCamera() Camera {
	return Camera{
		Position:    math3d.Point(0, 0, 2),
		LookDir:     math3d.Dir(0, 0, -1),
		Up:          math3d.Dir(0, 1, 0),
		FOV:         80,
		AspectRatio: 1,
		Near:        0.1,
		Far:         1000,
		Mode:        Perspective,
	}
}

// Target returns the point one LookDir ahead of the camera.
func (c Camera) Target() math3d.Vec4 {
	return c.Position.Add(c.LookDir)
}

// ViewMatrix returns the inverse of the camera's point-at matrix. It fails
// when LookDir is zero or parallel to Up.
func (c Camera) ViewMatrix() (math3d.Mat4, error) {
	pointAt, err := math3d.PointAt(c.Position, c.Target(), c.Up)
	if err != nil {
		return math3d.Mat4{}, fmt.Errorf("view matrix: %w", err)
	}
	view, err := pointAt.Inverse()
	if err != nil {
		return math3d.Mat4{}, fmt.Errorf("view matrix: %w", err)
	}
	return view, nil
}

// ProjectionMatrix returns the perspective matrix, or the identity in
// orthographic mode.
func (c Camera) ProjectionMatrix() math3d.Mat4 {
	if c.Mode == Orthographic {
		return math3d.Identity()
	}
	return math3d.Projection(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// Forward returns the normalized look direction, or -Z if LookDir is zero.
func (c Camera) Forward() math3d.Vec4 {
	f, err := c.LookDir.Normalize()
	if err != nil {
		return math3d.Dir(0, 0, -1)
	}
	f.W = 0
	return f
}

// Right returns the camera's right vector, the first row of its point-at
// matrix.
func (c Camera) Right() math3d.Vec4 {
	r, err := c.Up.Cross(c.Forward()).Normalize()
	if err != nil {
		return math3d.Dir(1, 0, 0)
	}
	return r
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec4) error {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return fmt.Errorf("look at: %w", math3d.ErrZeroLength)
	}
	dir.W = 0
	c.LookDir = dir
	return nil
}

// Orbit places the camera on a horizontal circle of the given radius around
// the Y axis, at angle theta (radians) and the given height, looking at the
// origin.
func (c *Camera) Orbit(theta, radius, height float64) error {
	c.Position = math3d.Point(radius*math.Cos(theta), height, radius*math.Sin(theta))
	return c.LookAt(math3d.Point(0, 0, 0))
}

// MoveForward moves the camera along its look direction.
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// Strafe moves the camera sideways along its right vector and vertically
// along world Y.
func (c *Camera) Strafe(right, up float64) {
	c.Position = c.Position.Add(c.Right().Scale(right)).Add(math3d.Dir(0, up, 0))
}

// Yaw turns the look direction around the world Y axis.
func (c *Camera) Yaw(angle float64) {
	c.LookDir = c.LookDir.Transform(math3d.RotateY(angle))
}

// Pitch tilts the look direction up (positive) or down, stopping short of
// straight up or down so the view basis stays valid.
func (c *Camera) Pitch(angle float64) {
	f := c.Forward()
	horiz := math.Hypot(f.X, f.Z)
	const limit = math.Pi/2 - 0.01
	pitch := math.Max(-limit, math.Min(limit, math.Atan2(f.Y, horiz)+angle))

	yaw := math.Atan2(f.X, f.Z)
	if horiz == 0 {
		yaw = 0
	}
	c.LookDir = math3d.Dir(
		math.Cos(pitch)*math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch)*math.Cos(yaw),
	)
}

// ToggleProjection switches between perspective and orthographic mode.
func (c *Camera) ToggleProjection() {
	if c.Mode == Perspective {
		c.Mode = Orthographic
	} else {
		c.Mode = Perspective
	}
}
