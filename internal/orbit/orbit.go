// Package orbit moves a render.Camera around a target with spring-damped
// motion, and flies it with keyboard input.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// Distance limits for Zoom.
const (
	MinDistance = 0.5
	MaxDistance = 50.0
)

// pitchLimit keeps the camera off the poles, where LookDir would be
// parallel to Up.
const pitchLimit = math.Pi/2 - 0.05

// Axis tracks an angle and its angular velocity. The velocity decays
// toward zero through a critically damped spring.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity
}

// NewAxis creates an axis updated fps times per second.
func NewAxis(fps int) Axis {
	return Axis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies the velocity to the position and decays the velocity.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Controller orbits a camera around Target. Yaw and Pitch spin with
// momentum; the distance eases toward the zoom target.
type Controller struct {
	Yaw, Pitch Axis
	Target     math3d.Vec4

	Distance       float64
	TargetDistance float64
	distSpring     harmonica.Spring
	distVel        float64

	fps       int
	home      float64
	homeYaw   float64
	homePitch float64
}

// New creates a controller at the given distance from the origin, looking
// down -Z from the +Z side.
func New(fps int, distance float64) *Controller {
	c := &Controller{
		Target:         math3d.Point(0, 0, 0),
		Distance:       distance,
		TargetDistance: distance,
		distSpring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		fps:            fps,
		home:           distance,
		homeYaw:        math.Pi / 2,
	}
	c.Yaw = NewAxis(fps)
	c.Pitch = NewAxis(fps)
	c.Yaw.Position = c.homeYaw
	return c
}

// NewAt creates a controller whose home is pos, orbiting the origin. A
// position at the origin falls back to New(fps, 2). Pitch is clamped off
// the poles.
func NewAt(fps int, pos math3d.Vec4) *Controller {
	off := math3d.Dir(pos.X, pos.Y, pos.Z)
	d := off.Len()
	if d == 0 {
		return New(fps, 2)
	}
	c := New(fps, d)
	c.homeYaw = math.Atan2(off.Z, off.X)
	c.homePitch = max(-pitchLimit, min(pitchLimit, math.Asin(off.Y/d)))
	c.Yaw.Position = c.homeYaw
	c.Pitch.Position = c.homePitch
	return c
}

// Impulse adds angular velocity in radians per frame.
func (c *Controller) Impulse(yaw, pitch float64) {
	c.Yaw.Velocity += yaw
	c.Pitch.Velocity += pitch
}

// Zoom moves the target distance by delta, within [MinDistance, MaxDistance].
func (c *Controller) Zoom(delta float64) {
	c.TargetDistance = math.Max(MinDistance, math.Min(MaxDistance, c.TargetDistance+delta))
}

// Update advances one frame.
func (c *Controller) Update() {
	c.Yaw.Update()
	c.Pitch.Update()
	if c.Pitch.Position > pitchLimit {
		c.Pitch.Position = pitchLimit
		c.Pitch.Velocity = 0
	} else if c.Pitch.Position < -pitchLimit {
		c.Pitch.Position = -pitchLimit
		c.Pitch.Velocity = 0
	}
	c.Distance, c.distVel = c.distSpring.Update(c.Distance, c.distVel, c.TargetDistance)
}

// Reset returns to the starting angles and distance.
func (c *Controller) Reset() {
	c.Yaw = NewAxis(c.fps)
	c.Pitch = NewAxis(c.fps)
	c.Yaw.Position = c.homeYaw
	c.Pitch.Position = c.homePitch
	c.Distance, c.TargetDistance, c.distVel = c.home, c.home, 0
}

// Position returns the camera position for the current angles.
func (c *Controller) Position() math3d.Vec4 {
	cp := math.Cos(c.Pitch.Position)
	offset := math3d.Dir(
		cp*math.Cos(c.Yaw.Position),
		math.Sin(c.Pitch.Position),
		cp*math.Sin(c.Yaw.Position),
	).Scale(c.Distance)
	return c.Target.Add(offset)
}

// Apply places cam at Position looking at Target.
func (c *Controller) Apply(cam *render.Camera) error {
	cam.Position = c.Position()
	return cam.LookAt(c.Target)
}
