package viewer

import (
	"github.com/daniel-roulin/trusk/internal/orbit"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// Mode selects how keys move the camera.
type Mode int

const (
	// ModeOrbit spins the camera around the mesh.
	ModeOrbit Mode = iota
	// ModeFly moves the camera freely.
	ModeFly
)

func (m Mode) String() string {
	if m == ModeFly {
		return "fly"
	}
	return "orbit"
}

// torque is the orbit impulse per second of a held key.
const torque = 3.0

// State is the interactive view state shared by the terminal and window
// hosts. It owns the camera between frames.
type State struct {
	Mode    Mode
	Camera  render.Camera
	Options render.Options
	ShowHUD bool

	orbit *orbit.Controller
	fly   orbit.Fly
	home  render.Camera
}

// NewState starts in orbit mode around the origin, from the camera's
// position.
func NewState(cam render.Camera, opts render.Options, fps int) *State {
	s := &State{
		Camera:  cam,
		Options: opts,
		orbit:   orbit.NewAt(fps, cam.Position),
		fly:     orbit.DefaultFly(),
		home:    cam,
	}
	return s
}

// HandleKey applies a key press. It reports true when the viewer should
// quit.
func (s *State) HandleKey(key string) (quit bool) {
	switch key {
	case "esc", "escape", "ctrl+c", "q":
		return true
	case "o":
		s.Camera.Mode = render.Orthographic
	case "p":
		s.Camera.Mode = render.Perspective
	case "x":
		s.Options.Wireframe = !s.Options.Wireframe
	case "z":
		s.Options.DepthSort = !s.Options.DepthSort
	case "c":
		s.Options.ClipScreenEdges = !s.Options.ClipScreenEdges
	case "f":
		s.ToggleMode()
	case "r":
		s.Reset()
	case "+", "=":
		s.orbit.Zoom(-0.5)
	case "-", "_":
		s.orbit.Zoom(0.5)
	case "?":
		s.ShowHUD = !s.ShowHUD
	}
	return false
}

// ToggleMode switches between orbit and fly. Fly starts from the current
// orbit camera.
func (s *State) ToggleMode() {
	if s.Mode == ModeOrbit {
		s.Mode = ModeFly
	} else {
		s.Mode = ModeOrbit
	}
}

// Reset restores the starting camera and orbit.
func (s *State) Reset() {
	mode := s.Camera.Mode
	s.Camera = s.home
	s.Camera.Mode = mode
	s.orbit.Reset()
}

// Drag spins the orbit by a mouse drag of dx, dy cells.
func (s *State) Drag(dx, dy int) {
	s.orbit.Impulse(float64(dx)*0.03, float64(dy)*0.03)
}

// Zoom moves the orbit distance.
func (s *State) Zoom(delta float64) {
	s.orbit.Zoom(delta)
}

// Step advances the camera by dt seconds of held input.
func (s *State) Step(in render.Input, dt float64) error {
	if s.Mode == ModeFly {
		s.fly.Step(&s.Camera, in, dt)
		return nil
	}

	var yaw, pitch float64
	if in.KeyPressed("a") || in.KeyPressed("left") {
		yaw -= torque
	}
	if in.KeyPressed("d") || in.KeyPressed("right") {
		yaw += torque
	}
	if in.KeyPressed("w") || in.KeyPressed("up") {
		pitch += torque
	}
	if in.KeyPressed("s") || in.KeyPressed("down") {
		pitch -= torque
	}
	s.orbit.Impulse(yaw*dt, pitch*dt)
	s.orbit.Update()
	return s.orbit.Apply(&s.Camera)
}

// Frame builds the pipeline input from the state and the host's light and
// world matrix.
func (s *State) Frame(base render.Frame, width, height int) render.Frame {
	f := base
	f.Camera = s.Camera
	if width > 0 {
		f.Camera.AspectRatio = float64(height) / float64(width)
	}
	return f
}
