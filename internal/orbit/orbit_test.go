package orbit

import (
	"math"
	"testing"

	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/render"
)

func TestAxisDecays(t *testing.T) {
	a := NewAxis(60)
	a.Velocity = 0.5

	for range 600 {
		a.Update()
	}
	if a.Position <= 0 {
		t.Errorf("Position = %v, want > 0", a.Position)
	}
	if math.Abs(a.Velocity) > 1e-3 {
		t.Errorf("Velocity = %v, want ~0", a.Velocity)
	}
}

func TestNewMatchesDefaultCamera(t *testing.T) {
	c := New(60, 2)
	cam := render.NewCamera()
	if err := c.Apply(&cam); err != nil {
		t.Fatal(err)
	}

	if !cam.Position.ApproxEqual(math3d.Point(0, 0, 2), 1e-12) {
		t.Errorf("Position = %+v", cam.Position)
	}
	if !cam.Forward().ApproxEqual(math3d.Dir(0, 0, -1), 1e-12) {
		t.Errorf("Forward = %+v", cam.Forward())
	}
}

func TestNewAt(t *testing.T) {
	tests := []struct {
		name string
		pos  math3d.Vec4
		want math3d.Vec4
	}{
		{"default camera", math3d.Point(0, 0, 2), math3d.Point(0, 0, 2)},
		{"corner", math3d.Point(3, 3, 2), math3d.Point(3, 3, 2)},
		{"below", math3d.Point(-1, -2, -1), math3d.Point(-1, -2, -1)},
		{"origin", math3d.Point(0, 0, 0), math3d.Point(0, 0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAt(60, tt.pos)
			if got := c.Position(); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("Position() = %+v, want %+v", got, tt.want)
			}

			c.Impulse(0.3, 0.1)
			for range 10 {
				c.Update()
			}
			c.Reset()
			if got := c.Position(); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("after Reset Position() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewAtClampsPitch(t *testing.T) {
	c := NewAt(60, math3d.Point(0, 5, 0))
	if c.Pitch.Position != pitchLimit {
		t.Errorf("Pitch = %v, want %v", c.Pitch.Position, pitchLimit)
	}
	if math.Abs(c.Distance-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", c.Distance)
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"in", -1, 2},
		{"clamped near", -100, MinDistance},
		{"clamped far", 100, MaxDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(60, 3)
			c.Zoom(tt.delta)
			if c.TargetDistance != tt.want {
				t.Errorf("TargetDistance = %v, want %v", c.TargetDistance, tt.want)
			}
		})
	}
}

func TestDistanceEases(t *testing.T) {
	c := New(60, 3)
	c.Zoom(2)

	c.Update()
	if c.Distance <= 3 || c.Distance >= 5 {
		t.Errorf("after one frame Distance = %v, want between 3 and 5", c.Distance)
	}

	for range 600 {
		c.Update()
	}
	if math.Abs(c.Distance-5) > 1e-3 {
		t.Errorf("Distance = %v, want 5", c.Distance)
	}
}

func TestPitchClamped(t *testing.T) {
	c := New(60, 3)
	c.Impulse(0, 10)
	for range 10 {
		c.Update()
	}
	if c.Pitch.Position > pitchLimit {
		t.Errorf("Pitch = %v exceeds limit", c.Pitch.Position)
	}

	cam := render.NewCamera()
	if err := c.Apply(&cam); err != nil {
		t.Fatal(err)
	}
	if _, err := cam.ViewMatrix(); err != nil {
		t.Errorf("ViewMatrix() at the pitch limit error = %v", err)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := New(60, 4)
	c.Impulse(0.3, 0.1)
	for range 30 {
		c.Update()
	}
	d := c.Position().Sub(c.Target).Len()
	if math.Abs(d-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", d)
	}
}

func TestReset(t *testing.T) {
	c := New(60, 3)
	c.Impulse(1, 1)
	c.Zoom(5)
	for range 20 {
		c.Update()
	}

	c.Reset()
	if !c.Position().ApproxEqual(math3d.Point(0, 0, 3), 1e-12) {
		t.Errorf("Position after Reset = %+v", c.Position())
	}
	if c.Yaw.Velocity != 0 || c.Pitch.Velocity != 0 {
		t.Error("velocity not cleared")
	}
}
