package config

import (
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/render"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}
	if got := cfg.BaseColor(); got != (color.RGBA{0xff, 0xa7, 0x5e, 0xff}) {
		t.Errorf("BaseColor() = %v", got)
	}

	cam := cfg.CameraValue()
	if cam != render.NewCamera() {
		t.Errorf("CameraValue() = %+v, want the default camera", cam)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	data := `{
		"camera": {"position": [3, 3, 2], "look_dir": [-3, -3, -2], "projection": "ortho"},
		"shading": {"color": "#00ff00", "wireframe": true},
		"output": {"frames": 4}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.Position != (Vec3{3, 3, 2}) {
		t.Errorf("Position = %v", cfg.Camera.Position)
	}
	if cfg.CameraValue().Mode != render.Orthographic {
		t.Errorf("Mode = %v, want orthographic", cfg.CameraValue().Mode)
	}
	if got := cfg.BaseColor(); got != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Errorf("BaseColor() = %v", got)
	}
	if !cfg.Shading.Wireframe || !cfg.Options().Wireframe {
		t.Error("wireframe not loaded")
	}
	if cfg.Output.Frames != 4 {
		t.Errorf("Frames = %d", cfg.Output.Frames)
	}
	// untouched fields keep their defaults
	if cfg.Camera.FOV != 80 || cfg.Output.Width != 320 {
		t.Errorf("defaults lost: fov %v width %d", cfg.Camera.FOV, cfg.Output.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"shading": {"color": "orange"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error for bad color")
	}
}

func TestResolve(t *testing.T) {
	cfg := Defaults()
	err := cfg.Resolve(Flags{
		Projection: "o",
		FOV:        60,
		Color:      "#112233",
		Wireframe:  true,
		Width:      64,
		Frames:     2,
		Workers:    3,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.Camera.Projection != "o" || cfg.Camera.FOV != 60 {
		t.Errorf("camera overrides not applied: %+v", cfg.Camera)
	}
	if got := cfg.BaseColor(); got != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Errorf("BaseColor() = %v", got)
	}
	if !cfg.Shading.Wireframe {
		t.Error("wireframe flag ignored")
	}
	if cfg.Output.Width != 64 || cfg.Output.Height != 240 {
		t.Errorf("size = %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Output.Frames != 2 || cfg.Output.Workers != 3 {
		t.Errorf("frames %d workers %d", cfg.Output.Frames, cfg.Output.Workers)
	}
}

func TestResolveBadColor(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Resolve(Flags{Color: "nope"}); err == nil {
		t.Error("expected error")
	}
}

func TestResolveFillsZeroes(t *testing.T) {
	var cfg Config
	if err := cfg.Resolve(Flags{}); err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Workers <= 0 || cfg.Output.Scale != 1 {
		t.Errorf("workers %d scale %d", cfg.Output.Workers, cfg.Output.Scale)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero fov", func(c *Config) { c.Camera.FOV = 0 }},
		{"wide fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"bad projection", func(c *Config) { c.Camera.Projection = "fisheye" }},
		{"zero look", func(c *Config) { c.Camera.LookDir = Vec3{} }},
		{"look along up", func(c *Config) { c.Camera.LookDir = Vec3{0, 2, 0} }},
		{"zero light", func(c *Config) { c.Shading.Light = Vec3{} }},
		{"zero divisor", func(c *Config) { c.Shading.LightnessDivisor = 0 }},
		{"zero width", func(c *Config) { c.Output.Width = 0 }},
		{"zero frames", func(c *Config) { c.Output.Frames = 0 }},
		{"zero radius", func(c *Config) { c.Output.Radius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	cfg := Defaults()
	cfg.Shading.Light = Vec3{0, 3, 0}
	f, err := cfg.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if !f.Light.Direction.ApproxEqual(math3d.Dir(0, 1, 0), 1e-12) {
		t.Errorf("light = %+v", f.Light.Direction)
	}
	if f.World != math3d.Identity() {
		t.Error("world is not identity")
	}

	cfg.Shading.Light = Vec3{}
	if _, err := cfg.Frame(); !errors.Is(err, math3d.ErrZeroLength) {
		t.Errorf("Frame() error = %v", err)
	}
}
