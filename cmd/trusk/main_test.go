package main

import (
	"bytes"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daniel-roulin/trusk/internal/config"
	"github.com/daniel-roulin/trusk/pkg/models"
)

const quadOBJ = `# quad
v 0 0 0
v 4 0 0
v 4 2 0
v 0 2 0
f 1 2 3 4
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	obj := writeFile(t, "quad.obj", quadOBJ)

	tests := []struct {
		path      string
		name      string
		triangles int
	}{
		{"", "cube", 12},
		{"cube", "cube", 12},
		{"stack", "stack", 12 * stackPlatforms},
		{obj, "quad", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadScene(config.Defaults(), false, tt.path)
			if err != nil {
				t.Fatalf("loadScene(%q) = %v", tt.path, err)
			}
			if s.name != tt.name {
				t.Errorf("name = %q, want %q", s.name, tt.name)
			}
			if got := s.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if r := s.mesh.Radius(); math.Abs(r-1) > 1e-9 {
				t.Errorf("normalized radius = %v, want 1", r)
			}
		})
	}
}

func TestLoadSceneStackColors(t *testing.T) {
	s, err := loadScene(config.Defaults(), false, "stack")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.max.Y-0.2*stackPlatforms) > 1e-9 || s.min.Y != 0 {
		t.Errorf("height = %v .. %v", s.min.Y, s.max.Y)
	}

	seen := make(map[color.RGBA]bool)
	for i, tri := range s.mesh.Triangles {
		if tri.Color != s.mesh.Triangles[i/12*12].Color {
			t.Errorf("triangle %d color differs from its slab", i)
		}
		seen[tri.Color] = true
	}
	if len(seen) != stackPlatforms {
		t.Errorf("distinct colors = %d, want %d", len(seen), stackPlatforms)
	}
	if first := s.mesh.Triangles[0].Color; first != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("bottom slab = %v, want red", first)
	}
}

func TestLoadSceneKeepsFileBounds(t *testing.T) {
	s, err := loadScene(config.Defaults(), false, writeFile(t, "quad.obj", quadOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if s.max.X != 4 || s.max.Y != 2 || s.min.X != 0 {
		t.Errorf("bounds = %+v .. %+v", s.min, s.max)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unsupported", "model.stl"},
		{"missing obj", filepath.Join(t.TempDir(), "missing.obj")},
		{"missing glb", filepath.Join(t.TempDir(), "missing.glb")},
		{"empty obj", writeFile(t, "empty.obj", "# nothing\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadScene(config.Defaults(), false, tt.path); err == nil {
				t.Errorf("loadScene(%q) succeeded", tt.path)
			}
		})
	}
}

func TestLoadSceneColor(t *testing.T) {
	cfg := config.Defaults()
	if err := cfg.Resolve(config.Flags{Color: "#102030"}); err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{0x10, 0x20, 0x30, 0xff}

	s, err := loadScene(cfg, true, "cube")
	if err != nil {
		t.Fatal(err)
	}
	if s.mesh.BaseColor != want {
		t.Errorf("BaseColor = %v, want %v", s.mesh.BaseColor, want)
	}

	s, err = loadScene(config.Defaults(), false, "cube")
	if err != nil {
		t.Fatal(err)
	}
	if s.mesh.BaseColor != models.DefaultBaseColor {
		t.Errorf("BaseColor = %v, want default", s.mesh.BaseColor)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", "cube")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name:      cube", "triangles: 12", "vertices:  36", "size:      1 x 1 x 1", "#ffa75e"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "cube",
		"--output", dir, "--frames", "3", "--width", "16", "--height", "12", "--quiet")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote 3 frames") {
		t.Errorf("output = %q", out)
	}
	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderCommandProgress(t *testing.T) {
	args := []string{"render", "cube", "--frames", "2", "--width", "8", "--height", "8"}

	out, err := execute(t, append(args, "--output", t.TempDir())...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[2/2]") {
		t.Errorf("output has no progress line:\n%s", out)
	}

	out, err = execute(t, append(args, "--output", t.TempDir(), "--quiet")...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "frames/sec") {
		t.Errorf("--quiet printed progress:\n%s", out)
	}
}

func TestCommandRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"projection", []string{"inspect", "--projection", "fisheye"}},
		{"color", []string{"inspect", "--color", "orange"}},
		{"config file", []string{"inspect", "--config", filepath.Join(t.TempDir(), "none.json")}},
		{"format", []string{"render", "--format", "gif", "--output", t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v succeeded", tt.args)
			}
		})
	}
}
