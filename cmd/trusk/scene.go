package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/daniel-roulin/trusk/internal/config"
	"github.com/daniel-roulin/trusk/internal/viewer"
	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/models"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// stackPlatforms is the number of slabs in the built-in stack scene.
const stackPlatforms = 11

// scene is a loaded, normalized mesh plus what inspect reports about the
// file it came from.
type scene struct {
	name string
	mesh *models.Mesh

	// bounds before normalization
	min, max math3d.Vec4
}

// loadScene reads a mesh by extension. An empty path or "cube" is the
// built-in unit cube and "stack" is a tower of colored slabs. The
// configured color replaces the mesh color unless the file carried its own
// and no color was asked for. Per-triangle colors always win.
func loadScene(cfg config.Config, colorSet bool, path string) (*scene, error) {
	var mesh *models.Mesh
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "" || path == "cube":
		mesh = models.UnitCube()
	case path == "stack":
		mesh = stackMesh()
	case ext == ".obj":
		mesh, err = models.LoadOBJ(path)
	case ext == ".glb" || ext == ".gltf":
		mesh, err = models.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported format: %q (use .obj, .glb or .gltf)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("load model: %s has no triangles", mesh.Name)
	}

	if colorSet || mesh.BaseColor == models.DefaultBaseColor {
		mesh.BaseColor = cfg.BaseColor()
	}

	mesh.CalculateBounds()
	s := &scene{
		name: mesh.Name,
		mesh: mesh,
		min:  mesh.BoundsMin,
		max:  mesh.BoundsMax,
	}
	mesh.Normalize()
	return s, nil
}

// stackMesh piles unit slabs 0.2 high, each triangle colored by the hue of
// its slab.
func stackMesh() *models.Mesh {
	m := models.NewMesh("stack")
	for i := range stackPlatforms {
		box := models.NewBox(0, 0.2*float64(i), 0, 1, 0.2, 1)
		c := render.HueColor(float64(i%100) / 100)
		for j := range box.Triangles {
			box.Triangles[j].Color = c
		}
		m.Add(box.Triangles...)
	}
	return m
}

// viewerScene builds what the terminal and window hosts show.
func (s *scene) viewerScene(cfg config.Config, fps int) (viewer.Scene, error) {
	frame, err := cfg.Frame()
	if err != nil {
		return viewer.Scene{}, err
	}
	return viewer.Scene{
		Name:       s.name,
		Mesh:       s.mesh,
		Frame:      frame,
		Options:    cfg.Options(),
		Background: cfg.BackgroundColor(),
		FPS:        fps,
	}, nil
}

func (s *scene) describe(w io.Writer) {
	size := s.max.Sub(s.min)
	c := s.mesh.BaseColor
	fmt.Fprintf(w, "name:      %s\n", s.name)
	fmt.Fprintf(w, "triangles: %d\n", s.mesh.TriangleCount())
	fmt.Fprintf(w, "vertices:  %d\n", s.mesh.VertexCount())
	fmt.Fprintf(w, "bounds:    (%.4g, %.4g, %.4g) to (%.4g, %.4g, %.4g)\n",
		s.min.X, s.min.Y, s.min.Z, s.max.X, s.max.Y, s.max.Z)
	fmt.Fprintf(w, "size:      %.4g x %.4g x %.4g\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "color:     #%02x%02x%02x\n", c.R, c.G, c.B)
}
