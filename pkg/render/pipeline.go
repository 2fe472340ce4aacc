// Package render turns a triangle mesh into shaded 2D triangles:
// world transform, back-face cull, shade, view transform, near-plane clip,
// projection, perspective divide and viewport mapping. The result is handed
// to a Surface one FillTriangle call at a time.
package render

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/models"
)

// WEpsilon is the smallest |W| the perspective divide accepts. Triangles
// with a vertex below it are dropped.
const WEpsilon = 1e-9

// Options tunes the pipeline. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// LightnessDivisor is the divisor in (intensity+1)/divisor.
	LightnessDivisor float64
	Viewport         Viewport

	// DepthSort draws triangles farthest first (painter's algorithm on the
	// mean view-space Z). Off means mesh order.
	DepthSort bool
	// ClipScreenEdges clips projected triangles to the surface bounds.
	ClipScreenEdges bool
	// Wireframe outlines every triangle with WireColor when the surface is
	// a Stroker.
	Wireframe bool
	WireColor color.RGBA
}

// DefaultOptions returns the reference settings.
func DefaultOptions() Options {
	return Options{
		LightnessDivisor: DefaultLightnessDivisor,
		Viewport:         DefaultViewport(),
		WireColor:        color.RGBA{A: 0xff},
	}
}

// Frame is the per-frame input owned by the caller.
type Frame struct {
	Camera Camera
	Light  Light
	World  math3d.Mat4
}

// NewFrame returns a frame with the default camera and light and an
// identity world matrix.
func NewFrame() Frame {
	return Frame{
		Camera: NewCamera(),
		Light:  DefaultLight(),
		World:  math3d.Identity(),
	}
}

// Stats counts what happened to the mesh triangles during one frame.
type Stats struct {
	Input       int // mesh triangles
	Culled      int // back-facing or degenerate
	NearClipped int // entirely behind the near plane
	Split       int // extra triangles created by clipping
	Dropped     int // rejected by the |W| guard
	EdgeClipped int // entirely off screen
	Drawn       int // triangles emitted
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Input += o.Input
	s.Culled += o.Culled
	s.NearClipped += o.NearClipped
	s.Split += o.Split
	s.Dropped += o.Dropped
	s.EdgeClipped += o.EdgeClipped
	s.Drawn += o.Drawn
}

// Pipeline renders meshes with a fixed set of options. It holds no
// per-frame state and may be shared by concurrent frames.
type Pipeline struct {
	Options Options
}

// New creates a pipeline. Zero LightnessDivisor falls back to the default.
func New(opts Options) *Pipeline {
	if opts.LightnessDivisor == 0 {
		opts.LightnessDivisor = DefaultLightnessDivisor
	}
	return &Pipeline{Options: opts}
}

// depthTri is a projected triangle with the view-space depth used for sorting.
type depthTri struct {
	tri   models.Triangle
	depth float64
}

// Project runs every stage except drawing and returns the screen-space
// triangles in draw order, with X and Y in pixels of a width×height surface
// and Color resolved. A camera or light that cannot form a basis aborts the
// frame with an error and no triangles.
func (p *Pipeline) Project(f Frame, mesh *models.Mesh, width, height int) ([]models.Triangle, Stats, error) {
	var stats Stats

	view, err := f.Camera.ViewMatrix()
	if err != nil {
		return nil, stats, err
	}
	light := f.Light
	if light.Direction, err = light.Direction.Normalize(); err != nil {
		return nil, stats, fmt.Errorf("light direction: %w", err)
	}

	mode := f.Camera.Mode
	proj := f.Camera.ProjectionMatrix()
	near := NearPlane(f.Camera.Near)
	base := mesh.BaseColor
	if base.A == 0 {
		base = models.DefaultBaseColor
	}

	items := make([]depthTri, 0, len(mesh.Triangles))
	for _, src := range mesh.Triangles {
		stats.Input++

		tri := src.Transform(f.World)
		normal, visible := Cull(tri, f.Camera.Position)
		if !visible {
			stats.Culled++
			continue
		}

		tc := base
		if src.Color.A != 0 {
			tc = src.Color
		}
		tri.Intensity = light.Intensity(normal)
		tri.Color = Shade(tc, LightnessFactor(tri.Intensity, p.Options.LightnessDivisor))

		tri = tri.Transform(view)
		n, clipped := ClipTriangle(near, tri)
		if n == 0 {
			stats.NearClipped++
			continue
		}
		stats.Split += n - 1

		for _, c := range clipped[:n] {
			depth := c.MeanZ()
			if mode == Perspective {
				c = c.Transform(proj)
			}
			s, ok := p.toScreen(c, width, height, mode)
			if !ok {
				stats.Dropped++
				continue
			}
			items = append(items, depthTri{tri: s, depth: depth})
		}
	}

	if p.Options.DepthSort {
		slices.SortStableFunc(items, func(a, b depthTri) int {
			return cmp.Compare(b.depth, a.depth)
		})
	}

	out := make([]models.Triangle, 0, len(items))
	var edges [4]Plane
	if p.Options.ClipScreenEdges {
		edges = ScreenEdges(width, height)
	}
	for _, it := range items {
		if !p.Options.ClipScreenEdges {
			out = append(out, it.tri)
			continue
		}
		pieces := ClipAll([]models.Triangle{it.tri}, edges[:]...)
		if len(pieces) == 0 {
			stats.EdgeClipped++
		}
		out = append(out, pieces...)
	}

	stats.Drawn = len(out)
	return out, stats, nil
}

// toScreen divides by W and maps to pixels. It reports false when a vertex
// has |W| < WEpsilon.
func (p *Pipeline) toScreen(t models.Triangle, width, height int, mode ProjectionMode) (models.Triangle, bool) {
	for i, v := range t.V {
		d, ok := v.PerspectiveDivide(WEpsilon)
		if !ok {
			return t, false
		}
		t.V[i] = p.Options.Viewport.Map(d, width, height, mode)
	}
	return t, true
}

// Render projects mesh for the surface's size and emits one FillTriangle per
// resulting triangle. On error nothing is drawn.
func (p *Pipeline) Render(f Frame, mesh *models.Mesh, s Surface) (Stats, error) {
	w, h := s.Size()
	tris, stats, err := p.Project(f, mesh, w, h)
	if err != nil {
		return stats, err
	}
	Draw(s, tris, p.Options)
	return stats, nil
}

// Draw emits screen-space triangles to s, outlining them when opts asks for
// a wireframe and s supports it.
func Draw(s Surface, tris []models.Triangle, opts Options) {
	stroker, canStroke := s.(Stroker)
	for _, t := range tris {
		a, b, c := t.V[0], t.V[1], t.V[2]
		s.FillTriangle(a.X, a.Y, b.X, b.Y, c.X, c.Y, t.Color)
		if opts.Wireframe && canStroke {
			stroker.StrokeTriangle(a.X, a.Y, b.X, b.Y, c.X, c.Y, opts.WireColor)
		}
	}
}
