// Package batch renders a turntable of frames around a mesh and writes
// them to disk concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/daniel-roulin/trusk/internal/snapshot"
	"github.com/daniel-roulin/trusk/pkg/models"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// Config holds everything shared by a run.
type Config struct {
	Mesh       *models.Mesh
	Frame      render.Frame // camera lens, light and world; position is set per frame
	Options    render.Options
	Background color.RGBA

	Width, Height int
	Scale         int
	Frames        int
	Radius        float64
	OrbitHeight   float64

	OutputDir string
	Format    snapshot.Format
	Workers   int

	// Progress receives a status line every ProgressEvery and a final one
	// when all frames are written. Nil disables it.
	Progress      io.Writer
	ProgressEvery time.Duration
}

// DefaultProgressEvery is the status interval used when ProgressEvery is zero.
const DefaultProgressEvery = 2 * time.Second

// ErrNoMesh is returned by Run when Config.Mesh is nil.
var ErrNoMesh = errors.New("batch: no mesh")

// Result is the outcome of one frame.
type Result struct {
	Index int
	Path  string
	Stats render.Stats
}

// FramePath returns the output file for frame i.
func (c Config) FramePath(i int) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("frame_%04d%s", i, c.Format.Ext()))
}

// Angle returns the orbit angle of frame i in radians.
func (c Config) Angle(i int) float64 {
	return 2 * math.Pi * float64(i) / float64(c.Frames)
}

// Run renders every frame with at most Workers goroutines. The first error
// cancels the remaining frames. Results are indexed by frame.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if cfg.Frames <= 0 {
		return nil, nil
	}
	if cfg.Mesh == nil {
		return nil, ErrNoMesh
	}
	workers := max(cfg.Workers, 1)
	every := cfg.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	results := make([]Result, cfg.Frames)
	var processed atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	var ticking sync.WaitGroup
	stopTicker := sync.OnceFunc(func() {
		close(done)
		ticking.Wait()
	})
	defer stopTicker()

	report := func() {
		p := processed.Load()
		rate := float64(p) / time.Since(start).Seconds()
		fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, cfg.Frames, rate)
	}
	if cfg.Progress != nil {
		ticking.Go(func() {
			ticker := time.NewTicker(every)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if processed.Load() > 0 {
						report()
					}
				}
			}
		})
	}

	pipeline := render.New(cfg.Options)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range cfg.Frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := renderFrame(cfg, pipeline, i)
			if err != nil {
				return fmt.Errorf("batch: frame %d: %w", i, err)
			}
			results[i] = res
			processed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	stopTicker()
	if cfg.Progress != nil {
		report()
	}
	return results, nil
}

func renderFrame(cfg Config, p *render.Pipeline, i int) (Result, error) {
	f := cfg.Frame
	f.Camera.AspectRatio = float64(cfg.Height) / float64(cfg.Width)
	if err := f.Camera.Orbit(cfg.Angle(i), cfg.Radius, cfg.OrbitHeight); err != nil {
		return Result{}, err
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	fb.Clear(cfg.Background)
	stats, err := p.Render(f, cfg.Mesh, fb)
	if err != nil {
		return Result{}, err
	}

	path := cfg.FramePath(i)
	if err := snapshot.Save(path, fb.ToImage(), cfg.Scale); err != nil {
		return Result{}, err
	}
	return Result{Index: i, Path: path, Stats: stats}, nil
}

// Total sums the stats of all results.
func Total(results []Result) render.Stats {
	var s render.Stats
	for _, r := range results {
		s.Add(r.Stats)
	}
	return s
}
