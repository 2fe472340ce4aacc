// trusk - software 3D renderer
// View OBJ and glTF meshes in the terminal or a window, or render an orbit
// of frames to PNG/WebP.
//
// Usage:
//
//	trusk view   [model]   terminal viewer
//	trusk window [model]   desktop window
//	trusk render [model]   write an orbit of frames
//	trusk inspect [model]  print mesh statistics
//
// A missing model or the name "cube" uses the built-in unit cube; "stack"
// is a tower of rainbow slabs.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/daniel-roulin/trusk/internal/batch"
	"github.com/daniel-roulin/trusk/internal/config"
	"github.com/daniel-roulin/trusk/internal/snapshot"
	"github.com/daniel-roulin/trusk/internal/viewer"
	"github.com/daniel-roulin/trusk/internal/window"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

// cli holds the flag values shared by every subcommand.
type cli struct {
	configPath string
	flags      config.Flags
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "trusk",
		Short: "Software 3D renderer for the terminal and the desktop",
		Long: "trusk transforms, culls, clips, projects and flat-shades triangle meshes.\n" +
			"Meshes are read from OBJ or glTF/GLB files; \"cube\" and \"stack\" are built in.",
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "JSON config file")
	pf.StringVar(&c.flags.Projection, "projection", "", "perspective or orthographic")
	pf.Float64Var(&c.flags.FOV, "fov", 0, "vertical field of view in degrees")
	pf.StringVar(&c.flags.Color, "color", "", "base color as #rrggbb")
	pf.BoolVar(&c.flags.Wireframe, "wireframe", false, "outline every triangle")
	pf.BoolVar(&c.flags.DepthSort, "depth-sort", false, "sort triangles back to front")

	root.AddCommand(
		newViewCmd(c),
		newWindowCmd(c),
		newRenderCmd(c),
		newInspectCmd(c),
	)
	return root
}

// load reads the config and the mesh named by args.
func (c *cli) load(args []string) (config.Config, *scene, error) {
	cfg, err := c.config()
	if err != nil {
		return config.Config{}, nil, err
	}
	s, err := loadScene(cfg, c.flags.Color != "", firstArg(args))
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, s, nil
}

func (c *cli) config() (config.Config, error) {
	cfg := config.Defaults()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Resolve(c.flags); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newViewCmd(c *cli) *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Show a mesh in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := c.load(args)
			if err != nil {
				return err
			}
			vs, err := s.viewerScene(cfg, fps)
			if err != nil {
				return err
			}
			return viewer.Run(cmd.Context(), vs)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	return cmd
}

func newWindowCmd(c *cli) *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "window [model]",
		Short: "Show a mesh in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := c.load(args)
			if err != nil {
				return err
			}
			vs, err := s.viewerScene(cfg, fps)
			if err != nil {
				return err
			}
			return window.Run(vs, cfg.Output.Width, cfg.Output.Height, cfg.Output.Scale)
		},
	}
	f := cmd.Flags()
	f.IntVar(&fps, "fps", 60, "target frames per second")
	f.IntVar(&c.flags.Width, "width", 0, "framebuffer width in pixels")
	f.IntVar(&c.flags.Height, "height", 0, "framebuffer height in pixels")
	f.IntVar(&c.flags.Scale, "scale", 0, "window pixels per framebuffer pixel")
	return cmd
}

func newRenderCmd(c *cli) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render an orbit of frames to image files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := c.load(args)
			if err != nil {
				return err
			}
			format, err := snapshot.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			frame, err := cfg.Frame()
			if err != nil {
				return err
			}

			bc := batch.Config{
				Mesh:        s.mesh,
				Frame:       frame,
				Options:     cfg.Options(),
				Background:  cfg.BackgroundColor(),
				Width:       cfg.Output.Width,
				Height:      cfg.Output.Height,
				Scale:       cfg.Output.Scale,
				Frames:      cfg.Output.Frames,
				Radius:      cfg.Output.Radius,
				OrbitHeight: cfg.Output.OrbitHeight,
				OutputDir:   cfg.Output.Dir,
				Format:      format,
				Workers:     cfg.Output.Workers,
			}
			if !quiet {
				bc.Progress = cmd.ErrOrStderr()
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Rendering %d frames of %s (%d triangles) with %d workers\n",
				bc.Frames, s.name, s.mesh.TriangleCount(), bc.Workers)

			results, err := batch.Run(cmd.Context(), bc)
			if err != nil {
				return err
			}

			total := batch.Total(results)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d frames to %s\n", len(results), bc.OutputDir)
			fmt.Fprintf(out, "  triangles: %d in, %d culled, %d split, %d dropped, %d drawn\n",
				total.Input, total.Culled, total.Split, total.Dropped, total.Drawn)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&c.flags.OutputDir, "output", "o", "", "output directory")
	f.StringVar(&c.flags.Format, "format", "", "png or webp")
	f.IntVar(&c.flags.Width, "width", 0, "frame width in pixels")
	f.IntVar(&c.flags.Height, "height", 0, "frame height in pixels")
	f.IntVar(&c.flags.Scale, "scale", 0, "upscale factor applied when saving")
	f.IntVarP(&c.flags.Frames, "frames", "n", 0, "number of frames around the orbit")
	f.IntVarP(&c.flags.Workers, "workers", "j", 0, "concurrent frame renders")
	f.BoolVarP(&quiet, "quiet", "q", false, "no progress output")
	return cmd
}

func newInspectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model]",
		Short: "Print mesh statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := c.load(args)
			if err != nil {
				return err
			}
			s.describe(cmd.OutOrStdout())
			return nil
		},
	}
}
