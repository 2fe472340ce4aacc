// Package config loads scene and output settings from a JSON file and
// applies command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/daniel-roulin/trusk/pkg/math3d"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("config: invalid")

// Vec3 is an (x, y, z) triple as written in the config file.
type Vec3 [3]float64

// Point returns v as a position.
func (v Vec3) Point() math3d.Vec4 { return math3d.Point(v[0], v[1], v[2]) }

// Dir returns v as a direction.
func (v Vec3) Dir() math3d.Vec4 { return math3d.Dir(v[0], v[1], v[2]) }

// Camera holds the camera settings.
type Camera struct {
	Position   Vec3    `json:"position"`
	LookDir    Vec3    `json:"look_dir"`
	Up         Vec3    `json:"up"`
	FOV        float64 `json:"fov"`
	Near       float64 `json:"near"`
	Far        float64 `json:"far"`
	Projection string  `json:"projection"`
}

// Shading holds the light and color settings.
type Shading struct {
	Light            Vec3              `json:"light"`
	Color            colorful.HexColor `json:"color"`
	LightnessDivisor float64           `json:"lightness_divisor"`
	DepthSort        bool              `json:"depth_sort"`
	ClipEdges        bool              `json:"clip_edges"`
	Wireframe        bool              `json:"wireframe"`
	WireColor        colorful.HexColor `json:"wire_color"`
	Background       colorful.HexColor `json:"background"`
}

// Output holds offline rendering settings.
type Output struct {
	Dir         string  `json:"dir"`
	Format      string  `json:"format"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       int     `json:"scale"`
	Frames      int     `json:"frames"`
	Radius      float64 `json:"radius"`
	OrbitHeight float64 `json:"orbit_height"`
	Workers     int     `json:"workers"`
}

// Config holds everything a host needs to build frames.
type Config struct {
	Camera  Camera  `json:"camera"`
	Shading Shading `json:"shading"`
	Output  Output  `json:"output"`
}

// Defaults returns the built-in settings: the camera at (0, 0, 2) looking
// down -Z with an 80° field of view, and a light from the upper right.
func Defaults() Config {
	return Config{
		Camera: Camera{
			Position:   Vec3{0, 0, 2},
			LookDir:    Vec3{0, 0, -1},
			Up:         Vec3{0, 1, 0},
			FOV:        80,
			Near:       0.1,
			Far:        1000,
			Projection: render.Perspective.String(),
		},
		Shading: Shading{
			Light:            Vec3{1, 2, 0},
			Color:            hex(0xff, 0xa7, 0x5e),
			LightnessDivisor: render.DefaultLightnessDivisor,
			WireColor:        hex(0, 0, 0),
			Background:       hex(0x12, 0x12, 0x12),
		},
		Output: Output{
			Dir:         "frames",
			Format:      "png",
			Width:       320,
			Height:      240,
			Scale:       1,
			Frames:      36,
			Radius:      3,
			OrbitHeight: 1.5,
			Workers:     runtime.NumCPU(),
		},
	}
}

func hex(r, g, b uint8) colorful.HexColor {
	c, _ := colorful.MakeColor(color.RGBA{r, g, b, 0xff})
	return colorful.HexColor(c)
}

// Load reads a JSON config file on top of Defaults. Fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Projection string
	FOV        float64
	Color      string
	Wireframe  bool
	DepthSort  bool
	OutputDir  string
	Format     string
	Width      int
	Height     int
	Scale      int
	Frames     int
	Workers    int
}

// Resolve applies flags over c. Non-zero/non-empty flags win.
func (c *Config) Resolve(flags Flags) error {
	if flags.Projection != "" {
		c.Camera.Projection = flags.Projection
	}
	if flags.FOV > 0 {
		c.Camera.FOV = flags.FOV
	}
	if flags.Color != "" {
		col, err := colorful.Hex(flags.Color)
		if err != nil {
			return fmt.Errorf("config: color %q: %w", flags.Color, err)
		}
		c.Shading.Color = colorful.HexColor(col)
	}
	if flags.Wireframe {
		c.Shading.Wireframe = true
	}
	if flags.DepthSort {
		c.Shading.DepthSort = true
	}
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.Width > 0 {
		c.Output.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Output.Height = flags.Height
	}
	if flags.Scale > 0 {
		c.Output.Scale = flags.Scale
	}
	if flags.Frames > 0 {
		c.Output.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Output.Workers = flags.Workers
	}

	if c.Output.Workers <= 0 {
		c.Output.Workers = runtime.NumCPU()
	}
	if c.Output.Scale <= 0 {
		c.Output.Scale = 1
	}
	return nil
}

// Validate reports the first setting that cannot produce a frame.
func (c Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.FOV <= 0 || cam.FOV >= 180:
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalid, cam.FOV)
	case cam.Near <= 0:
		return fmt.Errorf("%w: near %v must be positive", ErrInvalid, cam.Near)
	case cam.Far <= cam.Near:
		return fmt.Errorf("%w: far %v must exceed near %v", ErrInvalid, cam.Far, cam.Near)
	}
	if _, err := render.ParseProjectionMode(cam.Projection); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.CameraValue().ViewMatrix(); err != nil {
		return fmt.Errorf("%w: camera: %w", ErrInvalid, err)
	}
	if _, err := render.NewLight(c.Shading.Light[0], c.Shading.Light[1], c.Shading.Light[2]); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Shading.LightnessDivisor <= 0 {
		return fmt.Errorf("%w: lightness divisor %v must be positive", ErrInvalid, c.Shading.LightnessDivisor)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("%w: output size %dx%d", ErrInvalid, c.Output.Width, c.Output.Height)
	}
	if c.Output.Frames <= 0 {
		return fmt.Errorf("%w: frames %d must be positive", ErrInvalid, c.Output.Frames)
	}
	if c.Output.Radius <= 0 {
		return fmt.Errorf("%w: orbit radius %v must be positive", ErrInvalid, c.Output.Radius)
	}
	return nil
}

// CameraValue builds a render.Camera. An unknown projection falls back to
// perspective; Validate reports it.
func (c Config) CameraValue() render.Camera {
	cam := render.NewCamera()
	cam.Position = c.Camera.Position.Point()
	cam.LookDir = c.Camera.LookDir.Dir()
	cam.Up = c.Camera.Up.Dir()
	cam.FOV = c.Camera.FOV
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	if mode, err := render.ParseProjectionMode(c.Camera.Projection); err == nil {
		cam.Mode = mode
	}
	return cam
}

// Frame builds the per-frame input from the camera and light settings.
func (c Config) Frame() (render.Frame, error) {
	light, err := render.NewLight(c.Shading.Light[0], c.Shading.Light[1], c.Shading.Light[2])
	if err != nil {
		return render.Frame{}, err
	}
	f := render.NewFrame()
	f.Camera = c.CameraValue()
	f.Light = light
	return f, nil
}

// Options builds pipeline options from the shading settings.
func (c Config) Options() render.Options {
	opts := render.DefaultOptions()
	opts.LightnessDivisor = c.Shading.LightnessDivisor
	opts.DepthSort = c.Shading.DepthSort
	opts.ClipScreenEdges = c.Shading.ClipEdges
	opts.Wireframe = c.Shading.Wireframe
	opts.WireColor = RGBA(c.Shading.WireColor)
	return opts
}

// BaseColor returns the mesh color.
func (c Config) BaseColor() color.RGBA { return RGBA(c.Shading.Color) }

// BackgroundColor returns the clear color.
func (c Config) BackgroundColor() color.RGBA { return RGBA(c.Shading.Background) }

// RGBA converts a config color to an opaque color.RGBA.
func RGBA(h colorful.HexColor) color.RGBA {
	r, g, b := colorful.Color(h).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
