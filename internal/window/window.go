// Package window shows a mesh in a desktop window. It uses the same
// controls as the terminal viewer, with Shift lowering the camera in fly
// mode.
package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/daniel-roulin/trusk/internal/viewer"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// heldKeys maps the names render.Input is queried with to window keys.
var heldKeys = map[string]ebiten.Key{
	"w":     ebiten.KeyW,
	"a":     ebiten.KeyA,
	"s":     ebiten.KeyS,
	"d":     ebiten.KeyD,
	"space": ebiten.KeySpace,
	"shift": ebiten.KeyShift,
	"up":    ebiten.KeyArrowUp,
	"down":  ebiten.KeyArrowDown,
	"left":  ebiten.KeyArrowLeft,
	"right": ebiten.KeyArrowRight,
}

// pressKeys maps one-shot window keys to viewer.State key names.
var pressKeys = map[ebiten.Key]string{
	ebiten.KeyEscape: "esc",
	ebiten.KeyQ:      "q",
	ebiten.KeyO:      "o",
	ebiten.KeyP:      "p",
	ebiten.KeyX:      "x",
	ebiten.KeyZ:      "z",
	ebiten.KeyC:      "c",
	ebiten.KeyF:      "f",
	ebiten.KeyR:      "r",
	ebiten.KeyEqual:  "+",
	ebiten.KeyMinus:  "-",
}

// input exposes the window's keyboard and mouse as render.Input.
type input struct{}

var _ render.Input = input{}

func (input) KeyPressed(key string) bool {
	k, ok := heldKeys[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (input) MousePosition() (x, y int) {
	return ebiten.CursorPosition()
}

// Run opens a window of width×height pixels, shown scale times larger, and
// blocks until it closes.
func Run(scene viewer.Scene, width, height, scale int) error {
	fps := scene.FPS
	if fps <= 0 {
		fps = 60
	}
	scale = max(scale, 1)

	g := &game{
		scene: scene,
		state: viewer.NewState(scene.Frame.Camera, scene.Options, fps),
		fb:    render.NewFramebuffer(width, height),
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		dt:    1 / float64(fps),
	}

	ebiten.SetWindowTitle("trusk - " + scene.Name)
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(fps)
	return ebiten.RunGame(g)
}

type game struct {
	scene viewer.Scene
	state *viewer.State
	fb    *render.Framebuffer
	img   *image.RGBA
	fbImg *ebiten.Image
	dt    float64

	dragging     bool
	lastX, lastY int
}

func (g *game) Update() error {
	for k, name := range pressKeys {
		if inpututil.IsKeyJustPressed(k) && g.state.HandleKey(name) {
			return ebiten.Termination
		}
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			g.state.Drag(x-g.lastX, y-g.lastY)
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	} else {
		g.dragging = false
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.state.Zoom(-dy * 0.5)
	}

	if err := g.state.Step(input{}, g.dt); err != nil {
		return err
	}

	g.fb.Clear(g.scene.Background)
	f := g.state.Frame(g.scene.Frame, g.fb.Width, g.fb.Height)
	if _, err := render.New(g.state.Options).Render(f, g.scene.Mesh, g.fb); err != nil {
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	g.fb.CopyTo(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
