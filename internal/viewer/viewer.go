// Package viewer shows a mesh in the terminal, two pixels per cell.
//
// Controls:
//
//	Mouse drag  - Orbit
//	Scroll, +/- - Zoom
//	W/A/S/D     - Orbit, or move in fly mode
//	Arrows      - Orbit, or turn in fly mode
//	Space       - Rise in fly mode
//	F           - Toggle orbit/fly
//	O/P         - Orthographic/perspective
//	X           - Toggle wireframe
//	Z           - Toggle depth sort
//	C           - Toggle screen-edge clipping
//	R           - Reset view
//	?           - Toggle HUD
//	Esc, Q      - Quit
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/daniel-roulin/trusk/pkg/models"
	"github.com/daniel-roulin/trusk/pkg/render"
)

// Scene is what the viewer shows.
type Scene struct {
	Name       string
	Mesh       *models.Mesh
	Frame      render.Frame
	Options    render.Options
	Background color.RGBA
	FPS        int
}

// keyName maps a key press to the name State and the fly controls use.
func keyName(ev uv.KeyPressEvent) string {
	for _, name := range []string{
		"esc", "ctrl+c", "up", "down", "left", "right", "space",
	} {
		if ev.MatchString(name) {
			return name
		}
	}
	if ev.MatchString("shift+/") {
		return "?"
	}
	return ev.String()
}

// Run takes over the terminal until ctx is done or the user quits.
func Run(ctx context.Context, scene Scene) error {
	fps := scene.FPS
	if fps <= 0 {
		fps = 30
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	fbWidth, fbHeight := render.TerminalSize(width, height)
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	state := NewState(scene.Frame.Camera, scene.Options, fps)
	state.ShowHUD = true
	keys := newKeyState()
	hud := NewHUD(scene.Name, scene.Mesh.TriangleCount())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Events are queued and applied on the render goroutine.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.KeyPressEvent:
				keys.press(keyName(ev))
			case uv.KeyReleaseEvent:
				keys.release(uv.Key(ev).String())
			case uv.MouseMotionEvent:
				keys.move(ev.X, ev.Y)
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	for {
		// Drain pending events
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					fbWidth, fbHeight = render.TerminalSize(width, height)
					fb = render.NewFramebuffer(fbWidth, fbHeight)
				case uv.KeyPressEvent:
					if state.HandleKey(keyName(ev)) {
						return nil
					}
				case uv.MouseClickEvent:
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				case uv.MouseReleaseEvent:
					mouseDown = false
				case uv.MouseMotionEvent:
					if mouseDown {
						state.Drag(ev.X-lastMouseX, ev.Y-lastMouseY)
						lastMouseX, lastMouseY = ev.X, ev.Y
					}
				case uv.MouseWheelEvent:
					switch ev.Button {
					case uv.MouseWheelUp:
						state.Zoom(-0.5)
					case uv.MouseWheelDown:
						state.Zoom(0.5)
					}
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		if err := state.Step(keys, dt); err != nil {
			return fmt.Errorf("camera: %w", err)
		}

		fb.Clear(scene.Background)
		pipeline := render.New(state.Options)
		stats, err := pipeline.Render(state.Frame(scene.Frame, fbWidth, fbHeight), scene.Mesh, fb)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		term.Draw(fb)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(os.Stdout, width, height, state, stats)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
