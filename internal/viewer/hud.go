package viewer

import (
	"fmt"
	"io"
	"time"

	"github.com/daniel-roulin/trusk/pkg/render"
)

// HUD renders an overlay with model info and controls.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// Render draws the HUD over the top and bottom terminal rows.
func (h *HUD) Render(w io.Writer, width, height int, s *State, stats render.Stats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works
	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)

	if !s.ShowHUD {
		return
	}

	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	polys := fmt.Sprintf(" %d/%d tris ", stats.Drawn, h.polyCount)
	fmt.Fprintf(w, "%s%s%s%s%s%s", moveTo(1, max(width-len(polys), 1)), bgBlack, fgCyan, bold, polys, reset)

	fmt.Fprintf(w, "%s%s%s %s %s  %s X wire  %s Z sort  %s C clip %s",
		moveTo(height, 1), bgBlack, fgWhite,
		s.Camera.Mode, s.Mode,
		check(s.Options.Wireframe), check(s.Options.DepthSort), check(s.Options.ClipScreenEdges),
		reset)

	hint := " O/P proj  F fly "
	fmt.Fprintf(w, "%s%s%s%s%s%s", moveTo(height, max(width-len(hint), 1)), bgBlack, dim, fgYellow, hint, reset)
}
