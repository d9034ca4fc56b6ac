package main

import (
	"fmt"
	"io"
	"time"

	"github.com/taigrr/easel/pkg/render"
)

// HUD renders an overlay with scene info and frame statistics.
type HUD struct {
	title     string
	triangles int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD(title string, triangles int) *HUD {
	return &HUD{
		title:     title,
		triangles: triangles,
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

// Render draws the HUD over the top and bottom terminal rows.
func (h *HUD) Render(w io.Writer, width, height int, view *ViewState, stats render.FrameStats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgRed     = "\x1b[91m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	if !view.ShowHUD {
		return
	}

	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)

	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.title, reset)

	tris := fmt.Sprintf("%d/%d tris", stats.Submitted, h.triangles)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, max(width-len(tris)-1, 1)), bgBlack, fgCyan, bold, tris, reset)

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	fmt.Fprintf(w, "%s%s%s %s Texture  %s Wireframe  %s Paused %s",
		moveTo(height, 1), bgBlack, fgWhite,
		check(view.TextureEnabled), check(view.Wireframe), check(view.Paused), reset)

	if stats.Dropped > 0 {
		msg := fmt.Sprintf(" %d dropped ", stats.Dropped)
		fmt.Fprintf(w, "%s%s%s%s%s", moveTo(height, max(width-len(msg), 1)), bgBlack, fgRed, msg, reset)
	} else {
		fmt.Fprintf(w, "%s%s%s%s culled %d %s", moveTo(height, max(width-16, 1)), bgBlack, dim, fgYellow, stats.Culled, reset)
	}
}
