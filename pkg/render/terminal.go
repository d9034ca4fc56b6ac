package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// FramebufferSize returns the framebuffer dimensions that fill a terminal of
// cols×rows cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to terminal cells and sets them on scr.
// Each cell shows two pixels: "▀" with the top pixel as foreground and the
// bottom pixel as background, so the framebuffer is twice the area's height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, topY+1)),
				},
			})
		}
	}
}

// rgbaToColor maps a transparent pixel to the terminal default color.
func rgbaToColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
