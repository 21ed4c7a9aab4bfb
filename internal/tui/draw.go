package tui

import (
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// DrawText renders styled text clipped to area
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawLine renders a single line at row y of area, inset by one column.
func DrawLine(scr uv.Screen, area uv.Rectangle, y int, text string) {
	DrawText(scr, uv.Rect(area.Min.X+1, y, area.Dx()-1, 1), text)
}

// DrawBottomRight renders content anchored to the bottom-right corner of
// area, offset by margin cells. Content larger than area is clamped to its
// top-left corner.
func DrawBottomRight(scr uv.Screen, area uv.Rectangle, content string, margin int) {
	if content == "" {
		return
	}
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := area.Max.X - w - margin
	y := area.Max.Y - h - margin
	if x < area.Min.X {
		x = area.Min.X
	}
	if y < area.Min.Y {
		y = area.Min.Y
	}
	DrawText(scr, uv.Rect(x, y, w, h), content)
}
