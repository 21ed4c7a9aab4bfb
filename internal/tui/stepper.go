package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/campus/internal/tui/theme"
	"github.com/mark3labs/campus/internal/wizard"
)

// renderStepper renders one column per step with its id, label and a
// progress bar colored by the step status.
func renderStepper(steps []wizard.Step, statuses []wizard.Status, width int) string {
	if len(steps) == 0 {
		return ""
	}
	s := theme.Current().S()

	colWidth := width / len(steps)
	if colWidth < 12 {
		colWidth = 12
	}

	cols := make([]string, len(steps))
	for i, step := range steps {
		var idStyle, labelStyle, barStyle lipgloss.Style
		mark := ""
		switch statuses[i] {
		case wizard.StatusCompleted:
			idStyle, labelStyle, barStyle = s.StepCompletedID, s.StepCompletedLabel, s.StepBarDone
			mark = "✓ "
		case wizard.StatusActive:
			idStyle, labelStyle, barStyle = s.StepActiveID, s.StepActiveLabel, s.StepBarActive
		default:
			idStyle, labelStyle, barStyle = s.StepUpcomingID, s.StepUpcomingLabel, s.StepBarTodo
		}

		inner := colWidth - 1
		label := truncate(step.Label, inner)
		cols[i] = lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			barStyle.Render(strings.Repeat("━", inner)),
			idStyle.Render(mark+step.ID),
			labelStyle.Render(label),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// truncate shortens s to at most width cells, adding an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
